package i18n

var catalogs = map[string]map[string]string{
	"en": {
		"langName": "English",

		"statusDraft":   "Draft",
		"statusPaid":    "Paid",
		"statusUnpaid":  "Unpaid",
		"statusOverdue": "Overdue",

		"issueDate": "Issue Date",
		"dueDate":   "Due Date",

		"pdfInvoice":     "Invoice",
		"pdfBillTo":      "Bill To",
		"pdfDateIssued":  "Date Issued",
		"pdfDueDate":     "Due Date",
		"pdfDescription": "Description",
		"pdfQuantity":    "Qty",
		"pdfUnitPrice":   "Unit Price",
		"pdfAmount":      "Amount",
		"pdfSubtotal":    "Subtotal",
		"pdfDiscount":    "Discount",
		"pdfTax":         "Tax",
		"pdfTotal":       "Total",
		"pdfPayOnline":   "Pay Online",
		"pdfNotes":       "Notes",
		"pdfSignature":   "Signature",

		"validationClientName": "Please enter a client name before exporting.",
		"validationItem":       "Please complete description, quantity and rate for item #",
	},
	"es": {
		"langName": "Español",

		"statusDraft":   "Borrador",
		"statusPaid":    "Pagada",
		"statusUnpaid":  "Pendiente",
		"statusOverdue": "Vencida",

		"issueDate": "Fecha de emisión",
		"dueDate":   "Fecha de vencimiento",

		"pdfInvoice":     "Factura",
		"pdfBillTo":      "Facturar a",
		"pdfDateIssued":  "Fecha de emisión",
		"pdfDueDate":     "Vencimiento",
		"pdfDescription": "Descripción",
		"pdfQuantity":    "Cant.",
		"pdfUnitPrice":   "Precio unitario",
		"pdfAmount":      "Importe",
		"pdfSubtotal":    "Subtotal",
		"pdfDiscount":    "Descuento",
		"pdfTax":         "Impuesto",
		"pdfTotal":       "Total",
		"pdfPayOnline":   "Pagar en línea",
		"pdfNotes":       "Notas",
		"pdfSignature":   "Firma",

		"validationClientName": "Introduce el nombre del cliente antes de exportar.",
		"validationItem":       "Completa descripción, cantidad y precio del artículo #",
	},
	"de": {
		"langName": "Deutsch",

		"statusDraft":   "Entwurf",
		"statusPaid":    "Bezahlt",
		"statusUnpaid":  "Offen",
		"statusOverdue": "Überfällig",

		"issueDate": "Rechnungsdatum",
		"dueDate":   "Fälligkeitsdatum",

		"pdfInvoice":     "Rechnung",
		"pdfBillTo":      "Rechnung an",
		"pdfDateIssued":  "Ausgestellt am",
		"pdfDueDate":     "Fällig am",
		"pdfDescription": "Beschreibung",
		"pdfQuantity":    "Menge",
		"pdfUnitPrice":   "Einzelpreis",
		"pdfAmount":      "Betrag",
		"pdfSubtotal":    "Zwischensumme",
		"pdfDiscount":    "Rabatt",
		"pdfTax":         "Steuer",
		"pdfTotal":       "Gesamt",
		"pdfPayOnline":   "Online bezahlen",
		"pdfNotes":       "Anmerkungen",
		"pdfSignature":   "Unterschrift",

		"validationClientName": "Bitte vor dem Export einen Kundennamen eingeben.",
		"validationItem":       "Bitte Beschreibung, Menge und Preis vervollständigen für Position #",
	},
	"fr": {
		"langName": "Français",

		"statusDraft":   "Brouillon",
		"statusPaid":    "Payée",
		"statusUnpaid":  "Impayée",
		"statusOverdue": "En retard",

		"issueDate": "Date d'émission",
		"dueDate":   "Date d'échéance",

		"pdfInvoice":     "Facture",
		"pdfBillTo":      "Facturer à",
		"pdfDateIssued":  "Émise le",
		"pdfDueDate":     "Échéance",
		"pdfDescription": "Description",
		"pdfQuantity":    "Qté",
		"pdfUnitPrice":   "Prix unitaire",
		"pdfAmount":      "Montant",
		"pdfSubtotal":    "Sous-total",
		"pdfDiscount":    "Remise",
		"pdfTax":         "Taxe",
		"pdfTotal":       "Total",
		"pdfPayOnline":   "Payer en ligne",
		"pdfNotes":       "Notes",
		"pdfSignature":   "Signature",

		"validationClientName": "Veuillez saisir le nom du client avant l'export.",
		"validationItem":       "Veuillez compléter la description, la quantité et le prix de la ligne #",
	},
}
