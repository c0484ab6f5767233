// Package domain contains the invoice aggregate edited by the application.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle badge shown on the document.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPaid    Status = "paid"
	StatusUnpaid  Status = "unpaid"
	StatusOverdue Status = "overdue"
)

// MaxImageBytes is the ceiling for an uploaded logo or signature.
const MaxImageBytes = 2 << 20

// LineItem is one billable row. Amount is always derived as
// Quantity*Rate and never stored.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// Party is one side of the invoice (issuing company or client).
// Info is a freeform multi-line address block.
type Party struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Info  string `json:"info"`
}

// Invoice is the aggregate root. Line items and images are owned
// exclusively by it; there is always at least one line item.
type Invoice struct {
	Language string `json:"language"`

	Number   string `json:"invoiceNumber"`
	Status   Status `json:"invoiceStatus"`
	Currency string `json:"currency"`

	// ISO calendar dates (2006-01-02), no time component.
	IssueDate string `json:"invoiceDate"`
	DueDate   string `json:"dueDate"`

	Company Party `json:"company"`
	Client  Party `json:"client"`

	Items []LineItem `json:"items"`

	// Discount is either a flat magnitude ("50") or a percentage ("10%").
	Discount string  `json:"discount"`
	TaxRate  float64 `json:"taxRate"`

	PaymentLink string `json:"paymentLink"`
	Notes       string `json:"notes"`

	Logo      *ImageAttachment `json:"companyLogo,omitempty"`
	Signature *ImageAttachment `json:"signatureImage,omitempty"`
}

var (
	ErrLastItem      = errors.New("last_item")
	ErrItemIndex     = errors.New("item_index_out_of_range")
	ErrImageTooLarge = errors.New("image_too_large")
	ErrUnknownImage  = errors.New("unknown_image_kind")
)

// ValidationError marks a field the user must correct before export.
// MessageKey resolves through the translation catalog; ItemIndex is
// -1 unless the offending field belongs to a line item.
type ValidationError struct {
	Field      string `json:"field"`
	MessageKey string `json:"messageKey"`
	ItemIndex  int    `json:"itemIndex"`
}

func (e *ValidationError) Error() string {
	if e.ItemIndex >= 0 {
		return fmt.Sprintf("validation failed: %s (item %d)", e.Field, e.ItemIndex+1)
	}
	return "validation failed: " + e.Field
}

// Default returns a fresh invoice seeded the way a new editing
// session starts: one example item, net-30 due date, 10% tax.
func Default(now time.Time) Invoice {
	return Invoice{
		Language: "en",
		Number:   "INV-001",
		Status:   StatusDraft,
		Currency: "USD",

		IssueDate: now.Format("2006-01-02"),
		DueDate:   now.AddDate(0, 0, 30).Format("2006-01-02"),

		Company: Party{
			Name:  "Your Company LLC",
			Email: "hello@yourcompany.com",
			Info:  "456 Your Street\nYour City, ST 12345\nPhone: (555) 123-4567",
		},
		Client: Party{
			Name:  "Client Inc.",
			Email: "client@example.com",
			Info:  "123 Main Street\nAnytown, USA 54321\nPhone: (555) 987-6543",
		},

		Items: []LineItem{
			{Description: "Premium Web Development", Quantity: 10, Rate: 150},
		},

		Discount: "0",
		TaxRate:  10,
		Notes:    "Thank you for your business!",
	}
}

// AddItem appends an empty row: blank description, quantity 1, rate 0.
func (inv *Invoice) AddItem() {
	inv.Items = append(inv.Items, LineItem{Quantity: 1})
}

// RemoveItem drops the item at index i. The invoice always keeps at
// least one line item, so removing the last remaining one fails.
func (inv *Invoice) RemoveItem(i int) error {
	if i < 0 || i >= len(inv.Items) {
		return ErrItemIndex
	}
	if len(inv.Items) <= 1 {
		return ErrLastItem
	}
	inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
	return nil
}

// Normalize repairs structural damage after deserialization: a
// missing or empty item list gets a seed row, an unknown status
// falls back to draft.
func (inv *Invoice) Normalize() {
	if len(inv.Items) == 0 {
		inv.Items = []LineItem{{Description: "Premium Web Development", Quantity: 1, Rate: 150}}
	}
	switch inv.Status {
	case StatusDraft, StatusPaid, StatusUnpaid, StatusOverdue:
	default:
		inv.Status = StatusDraft
	}
	if inv.Language == "" {
		inv.Language = "en"
	}
}

// Validate checks the fields that block export: the client name and,
// per line item, a description plus nonzero quantity and rate.
// Malformed numeric input elsewhere only degrades totals to zero and
// is deliberately not validated here.
func (inv *Invoice) Validate() error {
	if strings.TrimSpace(inv.Client.Name) == "" {
		return &ValidationError{Field: "clientName", MessageKey: "validationClientName", ItemIndex: -1}
	}
	for i, item := range inv.Items {
		if strings.TrimSpace(item.Description) == "" || item.Quantity == 0 || item.Rate == 0 {
			return &ValidationError{Field: "items", MessageKey: "validationItem", ItemIndex: i}
		}
	}
	return nil
}

// AttachImage sets the logo or signature, enforcing the upload size
// ceiling before the blob ever reaches the aggregate.
func (inv *Invoice) AttachImage(kind string, img *ImageAttachment) error {
	if img != nil && len(img.Data) > MaxImageBytes {
		return ErrImageTooLarge
	}
	switch kind {
	case "logo":
		inv.Logo = img
	case "signature":
		inv.Signature = img
	default:
		return ErrUnknownImage
	}
	return nil
}
