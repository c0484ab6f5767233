// Package format holds the pure display-formatting helpers shared by
// the live preview and the document layout engine.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var currencyGlyphs = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "C$",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
}

// Currency renders a money magnitude as glyph plus the amount fixed
// to two decimals. The decimal rendering is strconv's round-to-nearest
// at the float-to-string boundary; no accounting rounding mode is
// applied. Unknown currency codes fall back to "$".
func Currency(amount float64, currencyCode string) string {
	glyph, ok := currencyGlyphs[strings.ToUpper(strings.TrimSpace(currencyCode))]
	if !ok {
		glyph = "$"
	}
	return glyph + strconv.FormatFloat(amount, 'f', 2, 64)
}

// Date renders an ISO calendar date ("2025-06-23") as a long date
// ("June 23, 2025"). The input is parsed as a civil date with no
// timezone attached, so the displayed day never shifts across
// midnight boundaries. Empty or unparsable input yields "".
func Date(isoDate string) string {
	if isoDate == "" {
		return ""
	}
	d, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return ""
	}
	return d.Format("January 2, 2006")
}

// Quantity renders a numeric quantity without trailing decimal zeros.
func Quantity(v float64) string {
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0"), ".")
}

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

const DefaultInvoiceNumberTemplate = "INV-{SEQ3}"

// InvoiceNumber formats a human-readable invoice number from a
// template, an issue time, and a monotonic sequence.
//
// This function is PURE:
// - No side effects
// - Fully deterministic
func InvoiceNumber(template string, issuedAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := template

	// Date tokens
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	// Simple sequence
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	// Padded sequence
	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m // should never happen
		}

		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}

		return fmt.Sprintf("%0*d", width, seq)
	})

	// Final safety check: unresolved tokens
	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in invoice format: %s", out)
	}

	return out, nil
}
