// Package layout turns an invoice plus its computed totals into an
// ordered sequence of absolutely-positioned draw instructions. The
// instructions are backend-independent: a PDF writer, a print
// preview, or an in-memory recorder can execute the same sequence.
package layout

import (
	"fmt"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/domain"
)

// Align is the horizontal anchoring of a text run at its X position.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// TextStyle carries the visual attributes of a text instruction.
// Link, when set, attaches a clickable URL to the rendered run.
type TextStyle struct {
	Size  float64
	Bold  bool
	Align Align
	Color RGB
	Link  string
}

// Instruction is one primitive drawing operation. Instructions are
// generated fresh per export, never mutated after creation, and
// consumed in emission order.
type Instruction interface {
	instruction()
}

// Text draws a string with its baseline at (X, Y).
type Text struct {
	X, Y  float64
	Value string
	Style TextStyle
}

// Line draws a straight rule between two points.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Image draws a raster image into the box at (X, Y) with size (W, H).
// The blob carries its own declared format.
type Image struct {
	X, Y, W, H float64
	Blob       domain.ImageAttachment
}

// PageBreak starts a new page. Instructions after a break are
// positioned relative to the top of the new page.
type PageBreak struct{}

// Column describes one items-table column.
type Column struct {
	Width float64
	Align Align
}

// Table draws the items table: a filled header row followed by one
// body row per line item. Geometry is fixed by the engine so EndY is
// known without consulting the backend.
type Table struct {
	X, StartY    float64
	HeadH, RowH  float64
	Head         []string
	Rows         [][]string
	Cols         []Column
	HeadFill     RGB
	HeadColor    RGB
	FontSize     float64
}

// EndY is the Y coordinate just below the last body row.
func (t Table) EndY() float64 {
	return t.StartY + t.HeadH + t.RowH*float64(len(t.Rows))
}

func (Text) instruction()      {}
func (Line) instruction()      {}
func (Image) instruction()     {}
func (Table) instruction()     {}
func (PageBreak) instruction() {}

// Document is the layout engine's output: the fixed logical page
// size, the instruction sequence, and any non-fatal conditions (a
// skipped image, for example) encountered while laying out.
type Document struct {
	PageWidth  float64
	PageHeight float64

	Instructions []Instruction
	Warnings     []string
}

func (d *Document) add(ins ...Instruction) {
	d.Instructions = append(d.Instructions, ins...)
}

func (d *Document) warnf(format string, args ...interface{}) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}
