// Package render executes layout instruction sequences against
// concrete surfaces: a PDF writer for export and an in-memory
// recorder for tests. The HTML preview renderer lives here too.
package render

import "github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/layout"

// Backend consumes a laid-out document and produces its bytes.
// A backend instance serves a single export; Execute then Output.
type Backend interface {
	Execute(doc layout.Document) error
	Output() ([]byte, error)
	ContentType() string
}

// Recorder is a Backend that only remembers what it was asked to
// draw. Tests assert against the recorded instruction sequence.
type Recorder struct {
	Doc      layout.Document
	Executed bool
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Execute(doc layout.Document) error {
	r.Doc = doc
	r.Executed = true
	return nil
}

func (r *Recorder) Output() ([]byte, error) { return nil, nil }

func (r *Recorder) ContentType() string { return "application/octet-stream" }

// Texts returns the recorded text values in emission order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, ins := range r.Doc.Instructions {
		if t, ok := ins.(layout.Text); ok {
			out = append(out, t.Value)
		}
	}
	return out
}

// Tables returns the recorded table instructions.
func (r *Recorder) Tables() []layout.Table {
	var out []layout.Table
	for _, ins := range r.Doc.Instructions {
		if t, ok := ins.(layout.Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Images returns the recorded image instructions.
func (r *Recorder) Images() []layout.Image {
	var out []layout.Image
	for _, ins := range r.Doc.Instructions {
		if img, ok := ins.(layout.Image); ok {
			out = append(out, img)
		}
	}
	return out
}
