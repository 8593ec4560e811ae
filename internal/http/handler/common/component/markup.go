package component

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer assembles the markup of a page. The first write error is kept and
// every following call becomes a no-op.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

// Raw writes trusted markup as is.
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}

	_, w.err = io.WriteString(w.w, s)
}

// Text writes escaped text.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Attr writes an escaped attribute, preceded by a space.
func (w *Writer) Attr(name string, value string) {
	w.Raw(" ")
	w.Raw(name)
	w.Raw(`="`)
	w.Text(value)
	w.Raw(`"`)
}

// Render writes a nested component. Nil components are skipped.
func (w *Writer) Render(c templ.Component) {
	if w.err != nil || c == nil {
		return
	}

	w.err = c.Render(w.ctx, w.w)
}

// Markup turns a markup assembly function into a component.
func Markup(fn func(w *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &Writer{ctx: ctx, w: out}
		fn(w)
		return w.err
	})
}
