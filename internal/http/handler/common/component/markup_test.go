package component

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/pkg/errors"
)

func TestMarkup(t *testing.T) {
	nested := templ.Raw("<em>nested</em>")

	c := Markup(func(w *Writer) {
		w.Raw(`<a`)
		w.Attr("href", `/search?q="a&b"`)
		w.Raw(`>`)
		w.Text("Fruits & Co <3")
		w.Raw(`</a>`)
		w.Render(nested)
		w.Render(nil)
	})

	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := `<a href="/search?q=&#34;a&amp;b&#34;">Fruits &amp; Co &lt;3</a><em>nested</em>`, buf.String(); e != g {
		t.Errorf("output: expected '%s', got '%s'", e, g)
	}
}

type failingWriter struct {
	writes int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, io.ErrClosedPipe
}

func TestMarkupStopsOnError(t *testing.T) {
	out := &failingWriter{}

	c := Markup(func(w *Writer) {
		w.Raw("<p>")
		w.Text("ignored")
		w.Raw("</p>")
	})

	err := c.Render(context.Background(), out)
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("expected io.ErrClosedPipe, got %v", err)
	}

	if e, g := 1, out.writes; e != g {
		t.Errorf("out.writes: expected %d, got %d", e, g)
	}
}
