// Package render turns canonical season documents into HTML fragments. Every component
// is pure: the same input always yields byte-identical output.
package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// writer accumulates the first write error so components can emit markup linearly.
type writer struct {
	w   io.Writer
	err error
}

func newWriter(w io.Writer) *writer {
	return &writer{w: w}
}

func (b *writer) raw(parts ...string) {
	for _, p := range parts {
		if b.err != nil {
			return
		}
		_, b.err = io.WriteString(b.w, p)
	}
}

func (b *writer) text(s string) {
	b.raw(templ.EscapeString(s))
}

// open writes a start tag; attrs are name/value pairs and empty values are skipped.
func (b *writer) open(tag string, attrs ...string) {
	b.raw("<", tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		name, value := attrs[i], attrs[i+1]
		if value == "" {
			continue
		}
		b.raw(" ", name, `="`, templ.EscapeString(value), `"`)
	}
	b.raw(">")
}

func (b *writer) close(tag string) {
	b.raw("</", tag, ">")
}

// element writes <tag attrs>escaped text</tag>.
func (b *writer) element(tag, text string, attrs ...string) {
	b.open(tag, attrs...)
	b.text(text)
	b.close(tag)
}

func (b *writer) link(href, text string, attrs ...string) {
	b.open("a", append([]string{"href", string(templ.URL(href))}, attrs...)...)
	b.text(text)
	b.close("a")
}

func (b *writer) render(ctx context.Context, c templ.Component) {
	if b.err != nil || c == nil {
		return
	}
	b.err = c.Render(ctx, b.w)
}

// Text renders escaped text.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// Message renders an inline notice paragraph.
func Message(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.element("p", s, "class", "notice")
		return b.err
	})
}

// Join renders components in order.
func Join(components ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		for _, c := range components {
			b.render(ctx, c)
		}
		return b.err
	})
}

func seedText(seed int) string {
	if seed <= 0 {
		return "—"
	}
	return strconv.Itoa(seed)
}

func orPlaceholder(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
