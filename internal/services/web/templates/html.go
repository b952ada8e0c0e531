package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// markup accumulates escaped HTML and keeps the first write error.
type markup struct {
	w   io.Writer
	err error
}

func newMarkup(w io.Writer) *markup {
	return &markup{w: w}
}

func (m *markup) raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

func (m *markup) attr(name, value string) {
	m.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

// attrIf writes a boolean attribute.
func (m *markup) attrIf(cond bool, name string) {
	if cond {
		m.raw(" " + name)
	}
}

// start writes the start tag without its closing ">", so attr and attrIf
// can follow. The caller finishes it with end.
func (m *markup) start(tag string, attrs ...string) {
	m.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		m.attr(attrs[i], attrs[i+1])
	}
}

func (m *markup) end() {
	m.raw(">")
}

func (m *markup) open(tag string, attrs ...string) {
	m.start(tag, attrs...)
	m.end()
}

func (m *markup) close(tag string) {
	m.raw("</" + tag + ">")
}

// element writes <tag attrs...>text</tag>.
func (m *markup) element(tag, text string, attrs ...string) {
	m.open(tag, attrs...)
	m.text(text)
	m.close(tag)
}

func (m *markup) component(ctx context.Context, c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

func itoa(n int) string { return strconv.Itoa(n) }
