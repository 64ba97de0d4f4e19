package receipt

import "strings"

// LineWidth is the character width of a 58mm thermal printer line.
const LineWidth = 32

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Target is a rendering sink. The renderer and the document builders are
// written against it once and run unchanged against the ESC/POS command
// buffer and the plain-text fallback.
type Target interface {
	SetAlign(Align)
	SetBold(bool)
	SetDoubleHeight(bool)
	Line(string)
	Rule()
	Feed(n int)
	Cut()
}

// TextTarget renders to plain text for delivery paths that can only move
// raw bytes: alignment becomes padding, bold becomes a *marker*, and Cut
// is a no-op because paper cutting has no textual equivalent.
type TextTarget struct {
	buf   strings.Builder
	align Align
	bold  bool
}

func NewTextTarget() *TextTarget {
	return &TextTarget{}
}

func (t *TextTarget) SetAlign(a Align) { t.align = a }

func (t *TextTarget) SetBold(on bool) { t.bold = on }

func (t *TextTarget) SetDoubleHeight(on bool) {}

func (t *TextTarget) Line(s string) {
	if t.bold && s != "" {
		s = "*" + s + "*"
	}
	switch t.align {
	case AlignCenter:
		s = padCenter(s, LineWidth)
	case AlignRight:
		s = padLeft(s, LineWidth)
	}
	t.buf.WriteString(s)
	t.buf.WriteByte('\n')
}

func (t *TextTarget) Rule() {
	t.buf.WriteString(strings.Repeat("-", LineWidth))
	t.buf.WriteByte('\n')
}

func (t *TextTarget) Feed(n int) {
	for i := 0; i < n; i++ {
		t.buf.WriteByte('\n')
	}
}

func (t *TextTarget) Cut() {}

func (t *TextTarget) String() string { return t.buf.String() }

func (t *TextTarget) Bytes() []byte { return []byte(t.buf.String()) }

func padCenter(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}

func padLeft(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}
