package device

import (
	"strings"

	"github.com/jamshidbazarbaev5/thermal-printer/internal/receipt"
)

// ESC/POS control sequences understood by the 58mm thermal printers this
// agent targets. The vocabulary deliberately stays at the subset every
// cheap receipt mechanism implements.
var (
	escInit        = []byte{0x1b, 0x40}
	escAlignLeft   = []byte{0x1b, 0x61, 0x00}
	escAlignCenter = []byte{0x1b, 0x61, 0x01}
	escAlignRight  = []byte{0x1b, 0x61, 0x02}
	escBoldOn      = []byte{0x1b, 0x45, 0x01}
	escBoldOff     = []byte{0x1b, 0x45, 0x00}
	escDoubleOn    = []byte{0x1b, 0x21, 0x10}
	escDoubleOff   = []byte{0x1b, 0x21, 0x00}
	escCut         = []byte{0x1d, 0x56, 0x00}
)

// Buffer assembles an ESC/POS command stream in memory. It implements
// receipt.Target, so the renderer and document builders drive it
// directly; Commit on the Printer flushes it to the device in one write.
type Buffer struct {
	data []byte
}

func NewBuffer() *Buffer {
	b := &Buffer{}
	b.data = append(b.data, escInit...)
	return b
}

func (b *Buffer) SetAlign(a receipt.Align) {
	switch a {
	case receipt.AlignCenter:
		b.data = append(b.data, escAlignCenter...)
	case receipt.AlignRight:
		b.data = append(b.data, escAlignRight...)
	default:
		b.data = append(b.data, escAlignLeft...)
	}
}

func (b *Buffer) SetBold(on bool) {
	if on {
		b.data = append(b.data, escBoldOn...)
	} else {
		b.data = append(b.data, escBoldOff...)
	}
}

func (b *Buffer) SetDoubleHeight(on bool) {
	if on {
		b.data = append(b.data, escDoubleOn...)
	} else {
		b.data = append(b.data, escDoubleOff...)
	}
}

func (b *Buffer) Line(s string) {
	b.data = append(b.data, s...)
	b.data = append(b.data, '\n')
}

func (b *Buffer) Rule() {
	b.Line(strings.Repeat("-", receipt.LineWidth))
}

func (b *Buffer) Feed(n int) {
	for i := 0; i < n; i++ {
		b.data = append(b.data, '\n')
	}
}

func (b *Buffer) Cut() {
	b.data = append(b.data, escCut...)
}

func (b *Buffer) Bytes() []byte { return b.data }

func (b *Buffer) Len() int { return len(b.data) }
