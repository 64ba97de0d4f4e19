package receipt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eencloud/goeen/log"

	"github.com/jamshidbazarbaev5/thermal-printer/internal/format"
)

// DefaultUnit is the line-item unit label used when a register sends none.
const DefaultUnit = "dona"

// Renderer interprets a template against a sale and writes the result to
// a Target. It holds no per-request state and is safe for concurrent use.
type Renderer struct {
	logger *log.Logger
}

func NewRenderer(logger *log.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Render walks the enabled components in Order (stable, so templates
// with duplicate orders stay deterministic), dispatches each variant and
// closes the document with the trailing feed and cut.
func (r *Renderer) Render(tpl *Template, sale *Sale, t Target) {
	components := make([]Component, 0, len(tpl.Components))
	for _, c := range tpl.Components {
		if c.Enabled {
			components = append(components, c)
		}
	}
	sort.SliceStable(components, func(i, j int) bool {
		return components[i].Order < components[j].Order
	})

	for _, c := range components {
		r.renderComponent(c, sale, t)
	}

	t.Feed(2)
	t.Cut()
}

func (r *Renderer) renderComponent(c Component, sale *Sale, t Target) {
	switch c.Type {
	case ComponentLogo:
		if c.Data.Logo == "" {
			return
		}
		t.SetAlign(AlignCenter)
		t.Line("[LOGO]")
		t.SetAlign(AlignLeft)

	case ComponentText, ComponentFooter:
		if c.Data.Text == "" {
			return
		}
		text := Substitute(c.Data.Text, sale)
		applyStyles(t, c.Styles, AlignLeft)
		for _, line := range strings.Split(text, "\n") {
			t.Line(line)
		}
		resetStyles(t)

	case ComponentDivider:
		if c.Styles.Border {
			t.Rule()
		} else {
			t.Feed(1)
		}

	case ComponentItemList:
		r.renderItems(c, sale, t)

	case ComponentPaymentList:
		if len(sale.Payments) == 0 {
			return
		}
		applyStyles(t, c.Styles, AlignLeft)
		for _, p := range sale.Payments {
			t.Line(p.Method + ": " + money(p.Amount))
		}
		resetStyles(t)

	case ComponentTotals:
		// Totals default to the right edge, unlike every other variant.
		applyStyles(t, c.Styles, AlignRight)
		t.Line("JAMI: " + money(sale.TotalAmount))
		resetStyles(t)

	default:
		// Unknown component kind from a newer template editor.
	}
}

func (r *Renderer) renderItems(c Component, sale *Sale, t Target) {
	for i, item := range sale.Items {
		unit := item.Unit
		if unit == "" {
			unit = DefaultUnit
		}

		qty, qtyOK := format.Float(item.Quantity)
		subtotal, subOK := format.Float(item.Subtotal)
		if !qtyOK || !subOK {
			// The line still prints, with zeros, so the paper trail and
			// the log line together point at the bad register data.
			r.logger.Errorf("Item %q has malformed quantity/subtotal, rendering zeros", item.Name)
		}
		price := 0.0
		if qtyOK && subOK && qty != 0 {
			price = subtotal / qty
		}

		t.SetBold(true)
		t.Line(fmt.Sprintf("%d. %s", i+1, item.Name))
		t.SetBold(false)
		t.Line(fmt.Sprintf("  %s %s x %s = %s",
			format.CompactNumber(item.Quantity),
			unit,
			format.CompactNumber(price),
			format.CompactNumber(item.Subtotal)))
	}
}

func applyStyles(t Target, s Styles, fallback Align) {
	switch s.TextAlign {
	case "left":
		t.SetAlign(AlignLeft)
	case "center":
		t.SetAlign(AlignCenter)
	case "right":
		t.SetAlign(AlignRight)
	default:
		t.SetAlign(fallback)
	}
	t.SetBold(s.FontWeight == "bold")
}

func resetStyles(t Target) {
	t.SetAlign(AlignLeft)
	t.SetBold(false)
}
