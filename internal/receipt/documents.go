package receipt

import (
	"fmt"
	"time"

	"github.com/jamshidbazarbaev5/thermal-printer/internal/format"
)

// The two fixed documents bypass the template renderer and assemble
// their lines directly, but share the Target vocabulary and the
// formatting primitives so every delivery path prints them the same way.

// RenderTest writes the diagnostic test receipt: one exercise of every
// directive the command stream supports plus a formatting sample.
func RenderTest(now time.Time, t Target) {
	t.SetAlign(AlignCenter)
	t.SetBold(true)
	t.SetDoubleHeight(true)
	t.Line("PRINTER TEST")
	t.SetDoubleHeight(false)
	t.SetBold(false)
	t.Rule()

	t.SetAlign(AlignLeft)
	t.Line("chap tomonda")
	t.SetAlign(AlignCenter)
	t.Line("markazda")
	t.SetAlign(AlignRight)
	t.Line("o'ng tomonda")
	t.SetAlign(AlignLeft)
	t.SetBold(true)
	t.Line("qalin matn")
	t.SetBold(false)
	t.Rule()

	sample, _ := format.Currency(1234.5)
	t.Line("Summa: " + sample)
	t.Line("Sana:  " + now.Format(format.DateLayout))
	t.Rule()

	t.SetAlign(AlignCenter)
	t.Line("OK")
	t.SetAlign(AlignLeft)

	t.Feed(2)
	t.Cut()
}

// RenderShift writes the shift-closure summary. A shift with zero
// reconciliation entries still gets its identity and totals sections;
// missing cash fields render as zero amounts.
func RenderShift(shift *Shift, t Target) {
	t.SetAlign(AlignCenter)
	t.SetBold(true)
	t.SetDoubleHeight(true)
	t.Line(shift.Store)
	t.SetDoubleHeight(false)
	t.Line("SMENA YOPILISHI")
	t.SetBold(false)
	t.Rule()

	t.SetAlign(AlignLeft)
	if shift.Register != "" {
		t.Line("Kassa:  " + shift.Register)
	}
	if shift.Cashier != "" {
		t.Line("Kassir: " + shift.Cashier)
	}
	t.Line("Ochilgan: " + timestamp(shift.OpenedAt))
	t.Line("Yopilgan: " + timestamp(shift.ClosedAt))
	t.Rule()

	t.Line("Boshlangich naqd:")
	t.SetAlign(AlignRight)
	t.Line(money(shift.OpeningCash))
	t.SetAlign(AlignLeft)
	t.Line("Yakuniy naqd:")
	t.SetAlign(AlignRight)
	t.Line(money(shift.ClosingCash))
	t.SetAlign(AlignLeft)

	if len(shift.Payments) > 0 {
		t.Rule()
		t.SetBold(true)
		t.Line("TO'LOVLAR")
		t.SetBold(false)
		for _, p := range shift.Payments {
			t.Line(p.Method)
			t.Line(fmt.Sprintf("  kutilgan: %s", money(p.Expected)))
			t.Line(fmt.Sprintf("  haqiqiy:  %s", money(p.Actual)))
		}
	}

	t.Rule()
	t.SetBold(true)
	t.Line("JAMI")
	t.SetBold(false)
	t.Line("kutilgan: " + money(shift.Totals.Expected))
	t.Line("haqiqiy:  " + money(shift.Totals.Actual))
	t.Line("farq:     " + money(shift.Totals.Difference))

	if shift.Comments != "" {
		t.Rule()
		t.Line(shift.Comments)
	}

	t.Feed(2)
	t.Cut()
}

func timestamp(v interface{}) string {
	s, err := format.Date(v)
	if err != nil {
		return "-"
	}
	return s
}
