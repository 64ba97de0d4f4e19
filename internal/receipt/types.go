package receipt

// ComponentType tags the closed set of template component variants.
// Unknown values are skipped by the renderer so that newer template
// editors can ship component kinds this agent does not know yet.
type ComponentType string

const (
	ComponentLogo        ComponentType = "logo"
	ComponentText        ComponentType = "text"
	ComponentFooter      ComponentType = "footer"
	ComponentDivider     ComponentType = "divider"
	ComponentItemList    ComponentType = "itemList"
	ComponentPaymentList ComponentType = "paymentList"
	ComponentTotals      ComponentType = "totals"
)

// Styles carries the per-component presentation flags. Zero values mean
// "left" and "normal"; Border is only meaningful for dividers.
type Styles struct {
	TextAlign  string `json:"textAlign,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	Border     bool   `json:"border,omitempty"`
}

// ComponentData holds the variant-specific payload.
type ComponentData struct {
	Text string `json:"text,omitempty"`
	Logo string `json:"logo,omitempty"`
}

// Component is one entry of a template. Components are immutable once
// decoded; the renderer never writes back into a template.
type Component struct {
	ID      string        `json:"id"`
	Type    ComponentType `json:"type"`
	Enabled bool          `json:"enabled"`
	Order   int           `json:"order"`
	Styles  Styles        `json:"styles"`
	Data    ComponentData `json:"data"`
}

// Template is the caller-supplied visual structure of a receipt.
type Template struct {
	Name       string      `json:"name"`
	Version    int         `json:"version"`
	Components []Component `json:"components"`
}

// Amounts and quantities arrive from registers as either JSON numbers or
// strings, so the money-ish fields stay interface{} and go through
// format.Float at the point of use.

type SaleItem struct {
	Name     string      `json:"name"`
	Quantity interface{} `json:"quantity"`
	Unit     string      `json:"unit,omitempty"`
	Subtotal interface{} `json:"subtotal"`
}

type Payment struct {
	Method string      `json:"method"`
	Amount interface{} `json:"amount"`
}

// Sale is the business document behind a sale-receipt print.
type Sale struct {
	ID          string      `json:"id"`
	Store       string      `json:"store"`
	Address     string      `json:"address,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Number      string      `json:"number,omitempty"`
	Date        interface{} `json:"date,omitempty"`
	Cashier     string      `json:"cashier,omitempty"`
	FooterText  string      `json:"footer_text,omitempty"`
	TotalAmount interface{} `json:"total_amount"`
	Items       []SaleItem  `json:"items"`
	Payments    []Payment   `json:"payments"`
}

// ShiftPayment is one reconciliation entry of a shift closure.
type ShiftPayment struct {
	Method   string      `json:"method"`
	Expected interface{} `json:"expected"`
	Actual   interface{} `json:"actual"`
}

type ShiftTotals struct {
	Expected   interface{} `json:"expected"`
	Actual     interface{} `json:"actual"`
	Difference interface{} `json:"difference"`
}

// Shift is the business document behind a shift-closure print.
type Shift struct {
	ID          string         `json:"id"`
	Store       string         `json:"store"`
	Register    string         `json:"register,omitempty"`
	Cashier     string         `json:"cashier,omitempty"`
	OpenedAt    interface{}    `json:"opened_at,omitempty"`
	ClosedAt    interface{}    `json:"closed_at,omitempty"`
	OpeningCash interface{}    `json:"opening_cash,omitempty"`
	ClosingCash interface{}    `json:"closing_cash,omitempty"`
	Payments    []ShiftPayment `json:"payments"`
	Totals      ShiftTotals    `json:"totals"`
	Comments    string         `json:"comments,omitempty"`
}
