package format

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	ErrInvalidAmount = errors.New("amount is not a finite number")
	ErrInvalidDate   = errors.New("value is not a recognized date")
)

// CurrencySuffix is the fixed suffix appended to every currency string.
const CurrencySuffix = "UZS"

// DateLayout is the wire format for all printed timestamps.
const DateLayout = "02.01.2006 15:04:05"

var printer = message.NewPrinter(language.English)

// Currency formats a numeric-or-string amount with exactly two fractional
// digits, space-grouped thousands and the fixed currency suffix.
func Currency(v interface{}) (string, error) {
	f, ok := Float(v)
	if !ok {
		return "", ErrInvalidAmount
	}
	s := printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
	// en grouping uses commas; the fiscal layout wants spaces, and the
	// printer charset only carries the plain ASCII one.
	s = strings.ReplaceAll(s, ",", " ")
	return s + " " + CurrencySuffix, nil
}

// CompactNumber produces the shortest representation of v that round-trips
// up to three fractional digits: 1.000 -> "1", 1.500 -> "1.5". Anything
// unparseable yields "0"; callers must not read that as a semantic zero.
func CompactNumber(v interface{}) string {
	f, ok := Float(v)
	if !ok {
		return "0"
	}
	f = math.Round(f*1000) / 1000
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"02.01.2006",
}

// Date parses a date/time value (time.Time, a textual timestamp in one of
// the register formats, or unix seconds) and renders it as DateLayout.
func Date(v interface{}) (string, error) {
	t, err := ParseTime(v)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// ParseTime is the parsing half of Date, for callers that need the
// underlying time.Time (e.g. to split it into date and time tokens).
func ParseTime(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, ErrInvalidDate
	case float64:
		return time.Unix(int64(t), 0), nil
	case int64:
		return time.Unix(t, 0), nil
	case int:
		return time.Unix(int64(t), 0), nil
	default:
		return time.Time{}, ErrInvalidDate
	}
}

// Float coerces the numeric shapes that arrive over JSON (float64, ints,
// numeric strings) into a finite float64.
func Float(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
