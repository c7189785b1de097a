package lease

import (
	"fmt"
	"strings"
)

// Portion is the down payment or residual of an inverse calculation: either a
// fixed sum (Amount) or a share of the unknown vehicle value (Percent).
// The interface is sealed; Amount and Percent are its only implementations.
type Portion interface {
	portion()
}

// Amount is a fixed monetary portion.
type Amount float64

// Percent is a portion expressed as a percentage (0-100) of the vehicle value.
type Percent float64

func (Amount) portion()  {}
func (Percent) portion() {}

// Portion kind names used by configuration files and request payloads.
const (
	KindAmount  = "amount"
	KindPercent = "percent"
)

// ParsePortion builds a Portion from its kind name and value.
func ParsePortion(kind string, value float64) (Portion, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindAmount:
		return Amount(value), nil
	case KindPercent:
		return Percent(value), nil
	default:
		return nil, fmt.Errorf("%w: expected type of %s or %s, got %q", ErrUnknownPortion, KindAmount, KindPercent, kind)
	}
}

// DescribePortion renders a portion for logs and reports, e.g. "20%" or "5000.00".
func DescribePortion(p Portion) string {
	switch v := p.(type) {
	case Amount:
		return fmt.Sprintf("%.2f", float64(v))
	case Percent:
		return fmt.Sprintf("%g%%", float64(v))
	default:
		return "unknown"
	}
}
