// Package vat converts amounts between gross (VAT included) and net.
package vat

import (
	"fmt"
	"strings"

	"github.com/all-in69/LEASE/pkg/constants"
)

// ToNet removes VAT at ratePct from a gross amount. A non-positive rate
// returns the amount unchanged.
func ToNet(gross, ratePct float64) float64 {
	if ratePct <= 0 {
		return gross
	}
	return gross / (1 + ratePct/constants.PercentageMultiplier)
}

// ToGross adds VAT at ratePct to a net amount. A non-positive rate returns the
// amount unchanged.
func ToGross(net, ratePct float64) float64 {
	if ratePct <= 0 {
		return net
	}
	return net * (1 + ratePct/constants.PercentageMultiplier)
}

// Normalize converts amount, declared as priceType, into a net amount.
func Normalize(amount float64, priceType string, ratePct float64) (float64, error) {
	switch ParsePriceType(priceType) {
	case constants.PriceTypeNet:
		return amount, nil
	case constants.PriceTypeGross:
		return ToNet(amount, ratePct), nil
	default:
		return 0, fmt.Errorf("expected price type of %s or %s, got %s",
			constants.PriceTypeNet, constants.PriceTypeGross, priceType)
	}
}

// ParsePriceType lowercases a price type and maps the empty value and the
// Polish form names to their canonical spelling.
func ParsePriceType(priceType string) string {
	switch strings.ToLower(strings.TrimSpace(priceType)) {
	case "", constants.PriceTypeNet, "netto":
		return constants.PriceTypeNet
	case constants.PriceTypeGross, "brutto":
		return constants.PriceTypeGross
	default:
		return priceType
	}
}
