// Package constants provides shared constants for the lease calculator.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of decimal places kept for currency amounts
	DecimalPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencySymbol is appended to formatted amounts
	CurrencySymbol = "PLN"
)

// Calculation defaults, taken from the offer form the calculator grew out of.
const (
	// DefaultVATRate is the VAT rate in percent used for gross/net conversion
	DefaultVATRate = 23.0

	// DefaultTaxRate is the income tax rate in percent used for the tax shield
	DefaultTaxRate = 19.0

	// DefaultReferenceRate is the annual reference (WIBOR) rate in percent
	DefaultReferenceRate = 5.8

	// DefaultMargin is the lessor margin in percent
	DefaultMargin = 2.0
)

// Rounding mode names accepted in configuration
const (
	// RoundingHalfUp rounds half away from zero
	RoundingHalfUp = "half-up"

	// RoundingHalfEven rounds half to the nearest even digit (banker's rounding)
	RoundingHalfEven = "half-even"
)

// Price types
const (
	PriceTypeNet   = "net"
	PriceTypeGross = "gross"
)

// Quote modes
const (
	// ModeRate computes the monthly payment from the vehicle value
	ModeRate = "rate"

	// ModeValue computes the maximum vehicle value from a target payment
	ModeValue = "value"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultReadTimeout is the default HTTP read timeout
	DefaultReadTimeout = "15s"

	// DefaultWriteTimeout is the default HTTP write timeout
	DefaultWriteTimeout = "15s"

	// DefaultRequestTimeout bounds a single request in the router middleware
	DefaultRequestTimeout = "30s"

	// DefaultMaxBodyBytes is the maximum accepted request body (64 KB)
	DefaultMaxBodyBytes int64 = 64 * 1024
)
