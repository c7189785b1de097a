// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/all-in69/LEASE/pkg/constants"
	"github.com/all-in69/LEASE/pkg/mathutil"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateRoundingMode checks if the rounding mode is supported. An empty
// mode selects the default.
func ValidateRoundingMode(mode string) error {
	_, err := mathutil.ParseRoundingMode(mode)
	return err
}
