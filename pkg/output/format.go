// Package output provides utilities for formatting and displaying quote results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/all-in69/LEASE/internal/lease"
	"github.com/all-in69/LEASE/internal/quote"
	"github.com/all-in69/LEASE/pkg/constants"
	"github.com/all-in69/LEASE/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CsvHeader lists the CSV columns in output order.
var CsvHeader = []string{
	"name",
	"mode",
	"vehicle value net",
	"vehicle value gross",
	"monthly payment net",
	"monthly payment gross",
	"down payment",
	"residual",
	"term months",
	"annual rate",
	"installments sum",
	"residual amount",
	"total cost",
	"tax shield",
	"affordable",
	"error",
}

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []quote.Quote) error {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		if _, err := p.Fprintf(w, "--- Results for quote %s (%s) ---\n", result.Name, result.Mode); err != nil {
			return err
		}

		var rows [][2]string
		switch {
		case result.Err != nil:
			rows = [][2]string{{"Error", result.Err.Error()}}
		case result.Rate != nil:
			rows = rateRows(p, result.Rate)
		case result.Value != nil:
			rows = valueRows(p, result.Value)
		}

		for _, row := range rows {
			if _, err := p.Fprintf(w, "%-24s| %s\n", row[0], row[1]); err != nil {
				return err
			}
		}
		if i < len(results)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func rateRows(p *message.Printer, r *quote.RateResult) [][2]string {
	terms := r.Terms
	rows := [][2]string{
		{"Vehicle value (net)", format.Currency(terms.VehicleValue)},
		{"Vehicle value (gross)", format.Currency(r.VehicleValueGross)},
		{"Down payment", fmt.Sprintf("%s (%s)", format.Percent(terms.DownPaymentPct), format.Currency(r.Breakdown.DownPaymentAmount))},
		{"Residual", fmt.Sprintf("%s (%s)", format.Percent(terms.ResidualPct), format.Currency(r.Breakdown.ResidualAmount))},
		{"Term", p.Sprintf("%d months", terms.TermMonths)},
		{"Annual rate", annualRate(terms.MarginPct, terms.ReferenceRatePct)},
		{"Monthly payment (net)", format.Currency(r.MonthlyPaymentNet)},
		{"Monthly payment (gross)", format.Currency(r.MonthlyPaymentGross)},
		{"Installments sum", format.Currency(r.Breakdown.InstallmentsSum)},
		{"Total cost", format.Currency(r.Breakdown.Total())},
	}
	if r.TaxShield != nil {
		rows = append(rows, [2]string{
			fmt.Sprintf("Tax shield (%s)", format.Percent(r.TaxRate)),
			format.Currency(*r.TaxShield),
		})
	}
	return rows
}

func valueRows(p *message.Printer, r *quote.ValueResult) [][2]string {
	terms := r.Terms
	rows := [][2]string{
		{"Monthly payment (net)", format.Currency(terms.TargetPayment)},
		{"Monthly payment (gross)", format.Currency(r.TargetPaymentGross)},
		{"Down payment", describePortion(terms.DownPayment)},
		{"Residual", describePortion(terms.Residual)},
		{"Term", p.Sprintf("%d months", terms.TermMonths)},
		{"Annual rate", annualRate(terms.MarginPct, terms.ReferenceRatePct)},
		{"Vehicle value (net)", format.Currency(r.VehicleValueNet)},
		{"Vehicle value (gross)", format.Currency(r.VehicleValueGross)},
	}
	if !r.Affordable {
		rows = append(rows, [2]string{"Note", "no vehicle value satisfies these terms"})
	}
	return rows
}

func annualRate(marginPct, referenceRatePct float64) string {
	return fmt.Sprintf("%s (reference %s + margin %s)",
		format.Percent(marginPct+referenceRatePct),
		format.Percent(referenceRatePct),
		format.Percent(marginPct),
	)
}

func describePortion(p lease.Portion) string {
	switch v := p.(type) {
	case lease.Amount:
		return format.Currency(float64(v))
	case lease.Percent:
		return format.Percent(float64(v))
	default:
		return lease.DescribePortion(p)
	}
}

// CsvFormat writes the results in comma-separated value format, one row per
// quote. Cells that do not apply to a quote's mode are left empty.
func CsvFormat(w io.Writer, results []quote.Quote) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CsvHeader); err != nil {
		return err
	}
	for _, result := range results {
		if err := writer.Write(csvRecord(result)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV rendering of the results.
func CsvString(results []quote.Quote) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func csvRecord(result quote.Quote) []string {
	record := make([]string, len(CsvHeader))
	record[0] = result.Name
	record[1] = result.Mode

	switch {
	case result.Err != nil:
		record[15] = result.Err.Error()
	case result.Rate != nil:
		r := result.Rate
		record[2] = amount(r.Terms.VehicleValue)
		record[3] = amount(r.VehicleValueGross)
		record[4] = amount(r.MonthlyPaymentNet)
		record[5] = amount(r.MonthlyPaymentGross)
		record[6] = format.Percent(r.Terms.DownPaymentPct)
		record[7] = format.Percent(r.Terms.ResidualPct)
		record[8] = strconv.Itoa(r.Terms.TermMonths)
		record[9] = format.Percent(r.Terms.MarginPct + r.Terms.ReferenceRatePct)
		record[10] = amount(r.Breakdown.InstallmentsSum)
		record[11] = amount(r.Breakdown.ResidualAmount)
		record[12] = amount(r.Breakdown.Total())
		if r.TaxShield != nil {
			record[13] = amount(*r.TaxShield)
		}
		record[14] = strconv.FormatBool(true)
	case result.Value != nil:
		r := result.Value
		record[2] = amount(r.VehicleValueNet)
		record[3] = amount(r.VehicleValueGross)
		record[4] = amount(r.Terms.TargetPayment)
		record[5] = amount(r.TargetPaymentGross)
		record[6] = csvPortion(r.Terms.DownPayment)
		record[7] = csvPortion(r.Terms.Residual)
		record[8] = strconv.Itoa(r.Terms.TermMonths)
		record[9] = format.Percent(r.Terms.MarginPct + r.Terms.ReferenceRatePct)
		record[14] = strconv.FormatBool(r.Affordable)
	}
	return record
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', constants.DecimalPlaces, 64)
}

func csvPortion(p lease.Portion) string {
	if v, ok := p.(lease.Amount); ok {
		return amount(float64(v))
	}
	return describePortion(p)
}
