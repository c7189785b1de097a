package testutil

import (
	"errors"
	"testing"

	"github.com/all-in69/LEASE/internal/quote"
)

func TestFindQuote(t *testing.T) {
	results := []quote.Quote{
		{ID: "1", Name: "Sedan", Mode: "rate", Rate: &quote.RateResult{MonthlyPaymentNet: 1855.56}},
		{ID: "2", Name: "Budget", Mode: "value", Value: &quote.ValueResult{VehicleValueNet: 120000}},
		{ID: "3", Name: "Broken", Mode: "rate", Err: errors.New("lease term must be greater than zero")},
	}

	tests := []struct {
		name       string
		search     string
		expectedID string
	}{
		{"Find first quote", "Sedan", "1"},
		{"Find value quote", "Budget", "2"},
		{"Find failed quote", "Broken", "3"},
		{"Not found", "Van", ""},
		{"Case sensitive", "sedan", ""},
		{"Empty name", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := FindQuote(results, tt.search)
			if tt.expectedID == "" {
				if found != nil {
					t.Errorf("FindQuote(%q) = %+v, expected nil", tt.search, found)
				}
				return
			}
			if found == nil {
				t.Fatalf("FindQuote(%q) returned nil", tt.search)
			}
			if found.ID != tt.expectedID {
				t.Errorf("FindQuote(%q).ID = %s, expected %s", tt.search, found.ID, tt.expectedID)
			}
		})
	}
}

func TestFindQuoteEmptyResults(t *testing.T) {
	if found := FindQuote(nil, "Any"); found != nil {
		t.Errorf("FindQuote() with nil results should return nil, got %v", found)
	}
	if found := FindQuote([]quote.Quote{}, "Any"); found != nil {
		t.Errorf("FindQuote() with empty results should return nil, got %v", found)
	}
}

func TestFindQuoteReturnsPointer(t *testing.T) {
	results := []quote.Quote{{Name: "Sedan"}}

	found := FindQuote(results, "Sedan")
	if found == nil {
		t.Fatalf("FindQuote() returned nil")
	}
	found.ID = "changed"
	if results[0].ID != "changed" {
		t.Errorf("FindQuote() should return a pointer into the slice")
	}
}

func TestFindQuoteWithDuplicateNames(t *testing.T) {
	results := []quote.Quote{
		{ID: "first", Name: "Sedan"},
		{ID: "second", Name: "Sedan"},
	}

	found := FindQuote(results, "Sedan")
	if found == nil || found.ID != "first" {
		t.Errorf("FindQuote() should return the first match, got %+v", found)
	}
}
