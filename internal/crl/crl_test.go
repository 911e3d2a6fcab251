package crl

import "testing"

func TestFieldValue(t *testing.T) {
	l := Letter{
		CompanyName:         "Acme Pharma",
		ProductName:         "acmezol",
		TherapeuticCategory: "oncology",
		DeficiencyReason:    "manufacturing",
		Summary:             "summary text",
		Text:                "full text",
	}

	tests := []struct {
		field string
		want  string
	}{
		{"company_name", "Acme Pharma"},
		{"product_name", "acmezol"},
		{"therapeutic_category", "oncology"},
		{"deficiency_reason", "manufacturing"},
		{"summary", "summary text"},
		{"text", "full text"},
		{"letter_date", ""},
		{"unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := l.FieldValue(tt.field); got != tt.want {
				t.Errorf("FieldValue(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestSearchFields_CoveredByFieldValue(t *testing.T) {
	l := Letter{
		CompanyName:         "a",
		ProductName:         "b",
		TherapeuticCategory: "c",
		DeficiencyReason:    "d",
		Summary:             "e",
		Text:                "f",
	}

	for _, field := range SearchFields {
		if l.FieldValue(field) == "" {
			t.Errorf("SearchFields entry %q has no FieldValue mapping", field)
		}
	}
}
