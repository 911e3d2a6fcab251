// Package crl defines the Complete Response Letter record shared by the
// storage, search, and answer-synthesis layers.
package crl

// Letter is one CRL record. Records are written once by the ingestion
// pipeline and treated as immutable by this subsystem; only the AI-generated
// summary and its embeddings are regenerated in place.
type Letter struct {
	ID                  string   `json:"id"`
	ApplicationNumber   []string `json:"application_number"`
	ApplicationType     string   `json:"application_type,omitempty"`
	LetterDate          string   `json:"letter_date"`
	LetterYear          string   `json:"letter_year"`
	ApprovalStatus      string   `json:"approval_status"`
	CompanyName         string   `json:"company_name"`
	ProductName         string   `json:"product_name,omitempty"`
	TherapeuticCategory string   `json:"therapeutic_category,omitempty"`
	DeficiencyReason    string   `json:"deficiency_reason,omitempty"`
	Text                string   `json:"text,omitempty"`
	Summary             string   `json:"summary,omitempty"`
	SummaryModel        string   `json:"summary_model,omitempty"`
}

// SearchFields lists the fields scanned by keyword search, in scan order.
// The order is stable so matched_fields output is deterministic.
var SearchFields = []string{
	"company_name",
	"product_name",
	"therapeutic_category",
	"deficiency_reason",
	"summary",
	"text",
}

// FieldValue returns the named searchable field's text, or "" for fields
// that are not searchable free text.
func (l *Letter) FieldValue(field string) string {
	switch field {
	case "company_name":
		return l.CompanyName
	case "product_name":
		return l.ProductName
	case "therapeutic_category":
		return l.TherapeuticCategory
	case "deficiency_reason":
		return l.DeficiencyReason
	case "summary":
		return l.Summary
	case "text":
		return l.Text
	default:
		return ""
	}
}
