package domain

import "fmt"

// DocumentType is the closed set of business document categories the
// classifier may emit. Anything outside this set is a parse error, never
// a silent default.
type DocumentType string

const (
	TypeContract DocumentType = "contract"
	TypeInvoice  DocumentType = "invoice"
	TypeQuote    DocumentType = "quote"
	TypeTender   DocumentType = "tender"
	TypeLicense  DocumentType = "license"
	TypeOther    DocumentType = "other"
)

// ParseDocumentType validates a raw model-emitted type against the closed enum.
func ParseDocumentType(raw string) (DocumentType, error) {
	switch DocumentType(raw) {
	case TypeContract, TypeInvoice, TypeQuote, TypeTender, TypeLicense, TypeOther:
		return DocumentType(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrClassificationParse, raw)
	}
}

// Classification is the classifier's verdict: a type, how sure the model
// is, and a loosely-typed sketch of fields it noticed along the way. The
// sketch is advisory; the authoritative fields come from the type-specific
// extractor.
type Classification struct {
	DocumentType DocumentType   `json:"document_type"`
	Confidence   float64        `json:"confidence"`
	KeyFields    map[string]any `json:"key_fields,omitempty"`
}
