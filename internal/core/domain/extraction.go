package domain

import (
	"encoding/json"
	"fmt"
)

// ExtractedFields is the tagged sum of per-type field sets. Pointer-typed
// members distinguish "model could not find it" (JSON null) from a field
// the contract never asked for (key absent). Variants marshal every key,
// null included.
type ExtractedFields interface {
	DocumentType() DocumentType
}

// LineItem is one row of an invoice or quote.
type LineItem struct {
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unitPrice"`
	Total       *float64 `json:"total"`
}

type InvoiceFields struct {
	VendorName    *string    `json:"vendorName"`
	InvoiceNumber *string    `json:"invoiceNumber"`
	InvoiceDate   *string    `json:"invoiceDate"`
	DueDate       *string    `json:"dueDate"`
	TotalAmount   *float64   `json:"totalAmount"`
	TaxAmount     *float64   `json:"taxAmount"`
	Currency      *string    `json:"currency"`
	LineItems     []LineItem `json:"lineItems"`
}

func (InvoiceFields) DocumentType() DocumentType { return TypeInvoice }

type ContractFields struct {
	Parties       []string `json:"parties"`
	StartDate     *string  `json:"startDate"`
	EndDate       *string  `json:"endDate"`
	ContractValue *float64 `json:"contractValue"`
	Currency      *string  `json:"currency"`
	Obligations   []string `json:"obligations"`
	RenewalTerms  *string  `json:"renewalTerms"`
	GoverningLaw  *string  `json:"governingLaw"`
}

func (ContractFields) DocumentType() DocumentType { return TypeContract }

type QuoteFields struct {
	VendorName  *string    `json:"vendorName"`
	QuoteNumber *string    `json:"quoteNumber"`
	IssueDate   *string    `json:"issueDate"`
	ValidUntil  *string    `json:"validUntil"`
	TotalAmount *float64   `json:"totalAmount"`
	Currency    *string    `json:"currency"`
	LineItems   []LineItem `json:"lineItems"`
}

func (QuoteFields) DocumentType() DocumentType { return TypeQuote }

type TenderFields struct {
	Issuer             *string  `json:"issuer"`
	Reference          *string  `json:"reference"`
	SubmissionDeadline *string  `json:"submissionDeadline"`
	EstimatedValue     *float64 `json:"estimatedValue"`
	Currency           *string  `json:"currency"`
	Requirements       []string `json:"requirements"`
	ContactEmail       *string  `json:"contactEmail"`
}

func (TenderFields) DocumentType() DocumentType { return TypeTender }

type LicenseFields struct {
	Licensee    *string  `json:"licensee"`
	Licensor    *string  `json:"licensor"`
	LicenseType *string  `json:"licenseType"`
	StartDate   *string  `json:"startDate"`
	ExpiryDate  *string  `json:"expiryDate"`
	Fee         *float64 `json:"fee"`
	Scope       *string  `json:"scope"`
}

func (LicenseFields) DocumentType() DocumentType { return TypeLicense }

// GenericFields is the escape hatch for documents with no field contract.
type GenericFields map[string]any

func (GenericFields) DocumentType() DocumentType { return TypeOther }

// ExtractionResult carries the typed fields for one document together
// with the model's self-reported confidence.
type ExtractionResult struct {
	DocumentType DocumentType    `json:"document_type"`
	Fields       ExtractedFields `json:"fields"`
	Confidence   float64         `json:"confidence"`
}

// UnmarshalJSON dispatches the fields payload to the variant named by
// document_type, falling back to GenericFields for unknown types so old
// rows never fail to load.
func (r *ExtractionResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		DocumentType DocumentType    `json:"document_type"`
		Fields       json.RawMessage `json:"fields"`
		Confidence   float64         `json:"confidence"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.DocumentType = raw.DocumentType
	r.Confidence = raw.Confidence
	if len(raw.Fields) == 0 {
		r.Fields = nil
		return nil
	}

	decode := func(v ExtractedFields) error {
		if err := json.Unmarshal(raw.Fields, v); err != nil {
			return fmt.Errorf("decode %s fields: %w", raw.DocumentType, err)
		}
		return nil
	}

	switch raw.DocumentType {
	case TypeInvoice:
		var f InvoiceFields
		if err := decode(&f); err != nil {
			return err
		}
		r.Fields = f
	case TypeContract:
		var f ContractFields
		if err := decode(&f); err != nil {
			return err
		}
		r.Fields = f
	case TypeQuote:
		var f QuoteFields
		if err := decode(&f); err != nil {
			return err
		}
		r.Fields = f
	case TypeTender:
		var f TenderFields
		if err := decode(&f); err != nil {
			return err
		}
		r.Fields = f
	case TypeLicense:
		var f LicenseFields
		if err := decode(&f); err != nil {
			return err
		}
		r.Fields = f
	default:
		var f GenericFields
		if err := decode(&f); err != nil {
			return err
		}
		r.Fields = f
	}
	return nil
}
