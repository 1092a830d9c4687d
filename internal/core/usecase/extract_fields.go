package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/achartier/docintel/internal/core/domain"
	"github.com/achartier/docintel/internal/core/ports"
)

// extractionInputLimit bounds prompt input for document types whose
// text tends to be long (contracts, tenders). Invoices and quotes are
// short and sent whole.
const extractionInputLimit = 8000

type fieldContract struct {
	systemPrompt string
	requiredKeys []string
	inputLimit   int
	decode       func(raw []byte) (domain.ExtractedFields, error)
}

func decodeInto[T domain.ExtractedFields](raw []byte) (domain.ExtractedFields, error) {
	var fields T
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// ExtractFieldsUseCase runs the type-specific field extraction prompt
// and parses the strict JSON contract for that type. Document types
// without a registered contract, "other" among them, yield
// ErrUnknownDocumentType so the caller can keep the classification and
// skip extraction.
type ExtractFieldsUseCase struct {
	gateway   ports.ModelGateway
	contracts map[domain.DocumentType]fieldContract
	logger    *slog.Logger
}

func NewExtractFieldsUseCase(gateway ports.ModelGateway, logger *slog.Logger) *ExtractFieldsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	contracts := map[domain.DocumentType]fieldContract{
		domain.TypeInvoice: {
			systemPrompt: invoiceSystemPrompt,
			requiredKeys: []string{"invoiceNumber", "totalAmount"},
			decode:       decodeInto[domain.InvoiceFields],
		},
		domain.TypeContract: {
			systemPrompt: contractSystemPrompt,
			requiredKeys: []string{"parties"},
			inputLimit:   extractionInputLimit,
			decode:       decodeInto[domain.ContractFields],
		},
		domain.TypeQuote: {
			systemPrompt: quoteSystemPrompt,
			requiredKeys: []string{"quoteNumber", "totalAmount"},
			decode:       decodeInto[domain.QuoteFields],
		},
		domain.TypeTender: {
			systemPrompt: tenderSystemPrompt,
			requiredKeys: []string{"issuer", "submissionDeadline"},
			inputLimit:   extractionInputLimit,
			decode:       decodeInto[domain.TenderFields],
		},
		domain.TypeLicense: {
			systemPrompt: licenseSystemPrompt,
			requiredKeys: []string{"licensee", "licensor"},
			decode:       decodeInto[domain.LicenseFields],
		},
	}
	return &ExtractFieldsUseCase{gateway: gateway, contracts: contracts, logger: logger}
}

func (uc *ExtractFieldsUseCase) Extract(ctx context.Context, docType domain.DocumentType, text string) (domain.ExtractionResult, error) {
	contract, ok := uc.contracts[docType]
	if !ok {
		return domain.ExtractionResult{}, domain.WrapError(
			domain.ErrUnknownDocumentType,
			"extract_fields",
			fmt.Errorf("no field contract for document type %q", docType),
		)
	}

	completion, err := uc.gateway.Complete(ctx, contract.systemPrompt, truncate(text, contract.inputLimit), ports.CompleteOpts{
		UseCache:    true,
		MaxTokens:   2048,
		Temperature: classifyTemperature,
	})
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	cleaned := []byte(stripMarkdownFences(completion.Text))

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(cleaned, &keys); err != nil {
		return domain.ExtractionResult{}, domain.WrapError(domain.ErrSchemaMismatch, "extract_fields", err)
	}
	for _, key := range contract.requiredKeys {
		if _, present := keys[key]; !present {
			return domain.ExtractionResult{}, domain.WrapError(
				domain.ErrSchemaMismatch,
				"extract_fields",
				fmt.Errorf("required key %q absent from %s response", key, docType),
			)
		}
	}

	fields, err := contract.decode(cleaned)
	if err != nil {
		return domain.ExtractionResult{}, domain.WrapError(domain.ErrSchemaMismatch, "extract_fields", err)
	}

	confidence := 0.0
	if raw, ok := keys["confidence"]; ok {
		_ = json.Unmarshal(raw, &confidence)
	}

	uc.logger.Info("fields_extracted",
		"document_type", docType,
		"confidence", confidence,
		"cached", completion.Cached,
	)

	return domain.ExtractionResult{
		DocumentType: docType,
		Fields:       fields,
		Confidence:   clampConfidence(confidence),
	}, nil
}
