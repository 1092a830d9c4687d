package usecase

import "github.com/achartier/docintel/internal/core/domain"

const classifySystemPrompt = `You are a document classification engine for business documents.
Read the document text and respond with ONLY a JSON object, no prose:
{
  "document_type": one of "contract", "invoice", "quote", "tender", "license", "other",
  "confidence": a number between 0 and 1,
  "key_fields": an object with any obviously identifiable fields (numbers, dates, parties)
}
If the document matches none of the specific types, use "other".`

const invoiceSystemPrompt = `You are an invoice data extraction engine.
Extract the following fields from the invoice text and respond with ONLY a JSON object:
{
  "vendorName": string or null,
  "invoiceNumber": string or null,
  "invoiceDate": string (ISO 8601) or null,
  "dueDate": string (ISO 8601) or null,
  "totalAmount": number or null,
  "taxAmount": number or null,
  "currency": ISO 4217 code or null,
  "lineItems": [{"description": string, "quantity": number, "unitPrice": number, "total": number}],
  "confidence": number between 0 and 1
}
Every key must be present. Use null when a value cannot be found.`

const contractSystemPrompt = `You are a contract analysis engine.
Extract the following fields from the contract text and respond with ONLY a JSON object:
{
  "parties": [string],
  "startDate": string (ISO 8601) or null,
  "endDate": string (ISO 8601) or null,
  "contractValue": number or null,
  "currency": ISO 4217 code or null,
  "obligations": [string],
  "renewalTerms": string or null,
  "governingLaw": string or null,
  "confidence": number between 0 and 1
}
Every key must be present. Use null when a value cannot be found.`

const quoteSystemPrompt = `You are a quotation data extraction engine.
Extract the following fields from the quote text and respond with ONLY a JSON object:
{
  "vendorName": string or null,
  "quoteNumber": string or null,
  "issueDate": string (ISO 8601) or null,
  "validUntil": string (ISO 8601) or null,
  "totalAmount": number or null,
  "currency": ISO 4217 code or null,
  "lineItems": [{"description": string, "quantity": number, "unitPrice": number, "total": number}],
  "confidence": number between 0 and 1
}
Every key must be present. Use null when a value cannot be found.`

const tenderSystemPrompt = `You are a tender notice analysis engine.
Extract the following fields from the tender text and respond with ONLY a JSON object:
{
  "issuer": string or null,
  "reference": string or null,
  "submissionDeadline": string (ISO 8601) or null,
  "estimatedValue": number or null,
  "currency": ISO 4217 code or null,
  "requirements": [string],
  "contactEmail": string or null,
  "confidence": number between 0 and 1
}
Every key must be present. Use null when a value cannot be found.`

const licenseSystemPrompt = `You are a license agreement analysis engine.
Extract the following fields from the license text and respond with ONLY a JSON object:
{
  "licensee": string or null,
  "licensor": string or null,
  "licenseType": string or null,
  "startDate": string (ISO 8601) or null,
  "expiryDate": string (ISO 8601) or null,
  "fee": number or null,
  "scope": string or null,
  "confidence": number between 0 and 1
}
Every key must be present. Use null when a value cannot be found.`

const summarizeSystemPrompt = `You are a document summarization engine for business documents.
Summarize the document and respond with ONLY a JSON object:
{
  "summary": a few sentences covering the essence of the document,
  "parties": [string],
  "duration": string or null,
  "amounts": [string],
  "riskClauses": [string]
}`

const chunkSummarySystemPrompt = `You summarize one fragment of a longer business document.
Respond with a short plain-text summary of the fragment. Mention parties, amounts,
dates and obligations if present. Do not add commentary.`

const reduceSummarySystemPrompt = `You are given partial summaries of consecutive fragments
of one business document. Merge them into a single coherent result and respond with
ONLY a JSON object:
{
  "summary": a few sentences covering the whole document,
  "parties": [string],
  "duration": string or null,
  "amounts": [string],
  "riskClauses": [string]
}`

func extractionPromptFor(docType domain.DocumentType) (string, bool) {
	switch docType {
	case domain.TypeInvoice:
		return invoiceSystemPrompt, true
	case domain.TypeContract:
		return contractSystemPrompt, true
	case domain.TypeQuote:
		return quoteSystemPrompt, true
	case domain.TypeTender:
		return tenderSystemPrompt, true
	case domain.TypeLicense:
		return licenseSystemPrompt, true
	default:
		return "", false
	}
}
