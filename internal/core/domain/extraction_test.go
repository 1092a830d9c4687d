package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseDocumentTypeRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "receipt", "Invoice", "INVOICE", "misc"} {
		if _, err := ParseDocumentType(raw); err == nil {
			t.Fatalf("ParseDocumentType(%q) accepted a value outside the enum", raw)
		} else if !IsKind(err, ErrClassificationParse) {
			t.Fatalf("ParseDocumentType(%q) error = %v, want ErrClassificationParse", raw, err)
		}
	}
	for _, raw := range []string{"contract", "invoice", "quote", "tender", "license", "other"} {
		if _, err := ParseDocumentType(raw); err != nil {
			t.Fatalf("ParseDocumentType(%q) error = %v", raw, err)
		}
	}
}

func TestInvoiceFieldsMarshalNullForMissing(t *testing.T) {
	vendor := "ACME"
	out, err := json.Marshal(InvoiceFields{VendorName: &vendor})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"invoiceNumber":null`, `"totalAmount":null`, `"currency":null`} {
		if !strings.Contains(string(out), key) {
			t.Fatalf("expected %s in %s", key, out)
		}
	}
}

func TestExtractionResultUnmarshalDispatchesVariant(t *testing.T) {
	payload := `{
		"document_type": "invoice",
		"fields": {"vendorName":"ACME","invoiceNumber":"INV-1","totalAmount":99.5},
		"confidence": 0.91
	}`
	var res ExtractionResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	inv, ok := res.Fields.(InvoiceFields)
	if !ok {
		t.Fatalf("expected InvoiceFields, got %T", res.Fields)
	}
	if inv.InvoiceNumber == nil || *inv.InvoiceNumber != "INV-1" {
		t.Fatalf("invoice number not decoded: %+v", inv)
	}
	if inv.DueDate != nil {
		t.Fatalf("absent field should decode to nil, got %v", *inv.DueDate)
	}
}

func TestExtractionResultUnmarshalFallsBackToGeneric(t *testing.T) {
	payload := `{"document_type":"memo","fields":{"subject":"hello"},"confidence":0.5}`
	var res ExtractionResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	gen, ok := res.Fields.(GenericFields)
	if !ok {
		t.Fatalf("expected GenericFields, got %T", res.Fields)
	}
	if gen["subject"] != "hello" {
		t.Fatalf("generic fields not decoded: %+v", gen)
	}
}
