package services

import (
	"bytes"
	"errors"
	"testing"

	"tourdesk/internal/domain/models"
)

func TestGenerateInvoicePDFWithLoader(t *testing.T) {
	svc := DocsService{
		Loader: func(id int64) (invoiceDocData, error) {
			if id != 9 {
				t.Fatalf("loader called with id %d, want 9", id)
			}
			return invoiceDocData{
				Invoice: models.Invoice{
					ID:             9,
					QueryID:        5,
					InvoiceNo:      "INV 2026/07",
					InvoiceDate:    "2026-03-01",
					TotalAmount:    1000,
					GST:            50,
					ServiceCharge:  9,
					RateOfExchange: 1,
					TaxAmount:      59,
					NetAmount:      1059,
					PaymentStatus:  models.PaymentPending,
					Comments:       "pay within 15 days",
				},
				Kind:             models.ClientInvoice,
				QueryNo:          "Q-2001",
				CounterpartyName: "Acme Tours",
				CurrencyCode:     "INR",
			}, nil
		},
	}

	data, filename, err := svc.GenerateInvoicePDF(9)
	if err != nil {
		t.Fatalf("GenerateInvoicePDF returned error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF, starts with %q", data[:8])
	}
	if filename != "INVOICE_INV_2026-07.pdf" {
		t.Fatalf("filename = %q", filename)
	}
}

func TestGenerateInvoicePDFLoaderError(t *testing.T) {
	boom := errors.New("load failed")
	svc := DocsService{
		Loader: func(int64) (invoiceDocData, error) { return invoiceDocData{}, boom },
	}

	if _, _, err := svc.GenerateInvoicePDF(1); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
}
