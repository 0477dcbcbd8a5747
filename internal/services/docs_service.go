package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"tourdesk/internal/domain/models"
	"tourdesk/internal/repositories"
	"tourdesk/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable invoice PDFs. The financial data is taken
// as stored; no amounts are recomputed here.
type DocsService struct {
	Invoices  repositories.InvoiceRepository
	Queries   repositories.QueryRepository
	Lookups   repositories.LookupRepository
	RequestID string
	Loader    func(int64) (invoiceDocData, error)
}

type invoiceDocData struct {
	Invoice          models.Invoice
	Kind             models.InvoiceKind
	QueryNo          string
	CounterpartyName string
	CurrencyCode     string
}

// GenerateInvoicePDF renders one invoice as a PDF and returns the bytes
// plus a suggested filename.
func (s DocsService) GenerateInvoicePDF(invoiceID int64) ([]byte, string, error) {
	data, err := s.loadInvoiceDocData(invoiceID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("invoice_id=%d", invoiceID))
	return buildInvoicePDF(data)
}

func (s DocsService) loadInvoiceDocData(invoiceID int64) (invoiceDocData, error) {
	if s.Loader != nil {
		return s.Loader(invoiceID)
	}

	inv, err := s.Invoices.GetByID(invoiceID)
	if err != nil {
		return invoiceDocData{}, err
	}

	out := invoiceDocData{Invoice: inv, Kind: s.Invoices.Kind}
	if out.Kind == "" {
		out.Kind = models.ClientInvoice
	}

	if q, err := s.Queries.GetByID(inv.QueryID); err == nil {
		out.QueryNo = q.QueryNo
	}
	if out.Kind == models.SupplierInvoice {
		if suppliers, err := s.Lookups.Suppliers(0, 0); err == nil {
			out.CounterpartyName = models.ResolveSupplierName(inv.CounterpartyID, nil, suppliers)
		}
	} else {
		if client, err := s.Lookups.Client(inv.CounterpartyID); err == nil {
			out.CounterpartyName = client.Name
		}
	}
	if currencies, err := s.Lookups.Currencies(); err == nil {
		for _, c := range currencies {
			if c.ID == inv.CurrencyID {
				out.CurrencyCode = c.Code
				break
			}
		}
	}
	return out, nil
}

func buildInvoicePDF(d invoiceDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	title := "CLIENT INVOICE"
	billed := "Billed to:"
	if d.Kind == models.SupplierInvoice {
		title = "SUPPLIER INVOICE"
		billed = "Payable to:"
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : "+safe(d.Invoice.InvoiceNo, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Query No   : "+safe(d.QueryNo, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+safe(d.Invoice.InvoiceDate, time.Now().Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Due date   : "+safe(d.Invoice.DueDate, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, billed)
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, safe(d.CounterpartyName, fmt.Sprintf("#%d", d.Invoice.CounterpartyID)))
	pdf.Ln(12)

	cur := safe(d.CurrencyCode, "")
	amount := func(v float64) string {
		if cur == "" {
			return utils.FormatMoney(v)
		}
		return cur + " " + utils.FormatMoney(v)
	}

	rows := [][2]string{
		{"Total amount", amount(d.Invoice.TotalAmount)},
		{"GST", amount(d.Invoice.GST)},
		{"Service charge", amount(d.Invoice.ServiceCharge)},
		{"Remittance", amount(d.Invoice.Remittance)},
		{"Rate of exchange", utils.FormatMoney(d.Invoice.RateOfExchange)},
		{"Tax amount", amount(d.Invoice.TaxAmount)},
		{"Net amount", amount(d.Invoice.NetAmount)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(90, 7, row[0])
		pdf.Cell(0, 7, row[1])
		pdf.Ln(7)
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Payment status : "+safe(string(d.Invoice.PaymentStatus), "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Payment method : "+safe(d.Invoice.PaymentMethod, "-"))
	pdf.Ln(10)

	if strings.TrimSpace(d.Invoice.Comments) != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Comments: "+d.Invoice.Comments, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%s.pdf", safeFilenamePart(safe(d.Invoice.InvoiceNo, fmt.Sprintf("%d", d.Invoice.ID))))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(s)
}
