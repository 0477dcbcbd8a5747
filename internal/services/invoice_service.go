package services

import (
	"strconv"
	"strings"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/finance"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/repositories"
	"tourdesk/internal/utils"
)

// InvoiceService manages one invoice direction (client revenue or supplier
// cost) for a query, deriving amounts through the finance calculator and
// reporting budget headroom. The two directions are never netted.
type InvoiceService struct {
	Invoices  repositories.InvoiceRepository
	Queries   repositories.QueryRepository
	RequestID string
}

// InvoiceInput is the write shape for both create and update.
type InvoiceInput struct {
	CounterpartyID int64   `json:"counterpartyId"`
	InvoiceNo      string  `json:"invoiceNo"`
	InvoiceDate    string  `json:"invoiceDate"`
	DueDate        string  `json:"dueDate"`
	CurrencyID     int64   `json:"currencyId"`
	IsDomestic     bool    `json:"isDomestic"`
	TotalAmount    float64 `json:"totalAmount"`
	Remittance     float64 `json:"remittance"`
	RateOfExchange float64 `json:"rateOfExchange"`
	PaymentStatus  string  `json:"paymentStatus"`
	PaymentMethod  string  `json:"paymentMethod"` // "", DomesticBank, OverseasBank
	PricingMode    string  `json:"pricingMode"`   // auto | direct | manual; derived when empty
	TaxAmount      float64 `json:"taxAmount"`     // direct and manual modes
	NetAmount      float64 `json:"netAmount"`     // manual mode only
	Comments       string  `json:"comments"`
}

func (in InvoiceInput) validate() error {
	if in.CounterpartyID <= 0 {
		return domain.ValidationError{Field: "counterpartyId", Msg: "must be chosen"}
	}
	if strings.TrimSpace(in.InvoiceNo) == "" {
		return domain.ValidationError{Field: "invoiceNo", Msg: "required"}
	}
	if in.TotalAmount < 0 {
		return domain.ValidationError{Field: "totalAmount", Msg: "must not be negative"}
	}
	if in.Remittance < 0 {
		return domain.ValidationError{Field: "remittance", Msg: "must not be negative"}
	}
	if in.RateOfExchange < 0 {
		return domain.ValidationError{Field: "rateOfExchange", Msg: "must be positive"}
	}
	switch in.PaymentMethod {
	case "", string(finance.ChannelDomestic), string(finance.ChannelOverseas):
	default:
		return domain.ValidationError{Field: "paymentMethod", Msg: "unknown payment method"}
	}
	switch models.PricingMode(in.PricingMode) {
	case "", models.PricingAuto, models.PricingDirect, models.PricingManual:
	default:
		return domain.ValidationError{Field: "pricingMode", Msg: "unknown pricing mode"}
	}
	return nil
}

// mode derives the effective pricing mode: an explicit mode wins; otherwise
// a selected payment method means the channel-aware path, and the plain
// total+tax path applies when no method has been chosen.
func (in InvoiceInput) mode() models.PricingMode {
	if m := models.PricingMode(in.PricingMode); m != "" {
		return m
	}
	if in.PaymentMethod != "" {
		return models.PricingAuto
	}
	return models.PricingDirect
}

func (in InvoiceInput) pricing() finance.Pricing {
	switch in.mode() {
	case models.PricingManual:
		return finance.Manual{TaxAmount: in.TaxAmount, NetAmount: in.NetAmount}
	case models.PricingDirect:
		return finance.Direct{TaxAmount: in.TaxAmount}
	default:
		return finance.Automatic{
			Channel:        finance.Channel(in.PaymentMethod),
			RateOfExchange: in.RateOfExchange,
			Remittance:     in.Remittance,
		}
	}
}

func (in InvoiceInput) apply(inv *models.Invoice) {
	inv.CounterpartyID = in.CounterpartyID
	inv.InvoiceNo = strings.TrimSpace(in.InvoiceNo)
	inv.InvoiceDate = strings.TrimSpace(in.InvoiceDate)
	inv.DueDate = strings.TrimSpace(in.DueDate)
	inv.CurrencyID = in.CurrencyID
	inv.IsDomestic = in.IsDomestic
	inv.TotalAmount = in.TotalAmount
	inv.Remittance = in.Remittance
	inv.RateOfExchange = in.RateOfExchange
	if inv.RateOfExchange <= 0 {
		inv.RateOfExchange = 1
	}
	inv.PaymentMethod = in.PaymentMethod
	inv.PricingMode = in.mode()
	inv.Comments = strings.TrimSpace(in.Comments)

	inv.PaymentStatus = models.PaymentStatus(strings.TrimSpace(in.PaymentStatus))
	if inv.PaymentStatus == "" {
		inv.PaymentStatus = models.PaymentPending
	}

	amounts := finance.ComputeAmounts(in.TotalAmount, in.pricing())
	inv.GST = amounts.GST
	inv.ServiceCharge = amounts.ServiceCharge
	inv.TaxAmount = amounts.TaxAmount
	inv.NetAmount = amounts.NetAmount
}

func (s InvoiceService) Create(queryID int64, in InvoiceInput) (models.Invoice, error) {
	if err := in.validate(); err != nil {
		return models.Invoice{}, err
	}
	if _, err := s.Queries.GetByID(queryID); err != nil {
		return models.Invoice{}, err
	}

	inv := models.Invoice{QueryID: queryID, Active: true}
	in.apply(&inv)

	if err := s.Invoices.Create(&inv); err != nil {
		return models.Invoice{}, err
	}
	utils.LogEvent(s.RequestID, "invoice", "create",
		string(s.Invoices.Kind)+" query_id="+strconv.FormatInt(queryID, 10)+" no="+inv.InvoiceNo)
	return inv, nil
}

func (s InvoiceService) Update(id int64, in InvoiceInput) (models.Invoice, error) {
	if err := in.validate(); err != nil {
		return models.Invoice{}, err
	}

	inv, err := s.Invoices.GetByID(id)
	if err != nil {
		return models.Invoice{}, err
	}
	in.apply(&inv)

	if err := s.Invoices.Update(inv); err != nil {
		return models.Invoice{}, err
	}
	utils.LogEvent(s.RequestID, "invoice", "update", string(s.Invoices.Kind)+" id="+strconv.FormatInt(id, 10))
	return inv, nil
}

func (s InvoiceService) Get(id int64) (models.Invoice, error) {
	return s.Invoices.GetByID(id)
}

func (s InvoiceService) ListByQuery(queryID int64) ([]models.Invoice, error) {
	return s.Invoices.ListByQuery(queryID)
}

func (s InvoiceService) Deactivate(id int64) error {
	if err := s.Invoices.Deactivate(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "invoice", "deactivate", string(s.Invoices.Kind)+" id="+strconv.FormatInt(id, 10))
	return nil
}

// Reconcile recomputes budget headroom for this invoice direction. When
// editingID is non-zero that invoice is left out of the cumulative total so
// the draft being edited is not counted twice.
func (s InvoiceService) Reconcile(queryID, editingID int64) (finance.Reconciliation, error) {
	q, err := s.Queries.GetByID(queryID)
	if err != nil {
		return finance.Reconciliation{}, err
	}
	invoices, err := s.Invoices.ListByQuery(queryID)
	if err != nil {
		return finance.Reconciliation{}, err
	}
	return finance.Reconcile(q.Budget, invoices, editingID), nil
}
