package models

type InvoiceKind string

const (
	ClientInvoice   InvoiceKind = "client"
	SupplierInvoice InvoiceKind = "supplier"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentConfirmed PaymentStatus = "Confirmed"
	PaymentPaid      PaymentStatus = "Paid"
)

// PricingMode tags how TaxAmount/NetAmount were derived.
type PricingMode string

const (
	PricingAuto   PricingMode = "auto"   // channel-aware computation
	PricingDirect PricingMode = "direct" // net = total + tax, no channel selected
	PricingManual PricingMode = "manual" // caller-supplied amounts stored verbatim
)

// Invoice is a client or supplier invoice against a query. The two kinds
// share this core and live in separate tables.
type Invoice struct {
	ID             int64         `json:"id"`
	QueryID        int64         `json:"queryId"`
	CounterpartyID int64         `json:"counterpartyId"` // clientId or supplierId
	InvoiceNo      string        `json:"invoiceNo"`
	InvoiceDate    string        `json:"invoiceDate"` // YYYY-MM-DD
	DueDate        string        `json:"dueDate"`
	CurrencyID     int64         `json:"currencyId"`
	IsDomestic     bool          `json:"isDomestic"`
	TotalAmount    float64       `json:"totalAmount"` // base amount, pre-conversion
	GST            float64       `json:"gst"`
	ServiceCharge  float64       `json:"serviceCharge"`
	Remittance     float64       `json:"remittance"`
	RateOfExchange float64       `json:"rateOfExchange"` // > 0, default 1
	TaxAmount      float64       `json:"taxAmount"`
	NetAmount      float64       `json:"netAmount"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	PaymentMethod  string        `json:"paymentMethod"` // "", DomesticBank, OverseasBank
	PricingMode    PricingMode   `json:"pricingMode"`
	Comments       string        `json:"comments"`
	Active         bool          `json:"active"`
}
