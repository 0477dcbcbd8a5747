package repositories

import (
	"database/sql"
	"errors"

	intconfig "tourdesk/internal/config"
	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
)

// InvoiceRepository serves both invoice directions; Kind picks the table.
// Client and supplier invoices share the same core schema.
type InvoiceRepository struct {
	DB   *sql.DB
	Kind models.InvoiceKind
}

func (r InvoiceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r InvoiceRepository) table() string {
	if r.Kind == models.SupplierInvoice {
		return "supplier_invoices"
	}
	return "client_invoices"
}

const invoiceColumns = `id,
       COALESCE(query_id,0),
       COALESCE(counterparty_id,0),
       COALESCE(invoice_no,''),
       COALESCE(invoice_date,''),
       COALESCE(due_date,''),
       COALESCE(currency_id,0),
       COALESCE(is_domestic,0),
       COALESCE(total_amount,0),
       COALESCE(gst,0),
       COALESCE(service_charge,0),
       COALESCE(remittance,0),
       COALESCE(rate_of_exchange,1),
       COALESCE(tax_amount,0),
       COALESCE(net_amount,0),
       COALESCE(payment_status,'Pending'),
       COALESCE(payment_method,''),
       COALESCE(pricing_mode,'auto'),
       COALESCE(comments,''),
       COALESCE(active,1)`

func scanInvoice(row interface{ Scan(...any) error }) (models.Invoice, error) {
	var inv models.Invoice
	var domestic, active int
	var mode string
	err := row.Scan(
		&inv.ID,
		&inv.QueryID,
		&inv.CounterpartyID,
		&inv.InvoiceNo,
		&inv.InvoiceDate,
		&inv.DueDate,
		&inv.CurrencyID,
		&domestic,
		&inv.TotalAmount,
		&inv.GST,
		&inv.ServiceCharge,
		&inv.Remittance,
		&inv.RateOfExchange,
		&inv.TaxAmount,
		&inv.NetAmount,
		&inv.PaymentStatus,
		&inv.PaymentMethod,
		&mode,
		&inv.Comments,
		&active,
	)
	if err != nil {
		return models.Invoice{}, err
	}
	inv.IsDomestic = domestic != 0
	inv.Active = active != 0
	inv.PricingMode = models.PricingMode(mode)
	return inv, nil
}

// ListByQuery returns active invoices for a query, oldest first.
func (r InvoiceRepository) ListByQuery(queryID int64) ([]models.Invoice, error) {
	if queryID <= 0 {
		return nil, domain.ValidationError{Field: "queryId", Msg: "must be positive"}
	}
	db := r.db()

	rows, err := db.Query(`SELECT `+invoiceColumns+` FROM `+r.table()+` WHERE query_id=? AND active=1 ORDER BY id`, queryID)
	if err != nil {
		return nil, domain.RemoteError{Op: "invoices.list", Err: err}
	}
	defer rows.Close()

	out := []models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, domain.RemoteError{Op: "invoices.list", Err: err}
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r InvoiceRepository) GetByID(id int64) (models.Invoice, error) {
	if id <= 0 {
		return models.Invoice{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()

	row := db.QueryRow(`SELECT `+invoiceColumns+` FROM `+r.table()+` WHERE id=? AND active=1 LIMIT 1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Invoice{}, domain.NotFoundError{Resource: "invoice"}
		}
		return models.Invoice{}, domain.RemoteError{Op: "invoices.get", Err: err}
	}
	return inv, nil
}

func (r InvoiceRepository) Create(inv *models.Invoice) error {
	db := r.db()

	domestic := 0
	if inv.IsDomestic {
		domestic = 1
	}
	res, err := db.Exec(`
		INSERT INTO `+r.table()+` (
		  query_id, counterparty_id, invoice_no, invoice_date, due_date,
		  currency_id, is_domestic, total_amount, gst, service_charge,
		  remittance, rate_of_exchange, tax_amount, net_amount,
		  payment_status, payment_method, pricing_mode, comments, active,
		  created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, NOW(), NOW())`,
		inv.QueryID, inv.CounterpartyID, inv.InvoiceNo, inv.InvoiceDate, inv.DueDate,
		inv.CurrencyID, domestic, inv.TotalAmount, inv.GST, inv.ServiceCharge,
		inv.Remittance, inv.RateOfExchange, inv.TaxAmount, inv.NetAmount,
		string(inv.PaymentStatus), inv.PaymentMethod, string(inv.PricingMode), inv.Comments,
	)
	if err != nil {
		return domain.RemoteError{Op: "invoices.create", Err: err}
	}
	id, _ := res.LastInsertId()
	inv.ID = id
	return nil
}

func (r InvoiceRepository) Update(inv models.Invoice) error {
	if inv.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()

	domestic := 0
	if inv.IsDomestic {
		domestic = 1
	}
	_, err := db.Exec(`
		UPDATE `+r.table()+` SET
		  counterparty_id=?, invoice_no=?, invoice_date=?, due_date=?,
		  currency_id=?, is_domestic=?, total_amount=?, gst=?, service_charge=?,
		  remittance=?, rate_of_exchange=?, tax_amount=?, net_amount=?,
		  payment_status=?, payment_method=?, pricing_mode=?, comments=?, updated_at=NOW()
		WHERE id=? AND active=1`,
		inv.CounterpartyID, inv.InvoiceNo, inv.InvoiceDate, inv.DueDate,
		inv.CurrencyID, domestic, inv.TotalAmount, inv.GST, inv.ServiceCharge,
		inv.Remittance, inv.RateOfExchange, inv.TaxAmount, inv.NetAmount,
		string(inv.PaymentStatus), inv.PaymentMethod, string(inv.PricingMode), inv.Comments,
		inv.ID,
	)
	if err != nil {
		return domain.RemoteError{Op: "invoices.update", Err: err}
	}
	return nil
}

// Deactivate soft-deletes an invoice.
func (r InvoiceRepository) Deactivate(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()

	res, err := db.Exec(`UPDATE `+r.table()+` SET active=0, updated_at=NOW() WHERE id=? AND active=1`, id)
	if err != nil {
		return domain.RemoteError{Op: "invoices.deactivate", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "invoice"}
	}
	return nil
}
