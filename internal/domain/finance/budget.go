package finance

import "tourdesk/internal/domain/models"

// Reconciliation compares cumulative invoiced amounts of one direction
// (client revenue or supplier cost) against the query's fixed budget.
// Purely derived; recomputed on every change to the list or the budget.
type Reconciliation struct {
	Budget        float64 `json:"budget"`
	TotalInvoiced float64 `json:"totalInvoiced"`
	Remaining     float64 `json:"remaining"`
}

// Reconcile sums TotalAmount over the invoices, excluding the one currently
// being edited (editingID, 0 for none) so a draft edit is not double
// counted. Client and supplier collections are reconciled independently and
// never netted against each other.
func Reconcile(budget float64, invoices []models.Invoice, editingID int64) Reconciliation {
	var total float64
	for _, inv := range invoices {
		if editingID != 0 && inv.ID == editingID {
			continue
		}
		total += inv.TotalAmount
	}
	return Reconciliation{
		Budget:        budget,
		TotalInvoiced: Round2(total),
		Remaining:     Round2(budget - total),
	}
}

// OverBudget reports whether a draft amount would exceed the remaining
// headroom.
func (r Reconciliation) OverBudget(draftAmount float64) bool {
	return draftAmount > r.Remaining
}
