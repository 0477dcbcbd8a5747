package finance

import (
	"testing"

	"tourdesk/internal/domain/models"
)

func TestReconcileExcludesEditingInvoice(t *testing.T) {
	invoices := []models.Invoice{{ID: 1, TotalAmount: 100}}

	rec := Reconcile(1000, invoices, 1)
	if rec.TotalInvoiced != 0 {
		t.Fatalf("totalInvoiced = %v, want 0 when the only invoice is being edited", rec.TotalInvoiced)
	}
	if rec.Remaining != 1000 {
		t.Fatalf("remaining = %v, want 1000", rec.Remaining)
	}
}

func TestReconcileHeadroomScenario(t *testing.T) {
	// budget 5000, existing invoices summing 4500, draft 800 over the line.
	invoices := []models.Invoice{
		{ID: 1, TotalAmount: 3000},
		{ID: 2, TotalAmount: 1500},
	}

	rec := Reconcile(5000, invoices, 0)
	if rec.TotalInvoiced != 4500 {
		t.Fatalf("totalInvoiced = %v, want 4500", rec.TotalInvoiced)
	}
	if rec.Remaining != 500 {
		t.Fatalf("remaining = %v, want 500", rec.Remaining)
	}
	if !rec.OverBudget(800) {
		t.Fatalf("OverBudget(800) = false, want true")
	}
	if rec.OverBudget(500) {
		t.Fatalf("OverBudget(500) = true, want false at exactly the remaining amount")
	}
}

func TestReconcileEmptyList(t *testing.T) {
	rec := Reconcile(2500, nil, 0)
	if rec.TotalInvoiced != 0 || rec.Remaining != 2500 {
		t.Fatalf("unexpected reconciliation for empty list: %+v", rec)
	}
}

func TestReconcileCanGoNegative(t *testing.T) {
	invoices := []models.Invoice{{ID: 7, TotalAmount: 1200}}
	rec := Reconcile(1000, invoices, 0)
	if rec.Remaining != -200 {
		t.Fatalf("remaining = %v, want -200", rec.Remaining)
	}
	if !rec.OverBudget(0.01) {
		t.Fatalf("any positive draft must be over budget once remaining is negative")
	}
}
