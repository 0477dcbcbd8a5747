package handlers

import (
	"net/http"
	"strconv"

	"tourdesk/internal/domain/models"
	"tourdesk/internal/http/middleware"
	"tourdesk/internal/repositories"
	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
)

func invoiceSvc(c *gin.Context, kind models.InvoiceKind) services.InvoiceService {
	return services.InvoiceService{
		Invoices:  repositories.InvoiceRepository{Kind: kind},
		Queries:   repositories.QueryRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

// ListInvoices handles GET /api/queries/:id/{client,supplier}-invoices.
func ListInvoices(kind models.InvoiceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		queryID, ok := PathID(c, "id")
		if !ok {
			return
		}
		out, err := invoiceSvc(c, kind).ListByQuery(queryID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"invoices": out})
	}
}

// CreateInvoice handles POST /api/queries/:id/{client,supplier}-invoices.
func CreateInvoice(kind models.InvoiceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		queryID, ok := PathID(c, "id")
		if !ok {
			return
		}
		var in services.InvoiceInput
		if !BindJSONOrError(c, &in) {
			return
		}
		inv, err := invoiceSvc(c, kind).Create(queryID, in)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, inv)
	}
}

// GetInvoice handles GET /api/{client,supplier}-invoices/:id.
func GetInvoice(kind models.InvoiceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c, "id")
		if !ok {
			return
		}
		inv, err := invoiceSvc(c, kind).Get(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, inv)
	}
}

// UpdateInvoice handles PUT /api/{client,supplier}-invoices/:id.
func UpdateInvoice(kind models.InvoiceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c, "id")
		if !ok {
			return
		}
		var in services.InvoiceInput
		if !BindJSONOrError(c, &in) {
			return
		}
		inv, err := invoiceSvc(c, kind).Update(id, in)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, inv)
	}
}

// DeleteInvoice handles DELETE /api/{client,supplier}-invoices/:id (soft delete).
func DeleteInvoice(kind models.InvoiceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c, "id")
		if !ok {
			return
		}
		if err := invoiceSvc(c, kind).Deactivate(id); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "invoice deactivated"})
	}
}

// ReconcileInvoices handles GET /api/queries/:id/{client,supplier}-invoices/reconciliation.
// The optional ?editing=<invoiceId> excludes one invoice from the running
// total while it is being edited.
func ReconcileInvoices(kind models.InvoiceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		queryID, ok := PathID(c, "id")
		if !ok {
			return
		}
		var editingID int64
		if raw := c.Query("editing"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				RespondError(c, http.StatusBadRequest, "invalid editing id", err)
				return
			}
			editingID = id
		}
		rec, err := invoiceSvc(c, kind).Reconcile(queryID, editingID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// GetInvoicePDF handles GET /api/{client,supplier}-invoices/:id/pdf (inline).
func GetInvoicePDF(kind models.InvoiceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c, "id")
		if !ok {
			return
		}
		svc := services.DocsService{
			Invoices:  repositories.InvoiceRepository{Kind: kind},
			Queries:   repositories.QueryRepository{},
			Lookups:   repositories.LookupRepository{},
			RequestID: middleware.GetRequestID(c),
		}
		pdfBytes, filename, err := svc.GenerateInvoicePDF(id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", pdfBytes)
	}
}
