package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tourdesk/internal/config"
	"tourdesk/internal/domain/models"
	h "tourdesk/internal/http/handlers"
	"tourdesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Queries. Everything below carries a signed-in user.
		requireAuth := middleware.RequireAuth(env.JWTSecret)
		queries := api.Group("/queries", requireAuth)
		queries.GET("", h.ListQueries)
		queries.GET("/:id", h.GetQuery)
		queries.POST("", h.CreateQuery)
		queries.PUT("/:id", h.UpdateQuery)
		queries.DELETE("/:id", h.DeleteQuery)
		queries.POST("/:id/cancel", h.CancelQuery)

		// Confirmation
		queries.POST("/:id/confirm", h.ConfirmQuery)
		queries.GET("/:id/confirmation", h.GetConfirmation)
		queries.GET("/:id/form-context", h.GetQueryFormContext)

		// Invoices, both directions
		mountInvoices(api, queries, requireAuth, "client-invoices", models.ClientInvoice)
		mountInvoices(api, queries, requireAuth, "supplier-invoices", models.SupplierInvoice)

		// Lookups
		api.GET("/countries", h.GetCountries)
		api.GET("/cities", h.GetCities)
		api.GET("/suppliers", h.GetSuppliers)
		api.GET("/currencies", h.GetCurrencies)
	}

	h.SetRouter(r)
	return r
}

func mountInvoices(api, queries *gin.RouterGroup, requireAuth gin.HandlerFunc, path string, kind models.InvoiceKind) {
	queries.GET("/:id/"+path, h.ListInvoices(kind))
	queries.POST("/:id/"+path, h.CreateInvoice(kind))
	queries.GET("/:id/"+path+"/reconciliation", h.ReconcileInvoices(kind))

	invoices := api.Group("/"+path, requireAuth)
	invoices.GET("/:id", h.GetInvoice(kind))
	invoices.PUT("/:id", h.UpdateInvoice(kind))
	invoices.DELETE("/:id", h.DeleteInvoice(kind))
	invoices.GET("/:id/pdf", h.GetInvoicePDF(kind))
}
