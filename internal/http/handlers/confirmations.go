package handlers

import (
	"net/http"

	"tourdesk/internal/http/middleware"
	"tourdesk/internal/repositories"
	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
)

func confirmationSvc(c *gin.Context) services.ConfirmationService {
	return services.ConfirmationService{
		Queries:       repositories.QueryRepository{},
		Confirmations: repositories.ConfirmationRepository{},
		RequestID:     middleware.GetRequestID(c),
	}
}

// POST /api/queries/:id/confirm
func ConfirmQuery(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var in services.ConfirmationInput
	if !BindJSONOrError(c, &in) {
		return
	}
	cq, err := confirmationSvc(c).Confirm(id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cq)
}

// GET /api/queries/:id/confirmation
// Services come back grouped per destination so the edit screen can show
// them the way they were entered.
func GetConfirmation(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	cq, groups, err := confirmationSvc(c).GetGrouped(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"confirmation":  cq,
		"serviceGroups": groups,
	})
}

// GET /api/queries/:id/form-context
func GetQueryFormContext(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	svc := services.LookupService{
		Queries:   repositories.QueryRepository{},
		Lookups:   repositories.LookupRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	ctx, err := svc.FormContext(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctx)
}
