package handlers

import (
	"net/http"

	"tourdesk/internal/http/middleware"
	"tourdesk/internal/repositories"
	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
)

func querySvc(c *gin.Context) services.QueryService {
	return services.QueryService{
		Queries:   repositories.QueryRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/queries?status=Pending
func ListQueries(c *gin.Context) {
	out, err := querySvc(c).List(c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"queries": out})
}

// GET /api/queries/:id
func GetQuery(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	q, err := querySvc(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// POST /api/queries
func CreateQuery(c *gin.Context) {
	var in services.QueryInput
	if !BindJSONOrError(c, &in) {
		return
	}
	q, err := querySvc(c).Create(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// PUT /api/queries/:id
func UpdateQuery(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var in services.QueryInput
	if !BindJSONOrError(c, &in) {
		return
	}
	q, err := querySvc(c).Update(id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// DELETE /api/queries/:id (soft delete)
func DeleteQuery(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := querySvc(c).Deactivate(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "query deactivated"})
}

// POST /api/queries/:id/cancel
func CancelQuery(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	q, err := querySvc(c).Cancel(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}
