package handlers

import (
	"net/http"
	"strconv"

	"tourdesk/internal/http/middleware"
	"tourdesk/internal/repositories"
	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
)

func lookupSvc(c *gin.Context) services.LookupService {
	return services.LookupService{
		Queries:   repositories.QueryRepository{},
		Lookups:   repositories.LookupRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/countries
func GetCountries(c *gin.Context) {
	out, err := lookupSvc(c).Countries()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"countries": out})
}

// GET /api/cities?countryId=1
func GetCities(c *gin.Context) {
	countryID, _ := strconv.ParseInt(c.Query("countryId"), 10, 64)
	out, err := lookupSvc(c).Cities(countryID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": out})
}

// GET /api/suppliers?countryId=1&cityId=100
// Without both filters the global supplier list is returned.
func GetSuppliers(c *gin.Context) {
	countryID, _ := strconv.ParseInt(c.Query("countryId"), 10, 64)
	cityID, _ := strconv.ParseInt(c.Query("cityId"), 10, 64)
	out, err := lookupSvc(c).Suppliers(countryID, cityID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": out})
}

// GET /api/currencies
func GetCurrencies(c *gin.Context) {
	out, err := lookupSvc(c).Currencies()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"currencies": out})
}
