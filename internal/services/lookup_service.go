package services

import (
	"strconv"
	"sync"

	"tourdesk/internal/domain/models"
	"tourdesk/internal/repositories"
	"tourdesk/internal/utils"
)

// LookupService aggregates the read-only reference data a confirmation or
// invoice form needs before it becomes usable.
type LookupService struct {
	Queries   repositories.QueryRepository
	Lookups   repositories.LookupRepository
	RequestID string
}

// FormContext bundles every reference fetch for one query's forms.
// SuppliersByDestination is index-aligned with the query's destination list.
type FormContext struct {
	Query                  models.Query        `json:"query"`
	Client                 models.Client       `json:"client"`
	Handler                models.Handler      `json:"handler"`
	Currencies             []models.Currency   `json:"currencies"`
	GlobalSuppliers        []models.Supplier   `json:"globalSuppliers"`
	SuppliersByDestination [][]models.Supplier `json:"suppliersByDestination"`
}

// FormContext issues all reference fetches concurrently and waits for the
// whole set. Each fetch that fails is logged and degrades to an empty
// result; one failure never aborts the sibling fetches or the form.
func (s LookupService) FormContext(queryID int64) (FormContext, error) {
	q, err := s.Queries.GetByID(queryID)
	if err != nil {
		return FormContext{}, err
	}

	out := FormContext{
		Query:                  q,
		Currencies:             []models.Currency{},
		GlobalSuppliers:        []models.Supplier{},
		SuppliersByDestination: make([][]models.Supplier, len(q.Destinations)),
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		client, err := s.Lookups.Client(q.ClientID)
		if err != nil {
			s.degrade("client", err)
			return
		}
		out.Client = client
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		handler, err := s.Lookups.Handler(q.HandlerID)
		if err != nil {
			s.degrade("handler", err)
			return
		}
		out.Handler = handler
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		currencies, err := s.Lookups.Currencies()
		if err != nil {
			s.degrade("currencies", err)
			return
		}
		out.Currencies = currencies
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		suppliers, err := s.Lookups.Suppliers(0, 0)
		if err != nil {
			s.degrade("suppliers", err)
			return
		}
		out.GlobalSuppliers = suppliers
	}()

	for i := range q.Destinations {
		wg.Add(1)
		go func(i int, d models.Destination) {
			defer wg.Done()
			suppliers, err := s.Lookups.Suppliers(d.CountryID, d.CityID)
			if err != nil {
				s.degrade("suppliers_dest_"+strconv.Itoa(i), err)
				out.SuppliersByDestination[i] = []models.Supplier{}
				return
			}
			out.SuppliersByDestination[i] = suppliers
		}(i, q.Destinations[i])
	}

	wg.Wait()
	return out, nil
}

func (s LookupService) degrade(what string, err error) {
	utils.LogEvent(s.RequestID, "lookup", "degraded", what+" fetch failed, using empty list: "+err.Error())
}

func (s LookupService) Countries() ([]models.Country, error)           { return s.Lookups.Countries() }
func (s LookupService) Cities(countryID int64) ([]models.City, error)  { return s.Lookups.Cities(countryID) }
func (s LookupService) Currencies() ([]models.Currency, error)         { return s.Lookups.Currencies() }
func (s LookupService) Suppliers(countryID, cityID int64) ([]models.Supplier, error) {
	return s.Lookups.Suppliers(countryID, cityID)
}
