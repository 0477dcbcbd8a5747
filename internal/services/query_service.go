package services

import (
	"strconv"
	"strings"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/repositories"
	"tourdesk/internal/utils"
)

// QueryService owns the trip request lifecycle outside confirmation:
// intake, edits, soft-deactivation and cancellation.
type QueryService struct {
	Queries   repositories.QueryRepository
	RequestID string
}

// QueryInput is the write shape shared by create and update.
type QueryInput struct {
	QueryNo             string               `json:"queryNo"`
	HandlerID           int64                `json:"handlerId"`
	ClientID            int64                `json:"clientId"`
	OriginCountryID     int64                `json:"originCountryId"`
	OriginCityID        int64                `json:"originCityId"`
	Destinations        []models.Destination `json:"destinations"`
	TravelDate          string               `json:"travelDate"`
	ReturnDate          string               `json:"returnDate"`
	Adults              int                  `json:"adults"`
	Children            int                  `json:"children"`
	Infants             int                  `json:"infants"`
	ChildAges           []int                `json:"childAges"`
	Budget              float64              `json:"budget"`
	SpecialRequirements string               `json:"specialRequirements"`
}

func (in QueryInput) validate() error {
	if strings.TrimSpace(in.QueryNo) == "" {
		return domain.ValidationError{Field: "queryNo", Msg: "required"}
	}
	if in.HandlerID <= 0 {
		return domain.ValidationError{Field: "handlerId", Msg: "handler must be chosen"}
	}
	if in.ClientID <= 0 {
		return domain.ValidationError{Field: "clientId", Msg: "client must be chosen"}
	}
	if len(in.Destinations) == 0 {
		return domain.ValidationError{Field: "destinations", Msg: "at least one destination is required"}
	}
	if in.Budget < 0 {
		return domain.ValidationError{Field: "budget", Msg: "must not be negative"}
	}
	if in.Adults < 0 || in.Children < 0 || in.Infants < 0 {
		return domain.ValidationError{Field: "travellers", Msg: "counts must not be negative"}
	}
	return nil
}

func (in QueryInput) apply(q *models.Query) error {
	q.QueryNo = strings.TrimSpace(in.QueryNo)
	q.HandlerID = in.HandlerID
	q.ClientID = in.ClientID
	q.OriginCountryID = in.OriginCountryID
	q.OriginCityID = in.OriginCityID
	q.Destinations = in.Destinations
	q.Adults = in.Adults
	q.Infants = in.Infants
	q.Budget = in.Budget
	q.SpecialRequirements = strings.TrimSpace(in.SpecialRequirements)

	if err := q.SetDates(in.TravelDate, in.ReturnDate); err != nil {
		return err
	}

	// child ages track the children count, padding with age 0
	q.ChildAges = append([]int{}, in.ChildAges...)
	q.SetChildrenCount(in.Children)
	return nil
}

func (s QueryService) Create(in QueryInput) (models.Query, error) {
	if err := in.validate(); err != nil {
		return models.Query{}, err
	}

	q := models.Query{Status: models.QueryPending, Active: true}
	if err := in.apply(&q); err != nil {
		return models.Query{}, err
	}

	if err := s.Queries.Create(&q); err != nil {
		return models.Query{}, err
	}
	utils.LogEvent(s.RequestID, "query", "create", "query_no="+q.QueryNo)
	return q, nil
}

func (s QueryService) Update(id int64, in QueryInput) (models.Query, error) {
	if err := in.validate(); err != nil {
		return models.Query{}, err
	}

	q, err := s.Queries.GetByID(id)
	if err != nil {
		return models.Query{}, err
	}
	if !q.Active {
		return models.Query{}, domain.NotFoundError{Resource: "query"}
	}

	if err := in.apply(&q); err != nil {
		return models.Query{}, err
	}
	if err := s.Queries.Update(&q); err != nil {
		return models.Query{}, err
	}
	utils.LogEvent(s.RequestID, "query", "update", "id="+strconv.FormatInt(id, 10))
	return q, nil
}

func (s QueryService) Get(id int64) (models.Query, error) {
	q, err := s.Queries.GetByID(id)
	if err != nil {
		return models.Query{}, err
	}
	if !q.Active {
		return models.Query{}, domain.NotFoundError{Resource: "query"}
	}
	return q, nil
}

func (s QueryService) List(status string) ([]models.Query, error) {
	return s.Queries.List(status)
}

// Deactivate soft-deletes the query; nothing is removed physically.
func (s QueryService) Deactivate(id int64) error {
	if err := s.Queries.Deactivate(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "query", "deactivate", "id="+strconv.FormatInt(id, 10))
	return nil
}

// Cancel moves a query to Cancelled. Cancelled queries cannot be confirmed.
func (s QueryService) Cancel(id int64) (models.Query, error) {
	q, err := s.Get(id)
	if err != nil {
		return models.Query{}, err
	}
	if q.Status == models.QueryCancelled {
		return q, nil
	}

	if err := s.Queries.UpdateStatus(id, models.QueryCancelled); err != nil {
		return models.Query{}, err
	}
	q.Status = models.QueryCancelled
	utils.LogEvent(s.RequestID, "query", "cancel", "id="+strconv.FormatInt(id, 10))
	return q, nil
}
