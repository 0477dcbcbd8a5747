package services

import (
	"strconv"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/repositories"
	"tourdesk/internal/utils"
)

// ConfirmationService turns a Pending query into a Confirmed plan: traveler
// roster, flattened per-destination services, guide assignments, itinerary
// text and the visa flag, written atomically together with the status flip.
type ConfirmationService struct {
	Queries       repositories.QueryRepository
	Confirmations repositories.ConfirmationRepository
	RequestID     string
}

// ConfirmationInput is the grouped editing shape submitted by the
// confirmation screen. ServiceGroups is index-aligned with the query's
// ordered destination list.
type ConfirmationInput struct {
	IsVisaIncluded bool                   `json:"isVisaIncluded"`
	FinalItinerary string                 `json:"finalItinerary"`
	TourLeads      []models.TourLead      `json:"tourLeads"`
	Guides         []models.Guide         `json:"guides"`
	ServiceGroups  [][]models.TripService `json:"serviceGroups"`
}

// Confirm validates the query and payload, flattens the grouped services
// against the ordered destination list and issues one atomic write. The
// query status becomes Confirmed only if that write succeeds; a failure
// leaves prior state untouched. Re-confirming an already-Confirmed query
// overwrites the existing plan.
func (s ConfirmationService) Confirm(queryID int64, in ConfirmationInput) (models.ConfirmedQuery, error) {
	q, err := s.Queries.GetByID(queryID)
	if err != nil {
		return models.ConfirmedQuery{}, err
	}
	if !q.Active {
		return models.ConfirmedQuery{}, domain.NotFoundError{Resource: "query"}
	}
	if q.Status == models.QueryCancelled {
		return models.ConfirmedQuery{}, domain.ValidationError{Field: "status", Msg: "cancelled query cannot be confirmed"}
	}
	if len(q.Destinations) == 0 {
		return models.ConfirmedQuery{}, domain.ValidationError{Field: "destinations", Msg: "query has no destinations"}
	}
	if len(in.TourLeads) == 0 {
		return models.ConfirmedQuery{}, domain.ValidationError{Field: "tourLeads", Msg: "at least one tour lead is required"}
	}
	if len(in.Guides) == 0 {
		return models.ConfirmedQuery{}, domain.ValidationError{Field: "guides", Msg: "at least one guide is required"}
	}

	for di := range in.ServiceGroups {
		for si := range in.ServiceGroups[di] {
			svc := &in.ServiceGroups[di][si]
			coerceService(svc)
			if err := svc.Validate(); err != nil {
				return models.ConfirmedQuery{}, err
			}
		}
	}

	cq := models.ConfirmedQuery{
		QueryID:        queryID,
		IsVisaIncluded: in.IsVisaIncluded,
		FinalItinerary: in.FinalItinerary,
		TourLeads:      in.TourLeads,
		Services:       models.FlattenServices(q.Destinations, in.ServiceGroups),
		Guides:         in.Guides,
	}

	if err := s.Confirmations.SaveConfirmation(cq); err != nil {
		return models.ConfirmedQuery{}, err
	}

	utils.LogEvent(s.RequestID, "confirmation", "confirm",
		"query_id="+strconv.FormatInt(queryID, 10)+" services="+strconv.Itoa(len(cq.Services)))
	return cq, nil
}

// coerceService normalizes all datetime fields to absolute instants and
// drops whatever does not belong to the active variant. Numeric fields are
// already zero-defaulted by decoding.
func coerceService(svc *models.TripService) {
	svc.ServiceDateTime = utils.NormalizeDateTime(svc.ServiceDateTime)
	svc.CheckInDateTime = utils.NormalizeDateTime(svc.CheckInDateTime)
	svc.CheckOutDateTime = utils.NormalizeDateTime(svc.CheckOutDateTime)
	svc.Normalize()
}

// Get loads the stored confirmation for a query.
func (s ConfirmationService) Get(queryID int64) (models.ConfirmedQuery, error) {
	return s.Confirmations.GetByQueryID(queryID)
}

// GetGrouped returns the confirmation with services regrouped per
// destination index for the edit screen.
func (s ConfirmationService) GetGrouped(queryID int64) (models.ConfirmedQuery, [][]models.TripService, error) {
	q, err := s.Queries.GetByID(queryID)
	if err != nil {
		return models.ConfirmedQuery{}, nil, err
	}
	cq, err := s.Confirmations.GetByQueryID(queryID)
	if err != nil {
		return models.ConfirmedQuery{}, nil, err
	}
	return cq, models.GroupServices(q.Destinations, cq.Services), nil
}
