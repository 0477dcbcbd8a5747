package models

import (
	"time"

	"tourdesk/internal/domain"
)

type QueryStatus string

const (
	QueryPending   QueryStatus = "Pending"
	QueryConfirmed QueryStatus = "Confirmed"
	QueryCancelled QueryStatus = "Cancelled"
)

// Destination is one stop on the trip, ordered by Position.
type Destination struct {
	ID        int64 `json:"id"`
	CountryID int64 `json:"countryId"`
	CityID    int64 `json:"cityId"`
	Position  int   `json:"position"`
}

// Query is a trip request. Rows are never physically deleted, only
// deactivated via Active.
type Query struct {
	ID                  int64         `json:"id"`
	QueryNo             string        `json:"queryNo"`
	HandlerID           int64         `json:"handlerId"`
	ClientID            int64         `json:"clientId"`
	OriginCountryID     int64         `json:"originCountryId"`
	OriginCityID        int64         `json:"originCityId"`
	Destinations        []Destination `json:"destinations"`
	TravelDate          string        `json:"travelDate"` // YYYY-MM-DD
	ReturnDate          string        `json:"returnDate"` // YYYY-MM-DD
	TotalDays           int           `json:"totalDays"`  // derived from the two dates
	Adults              int           `json:"adults"`
	Children            int           `json:"children"`
	Infants             int           `json:"infants"`
	ChildAges           []int         `json:"childAges"` // always len == Children
	Budget              float64       `json:"budget"`
	Status              QueryStatus   `json:"status"`
	SpecialRequirements string        `json:"specialRequirements"`
	Active              bool          `json:"active"`
}

const dateLayout = "2006-01-02"

// SetDates stores both trip dates and recomputes TotalDays as a
// non-negative whole-day difference.
func (q *Query) SetDates(travelDate, returnDate string) error {
	start, err := time.Parse(dateLayout, travelDate)
	if err != nil {
		return domain.ValidationError{Field: "travelDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	end, err := time.Parse(dateLayout, returnDate)
	if err != nil {
		return domain.ValidationError{Field: "returnDate", Msg: "expected YYYY-MM-DD", Err: err}
	}

	q.TravelDate = travelDate
	q.ReturnDate = returnDate

	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		days = 0
	}
	q.TotalDays = days
	return nil
}

// SetChildrenCount resizes ChildAges to n, keeping existing entries by
// position and defaulting new ones to age 0. Idempotent for equal n.
func (q *Query) SetChildrenCount(n int) {
	if n < 0 {
		n = 0
	}
	q.Children = n

	switch {
	case len(q.ChildAges) > n:
		q.ChildAges = q.ChildAges[:n]
	case len(q.ChildAges) < n:
		grown := make([]int, n)
		copy(grown, q.ChildAges)
		q.ChildAges = grown
	}
}

// AddDestination appends an empty destination slot at the end of the list.
func (q *Query) AddDestination() {
	q.Destinations = append(q.Destinations, Destination{Position: len(q.Destinations)})
}

// RemoveDestination drops the destination at index i. The list may never
// become empty; removing the last remaining entry is rejected.
func (q *Query) RemoveDestination(i int) error {
	if i < 0 || i >= len(q.Destinations) {
		return domain.ValidationError{Field: "destinations", Msg: "index out of range"}
	}
	if len(q.Destinations) == 1 {
		return domain.ValidationError{Field: "destinations", Msg: "at least one destination is required"}
	}
	q.Destinations = append(q.Destinations[:i], q.Destinations[i+1:]...)
	for idx := range q.Destinations {
		q.Destinations[idx].Position = idx
	}
	return nil
}
