package models

// TourLead is a named traveler on the confirmed trip. Blank entries are
// permitted as long as at least one row exists.
type TourLead struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	VisaStatus string `json:"visaStatus"`
}

// Guide is local personnel assigned to the trip.
type Guide struct {
	ID           int64  `json:"id"`
	SupplierID   int64  `json:"supplierId"`
	SupplierName string `json:"supplierName"`
	Name         string `json:"name"`
	Gender       string `json:"gender"`
	Contact      string `json:"contact"`
	Language     string `json:"language"`
}

// ConfirmedQuery is the operational detail attached to a Query once it is
// confirmed. One-to-one with the query; re-confirmation updates the same
// record in place.
type ConfirmedQuery struct {
	QueryID        int64         `json:"queryId"`
	IsVisaIncluded bool          `json:"isVisaIncluded"`
	FinalItinerary string        `json:"finalItinerary"`
	TourLeads      []TourLead    `json:"tourLeads"`
	Services       []TripService `json:"services"`
	Guides         []Guide       `json:"guides"`
}
