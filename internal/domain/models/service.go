package models

import (
	"strings"

	"tourdesk/internal/domain"
)

type ServiceType string

const (
	ServiceTransport  ServiceType = "Transport"
	ServiceHotel      ServiceType = "Hotel"
	ServiceRestaurant ServiceType = "Restaurant"
)

type MealType string

const (
	MealLunch  MealType = "Lunch"
	MealDinner MealType = "Dinner"
)

// TripService is one bookable item attached to a destination. The struct is
// a tagged union over Type: only the fields of the active variant are
// meaningful, the rest are zeroed on submit by Normalize.
type TripService struct {
	ID            int64       `json:"id"`
	DestinationID int64       `json:"destinationId"` // stable FK when the destination row is persisted
	CountryID     int64       `json:"countryId"`
	CityID        int64       `json:"cityId"`
	Type          ServiceType `json:"serviceType"`
	SupplierID    int64       `json:"supplierId"`
	SupplierName  string      `json:"supplierName"` // resolved display field
	ServiceCharge float64     `json:"serviceCharge"`
	CurrencyID    int64       `json:"currencyId"`
	Description   string      `json:"description"`

	// Transport
	PickupLocation string `json:"pickupLocation,omitempty"`
	DropLocation   string `json:"dropLocation,omitempty"`

	// Transport and Restaurant
	ServiceDateTime string `json:"serviceDateTime,omitempty"` // YYYY-MM-DD HH:MM:SS

	// Hotel
	CheckInDateTime  string `json:"checkInDateTime,omitempty"`
	CheckOutDateTime string `json:"checkOutDateTime,omitempty"`

	// Restaurant
	MealType MealType `json:"mealType,omitempty"`
}

// Normalize zeroes every field that does not belong to the active variant.
func (s *TripService) Normalize() {
	switch s.Type {
	case ServiceTransport:
		s.CheckInDateTime = ""
		s.CheckOutDateTime = ""
		s.MealType = ""
	case ServiceHotel:
		s.PickupLocation = ""
		s.DropLocation = ""
		s.ServiceDateTime = ""
		s.MealType = ""
	case ServiceRestaurant:
		s.PickupLocation = ""
		s.DropLocation = ""
		s.CheckInDateTime = ""
		s.CheckOutDateTime = ""
	}
}

// Validate checks the common fields and the declared variant.
func (s TripService) Validate() error {
	switch s.Type {
	case ServiceTransport, ServiceHotel, ServiceRestaurant:
	default:
		return domain.ValidationError{Field: "serviceType", Msg: "unknown service type"}
	}
	if s.ServiceCharge < 0 {
		return domain.ValidationError{Field: "serviceCharge", Msg: "must not be negative"}
	}
	if s.Type == ServiceRestaurant && s.MealType != "" &&
		s.MealType != MealLunch && s.MealType != MealDinner {
		return domain.ValidationError{Field: "mealType", Msg: "must be Lunch or Dinner"}
	}
	return nil
}

// ServicePlan holds services grouped per destination index, the shape the
// confirmation edit screens work with. Groups is kept index-aligned with
// the query's ordered destination list.
type ServicePlan struct {
	Groups [][]TripService `json:"groups"`
}

func NewServicePlan(destinationCount int) ServicePlan {
	if destinationCount < 0 {
		destinationCount = 0
	}
	return ServicePlan{Groups: make([][]TripService, destinationCount)}
}

// AddService appends a default Transport-typed record to a destination group.
func (p *ServicePlan) AddService(destIdx int) error {
	if destIdx < 0 || destIdx >= len(p.Groups) {
		return domain.ValidationError{Field: "destinationIndex", Msg: "index out of range"}
	}
	p.Groups[destIdx] = append(p.Groups[destIdx], TripService{Type: ServiceTransport})
	return nil
}

// RemoveService drops one record from a destination group.
func (p *ServicePlan) RemoveService(destIdx, svcIdx int) error {
	if destIdx < 0 || destIdx >= len(p.Groups) {
		return domain.ValidationError{Field: "destinationIndex", Msg: "index out of range"}
	}
	group := p.Groups[destIdx]
	if svcIdx < 0 || svcIdx >= len(group) {
		return domain.ValidationError{Field: "serviceIndex", Msg: "index out of range"}
	}
	p.Groups[destIdx] = append(group[:svcIdx], group[svcIdx+1:]...)
	return nil
}

// SetSupplier updates supplierId on one record and re-resolves the display
// SupplierName from the destination-scoped candidates, falling back to the
// global supplier list. Pure lookup, no I/O.
func (p *ServicePlan) SetSupplier(destIdx, svcIdx int, supplierID int64, local, global []Supplier) error {
	if destIdx < 0 || destIdx >= len(p.Groups) {
		return domain.ValidationError{Field: "destinationIndex", Msg: "index out of range"}
	}
	if svcIdx < 0 || svcIdx >= len(p.Groups[destIdx]) {
		return domain.ValidationError{Field: "serviceIndex", Msg: "index out of range"}
	}
	svc := &p.Groups[destIdx][svcIdx]
	svc.SupplierID = supplierID
	svc.SupplierName = ResolveSupplierName(supplierID, local, global)
	return nil
}

// ResolveSupplierName finds the display name for a supplier id, preferring
// the destination-scoped candidate list.
func ResolveSupplierName(supplierID int64, local, global []Supplier) string {
	for _, s := range local {
		if s.ID == supplierID {
			return strings.TrimSpace(s.Name)
		}
	}
	for _, s := range global {
		if s.ID == supplierID {
			return strings.TrimSpace(s.Name)
		}
	}
	return ""
}

// FlattenServices turns the grouped editing shape into the flat wire shape.
// Services are matched to destinations by position: group i is stamped with
// the destination at index i of the ordered list. Output length always
// equals the sum of group lengths and order is preserved.
//
// Positional matching is fragile under reordering; the stamped
// DestinationID keeps a stable reference for rows that have one.
func FlattenServices(dests []Destination, groups [][]TripService) []TripService {
	out := []TripService{}
	for i, group := range groups {
		if i >= len(dests) {
			break
		}
		for _, svc := range group {
			svc.DestinationID = dests[i].ID
			svc.CountryID = dests[i].CountryID
			svc.CityID = dests[i].CityID
			out = append(out, svc)
		}
	}
	return out
}

// GroupServices is the inverse of FlattenServices, rebuilding per-destination
// groups for the edit screen from flat rows, matched by destination fields.
func GroupServices(dests []Destination, flat []TripService) [][]TripService {
	groups := make([][]TripService, len(dests))
	for _, svc := range flat {
		for i, d := range dests {
			if matchesDestination(svc, d) {
				groups[i] = append(groups[i], svc)
				break
			}
		}
	}
	return groups
}

func matchesDestination(svc TripService, d Destination) bool {
	if svc.DestinationID != 0 && d.ID != 0 {
		return svc.DestinationID == d.ID
	}
	return svc.CountryID == d.CountryID && svc.CityID == d.CityID
}
