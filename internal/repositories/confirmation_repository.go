package repositories

import (
	"database/sql"

	intconfig "tourdesk/internal/config"
	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
)

type ConfirmationRepository struct {
	DB *sql.DB
}

func (r ConfirmationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// SaveConfirmation persists the whole confirmation in one transaction:
// header upsert, full replacement of child rows, and the query's status
// flip to Confirmed. A failed write rolls everything back so the query
// status never changes on a partial confirmation.
func (r ConfirmationRepository) SaveConfirmation(cq models.ConfirmedQuery) error {
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return domain.RemoteError{Op: "confirmation.save", Err: err}
	}
	defer tx.Rollback()

	visa := 0
	if cq.IsVisaIncluded {
		visa = 1
	}
	if _, err := tx.Exec(`
		INSERT INTO confirmed_queries (query_id, is_visa_included, final_itinerary, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
		  is_visa_included=VALUES(is_visa_included),
		  final_itinerary=VALUES(final_itinerary),
		  updated_at=NOW()`,
		cq.QueryID, visa, cq.FinalItinerary,
	); err != nil {
		return domain.RemoteError{Op: "confirmation.save", Err: err}
	}

	for _, table := range []string{"confirmation_tour_leads", "confirmation_services", "confirmation_guides"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE query_id=?`, cq.QueryID); err != nil {
			return domain.RemoteError{Op: "confirmation.save", Err: err}
		}
	}

	for _, lead := range cq.TourLeads {
		if _, err := tx.Exec(`
			INSERT INTO confirmation_tour_leads (query_id, name, gender, age, visa_status)
			VALUES (?, ?, ?, ?, ?)`,
			cq.QueryID, lead.Name, lead.Gender, lead.Age, lead.VisaStatus,
		); err != nil {
			return domain.RemoteError{Op: "confirmation.save", Err: err}
		}
	}

	for i, svc := range cq.Services {
		if _, err := tx.Exec(`
			INSERT INTO confirmation_services (
			  query_id, destination_id, country_id, city_id, position,
			  service_type, supplier_id, supplier_name, service_charge, currency_id, description,
			  pickup_location, drop_location, service_datetime,
			  check_in_datetime, check_out_datetime, meal_type
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			cq.QueryID, svc.DestinationID, svc.CountryID, svc.CityID, i,
			string(svc.Type), svc.SupplierID, svc.SupplierName, svc.ServiceCharge, svc.CurrencyID, svc.Description,
			svc.PickupLocation, svc.DropLocation, svc.ServiceDateTime,
			svc.CheckInDateTime, svc.CheckOutDateTime, string(svc.MealType),
		); err != nil {
			return domain.RemoteError{Op: "confirmation.save", Err: err}
		}
	}

	for _, g := range cq.Guides {
		if _, err := tx.Exec(`
			INSERT INTO confirmation_guides (query_id, supplier_id, supplier_name, name, gender, contact, language)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			cq.QueryID, g.SupplierID, g.SupplierName, g.Name, g.Gender, g.Contact, g.Language,
		); err != nil {
			return domain.RemoteError{Op: "confirmation.save", Err: err}
		}
	}

	if _, err := tx.Exec(`UPDATE queries SET status=?, updated_at=NOW() WHERE id=?`,
		string(models.QueryConfirmed), cq.QueryID,
	); err != nil {
		return domain.RemoteError{Op: "confirmation.save", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return domain.RemoteError{Op: "confirmation.save", Err: err}
	}
	return nil
}

// GetByQueryID loads the confirmation header and all child rows.
func (r ConfirmationRepository) GetByQueryID(queryID int64) (models.ConfirmedQuery, error) {
	if queryID <= 0 {
		return models.ConfirmedQuery{}, domain.ValidationError{Field: "queryId", Msg: "must be positive"}
	}
	db := r.db()

	var cq models.ConfirmedQuery
	var visa int
	err := db.QueryRow(`
		SELECT query_id, COALESCE(is_visa_included,0), COALESCE(final_itinerary,'')
		FROM confirmed_queries WHERE query_id=? LIMIT 1`, queryID,
	).Scan(&cq.QueryID, &visa, &cq.FinalItinerary)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.ConfirmedQuery{}, domain.NotFoundError{Resource: "confirmation"}
		}
		return models.ConfirmedQuery{}, domain.RemoteError{Op: "confirmation.get", Err: err}
	}
	cq.IsVisaIncluded = visa != 0

	if cq.TourLeads, err = r.tourLeads(queryID); err != nil {
		return models.ConfirmedQuery{}, err
	}
	if cq.Services, err = r.services(queryID); err != nil {
		return models.ConfirmedQuery{}, err
	}
	if cq.Guides, err = r.guides(queryID); err != nil {
		return models.ConfirmedQuery{}, err
	}
	return cq, nil
}

func (r ConfirmationRepository) tourLeads(queryID int64) ([]models.TourLead, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(name,''), COALESCE(gender,''), COALESCE(age,0), COALESCE(visa_status,'')
		FROM confirmation_tour_leads WHERE query_id=? ORDER BY id`, queryID)
	if err != nil {
		return nil, domain.RemoteError{Op: "confirmation.tour_leads", Err: err}
	}
	defer rows.Close()

	out := []models.TourLead{}
	for rows.Next() {
		var l models.TourLead
		if err := rows.Scan(&l.ID, &l.Name, &l.Gender, &l.Age, &l.VisaStatus); err != nil {
			return nil, domain.RemoteError{Op: "confirmation.tour_leads", Err: err}
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r ConfirmationRepository) services(queryID int64) ([]models.TripService, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(destination_id,0), COALESCE(country_id,0), COALESCE(city_id,0),
		       COALESCE(service_type,''), COALESCE(supplier_id,0), COALESCE(supplier_name,''),
		       COALESCE(service_charge,0), COALESCE(currency_id,0), COALESCE(description,''),
		       COALESCE(pickup_location,''), COALESCE(drop_location,''), COALESCE(service_datetime,''),
		       COALESCE(check_in_datetime,''), COALESCE(check_out_datetime,''), COALESCE(meal_type,'')
		FROM confirmation_services WHERE query_id=? ORDER BY position, id`, queryID)
	if err != nil {
		return nil, domain.RemoteError{Op: "confirmation.services", Err: err}
	}
	defer rows.Close()

	out := []models.TripService{}
	for rows.Next() {
		var s models.TripService
		var stype, meal string
		if err := rows.Scan(
			&s.ID, &s.DestinationID, &s.CountryID, &s.CityID,
			&stype, &s.SupplierID, &s.SupplierName,
			&s.ServiceCharge, &s.CurrencyID, &s.Description,
			&s.PickupLocation, &s.DropLocation, &s.ServiceDateTime,
			&s.CheckInDateTime, &s.CheckOutDateTime, &meal,
		); err != nil {
			return nil, domain.RemoteError{Op: "confirmation.services", Err: err}
		}
		s.Type = models.ServiceType(stype)
		s.MealType = models.MealType(meal)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r ConfirmationRepository) guides(queryID int64) ([]models.Guide, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(supplier_id,0), COALESCE(supplier_name,''), COALESCE(name,''),
		       COALESCE(gender,''), COALESCE(contact,''), COALESCE(language,'')
		FROM confirmation_guides WHERE query_id=? ORDER BY id`, queryID)
	if err != nil {
		return nil, domain.RemoteError{Op: "confirmation.guides", Err: err}
	}
	defer rows.Close()

	out := []models.Guide{}
	for rows.Next() {
		var g models.Guide
		if err := rows.Scan(&g.ID, &g.SupplierID, &g.SupplierName, &g.Name, &g.Gender, &g.Contact, &g.Language); err != nil {
			return nil, domain.RemoteError{Op: "confirmation.guides", Err: err}
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
