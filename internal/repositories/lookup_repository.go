package repositories

import (
	"database/sql"
	"errors"

	intconfig "tourdesk/internal/config"
	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
)

// LookupRepository reads the reference tables maintained by the master-data
// screens. Strictly read-only from this backend's point of view.
type LookupRepository struct {
	DB *sql.DB
}

func (r LookupRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r LookupRepository) Countries() ([]models.Country, error) {
	rows, err := r.db().Query(`SELECT id, COALESCE(name,'') FROM countries ORDER BY name`)
	if err != nil {
		return nil, domain.RemoteError{Op: "lookup.countries", Err: err}
	}
	defer rows.Close()

	out := []models.Country{}
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, domain.RemoteError{Op: "lookup.countries", Err: err}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r LookupRepository) Cities(countryID int64) ([]models.City, error) {
	q := `SELECT id, COALESCE(country_id,0), COALESCE(name,'') FROM cities`
	args := []any{}
	if countryID > 0 {
		q += ` WHERE country_id=?`
		args = append(args, countryID)
	}
	q += ` ORDER BY name`

	rows, err := r.db().Query(q, args...)
	if err != nil {
		return nil, domain.RemoteError{Op: "lookup.cities", Err: err}
	}
	defer rows.Close()

	out := []models.City{}
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.CountryID, &c.Name); err != nil {
			return nil, domain.RemoteError{Op: "lookup.cities", Err: err}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Suppliers lists all suppliers, or only those serving one city when both
// ids are given (the destination-scoped candidate list).
func (r LookupRepository) Suppliers(countryID, cityID int64) ([]models.Supplier, error) {
	q := `SELECT id, COALESCE(name,''), COALESCE(country_id,0), COALESCE(city_id,0) FROM suppliers`
	args := []any{}
	if countryID > 0 && cityID > 0 {
		q += ` WHERE country_id=? AND city_id=?`
		args = append(args, countryID, cityID)
	}
	q += ` ORDER BY name`

	rows, err := r.db().Query(q, args...)
	if err != nil {
		return nil, domain.RemoteError{Op: "lookup.suppliers", Err: err}
	}
	defer rows.Close()

	out := []models.Supplier{}
	for rows.Next() {
		var s models.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.CountryID, &s.CityID); err != nil {
			return nil, domain.RemoteError{Op: "lookup.suppliers", Err: err}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r LookupRepository) Handler(id int64) (models.Handler, error) {
	var h models.Handler
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(phone,''), COALESCE(email,'')
		FROM handlers WHERE id=? LIMIT 1`, id,
	).Scan(&h.ID, &h.Name, &h.Phone, &h.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Handler{}, domain.NotFoundError{Resource: "handler"}
		}
		return models.Handler{}, domain.RemoteError{Op: "lookup.handler", Err: err}
	}
	return h, nil
}

func (r LookupRepository) Client(id int64) (models.Client, error) {
	var c models.Client
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(phone,''), COALESCE(email,'')
		FROM clients WHERE id=? LIMIT 1`, id,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Client{}, domain.NotFoundError{Resource: "client"}
		}
		return models.Client{}, domain.RemoteError{Op: "lookup.client", Err: err}
	}
	return c, nil
}

func (r LookupRepository) Currencies() ([]models.Currency, error) {
	rows, err := r.db().Query(`SELECT id, COALESCE(code,''), COALESCE(name,'') FROM currencies ORDER BY code`)
	if err != nil {
		return nil, domain.RemoteError{Op: "lookup.currencies", Err: err}
	}
	defer rows.Close()

	out := []models.Currency{}
	for rows.Next() {
		var c models.Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			return nil, domain.RemoteError{Op: "lookup.currencies", Err: err}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
