package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "tourdesk/internal/config"
	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/utils"
)

type QueryRepository struct {
	DB *sql.DB
}

func (r QueryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const queryColumns = `id,
       COALESCE(query_no,''),
       COALESCE(handler_id,0),
       COALESCE(client_id,0),
       COALESCE(origin_country_id,0),
       COALESCE(origin_city_id,0),
       COALESCE(travel_date,''),
       COALESCE(return_date,''),
       COALESCE(total_days,0),
       COALESCE(adults,0),
       COALESCE(children,0),
       COALESCE(infants,0),
       COALESCE(child_ages,''),
       COALESCE(budget,0),
       COALESCE(status,'Pending'),
       COALESCE(special_requirements,''),
       COALESCE(active,1)`

func scanQuery(row interface{ Scan(...any) error }) (models.Query, error) {
	var q models.Query
	var childAges string
	var active int
	err := row.Scan(
		&q.ID,
		&q.QueryNo,
		&q.HandlerID,
		&q.ClientID,
		&q.OriginCountryID,
		&q.OriginCityID,
		&q.TravelDate,
		&q.ReturnDate,
		&q.TotalDays,
		&q.Adults,
		&q.Children,
		&q.Infants,
		&childAges,
		&q.Budget,
		&q.Status,
		&q.SpecialRequirements,
		&active,
	)
	if err != nil {
		return models.Query{}, err
	}
	q.ChildAges = utils.SplitInts(childAges)
	q.Active = active != 0
	return q, nil
}

// List returns active queries, optionally filtered by status, newest first.
func (r QueryRepository) List(status string) ([]models.Query, error) {
	db := r.db()

	q := `SELECT ` + queryColumns + ` FROM queries WHERE active=1`
	args := []any{}
	if s := strings.TrimSpace(status); s != "" {
		q += ` AND status=?`
		args = append(args, s)
	}
	q += ` ORDER BY id DESC`

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, domain.RemoteError{Op: "queries.list", Err: err}
	}
	defer rows.Close()

	out := []models.Query{}
	ids := []int64{}
	for rows.Next() {
		item, err := scanQuery(rows)
		if err != nil {
			return nil, domain.RemoteError{Op: "queries.list", Err: err}
		}
		out = append(out, item)
		ids = append(ids, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.RemoteError{Op: "queries.list", Err: err}
	}

	dests, err := r.destinationsFor(ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Destinations = dests[out[i].ID]
	}
	return out, nil
}

// GetByID loads one query with its ordered destination list.
func (r QueryRepository) GetByID(id int64) (models.Query, error) {
	if id <= 0 {
		return models.Query{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()

	row := db.QueryRow(`SELECT `+queryColumns+` FROM queries WHERE id=? LIMIT 1`, id)
	q, err := scanQuery(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Query{}, domain.NotFoundError{Resource: "query"}
		}
		return models.Query{}, domain.RemoteError{Op: "queries.get", Err: err}
	}

	dests, err := r.destinationsFor([]int64{id})
	if err != nil {
		return models.Query{}, err
	}
	q.Destinations = dests[id]
	return q, nil
}

func (r QueryRepository) destinationsFor(queryIDs []int64) (map[int64][]models.Destination, error) {
	out := map[int64][]models.Destination{}
	if len(queryIDs) == 0 {
		return out, nil
	}
	db := r.db()

	placeholders := make([]string, len(queryIDs))
	args := make([]any, len(queryIDs))
	for i, id := range queryIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	rows, err := db.Query(`
		SELECT query_id, id, COALESCE(country_id,0), COALESCE(city_id,0), COALESCE(position,0)
		FROM query_destinations
		WHERE query_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY query_id, position, id`, args...)
	if err != nil {
		return nil, domain.RemoteError{Op: "queries.destinations", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var queryID int64
		var d models.Destination
		if err := rows.Scan(&queryID, &d.ID, &d.CountryID, &d.CityID, &d.Position); err != nil {
			return nil, domain.RemoteError{Op: "queries.destinations", Err: err}
		}
		out[queryID] = append(out[queryID], d)
	}
	return out, rows.Err()
}

// Create inserts the query and its destinations in one transaction.
func (r QueryRepository) Create(q *models.Query) error {
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return domain.RemoteError{Op: "queries.create", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO queries (
		  query_no, handler_id, client_id, origin_country_id, origin_city_id,
		  travel_date, return_date, total_days, adults, children, infants,
		  child_ages, budget, status, special_requirements, active,
		  created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, NOW(), NOW())`,
		q.QueryNo, q.HandlerID, q.ClientID, q.OriginCountryID, q.OriginCityID,
		q.TravelDate, q.ReturnDate, q.TotalDays, q.Adults, q.Children, q.Infants,
		utils.JoinInts(q.ChildAges), q.Budget, string(q.Status), q.SpecialRequirements,
	)
	if err != nil {
		return domain.RemoteError{Op: "queries.create", Err: err}
	}
	id, _ := res.LastInsertId()
	q.ID = id

	if err := replaceDestinations(tx, q); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.RemoteError{Op: "queries.create", Err: err}
	}
	return nil
}

// Update rewrites the query row and replaces its destination list.
func (r QueryRepository) Update(q *models.Query) error {
	if q.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return domain.RemoteError{Op: "queries.update", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE queries SET
		  query_no=?, handler_id=?, client_id=?, origin_country_id=?, origin_city_id=?,
		  travel_date=?, return_date=?, total_days=?, adults=?, children=?, infants=?,
		  child_ages=?, budget=?, special_requirements=?, updated_at=NOW()
		WHERE id=? AND active=1`,
		q.QueryNo, q.HandlerID, q.ClientID, q.OriginCountryID, q.OriginCityID,
		q.TravelDate, q.ReturnDate, q.TotalDays, q.Adults, q.Children, q.Infants,
		utils.JoinInts(q.ChildAges), q.Budget, q.SpecialRequirements, q.ID,
	)
	if err != nil {
		return domain.RemoteError{Op: "queries.update", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// either gone or untouched; confirm existence before reporting not found
		var exists int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM queries WHERE id=? AND active=1`, q.ID).Scan(&exists); err == nil && exists == 0 {
			return domain.NotFoundError{Resource: "query"}
		}
	}

	if _, err := tx.Exec(`DELETE FROM query_destinations WHERE query_id=?`, q.ID); err != nil {
		return domain.RemoteError{Op: "queries.update", Err: err}
	}
	if err := replaceDestinations(tx, q); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.RemoteError{Op: "queries.update", Err: err}
	}
	return nil
}

func replaceDestinations(tx *sql.Tx, q *models.Query) error {
	for i := range q.Destinations {
		d := &q.Destinations[i]
		d.Position = i
		res, err := tx.Exec(`
			INSERT INTO query_destinations (query_id, country_id, city_id, position)
			VALUES (?, ?, ?, ?)`,
			q.ID, d.CountryID, d.CityID, d.Position,
		)
		if err != nil {
			return domain.RemoteError{Op: "queries.destinations", Err: err}
		}
		id, _ := res.LastInsertId()
		d.ID = id
	}
	return nil
}

// Deactivate soft-deletes a query. Rows are never removed physically.
func (r QueryRepository) Deactivate(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()

	res, err := db.Exec(`UPDATE queries SET active=0, updated_at=NOW() WHERE id=? AND active=1`, id)
	if err != nil {
		return domain.RemoteError{Op: "queries.deactivate", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "query"}
	}
	return nil
}

// UpdateStatus flips the query status outside a confirmation transaction
// (e.g. cancelling).
func (r QueryRepository) UpdateStatus(id int64, status models.QueryStatus) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()

	// RowsAffected is 0 when the status is unchanged, so existence is the
	// caller's concern here.
	_, err := db.Exec(`UPDATE queries SET status=?, updated_at=NOW() WHERE id=? AND active=1`, string(status), id)
	if err != nil {
		return domain.RemoteError{Op: "queries.status", Err: err}
	}
	return nil
}
