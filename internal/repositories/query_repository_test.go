package repositories

import (
	"testing"

	"tourdesk/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var queryScanColumns = []string{
	"id", "query_no", "handler_id", "client_id", "origin_country_id", "origin_city_id",
	"travel_date", "return_date", "total_days", "adults", "children", "infants",
	"child_ages", "budget", "status", "special_requirements", "active",
}

func TestQueryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM queries WHERE id=").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(queryScanColumns))

	repo := QueryRepository{DB: db}

	if _, err := repo.GetByID(99); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestQueryListAttachesDestinations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	queries := sqlmock.NewRows(queryScanColumns).
		AddRow(2, "Q-2002", 1, 2, 3, 30, "2026-05-01", "2026-05-04", 3, 2, 0, 0, "", 3000.0, "Pending", "", 1).
		AddRow(1, "Q-2001", 1, 2, 3, 30, "2026-04-01", "2026-04-11", 10, 2, 1, 0, "6", 7500.0, "Confirmed", "", 1)

	mock.ExpectQuery("FROM queries WHERE active=1").
		WillReturnRows(queries)

	dests := sqlmock.NewRows([]string{"query_id", "id", "country_id", "city_id", "position"}).
		AddRow(1, 11, 1, 100, 0).
		AddRow(1, 12, 2, 200, 1).
		AddRow(2, 13, 4, 400, 0)

	mock.ExpectQuery("FROM query_destinations").
		WithArgs(int64(2), int64(1)).
		WillReturnRows(dests)

	repo := QueryRepository{DB: db}

	out, err := repo.List("")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d queries, want 2", len(out))
	}
	// newest first, each with its own destinations
	if out[0].ID != 2 || len(out[0].Destinations) != 1 {
		t.Fatalf("query 2 destinations wrong: %+v", out[0])
	}
	if out[1].ID != 1 || len(out[1].Destinations) != 2 {
		t.Fatalf("query 1 destinations wrong: %+v", out[1])
	}
	if out[1].Destinations[1].CityID != 200 {
		t.Fatalf("destination ordering wrong: %+v", out[1].Destinations)
	}
	if len(out[1].ChildAges) != 1 || out[1].ChildAges[0] != 6 {
		t.Fatalf("child ages not decoded: %v", out[1].ChildAges)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQueryListFiltersByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("AND status=").
		WithArgs("Pending").
		WillReturnRows(sqlmock.NewRows(queryScanColumns))

	repo := QueryRepository{DB: db}

	out, err := repo.List("Pending")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty list, got %d", len(out))
	}
}
