package services

import (
	"testing"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func validQueryInput() QueryInput {
	return QueryInput{
		QueryNo:         "Q-2001",
		HandlerID:       1,
		ClientID:        2,
		OriginCountryID: 3,
		OriginCityID:    30,
		Destinations: []models.Destination{
			{CountryID: 1, CityID: 100},
			{CountryID: 2, CityID: 200},
		},
		TravelDate: "2026-04-01",
		ReturnDate: "2026-04-11",
		Adults:     2,
		Children:   3,
		ChildAges:  []int{4, 8},
		Budget:     7500,
	}
}

func TestQueryCreatePersistsDerivedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO queries").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("INSERT INTO query_destinations").
		WillReturnResult(sqlmock.NewResult(31, 1))
	mock.ExpectExec("INSERT INTO query_destinations").
		WillReturnResult(sqlmock.NewResult(32, 1))
	mock.ExpectCommit()

	svc := QueryService{Queries: repositories.QueryRepository{DB: db}}

	q, err := svc.Create(validQueryInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if q.ID != 21 {
		t.Fatalf("id = %d, want 21", q.ID)
	}
	if q.TotalDays != 10 {
		t.Fatalf("totalDays = %d, want 10", q.TotalDays)
	}
	if q.Status != models.QueryPending {
		t.Fatalf("status = %q, want Pending", q.Status)
	}
	// child ages padded to the children count
	if len(q.ChildAges) != 3 || q.ChildAges[0] != 4 || q.ChildAges[1] != 8 || q.ChildAges[2] != 0 {
		t.Fatalf("childAges = %v, want [4 8 0]", q.ChildAges)
	}
	// destination ids assigned, positions renumbered
	if q.Destinations[0].ID != 31 || q.Destinations[1].ID != 32 {
		t.Fatalf("destination ids not assigned: %+v", q.Destinations)
	}
	if q.Destinations[1].Position != 1 {
		t.Fatalf("positions not renumbered: %+v", q.Destinations)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQueryCreateValidation(t *testing.T) {
	svc := QueryService{}

	cases := []struct {
		name   string
		mutate func(*QueryInput)
	}{
		{"missing query no", func(in *QueryInput) { in.QueryNo = " " }},
		{"no handler", func(in *QueryInput) { in.HandlerID = 0 }},
		{"no client", func(in *QueryInput) { in.ClientID = 0 }},
		{"no destinations", func(in *QueryInput) { in.Destinations = nil }},
		{"negative budget", func(in *QueryInput) { in.Budget = -1 }},
		{"bad travel date", func(in *QueryInput) { in.TravelDate = "01-04-2026" }},
	}
	for _, tc := range cases {
		in := validQueryInput()
		tc.mutate(&in)
		if _, err := svc.Create(in); !domain.IsValidation(err) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestQueryCancelTwiceIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM queries WHERE id=").WithArgs(int64(5)).
		WillReturnRows(queryRows(5, "Cancelled"))
	mock.ExpectQuery("FROM query_destinations").WithArgs(int64(5)).
		WillReturnRows(destinationRows(5))

	svc := QueryService{Queries: repositories.QueryRepository{DB: db}}

	q, err := svc.Cancel(5)
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if q.Status != models.QueryCancelled {
		t.Fatalf("status = %q, want Cancelled", q.Status)
	}
	// no UPDATE expected: cancelling an already-cancelled query is a no-op
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
