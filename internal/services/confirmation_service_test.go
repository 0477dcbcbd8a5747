package services

import (
	"testing"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func queryRows(id int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "query_no", "handler_id", "client_id", "origin_country_id", "origin_city_id",
		"travel_date", "return_date", "total_days", "adults", "children", "infants",
		"child_ages", "budget", "status", "special_requirements", "active",
	}).AddRow(id, "Q-1001", 1, 2, 1, 10, "2026-03-01", "2026-03-08", 7, 2, 1, 0, "6", 5000.0, status, "", 1)
}

func destinationRows(queryID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"query_id", "id", "country_id", "city_id", "position"}).
		AddRow(queryID, 11, 1, 100, 0).
		AddRow(queryID, 12, 2, 200, 1)
}

func confirmationInput() ConfirmationInput {
	return ConfirmationInput{
		IsVisaIncluded: true,
		FinalItinerary: "Day 1: arrival",
		TourLeads:      []models.TourLead{{Name: "A. Traveler", Gender: "F", Age: 34}},
		Guides:         []models.Guide{{SupplierID: 5, Name: "Guide One", Language: "English"}},
		ServiceGroups: [][]models.TripService{
			{{Type: models.ServiceTransport, SupplierID: 5, ServiceCharge: 120, PickupLocation: "Airport", DropLocation: "Hotel", ServiceDateTime: "2026-03-01T10:00:00Z"}},
			{{Type: models.ServiceHotel, SupplierID: 6, ServiceCharge: 900, CheckInDateTime: "2026-03-01 14:00:00", CheckOutDateTime: "2026-03-04 11:00:00"}},
		},
	}
}

func TestConfirmWritesAtomically(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM queries WHERE id=").WithArgs(int64(1)).
		WillReturnRows(queryRows(1, "Pending"))
	mock.ExpectQuery("FROM query_destinations").WithArgs(int64(1)).
		WillReturnRows(destinationRows(1))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO confirmed_queries").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM confirmation_tour_leads").WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM confirmation_services").WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM confirmation_guides").WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO confirmation_tour_leads").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO confirmation_services").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO confirmation_services").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO confirmation_guides").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE queries SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := ConfirmationService{
		Queries:       repositories.QueryRepository{DB: db},
		Confirmations: repositories.ConfirmationRepository{DB: db},
	}

	cq, err := svc.Confirm(1, confirmationInput())
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}

	if len(cq.Services) != 2 {
		t.Fatalf("len(services) = %d, want 2", len(cq.Services))
	}
	// services stamped from destinations by position
	if cq.Services[0].CountryID != 1 || cq.Services[0].CityID != 100 || cq.Services[0].DestinationID != 11 {
		t.Fatalf("first service not stamped from first destination: %+v", cq.Services[0])
	}
	if cq.Services[1].CountryID != 2 || cq.Services[1].CityID != 200 {
		t.Fatalf("second service not stamped from second destination: %+v", cq.Services[1])
	}
	// transport datetime coerced to the canonical instant layout
	if cq.Services[0].ServiceDateTime != "2026-03-01 10:00:00" {
		t.Fatalf("serviceDateTime = %q, want normalized instant", cq.Services[0].ServiceDateTime)
	}
	// hotel variant must not carry transport fields
	if cq.Services[1].PickupLocation != "" || cq.Services[1].ServiceDateTime != "" {
		t.Fatalf("hotel service kept foreign variant fields: %+v", cq.Services[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmFailedWriteRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM queries WHERE id=").WithArgs(int64(1)).
		WillReturnRows(queryRows(1, "Pending"))
	mock.ExpectQuery("FROM query_destinations").WithArgs(int64(1)).
		WillReturnRows(destinationRows(1))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO confirmed_queries").
		WillReturnError(errBoom{})
	mock.ExpectRollback()

	svc := ConfirmationService{
		Queries:       repositories.QueryRepository{DB: db},
		Confirmations: repositories.ConfirmationRepository{DB: db},
	}

	if _, err := svc.Confirm(1, confirmationInput()); !domain.IsRemote(err) {
		t.Fatalf("expected remote failure, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmUnknownQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM queries WHERE id=").WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := ConfirmationService{
		Queries:       repositories.QueryRepository{DB: db},
		Confirmations: repositories.ConfirmationRepository{DB: db},
	}

	if _, err := svc.Confirm(404, confirmationInput()); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestConfirmRejectsCancelledQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM queries WHERE id=").WithArgs(int64(2)).
		WillReturnRows(queryRows(2, "Cancelled"))
	mock.ExpectQuery("FROM query_destinations").WithArgs(int64(2)).
		WillReturnRows(destinationRows(2))

	svc := ConfirmationService{
		Queries:       repositories.QueryRepository{DB: db},
		Confirmations: repositories.ConfirmationRepository{DB: db},
	}

	if _, err := svc.Confirm(2, confirmationInput()); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestConfirmRequiresLeadsAndGuides(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	for i := 0; i < 2; i++ {
		mock.ExpectQuery("FROM queries WHERE id=").WithArgs(int64(1)).
			WillReturnRows(queryRows(1, "Pending"))
		mock.ExpectQuery("FROM query_destinations").WithArgs(int64(1)).
			WillReturnRows(destinationRows(1))
	}

	svc := ConfirmationService{
		Queries:       repositories.QueryRepository{DB: db},
		Confirmations: repositories.ConfirmationRepository{DB: db},
	}

	noLeads := confirmationInput()
	noLeads.TourLeads = nil
	if _, err := svc.Confirm(1, noLeads); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for empty tour leads, got %v", err)
	}

	noGuides := confirmationInput()
	noGuides.Guides = nil
	if _, err := svc.Confirm(1, noGuides); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for empty guides, got %v", err)
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
