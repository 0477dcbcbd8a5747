package models

import "testing"

func TestSetDatesComputesTotalDays(t *testing.T) {
	var q Query
	if err := q.SetDates("2026-03-01", "2026-03-08"); err != nil {
		t.Fatalf("SetDates returned error: %v", err)
	}
	if q.TotalDays != 7 {
		t.Fatalf("totalDays = %d, want 7", q.TotalDays)
	}
}

func TestSetDatesNeverNegative(t *testing.T) {
	var q Query
	if err := q.SetDates("2026-03-08", "2026-03-01"); err != nil {
		t.Fatalf("SetDates returned error: %v", err)
	}
	if q.TotalDays != 0 {
		t.Fatalf("totalDays = %d, want 0 for inverted dates", q.TotalDays)
	}
}

func TestSetDatesRejectsBadFormat(t *testing.T) {
	var q Query
	if err := q.SetDates("03/01/2026", "2026-03-08"); err == nil {
		t.Fatalf("expected error for malformed travelDate")
	}
}

func TestSetChildrenCountResizesAges(t *testing.T) {
	q := Query{Children: 2, ChildAges: []int{5, 9}}

	q.SetChildrenCount(4)
	if len(q.ChildAges) != 4 {
		t.Fatalf("len(childAges) = %d, want 4", len(q.ChildAges))
	}
	if q.ChildAges[0] != 5 || q.ChildAges[1] != 9 {
		t.Fatalf("existing ages not preserved: %v", q.ChildAges)
	}
	if q.ChildAges[2] != 0 || q.ChildAges[3] != 0 {
		t.Fatalf("new ages must default to 0: %v", q.ChildAges)
	}

	q.SetChildrenCount(1)
	if len(q.ChildAges) != 1 || q.ChildAges[0] != 5 {
		t.Fatalf("shrink lost prefix: %v", q.ChildAges)
	}
}

func TestSetChildrenCountIdempotent(t *testing.T) {
	q := Query{}
	q.SetChildrenCount(3)
	q.ChildAges[1] = 7
	q.SetChildrenCount(3)

	if len(q.ChildAges) != 3 {
		t.Fatalf("len(childAges) = %d, want 3", len(q.ChildAges))
	}
	if q.ChildAges[1] != 7 {
		t.Fatalf("repeated call with same n must not touch entries: %v", q.ChildAges)
	}
}

func TestRemoveDestinationKeepsAtLeastOne(t *testing.T) {
	q := Query{Destinations: []Destination{{CountryID: 1, CityID: 10}}}

	if err := q.RemoveDestination(0); err == nil {
		t.Fatalf("removing the last destination must fail")
	}

	q.AddDestination()
	if err := q.RemoveDestination(0); err != nil {
		t.Fatalf("RemoveDestination returned error: %v", err)
	}
	if len(q.Destinations) != 1 {
		t.Fatalf("len(destinations) = %d, want 1", len(q.Destinations))
	}
	if q.Destinations[0].Position != 0 {
		t.Fatalf("positions not renumbered: %+v", q.Destinations)
	}
}
