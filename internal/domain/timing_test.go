package domain

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{0, 5}, 5},
		{Position{3, 1}, Position{0, 4}, 6},
		{Position{2, 7}, Position{5, 2}, 8},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := Distance(tt.b, tt.a); got != tt.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestPlanTravelOnTime(t *testing.T) {
	v := Vehicle{VehicleID: 0}
	r := Ride{Start: Position{0, 0}, Finish: Position{0, 5}, Earliest: 0, Latest: 10}

	got := PlanTravel(v, r)
	want := TravelPlan{ToStart: 0, Waiting: 0, RideDistance: 5, Total: 5}
	if got != want {
		t.Fatalf("PlanTravel = %+v, want %+v", got, want)
	}
	if !QualifiesForBonus(v, r) {
		t.Fatalf("expected bonus when arriving at earliest")
	}
}

func TestPlanTravelWaitsForWindow(t *testing.T) {
	v := Vehicle{Pos: Position{1, 1}, Time: 2}
	r := Ride{Start: Position{1, 3}, Finish: Position{4, 3}, Earliest: 10, Latest: 50}

	got := PlanTravel(v, r)
	want := TravelPlan{ToStart: 2, Waiting: 6, RideDistance: 3, Total: 11}
	if got != want {
		t.Fatalf("PlanTravel = %+v, want %+v", got, want)
	}
	if got.FinishesAt(v) != 13 {
		t.Fatalf("FinishesAt = %d, want 13", got.FinishesAt(v))
	}
}

func TestPlanTravelLateArrivalHasNoWaiting(t *testing.T) {
	v := Vehicle{Pos: Position{0, 0}, Time: 20}
	r := Ride{Start: Position{2, 2}, Finish: Position{2, 3}, Earliest: 5, Latest: 100}

	got := PlanTravel(v, r)
	if got.Waiting != 0 {
		t.Fatalf("waiting = %d, want 0", got.Waiting)
	}
	if got.Total != 5 {
		t.Fatalf("total = %d, want 5", got.Total)
	}
	if QualifiesForBonus(v, r) {
		t.Fatalf("late arrival must not qualify for bonus")
	}
}

func TestQualifiesForBonusBoundary(t *testing.T) {
	r := Ride{Start: Position{0, 3}, Finish: Position{0, 6}, Earliest: 5, Latest: 100}

	// arrives at 2+3 = 5 == earliest
	exact := Vehicle{Time: 2}
	if !QualifiesForBonus(exact, r) {
		t.Errorf("arrival exactly at earliest should qualify")
	}

	// arrives at 3+3 = 6, one unit late
	late := Vehicle{Time: 3}
	if QualifiesForBonus(late, r) {
		t.Errorf("arrival one unit after earliest should not qualify")
	}

	early := Vehicle{Time: 0}
	if !QualifiesForBonus(early, r) {
		t.Errorf("early arrival should qualify")
	}
}

func TestVehicleServe(t *testing.T) {
	v := Vehicle{VehicleID: 3, Pos: Position{0, 0}, Time: 4}
	r := Ride{RideID: 7, Start: Position{1, 0}, Finish: Position{1, 4}, Earliest: 0, Latest: 100}

	plan := PlanTravel(v, r)
	v.Serve(&r, plan)

	if !r.Done {
		t.Fatalf("ride should be done")
	}
	if v.Pos != r.Finish {
		t.Fatalf("vehicle pos = %v, want %v", v.Pos, r.Finish)
	}
	if v.Time != 9 {
		t.Fatalf("vehicle time = %d, want 9", v.Time)
	}
}
