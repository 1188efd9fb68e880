package domain

// Time units a vehicle spends on a ride if it takes the ride now.
type TravelPlan struct {
	ToStart      int
	Waiting      int
	RideDistance int
	Total        int
}

// FinishesAt is the vehicle clock after serving the ride.
func (p TravelPlan) FinishesAt(v Vehicle) int {
	return v.Time + p.Total
}

// PlanTravel computes the cost of vehicle v serving ride r from its current state.
// Arriving before Earliest means idling until the window opens; arriving late
// costs no waiting (callers check lateness against Latest).
func PlanTravel(v Vehicle, r Ride) TravelPlan {
	toStart := Distance(v.Pos, r.Start)

	waiting := r.Earliest - (v.Time + toStart)
	if waiting < 0 {
		waiting = 0
	}

	rideDistance := Distance(r.Start, r.Finish)

	return TravelPlan{
		ToStart:      toStart,
		Waiting:      waiting,
		RideDistance: rideDistance,
		Total:        toStart + waiting + rideDistance,
	}
}

// QualifiesForBonus reports whether v would reach the ride start at or before
// Earliest. It does not clamp and does not look at Latest.
func QualifiesForBonus(v Vehicle, r Ride) bool {
	slack := r.Earliest - (v.Time + Distance(v.Pos, r.Start))
	return slack >= 0
}
