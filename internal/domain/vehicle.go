package domain

// Fleet member that serves rides one after another.
type Vehicle struct {
	VehicleID int
	Pos       Position
	Time      int
}

// NewFleet returns n vehicles parked at (0,0) at time 0.
func NewFleet(n int) []Vehicle {
	fleet := make([]Vehicle, 0, n)
	for i := 0; i < n; i++ {
		fleet = append(fleet, Vehicle{VehicleID: i})
	}
	return fleet
}

// Serve commits the vehicle to the ride using a precomputed travel plan.
// The ride is marked done, the vehicle moves to the ride's finish and its
// clock advances by the full trip cost.
func (v *Vehicle) Serve(r *Ride, plan TravelPlan) {
	r.Done = true
	v.Pos = r.Finish
	v.Time += plan.Total
}
