package domain

// Represents a single transport request.
// RideID is the 0-based index of the ride in its problem file.
// Done flips to true exactly once, when a vehicle is committed to the ride.
type Ride struct {
	RideID   int
	Start    Position
	Finish   Position
	Earliest int
	Latest   int
	Done     bool
}

// Length is the number of time units spent driving from start to finish.
func (r Ride) Length() int {
	return Distance(r.Start, r.Finish)
}
