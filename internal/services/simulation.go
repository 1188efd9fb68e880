package services

import (
	"fmt"
	"ride-schedule-service/internal/domain"
)

// ViolationKind classifies a rule broken while replaying an assignment.
type ViolationKind string

const (
	ViolationReuse          ViolationKind = "reuse"
	ViolationHorizon        ViolationKind = "horizon"
	ViolationDeadline       ViolationKind = "deadline"
	ViolationUnknownRide    ViolationKind = "unknown_ride"
	ViolationUnknownVehicle ViolationKind = "unknown_vehicle"
)

// Violation is a non-fatal rule break found during replay.
type Violation struct {
	Kind      ViolationKind
	VehicleID int
	RideID    int
	Message   string
}

// Report is the outcome of replaying one assignment.
type Report struct {
	Score      int
	Violations []Violation
}

// Errors returns the violation messages in the order they were found.
func (r Report) Errors() []string {
	out := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.Message)
	}
	return out
}

// Score replays the assignment and returns the realized score with one
// message per violation. An empty message list means the plan is valid.
func Score(
	problem domain.Problem,
	vehicles []domain.Vehicle,
	rides []domain.Ride,
	assignment domain.Assignment,
) (int, []string) {
	rep := Simulate(problem, vehicles, rides, assignment)
	return rep.Score, rep.Errors()
}

// Simulate replays an assignment from scratch on private copies of the fleet
// and rides, vehicle by vehicle in the listed order.
//
// The first violation on a vehicle stops the rest of that vehicle's list;
// score earned by its earlier rides is kept and replay moves on to the next
// vehicle. Replay itself never fails.
func Simulate(
	problem domain.Problem,
	vehicles []domain.Vehicle,
	rides []domain.Ride,
	assignment domain.Assignment,
) Report {
	fleet := append([]domain.Vehicle(nil), vehicles...)
	state := append([]domain.Ride(nil), rides...)

	rep := Report{Violations: []Violation{}}

	for vehicleID, rideIDs := range assignment {
		if vehicleID >= len(fleet) {
			if len(rideIDs) > 0 {
				rep.add(ViolationUnknownVehicle, vehicleID, rideIDs[0],
					fmt.Sprintf("Vehicle %d does not exist (fleet has %d vehicles).", vehicleID, len(fleet)))
			}
			continue
		}
		vehicle := &fleet[vehicleID]

		for _, rideID := range rideIDs {
			if rideID < 0 || rideID >= len(state) {
				rep.add(ViolationUnknownRide, vehicleID, rideID,
					fmt.Sprintf("Ride %d assigned to %d does not exist.", rideID, vehicleID))
				break
			}
			ride := &state[rideID]

			plan := domain.PlanTravel(*vehicle, *ride)
			finish := plan.FinishesAt(*vehicle)

			if ride.Done {
				rep.add(ViolationReuse, vehicleID, rideID,
					fmt.Sprintf("Ride %d assigned to %d already done.", rideID, vehicleID))
				break
			}

			if finish > problem.SimSteps {
				rep.add(ViolationHorizon, vehicleID, rideID,
					fmt.Sprintf("Ride %d not finished by %d before end of simulation.", rideID, vehicleID))
				break
			}

			if finish >= ride.Latest {
				rep.add(ViolationDeadline, vehicleID, rideID,
					fmt.Sprintf(
						"Ride %d not finished by %d before ride deadline: ride=%+v vehicle=%+v total=%d",
						rideID, vehicleID, *ride, *vehicle, plan.Total,
					))
				break
			}

			bonus := 0
			if domain.QualifiesForBonus(*vehicle, *ride) {
				bonus = problem.Bonus
			}

			vehicle.Serve(ride, plan)
			rep.Score += plan.RideDistance + bonus
		}
	}

	return rep
}

func (r *Report) add(kind ViolationKind, vehicleID, rideID int, msg string) {
	r.Violations = append(r.Violations, Violation{
		Kind:      kind,
		VehicleID: vehicleID,
		RideID:    rideID,
		Message:   msg,
	})
}
