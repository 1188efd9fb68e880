package services

import "ride-schedule-service/internal/domain"

// Solve assigns rides to vehicles using a greedy earliest-vehicle-first heuristic.
//
// The vehicle with the smallest clock picks the admissible ride with the best
// reward per time unit spent; it is then re-queued. A vehicle that finds no
// admissible ride is retired for the rest of the run. Inputs are cloned, so
// callers keep their vehicles and rides untouched.
func Solve(problem domain.Problem, vehicles []domain.Vehicle, rides []domain.Ride) domain.Assignment {
	s := newSolver(problem, vehicles, rides)
	return s.solve()
}

type solver struct {
	problem   domain.Problem
	queue     *vehicleQueue
	rides     []domain.Ride
	remaining int
}

func newSolver(problem domain.Problem, vehicles []domain.Vehicle, rides []domain.Ride) *solver {
	own := append([]domain.Ride(nil), rides...)

	remaining := 0
	for _, r := range own {
		if !r.Done {
			remaining++
		}
	}

	return &solver{
		problem:   problem,
		queue:     newVehicleQueue(vehicles),
		rides:     own,
		remaining: remaining,
	}
}

func (s *solver) solve() domain.Assignment {
	assignment := domain.NewAssignment(s.fleetSize())

	for s.remaining > 0 && s.queue.len() > 0 {
		vehicle, _ := s.queue.pop()

		idx, ok := s.bestRideFor(vehicle)
		if !ok {
			// Retired: never re-queued.
			continue
		}

		ride := &s.rides[idx]
		plan := domain.PlanTravel(vehicle, *ride)
		vehicle.Serve(ride, plan)
		s.remaining--

		assignment[vehicle.VehicleID] = append(assignment[vehicle.VehicleID], ride.RideID)
		s.queue.push(vehicle)
	}

	return assignment
}

// bestRideFor returns the index of the admissible ride with the highest
// opportunity/cost ratio. Ties keep the first ride in ride order, and a ride
// must score strictly above zero to be chosen.
func (s *solver) bestRideFor(v domain.Vehicle) (int, bool) {
	bestScore := 0.0
	bestIdx := -1

	for i, r := range s.rides {
		if r.Done {
			continue
		}

		plan := domain.PlanTravel(v, r)
		finish := plan.FinishesAt(v)
		if finish >= s.problem.SimSteps || finish >= r.Latest {
			continue
		}

		opportunity := plan.RideDistance
		if domain.QualifiesForBonus(v, r) {
			opportunity += s.problem.Bonus
		}
		cost := plan.ToStart + plan.Waiting + plan.RideDistance

		// cost can be zero for an empty ride picked up on the spot: +Inf with a
		// bonus, NaN without one, and NaN never compares greater.
		score := float64(opportunity) / float64(cost)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	return bestIdx, bestIdx >= 0
}

func (s *solver) fleetSize() int {
	n := s.problem.VehicleCount
	for _, v := range s.queue.h {
		if v.vehicle.VehicleID >= n {
			n = v.vehicle.VehicleID + 1
		}
	}
	return n
}
