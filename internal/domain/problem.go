package domain

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// MaxVehicles caps the fleet size accepted from problem headers.
const MaxVehicles = 1 << 20

// Static configuration of one problem instance.
type Problem struct {
	Rows         int
	Cols         int
	VehicleCount int
	RideCount    int
	Bonus        int
	SimSteps     int
}

// CheckFleet rejects headers whose fleet could not be allocated.
func (p Problem) CheckFleet() error {
	if p.VehicleCount > MaxVehicles {
		return fmt.Errorf("vehicle count %d exceeds limit %d", p.VehicleCount, MaxVehicles)
	}
	return nil
}

// Instance bundles a named problem with its initial fleet and rides.
// Components must work on clones so that one component's mutations
// (done flags, vehicle clocks) never leak into another's.
type Instance struct {
	Name     string
	Problem  Problem
	Vehicles []Vehicle
	Rides    []Ride
}

// CloneVehicles returns a private copy of the fleet.
func (in *Instance) CloneVehicles() []Vehicle {
	return append([]Vehicle(nil), in.Vehicles...)
}

// CloneRides returns a private copy of the rides.
func (in *Instance) CloneRides() []Ride {
	return append([]Ride(nil), in.Rides...)
}

// Fingerprint hashes the problem header, fleet and rides.
// Two instances with the same content share a fingerprint regardless of Name.
func (in *Instance) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 8)
	put := func(x int) {
		binary.LittleEndian.PutUint64(buf, uint64(int64(x)))
		_, _ = d.Write(buf)
	}

	p := in.Problem
	for _, x := range []int{p.Rows, p.Cols, p.VehicleCount, p.RideCount, p.Bonus, p.SimSteps} {
		put(x)
	}

	put(len(in.Vehicles))
	for _, v := range in.Vehicles {
		put(v.Pos.Row)
		put(v.Pos.Col)
		put(v.Time)
	}

	put(len(in.Rides))
	for _, r := range in.Rides {
		put(r.Start.Row)
		put(r.Start.Col)
		put(r.Finish.Row)
		put(r.Finish.Col)
		put(r.Earliest)
		put(r.Latest)
	}

	return d.Sum64()
}
