package services

import (
	"container/heap"
	"ride-schedule-service/internal/domain"
)

type queuedVehicle struct {
	vehicle domain.Vehicle
	seq     int
}

type vehicleHeap []queuedVehicle

func (h vehicleHeap) Len() int { return len(h) }

func (h vehicleHeap) Less(i, j int) bool {
	if h[i].vehicle.Time != h[j].vehicle.Time {
		return h[i].vehicle.Time < h[j].vehicle.Time
	}
	return h[i].seq < h[j].seq
}

func (h vehicleHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *vehicleHeap) Push(x any) { *h = append(*h, x.(queuedVehicle)) }

func (h *vehicleHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// vehicleQueue hands out the earliest-available vehicle.
// Vehicles with equal clocks leave in the order they were (re)inserted.
type vehicleQueue struct {
	h   vehicleHeap
	seq int
}

func newVehicleQueue(vehicles []domain.Vehicle) *vehicleQueue {
	q := &vehicleQueue{h: make(vehicleHeap, 0, len(vehicles))}
	for _, v := range vehicles {
		q.push(v)
	}
	return q
}

func (q *vehicleQueue) push(v domain.Vehicle) {
	heap.Push(&q.h, queuedVehicle{vehicle: v, seq: q.seq})
	q.seq++
}

func (q *vehicleQueue) pop() (domain.Vehicle, bool) {
	if q.h.Len() == 0 {
		return domain.Vehicle{}, false
	}
	item := heap.Pop(&q.h).(queuedVehicle)
	return item.vehicle, true
}

func (q *vehicleQueue) len() int { return q.h.Len() }
