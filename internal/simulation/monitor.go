package simulation

import (
	"fmt"
	"sort"

	"ridesim/internal/domain/entities"
)

// Category distinguishes whose activity is being recorded.
type Category string

const (
	CategoryRider  Category = "rider"
	CategoryDriver Category = "driver"
)

// ActivityType names what happened.
type ActivityType string

const (
	ActivityRequest ActivityType = "request"
	ActivityCancel  ActivityType = "cancel"
	ActivityPickup  ActivityType = "pickup"
	ActivityDropoff ActivityType = "dropoff"
)

// Activity is one recorded occurrence: when it happened, what it was, and
// where the actor was at the time.
type Activity struct {
	Time     int               `json:"time"`
	Type     ActivityType      `json:"type"`
	ID       string            `json:"id"`
	Location entities.Location `json:"location"`
}

// Report holds the summary statistics computed from a finished run.
type Report struct {
	RiderWaitTime       float64 `json:"rider_wait_time"`
	DriverTotalDistance float64 `json:"driver_total_distance"`
	DriverRideDistance  float64 `json:"driver_ride_distance"`
}

func (r Report) String() string {
	return fmt.Sprintf("Report(wait=%.2f, total=%.2f, ride=%.2f)",
		r.RiderWaitTime, r.DriverTotalDistance, r.DriverRideDistance)
}

// Monitor records activities as events notify it, keyed by category and
// actor ID, and computes the run report afterwards. The events append in
// timestamp order, so per-actor activity lists are already sorted.
type Monitor struct {
	activities map[Category]map[string][]Activity
}

// NewMonitor creates an empty Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		activities: map[Category]map[string][]Activity{
			CategoryRider:  {},
			CategoryDriver: {},
		},
	}
}

// Notify records an activity for the given actor.
func (m *Monitor) Notify(time int, category Category, activityType ActivityType, id string, location entities.Location) {
	m.activities[category][id] = append(m.activities[category][id], Activity{
		Time:     time,
		Type:     activityType,
		ID:       id,
		Location: location,
	})
}

// ActivityCount returns the total number of recorded activities.
func (m *Monitor) ActivityCount() int {
	count := 0
	for _, actors := range m.activities {
		for _, acts := range actors {
			count += len(acts)
		}
	}
	return count
}

// Activities returns the recorded activities for one actor, in time order.
func (m *Monitor) Activities(category Category, id string) []Activity {
	return m.activities[category][id]
}

// Report computes the run summary:
//
//   - RiderWaitTime: mean time from a rider's request to their pickup or
//     cancellation, over riders whose wait ended.
//   - DriverTotalDistance: mean distance covered per driver, summed over
//     consecutive recorded positions.
//   - DriverRideDistance: mean distance driven per driver while carrying a
//     rider (pickup to the following dropoff).
func (m *Monitor) Report() Report {
	return Report{
		RiderWaitTime:       m.averageWaitTime(),
		DriverTotalDistance: m.averageTotalDistance(),
		DriverRideDistance:  m.averageRideDistance(),
	}
}

func (m *Monitor) averageWaitTime() float64 {
	waitTime := 0
	count := 0
	for _, activities := range m.activities[CategoryRider] {
		// A rider with more than one activity requested and then either
		// was picked up or cancelled; the gap is their wait.
		if len(activities) >= 2 {
			waitTime += activities[1].Time - activities[0].Time
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(waitTime) / float64(count)
}

func (m *Monitor) averageTotalDistance() float64 {
	totalDistance := 0
	count := 0
	for _, activities := range m.activities[CategoryDriver] {
		for i := 1; i < len(activities); i++ {
			totalDistance += entities.ManhattanDistance(
				activities[i-1].Location, activities[i].Location)
		}
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(totalDistance) / float64(count)
}

func (m *Monitor) averageRideDistance() float64 {
	rideDistance := 0
	count := 0
	for _, activities := range m.activities[CategoryDriver] {
		for i := 1; i < len(activities); i++ {
			if activities[i-1].Type == ActivityPickup && activities[i].Type == ActivityDropoff {
				rideDistance += entities.ManhattanDistance(
					activities[i-1].Location, activities[i].Location)
			}
		}
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(rideDistance) / float64(count)
}

// ActorIDs returns the IDs seen in a category, sorted for stable output.
func (m *Monitor) ActorIDs(category Category) []string {
	ids := make([]string, 0, len(m.activities[category]))
	for id := range m.activities[category] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
