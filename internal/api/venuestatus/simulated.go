package venuestatus

import (
	"math/rand"
	"sync"
	"time"

	"github.com/voyplan/voyplan/internal/types"
)

// SignalSource produces crowd and wait signals for a venue snapshot.
// The only implementation is simulated; nothing here is telemetry and
// the VenueData it feeds is flagged accordingly.
type SignalSource interface {
	CrowdLevel(at time.Time) types.CrowdLevel
	WaitMinutes() int
}

var _ SignalSource = (*SimulatedSignals)(nil)

// SimulatedSignals fabricates venue signals: the crowd level is a pure
// function of the local wall-clock hour and the wait time is uniform
// random below the configured ceiling. Neither depends on the venue.
type SimulatedSignals struct {
	maxWaitMinutes int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedSignals seeds the source. A deterministic seed makes wait
// times reproducible in tests.
func NewSimulatedSignals(maxWaitMinutes int, seed int64) *SimulatedSignals {
	if maxWaitMinutes <= 0 {
		maxWaitMinutes = 30
	}
	return &SimulatedSignals{
		maxWaitMinutes: maxWaitMinutes,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

// CrowdLevelForHour derives the simulated occupancy label for an hour of
// day: High during lunch (11-14) and dinner (18-20) windows, Moderate
// through the rest of business hours (9-17), Low otherwise.
func CrowdLevelForHour(hour int) types.CrowdLevel {
	if (hour >= 11 && hour <= 14) || (hour >= 18 && hour <= 20) {
		return types.CrowdLevelHigh
	}
	if hour >= 9 && hour <= 17 {
		return types.CrowdLevelModerate
	}
	return types.CrowdLevelLow
}

func (s *SimulatedSignals) CrowdLevel(at time.Time) types.CrowdLevel {
	return CrowdLevelForHour(at.Hour())
}

func (s *SimulatedSignals) WaitMinutes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(s.maxWaitMinutes)
}
