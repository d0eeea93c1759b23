package testutil

import "github.com/spystrach/interimBot/internal/domain"

// MissionOption mutates a fixture mission.
type MissionOption func(*domain.Mission)

// NewTestMission returns a valid mission for the given stored date key.
func NewTestMission(date string, opts ...MissionOption) *domain.Mission {
	m := &domain.Mission{
		Agency:    domain.AgencyAdecco,
		Date:      date,
		Location:  "clinique pasteur",
		StartTime: "08:00",
		EndTime:   "16:30",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithAgency overrides the fixture agency.
func WithAgency(a domain.Agency) MissionOption {
	return func(m *domain.Mission) { m.Agency = a }
}

// WithLocation overrides the fixture location.
func WithLocation(loc string) MissionOption {
	return func(m *domain.Mission) { m.Location = loc }
}

// WithHours overrides the fixture start and end times.
func WithHours(start, end string) MissionOption {
	return func(m *domain.Mission) {
		m.StartTime = start
		m.EndTime = end
	}
}
