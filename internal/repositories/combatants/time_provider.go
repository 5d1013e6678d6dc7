package combatants

import "time"

//go:generate mockgen -destination=mock/mock_time_provider.go -package=mockcombatants -source=time_provider.go

// TimeProvider stamps stored snapshots
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the wall clock in UTC
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
