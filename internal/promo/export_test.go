package promo

import "time"

// SetClock replaces the clock used for promo expiration checks
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}
