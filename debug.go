package tidewalk

import "time"

// debugStats holds per-frame composition metrics.
// Only populated when debug mode is on, except culled which is always
// counted.
type debugStats struct {
	composeTime time.Duration
	opCount     int
	culled      int
}

// debugLog writes the frame stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug("compose",
		"time", stats.composeTime,
		"ops", stats.opCount,
		"culled", stats.culled,
		"view", s.camera.Origin(),
		"player", s.player.Cell,
		"offset", s.player.Offset)
}
