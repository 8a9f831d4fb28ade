// Package scheduler decides when a card is next due and which cards a
// session should pick up.
package scheduler

import "time"

// Thresholds is the spacing ladder: the gap between reviews indexed by how
// far a card has progressed. Index 0 means due immediately. Every correct
// answer climbs one rung, every incorrect answer drops one; the resulting
// index picks the interval added to the latest answer's date.
var Thresholds = []time.Duration{
	0,
	4 * time.Hour,
	8 * time.Hour,
	24 * time.Hour,
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
	14 * 24 * time.Hour,
	30 * 24 * time.Hour,
	120 * 24 * time.Hour,
}
