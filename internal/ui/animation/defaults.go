package animation

import "time"

// DefaultConfig flashes an alerted card for a few seconds.
func DefaultConfig() Config {
	return Config{
		Duration: 6 * time.Second,
		Pattern: Pattern{
			On: Range{
				Min: 400 * time.Millisecond,
				Max: 500 * time.Millisecond,
			},
			Off: Range{
				Min: 250 * time.Millisecond,
				Max: 300 * time.Millisecond,
			},
		},
	}
}
