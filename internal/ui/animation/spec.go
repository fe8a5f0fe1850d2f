package animation

import "time"

// Pattern is one on/off cycle of a highlight flash.
type Pattern struct {
	On  Range
	Off Range
}

// Period returns the longest time one cycle can take.
func (pattern Pattern) Period() time.Duration {
	return pattern.On.Max + pattern.Off.Max
}
