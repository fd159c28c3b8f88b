package avatar

import (
	"math"
	"strings"

	"github.com/igolaizola/motivai/pkg/videogen"
)

const (
	// wordsPerMinute is the assumed narration pace for avatar speech.
	wordsPerMinute = 150

	// durationPadding covers the intro and outro breathing room, in seconds.
	durationPadding = 5
)

// EstimateDuration predicts the narrated length of a script in seconds,
// capped at the platform maximum.
func EstimateDuration(script string) int {
	words := len(strings.Fields(script))
	seconds := int(math.Ceil(float64(words)/wordsPerMinute*60)) + durationPadding
	if seconds > videogen.MaxDuration {
		return videogen.MaxDuration
	}
	return seconds
}
