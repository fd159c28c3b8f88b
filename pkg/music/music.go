package music

import "github.com/igolaizola/motivai/pkg/videogen"

// Track is a background music track from the static catalog.
type Track struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	URL      string         `json:"url"`
	Duration int            `json:"duration"`
	Mood     videogen.Style `json:"mood"`
}

var catalog = []Track{
	{
		ID:       "motivational_1",
		Name:     "Uplifting Ambient",
		URL:      "https://cdn.pixabay.com/audio/2022/03/15/audio_d1718372c6.mp3",
		Duration: 120,
		Mood:     videogen.StyleEnergetic,
	},
	{
		ID:       "motivational_2",
		Name:     "Inspiring Cinematic",
		URL:      "https://cdn.pixabay.com/audio/2022/05/27/audio_1808fbf07a.mp3",
		Duration: 120,
		Mood:     videogen.StyleCalm,
	},
	{
		ID:       "motivational_3",
		Name:     "Corporate Success",
		URL:      "https://cdn.pixabay.com/audio/2022/03/22/audio_730e05a9ab.mp3",
		Duration: 120,
		Mood:     videogen.StyleProfessional,
	},
	{
		ID:       "energetic_beats",
		Name:     "Energetic Hip Hop",
		URL:      "https://cdn.pixabay.com/audio/2022/11/28/audio_cbc3831a09.mp3",
		Duration: 120,
		Mood:     videogen.StyleEnergetic,
	},
}

// Tracks returns the full catalog.
func Tracks() []Track {
	out := make([]Track, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup resolves a catalog track by id.
func Lookup(id string) (Track, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// Recommend returns the default track id for a video style.
func Recommend(style videogen.Style) string {
	switch style {
	case videogen.StyleProfessional:
		return "motivational_3"
	case videogen.StyleCasual:
		return "motivational_1"
	case videogen.StyleCalm:
		return "motivational_2"
	default:
		return "energetic_beats"
	}
}
