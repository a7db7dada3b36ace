// Package techniques defines the bass technique taxonomy tracked by bassline.
//
// Technique names match the boolean ArrangementProperties flags found in
// PSARC manifests; skill groups order them into a rough learning progression.
package techniques

import "sort"

// Manifest lists the ArrangementProperties flags recognized as techniques.
var Manifest = []string{
	"slides",
	"unpitchedSlides",
	"hopo",
	"slapPop",
	"fretHandMutes",
	"palmMutes",
	"harmonics",
	"pinchHarmonics",
	"tapping",
	"vibrato",
	"tremolo",
	"bends",
	"sustain",
	"syncopation",
	"twoFingerPicking",
	"bassPick",
	"fingerPicking",
	"fifthsAndOctaves",
	"doubleStops",
	"openChords",
	"pickDirection",
}

// SkillGroup collects related techniques at one stage of the progression.
type SkillGroup struct {
	ID         string
	Name       string
	Order      int
	Level      string
	Techniques []string
}

// SkillGroups orders the taxonomy from fundamentals to advanced playing.
var SkillGroups = []SkillGroup{
	{
		ID:         "fundamentals",
		Name:       "Bass Fundamentals",
		Order:      1,
		Level:      "beginner",
		Techniques: []string{"sustain", "twoFingerPicking", "bassPick", "fingerPicking"},
	},
	{
		ID:         "rhythm",
		Name:       "Rhythm & Muting",
		Order:      2,
		Level:      "beginner-intermediate",
		Techniques: []string{"syncopation", "fretHandMutes", "palmMutes"},
	},
	{
		ID:         "articulation",
		Name:       "Articulation",
		Order:      3,
		Level:      "intermediate",
		Techniques: []string{"hopo", "slides", "unpitchedSlides", "bends", "vibrato"},
	},
	{
		ID:         "advanced",
		Name:       "Advanced Techniques",
		Order:      4,
		Level:      "advanced",
		Techniques: []string{"slapPop", "tapping", "harmonics", "pinchHarmonics", "tremolo", "pickDirection"},
	},
	{
		ID:         "patterns",
		Name:       "Patterns & Chords",
		Order:      5,
		Level:      "intermediate-advanced",
		Techniques: []string{"fifthsAndOctaves", "doubleStops", "openChords"},
	},
}

// DisplayNames maps technique flags to human-readable labels.
var DisplayNames = map[string]string{
	"slides":           "Slides",
	"unpitchedSlides":  "Unpitched Slides",
	"hopo":             "Hammer-On / Pull-Off",
	"slapPop":          "Slap & Pop",
	"fretHandMutes":    "Fret-Hand Mutes",
	"palmMutes":        "Palm Mutes",
	"harmonics":        "Harmonics",
	"pinchHarmonics":   "Pinch Harmonics",
	"tapping":          "Tapping",
	"vibrato":          "Vibrato",
	"tremolo":          "Tremolo",
	"bends":            "Bends",
	"sustain":          "Sustain",
	"syncopation":      "Syncopation",
	"twoFingerPicking": "Two-Finger Picking",
	"bassPick":         "Bass Pick",
	"fingerPicking":    "Finger Picking",
	"fifthsAndOctaves": "Fifths & Octaves",
	"doubleStops":      "Double Stops",
	"openChords":       "Open Chords",
	"pickDirection":    "Pick Direction",
}

// Known reports whether name is a recognized technique flag.
func Known(name string) bool {
	for _, t := range Manifest {
		if t == name {
			return true
		}
	}
	return false
}

// GroupFor returns the skill group ID for a technique, or "" when the
// technique is not part of any group.
func GroupFor(technique string) string {
	for _, group := range SkillGroups {
		for _, t := range group.Techniques {
			if t == technique {
				return group.ID
			}
		}
	}
	return ""
}

// DisplayName returns the label for a technique, falling back to the raw flag.
func DisplayName(technique string) string {
	if name, ok := DisplayNames[technique]; ok {
		return name
	}
	return technique
}

// Sorted returns the recognized technique flags in lexical order.
func Sorted() []string {
	out := append([]string(nil), Manifest...)
	sort.Strings(out)
	return out
}
