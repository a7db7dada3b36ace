// Package recommend scores catalog songs against player progress.
//
// The engine derives a comfort ceiling from the difficulties the player has
// already proven out, lays four contiguous difficulty zones around it, and
// ranks the eligible songs so "slightly harder than comfortable" surfaces
// first.
package recommend

import (
	"log/slog"
	"math"
	"sort"

	"bassline/internal/catalog"
	"bassline/internal/logging"
	"bassline/internal/profile"
)

// Zone names one of the four difficulty bands.
type Zone string

const (
	ZoneWarmup    Zone = "warm-up"
	ZoneGrowth    Zone = "growth"
	ZoneChallenge Zone = "challenge"
	ZoneReach     Zone = "reach"
)

// ZoneOrder lists the bands from lowest difficulty to highest.
var ZoneOrder = []Zone{ZoneWarmup, ZoneGrowth, ZoneChallenge, ZoneReach}

// zonePriority ranks zones for recommendation ordering. Growth comes first
// regardless of each zone's numeric position.
var zonePriority = map[Zone]int{
	ZoneGrowth:    0,
	ZoneChallenge: 1,
	ZoneWarmup:    2,
	ZoneReach:     3,
}

// ParseZone maps a user-supplied zone name to a Zone.
func ParseZone(name string) (Zone, bool) {
	for _, zone := range ZoneOrder {
		if string(zone) == name {
			return zone, true
		}
	}
	return "", false
}

// ZoneBounds is one half-open difficulty band [Lo, Hi).
type ZoneBounds struct {
	Zone Zone
	Lo   float64
	Hi   float64
}

// Midpoint returns the center of the band.
func (zb ZoneBounds) Midpoint() float64 {
	return (zb.Lo + zb.Hi) / 2
}

// Contains reports whether difficulty falls inside the band.
func (zb ZoneBounds) Contains(difficulty float64) bool {
	return difficulty >= zb.Lo && difficulty < zb.Hi
}

// SortKey is the composite ranking key, ascending on every field.
type SortKey struct {
	ZonePriority     int
	PlayCount        int
	MidpointDistance float64
}

func (k SortKey) less(other SortKey) bool {
	if k.ZonePriority != other.ZonePriority {
		return k.ZonePriority < other.ZonePriority
	}
	if k.PlayCount != other.PlayCount {
		return k.PlayCount < other.PlayCount
	}
	return k.MidpointDistance < other.MidpointDistance
}

// Recommendation is one ranked song suggestion.
type Recommendation struct {
	Song      catalog.SongEntry
	Zone      Zone
	PlayCount int
	Key       SortKey
}

// zoneWidth is the span of each difficulty band.
const zoneWidth = 0.10

// beginnerCeiling is assumed when too little progress exists to measure one.
const beginnerCeiling = 0.15

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// ComputeComfortCeiling derives the difficulty below which the player is
// assumed fully competent. Tiers, in order: the 85th percentile of hard
// difficulties among competently played songs (three or more), the 70th
// percentile among any played songs (three or more), then a fixed beginner
// floor.
func ComputeComfortCeiling(cat catalog.Catalog, pp profile.PlayerProfile, logger *slog.Logger) float64 {
	logger = logging.NewComponentLogger(logger, "recommend")

	if ceiling, ok := percentileCeiling(cat, pp.CompetentSongIDs(), 0.85); ok {
		logger.Debug("comfort ceiling from competent songs", logging.Float64("ceiling", ceiling))
		return ceiling
	}
	if ceiling, ok := percentileCeiling(cat, pp.PlayedSongIDs(), 0.70); ok {
		logger.Debug("comfort ceiling from played songs", logging.Float64("ceiling", ceiling))
		return ceiling
	}
	logger.Debug("comfort ceiling beginner fallback", logging.Float64("ceiling", beginnerCeiling))
	return beginnerCeiling
}

func percentileCeiling(cat catalog.Catalog, songIDs []string, percentile float64) (float64, bool) {
	var difficulties []float64
	for _, songID := range songIDs {
		if song, ok := cat.Songs[songID]; ok {
			difficulties = append(difficulties, song.DifficultyHard)
		}
	}
	if len(difficulties) < 3 {
		return 0, false
	}
	sort.Float64s(difficulties)
	idx := int(float64(len(difficulties)) * percentile)
	if idx > len(difficulties)-1 {
		idx = len(difficulties) - 1
	}
	return difficulties[idx], true
}

// ComputeZoneBounds lays the four bands around the ceiling, each endpoint
// independently clamped to [0, 1].
func ComputeZoneBounds(ceiling float64) map[Zone]ZoneBounds {
	return map[Zone]ZoneBounds{
		ZoneWarmup:    {Zone: ZoneWarmup, Lo: clamp01(ceiling - zoneWidth), Hi: clamp01(ceiling)},
		ZoneGrowth:    {Zone: ZoneGrowth, Lo: clamp01(ceiling), Hi: clamp01(ceiling + zoneWidth)},
		ZoneChallenge: {Zone: ZoneChallenge, Lo: clamp01(ceiling + zoneWidth), Hi: clamp01(ceiling + 2*zoneWidth)},
		ZoneReach:     {Zone: ZoneReach, Lo: clamp01(ceiling + 2*zoneWidth), Hi: clamp01(ceiling + 3*zoneWidth)},
	}
}

// Options filters the recommendation list.
type Options struct {
	Count     int
	Zone      Zone   // empty means all zones
	Technique string // empty means no technique filter
}

// Recommend computes the comfort ceiling, the zone bounds, and the ranked
// recommendation list for the given catalog and profile.
func Recommend(cat catalog.Catalog, pp profile.PlayerProfile, opts Options, logger *slog.Logger) (float64, map[Zone]ZoneBounds, []Recommendation) {
	ceiling := ComputeComfortCeiling(cat, pp, logger)
	bounds := ComputeZoneBounds(ceiling)

	competent := make(map[string]struct{})
	for _, songID := range pp.CompetentSongIDs() {
		competent[songID] = struct{}{}
	}

	var recommendations []Recommendation
	for _, song := range cat.Songs {
		if _, done := competent[song.SongID]; done {
			continue
		}
		if opts.Technique != "" && !song.Techniques[opts.Technique] {
			continue
		}

		difficulty := song.DifficultyHard
		var songZone Zone
		for _, zone := range ZoneOrder {
			if bounds[zone].Contains(difficulty) {
				songZone = zone
				break
			}
		}
		if songZone == "" {
			continue
		}
		if opts.Zone != "" && songZone != opts.Zone {
			continue
		}

		playCount := 0
		if progress, ok := pp.ByCatalogID(song.SongID); ok {
			playCount = progress.PlayCount
		}

		recommendations = append(recommendations, Recommendation{
			Song:      song,
			Zone:      songZone,
			PlayCount: playCount,
			Key: SortKey{
				ZonePriority:     zonePriority[songZone],
				PlayCount:        playCount,
				MidpointDistance: math.Abs(difficulty - bounds[songZone].Midpoint()),
			},
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Key.less(recommendations[j].Key)
	})

	if opts.Count > 0 && len(recommendations) > opts.Count {
		recommendations = recommendations[:opts.Count]
	}
	return ceiling, bounds, recommendations
}
