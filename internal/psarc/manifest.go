package psarc

import (
	"encoding/json"
	"sort"
	"strings"
)

// Attributes is one manifest entry's loosely-typed attribute block.
// Unrecognized keys are carried but ignored by consumers.
type Attributes map[string]any

// String returns the string attribute at key, or def when absent or mistyped.
func (a Attributes) String(key, def string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return def
}

// Float returns the numeric attribute at key, or def.
func (a Attributes) Float(key string, def float64) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

// Int returns the numeric attribute at key truncated to int, or def.
func (a Attributes) Int(key string, def int) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return def
			}
			return int(f)
		}
		return int(i)
	default:
		return def
	}
}

// Flag interprets the attribute at key as a boolean manifest flag, where any
// non-zero number or true is set.
func (a Attributes) Flag(key string) bool {
	switch v := a[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	default:
		return false
	}
}

// Map returns the nested object attribute at key, or an empty map.
func (a Attributes) Map(key string) Attributes {
	if v, ok := a[key].(map[string]any); ok {
		return Attributes(v)
	}
	return Attributes{}
}

// Slice returns the array attribute at key, or nil.
func (a Attributes) Slice(key string) []any {
	if v, ok := a[key].([]any); ok {
		return v
	}
	return nil
}

type manifest struct {
	Entries map[string]struct {
		Attributes map[string]any `json:"Attributes"`
	} `json:"Entries"`
}

// IsBassManifest reports whether an internal entry path names a bass
// arrangement manifest.
func IsBassManifest(entryPath string) bool {
	return strings.HasPrefix(entryPath, "manifests/") && strings.HasSuffix(entryPath, "_bass.json")
}

type bassCandidate struct {
	entryPath string
	entryKey  string
	attrs     Attributes
}

// BassAttributes finds the bass-arrangement attribute block in an archive's
// extracted entries. When an archive carries multiple bass manifests the
// richest attribute block wins; ties break on the lexicographically smallest
// internal path so the choice never depends on iteration order. The second
// return reports whether any bass arrangement was found.
func BassAttributes(entries map[string][]byte) (Attributes, bool) {
	var candidates []bassCandidate
	for entryPath, raw := range entries {
		if !IsBassManifest(entryPath) {
			continue
		}
		var m manifest
		if err := json.Unmarshal(raw, &m); err != nil {
			continue
		}
		for entryKey, entry := range m.Entries {
			if len(entry.Attributes) == 0 {
				continue
			}
			candidates = append(candidates, bassCandidate{
				entryPath: entryPath,
				entryKey:  entryKey,
				attrs:     Attributes(entry.Attributes),
			})
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i].attrs) != len(candidates[j].attrs) {
			return len(candidates[i].attrs) > len(candidates[j].attrs)
		}
		if candidates[i].entryPath != candidates[j].entryPath {
			return candidates[i].entryPath < candidates[j].entryPath
		}
		return candidates[i].entryKey < candidates[j].entryKey
	})
	return candidates[0].attrs, true
}

// IdentifierPairs collects every bass manifest's internal identifier mapped
// to its catalog song identifier. Internal identifiers are normalized to
// uppercase to match save-file keys.
func IdentifierPairs(entries map[string][]byte) map[string]string {
	pairs := make(map[string]string)
	for entryPath, raw := range entries {
		if !IsBassManifest(entryPath) {
			continue
		}
		var m manifest
		if err := json.Unmarshal(raw, &m); err != nil {
			continue
		}
		for _, entry := range m.Entries {
			attrs := Attributes(entry.Attributes)
			pid := strings.ToUpper(strings.TrimSpace(attrs.String("PersistentID", "")))
			if pid == "" {
				continue
			}
			pairs[pid] = SongID(attrs)
		}
	}
	return pairs
}

// SongID derives the catalog song identifier from a manifest attribute block.
func SongID(attrs Attributes) string {
	dlcKey := attrs.String("DLCKey", "")
	fullName := attrs.String("FullName", dlcKey+"_Bass")
	return strings.ToLower(fullName)
}
