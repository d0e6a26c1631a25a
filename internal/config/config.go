// Package config loads optional runtime overrides for the module's
// compile-time resource limits from an INI file, in the style of
// zurustar-son-et's WriteIniInt/GetIniInt helpers.
package config

import (
	"fmt"

	"github.com/zurustar/smfplayer/internal/smf"
	"gopkg.in/ini.v1"
)

const (
	sectionLimits = "limits"
	sectionNotes  = "notes"

	keyMaxTracks            = "max_tracks"
	keyMetaEventMaxDataSize = "meta_event_max_data_size"
	keyCacheSize            = "cache_size"
	keyC0Base               = "c0_base"
)

// Load reads path (if it exists) and overlays any present keys on top
// of smf.DefaultLimits. A missing file is not an error: it simply
// yields the defaults, mirroring the teacher's load-or-ini.Empty()
// fallback.
//
// MetaEventMaxDataSize is capped at the compile-time constant
// smf.MetaEventMaxDataSize: the per-message payload buffer is a fixed
// array sized at compile time, so a larger override cannot be honored
// without heap allocation. A value above the compile-time constant is
// clamped and surfaced as an error so the caller can log it; a value
// at or below it takes effect.
func Load(path string) (smf.Limits, error) {
	limits := smf.DefaultLimits()

	cfg, err := ini.Load(path)
	if err != nil {
		return limits, nil
	}

	limitsSection := cfg.Section(sectionLimits)
	notesSection := cfg.Section(sectionNotes)

	if limitsSection.HasKey(keyMaxTracks) {
		limits.MaxTracks = limitsSection.Key(keyMaxTracks).MustInt(limits.MaxTracks)
	}
	if limitsSection.HasKey(keyCacheSize) {
		limits.CacheSize = limitsSection.Key(keyCacheSize).MustInt(limits.CacheSize)
	}

	var clampErr error
	if limitsSection.HasKey(keyMetaEventMaxDataSize) {
		requested := limitsSection.Key(keyMetaEventMaxDataSize).MustInt(limits.MetaEventMaxDataSize)
		if requested > smf.MetaEventMaxDataSize {
			clampErr = fmt.Errorf("config: meta_event_max_data_size %d exceeds compile-time limit %d, clamped", requested, smf.MetaEventMaxDataSize)
			requested = smf.MetaEventMaxDataSize
		}
		limits.MetaEventMaxDataSize = requested
	}

	if notesSection.HasKey(keyC0Base) {
		limits.C0Base = notesSection.Key(keyC0Base).MustInt(limits.C0Base)
	}

	return limits, clampErr
}

// Save writes limits to path as an INI file, creating or overwriting
// it, mirroring the teacher's WriteIniInt pattern.
func Save(path string, limits smf.Limits) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{Loose: true}, path)
	if err != nil {
		cfg = ini.Empty()
	}

	cfg.Section(sectionLimits).Key(keyMaxTracks).SetValue(fmt.Sprintf("%d", limits.MaxTracks))
	cfg.Section(sectionLimits).Key(keyMetaEventMaxDataSize).SetValue(fmt.Sprintf("%d", limits.MetaEventMaxDataSize))
	cfg.Section(sectionLimits).Key(keyCacheSize).SetValue(fmt.Sprintf("%d", limits.CacheSize))
	cfg.Section(sectionNotes).Key(keyC0Base).SetValue(fmt.Sprintf("%d", limits.C0Base))

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("config: saving %s: %w", path, err)
	}
	return nil
}
