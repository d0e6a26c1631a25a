package config

import (
	"path/filepath"
	"testing"

	"github.com/zurustar/smfplayer/internal/smf"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	limits, err := Load(filepath.Join(t.TempDir(), "does-not-exist.ini"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limits != smf.DefaultLimits() {
		t.Fatalf("Load(missing) = %+v, want defaults %+v", limits, smf.DefaultLimits())
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.ini")
	want := smf.Limits{
		MaxTracks:            16,
		MetaEventMaxDataSize: 64,
		CacheSize:            4096,
		C0Base:               -1,
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("Load(Save(limits)) = %+v, want %+v", got, want)
	}
}

func TestLoadClampsOversizedMetaEventMaxDataSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits.ini")
	oversized := smf.DefaultLimits()
	oversized.MetaEventMaxDataSize = smf.MetaEventMaxDataSize + 1000
	if err := Save(path, oversized); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err == nil {
		t.Fatal("expected Load to report a clamp error for an oversized meta_event_max_data_size")
	}
	if got.MetaEventMaxDataSize != smf.MetaEventMaxDataSize {
		t.Fatalf("MetaEventMaxDataSize = %d, want clamped to %d", got.MetaEventMaxDataSize, smf.MetaEventMaxDataSize)
	}
}
