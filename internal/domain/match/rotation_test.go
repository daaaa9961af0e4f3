package match

import (
	"reflect"
	"testing"
)

func TestResolveRotation(t *testing.T) {
	allowed := map[GameMode]struct{}{
		ModeHardpoint:        {},
		ModeSearchAndDestroy: {},
		ModeControl:          {},
	}

	cases := []struct {
		format SeriesFormat
		want   []GameMode
	}{
		{format: FormatBo1, want: []GameMode{ModeHardpoint}},
		{format: FormatBo3, want: []GameMode{ModeHardpoint, ModeSearchAndDestroy, ModeControl}},
		{format: FormatBo5, want: []GameMode{ModeHardpoint, ModeSearchAndDestroy, ModeControl, ModeHardpoint, ModeSearchAndDestroy}},
		{format: FormatBo7, want: []GameMode{ModeHardpoint, ModeSearchAndDestroy, ModeControl, ModeHardpoint, ModeSearchAndDestroy, ModeControl, ModeHardpoint}},
		{format: "bo9", want: []GameMode{ModeHardpoint}},
		{format: "", want: []GameMode{ModeHardpoint}},
	}

	for _, tc := range cases {
		t.Run(string(tc.format), func(t *testing.T) {
			got := ResolveRotation(tc.format)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("rotation %q: got %v want %v", tc.format, got, tc.want)
			}
			if len(got) != tc.format.MapCount() {
				t.Fatalf("rotation %q length %d does not match map count %d", tc.format, len(got), tc.format.MapCount())
			}
			for _, mode := range got {
				if _, ok := allowed[mode]; !ok {
					t.Fatalf("unexpected mode %q", mode)
				}
			}
		})
	}
}

func TestParseSeriesFormat(t *testing.T) {
	if got, ok := ParseSeriesFormat(" BO5 "); !ok || got != FormatBo5 {
		t.Fatalf("expected bo5, got %q ok=%v", got, ok)
	}
	if got, ok := ParseSeriesFormat(""); !ok || got != FormatBo1 {
		t.Fatalf("expected default bo1, got %q ok=%v", got, ok)
	}
	if _, ok := ParseSeriesFormat("bo2"); ok {
		t.Fatalf("expected bo2 to be rejected")
	}
}

func TestModeFor(t *testing.T) {
	if got := ModeFor(FormatBo5, 4); got != ModeHardpoint {
		t.Fatalf("expected map 4 of bo5 to be hardpoint, got %q", got)
	}
	if got := ModeFor(FormatBo3, 2); got != ModeSearchAndDestroy {
		t.Fatalf("expected map 2 of bo3 to be search and destroy, got %q", got)
	}
	if got := ModeFor(FormatBo3, 9); got != ModeHardpoint {
		t.Fatalf("expected out of range map to fall back to hardpoint, got %q", got)
	}
}

func TestModeStats(t *testing.T) {
	if got := ModeStats(ModeControl); !reflect.DeepEqual(got, []Stat{StatTimeOnObjective, StatCaptures, StatDefends}) {
		t.Fatalf("unexpected control stats: %v", got)
	}
	if got := ModeStats(ModeSearchAndDestroy); len(got) != 4 {
		t.Fatalf("unexpected snd stats: %v", got)
	}
	if got := ModeStats("Gunfight"); got != nil {
		t.Fatalf("expected no stats for unknown mode, got %v", got)
	}
}

func TestPlanMaps(t *testing.T) {
	maps := PlanMaps(Match{ID: 7, SeriesFormat: FormatBo3})
	if len(maps) != 3 {
		t.Fatalf("expected 3 maps, got %d", len(maps))
	}
	wantModes := []GameMode{ModeHardpoint, ModeSearchAndDestroy, ModeControl}
	for i, item := range maps {
		if item.MatchID != 7 || item.Number != i+1 || item.Status != MapPending {
			t.Fatalf("unexpected map %d: %+v", i, item)
		}
		if item.GameMode != wantModes[i] {
			t.Fatalf("map %d mode: got %q want %q", i+1, item.GameMode, wantModes[i])
		}
	}
}
