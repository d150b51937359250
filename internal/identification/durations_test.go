package identification

import (
	"reflect"
	"testing"
)

func TestLocalDurationsGathersAllSources(t *testing.T) {
	frag := mustFragment(t, `{
		"duration": 120,
		"scene": {"duration": "120.0", "fingerprints": [{"duration": 119.5}, {"duration": "n/a"}]},
		"fingerprints": [{"duration": 240}],
		"files": [{"duration": 119.5}, {"duration": null}]
	}`)
	got := LocalDurations(frag)
	want := []float64{120, 119.5, 240}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LocalDurations = %v, want %v", got, want)
	}
}

func TestLocalDurationsEmpty(t *testing.T) {
	frag := mustFragment(t, `{"duration": "NaN", "scene": "not an object", "fingerprints": {"duration": 3}}`)
	if got := LocalDurations(frag); len(got) != 0 {
		t.Fatalf("expected no durations, got %v", got)
	}
}

func TestLocalDurationsSkipsOverflow(t *testing.T) {
	frag := mustFragment(t, `{"duration": 1e400, "files": [{"duration": 95}]}`)
	if got := LocalDurations(frag); !reflect.DeepEqual(got, []float64{95}) {
		t.Fatalf("LocalDurations = %v, want [95]", got)
	}
}

func TestCandidateDurationKeyOrder(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{`{"duration": 61, "length": 99}`, 61, true},
		{`{"durationSeconds": "42.5"}`, 42.5, true},
		{`{"duration": "long", "runTime": 300}`, 300, true},
		{`{"time": 7}`, 7, true},
		{`{"duration": true}`, 0, false},
		{`{}`, 0, false},
	}
	for _, tt := range tests {
		got, ok := CandidateDuration(mustDoc(t, tt.raw))
		if got != tt.want || ok != tt.ok {
			t.Errorf("CandidateDuration(%s) = %v,%v want %v,%v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDurationMatchesTolerance(t *testing.T) {
	locals := []float64{120}
	if !DurationMatches(129.9, true, locals, 10) {
		t.Fatal("129.9 should match 120 within 10s")
	}
	if !DurationMatches(130, true, locals, 10) {
		t.Fatal("tolerance boundary is inclusive")
	}
	if DurationMatches(131.0, true, locals, 10) {
		t.Fatal("131.0 should not match 120 within 10s")
	}
	if DurationMatches(120, false, locals, 10) {
		t.Fatal("unknown candidate duration never matches")
	}
	if DurationMatches(120, true, nil, 10) {
		t.Fatal("no local durations never matches")
	}
	if !DurationMatches(400, true, []float64{10, 395}, 10) {
		t.Fatal("any local duration may match")
	}
}
