package asymptote

import "testing"

func TestSpreadTracker_Summary(t *testing.T) {
	tracker := newSpreadTracker()

	if s := tracker.Summary(); s.Rounds != 0 || s.Ratio != 0 {
		t.Errorf("Empty tracker should report nothing, got %+v", s)
	}

	for _, v := range []uint64{100, 110, 90, 100, 200} {
		tracker.Record(v)
	}

	s := tracker.Summary()
	if s.Rounds != 5 {
		t.Errorf("Expected 5 rounds, got %d", s.Rounds)
	}
	if s.Min != 90 || s.Max != 200 {
		t.Errorf("Expected min=90 max=200, got min=%d max=%d", s.Min, s.Max)
	}
	if s.Median != 100 {
		t.Errorf("Expected median 100, got %d", s.Median)
	}
	if !approxEqual(s.Ratio, 1.1, 1e-9) {
		t.Errorf("Expected ratio (200-90)/100 = 1.1, got %.4f", s.Ratio)
	}

	t.Logf("Spread: %+v", s)
}

func TestSpreadTracker_Clamps(t *testing.T) {
	tracker := newSpreadTracker()
	for _, v := range []uint64{0, ^uint64(0)} {
		if err := tracker.Record(v); err != nil {
			t.Fatalf("Record(%d) should clamp into range, got %v", v, err)
		}
	}

	s := tracker.Summary()
	if s.Rounds != 2 {
		t.Fatalf("Out-of-range values should still be recorded, got %d rounds", s.Rounds)
	}
	if s.Min != spreadMinNanos {
		t.Errorf("Expected min clamped to %d, got %d", spreadMinNanos, s.Min)
	}
	if !tracker.hist.ValuesAreEquivalent(int64(s.Max), spreadMaxNanos) {
		t.Errorf("Expected max clamped to %d, got %d", spreadMaxNanos, s.Max)
	}
}
