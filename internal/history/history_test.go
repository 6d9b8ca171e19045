package history

import (
	"testing"
	"time"

	vaulterrors "keeptower/internal/errors"
)

func TestMain(m *testing.M) {
	SetTestIterations(100)
	defer SetTestIterations(0)
	m.Run()
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); !vaulterrors.Is(err, vaulterrors.KindInvalidData) {
		t.Errorf("HashPassword(\"\") = %v; want KindInvalidData", err)
	}
}

func TestHashPasswordProducesDistinctSalts(t *testing.T) {
	e1, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	e2, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if e1.Salt == e2.Salt {
		t.Error("two HashPassword calls produced the same salt")
	}
	if e1.Hash == e2.Hash {
		t.Error("two HashPassword calls with the same password produced the same hash (salts should differ)")
	}
}

func TestIsPasswordReused(t *testing.T) {
	entry, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	history := []Entry{*entry}

	if !IsPasswordReused("hunter2", history) {
		t.Error("IsPasswordReused should detect a reused password")
	}
	if IsPasswordReused("hunter3", history) {
		t.Error("IsPasswordReused should not flag a distinct password")
	}
}

func TestIsPasswordReusedEmptyCases(t *testing.T) {
	if IsPasswordReused("", nil) {
		t.Error("empty password should never be reused")
	}
	entry, _ := HashPassword("x")
	if IsPasswordReused("", []Entry{*entry}) {
		t.Error("empty password should short-circuit to false regardless of history")
	}
	if IsPasswordReused("x", nil) {
		t.Error("empty history should never report reuse")
	}
}

func TestIsPasswordReusedScansFullHistory(t *testing.T) {
	var history []Entry
	for _, pw := range []string{"alpha", "bravo", "charlie", "delta"} {
		e, err := HashPassword(pw)
		if err != nil {
			t.Fatalf("HashPassword(%q) failed: %v", pw, err)
		}
		history = append(history, *e)
	}

	// "alpha" is the oldest entry; detection must not depend on position.
	if !IsPasswordReused("alpha", history) {
		t.Error("IsPasswordReused should detect a match at the start of history")
	}
	if !IsPasswordReused("delta", history) {
		t.Error("IsPasswordReused should detect a match at the end of history")
	}
}

func TestAddToHistoryFIFOTrim(t *testing.T) {
	var history []Entry
	now := time.Now()
	for i := 0; i < 5; i++ {
		history = AddToHistory(history, Entry{Timestamp: now.Add(time.Duration(i) * time.Second)}, 3)
	}
	if len(history) != 3 {
		t.Fatalf("len(history) = %d; want 3", len(history))
	}
	// The surviving entries should be the 3 most recently appended (indices 2,3,4).
	if !history[0].Timestamp.Equal(now.Add(2 * time.Second)) {
		t.Errorf("oldest surviving entry should be index 2, got timestamp offset by %v", history[0].Timestamp.Sub(now))
	}
}

func TestAddToHistoryZeroMaxDepthDisablesHistory(t *testing.T) {
	history := []Entry{{}, {}}
	result := AddToHistory(history, Entry{}, 0)
	if len(result) != 0 {
		t.Errorf("AddToHistory with maxDepth=0 should clear history, got len=%d", len(result))
	}
}

func TestTrimHistory(t *testing.T) {
	history := make([]Entry, 10)
	trimmed := TrimHistory(history, 4)
	if len(trimmed) != 4 {
		t.Errorf("len(trimmed) = %d; want 4", len(trimmed))
	}

	if got := TrimHistory(history, 0); len(got) != 0 {
		t.Errorf("TrimHistory(maxDepth=0) should clear, got len=%d", len(got))
	}

	short := make([]Entry, 2)
	if got := TrimHistory(short, 5); len(got) != 2 {
		t.Errorf("TrimHistory should not grow a shorter history, got len=%d", len(got))
	}
}
