package ai

import (
	"testing"

	"github.com/warhoundgame/warhound/common"
)

func TestStuckDetectorTripsAfterWindow(t *testing.T) {
	var s StuckDetector
	pos := common.Vec3{X: 5, Z: 5}
	s.Reset(pos)

	for i := 0; i < 29; i++ {
		if s.Update(pos, 0.1, 3.0, 1.5) {
			t.Fatalf("tripped early at step %d", i)
		}
	}
	if !s.Update(pos, 0.1, 3.0, 1.5) {
		t.Fatal("expected trip once the window elapsed")
	}
	// Trip re-arms: the next stretch must take a full window again.
	if s.Update(pos, 0.1, 3.0, 1.5) {
		t.Fatal("tripped immediately after re-arm")
	}
}

func TestStuckDetectorProgressResetsWindow(t *testing.T) {
	var s StuckDetector
	pos := common.Vec3{}
	s.Reset(pos)
	for i := 0; i < 100; i++ {
		pos = pos.Add(common.Vec3{X: 0.2}) // 2 m/s: plenty of progress
		if s.Update(pos, 0.1, 3.0, 1.5) {
			t.Fatalf("moving agent flagged stuck at step %d", i)
		}
	}
}

func TestStuckDetectorDisarmed(t *testing.T) {
	var s StuckDetector
	pos := common.Vec3{X: 1}
	s.Reset(pos)
	s.Disarm()
	// First update after disarm only re-arms.
	if s.Update(pos, 10, 3.0, 1.5) {
		t.Fatal("disarmed detector should not trip")
	}
}
