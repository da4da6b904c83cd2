// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"testing"
)

func TestReflSetAddOutcomes(t *testing.T) {
	var s reflSet

	if got := s.add(16); got != ReflAccepted {
		t.Errorf("first height: got %v, want accepted", got)
	}
	if got := s.add(16); got != ReflDuplicate {
		t.Errorf("same height again: got %v, want duplicate", got)
	}
	if got := s.add(-48); got != ReflAccepted {
		t.Errorf("second height: got %v, want accepted", got)
	}
	if got := s.add(100); got != ReflRejected {
		t.Errorf("third height over capacity: got %v, want rejected", got)
	}
	if got := s.add(-48); got != ReflDuplicate {
		t.Errorf("duplicate while full: got %v, want duplicate", got)
	}
	if s.n != 2 {
		t.Errorf("set size = %d, want 2", s.n)
	}

	s.clear()
	if s.n != 0 {
		t.Errorf("set size after clear = %d, want 0", s.n)
	}
	if got := s.add(100); got != ReflAccepted {
		t.Errorf("add after clear: got %v, want accepted", got)
	}
}

func TestEveryNthCadence(t *testing.T) {
	e := newEveryNth(10)
	fired := []int{}
	for i := 1; i <= 35; i++ {
		if e.tick() {
			fired = append(fired, i)
		}
	}
	want := []int{10, 20, 30}
	if len(fired) != len(want) {
		t.Fatalf("fired at %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired at %v, want %v", fired, want)
			break
		}
	}
}

func TestEveryNthMinimumInterval(t *testing.T) {
	e := newEveryNth(0)
	if !e.tick() {
		t.Errorf("interval clamped to 1 should fire every tick")
	}
}

func TestReflSystemOutcomeCounters(t *testing.T) {
	b := newRecordBackend()
	ctx := NewContext(b)
	rs := newReflSystem(ctx, 640, 480)

	rs.offer(0)
	rs.offer(0)
	rs.offer(64)
	rs.offer(128)
	rs.offer(64)

	if rs.accepted != 2 || rs.duplicates != 2 || rs.rejected != 1 {
		t.Errorf("counters = %d/%d/%d, want 2 accepted, 2 duplicate, 1 rejected",
			rs.accepted, rs.duplicates, rs.rejected)
	}
}

func TestReflSystemEffectiveSize(t *testing.T) {
	b := newRecordBackend()
	ctx := NewContext(b)

	rs := newReflSystem(ctx, 640, 480)
	if rs.texW != 512 || rs.texH != 480 {
		t.Errorf("effective size = %dx%d, want 512x480", rs.texW, rs.texH)
	}

	rs = newReflSystem(ctx, 320, 240)
	if rs.texW != 320 || rs.texH != 240 {
		t.Errorf("effective size = %dx%d, want 320x240", rs.texW, rs.texH)
	}
}

func TestReflAllocationFailureDisables(t *testing.T) {
	b := newRecordBackend()
	b.failGen = true
	ctx := NewContext(b)
	rs := newReflSystem(ctx, 640, 480)

	rs.offer(0)
	rs.rebuildTargets()

	if !rs.disabled {
		t.Errorf("allocation failure did not disable the subsystem")
	}
	if rs.enabled() {
		t.Errorf("subsystem still reports enabled")
	}
	if len(rs.targets) != 0 {
		t.Errorf("targets left after failed allocation: %d", len(rs.targets))
	}

	// stays off on later rebuilds
	rs.offer(32)
	rs.rebuildTargets()
	if len(rs.targets) != 0 || !rs.disabled {
		t.Errorf("subsystem revived after being disabled")
	}
}

func TestReflTargetsReuseTextures(t *testing.T) {
	b := newRecordBackend()
	ctx := NewContext(b)
	rs := newReflSystem(ctx, 640, 480)

	rs.offer(0)
	rs.offer(64)
	rs.rebuildTargets()
	if len(rs.targets) != 2 {
		t.Fatalf("targets = %d, want 2", len(rs.targets))
	}
	id0, id1 := rs.targets[0].texID, rs.targets[1].texID

	rs.set.clear()
	rs.offer(-16)
	rs.rebuildTargets()
	if len(rs.targets) != 1 {
		t.Fatalf("targets after rebuild = %d, want 1", len(rs.targets))
	}
	if rs.targets[0].texID != id0 {
		t.Errorf("rebuild did not reuse the first texture slot")
	}
	if rs.targets[0].height != -16 {
		t.Errorf("target height = %v, want -16", rs.targets[0].height)
	}
	if rs.targetFor(-16) != rs.targets[0] {
		t.Errorf("targetFor lookup failed")
	}
	if rs.targetFor(64) != nil {
		t.Errorf("stale height still resolves, tex %d", id1)
	}
}
