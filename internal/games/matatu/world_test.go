package matatu

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/matatu/internal/config"
	"github.com/vovakirdan/matatu/internal/core"
)

// With the reference config the first crossing spawns on tick 300 at y=-20,
// moves 5 per tick from that same tick on, and first lies inside the
// (330, 500) band at y=335 on tick 370.
const firstPauseTick = 370

func newTestWorld(seed int64) *World {
	return NewWorld(config.DefaultMatatuConfig(), seed)
}

func hasEvent(events []core.Event, kind string) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func runUntilPaused(t *testing.T, w *World, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		w.Tick(false)
		if w.Paused() {
			return i
		}
	}
	t.Fatalf("world did not pause within %d ticks", limit)
	return 0
}

func TestWorldInitialState(t *testing.T) {
	w := newTestWorld(1)
	snap := w.Snapshot()

	if snap.TargetLane != 1 || snap.AgentX != 300 || snap.AgentY != 400 {
		t.Errorf("agent starts at lane=%d x=%v y=%v, expected lane 1 at (300, 400)", snap.TargetLane, snap.AgentX, snap.AgentY)
	}
	if snap.Paused || snap.ActiveZone != NoZone || snap.IgnoreTicks != 0 {
		t.Errorf("initial pause state = %v/%d/%d, expected running with nothing bound", snap.Paused, snap.ActiveZone, snap.IgnoreTicks)
	}
	if len(snap.Obstacles) != 0 || len(snap.Crossings) != 0 {
		t.Error("feeds should start empty")
	}
}

func TestObstacleSpawnSchedule(t *testing.T) {
	w := newTestWorld(1)

	for tick := 1; tick <= 90; tick++ {
		events := w.Tick(false)
		spawned := hasEvent(events, EventObstacleSpawned)
		if spawned != (tick%45 == 0) {
			t.Fatalf("tick %d: spawned=%v", tick, spawned)
		}
	}

	snap := w.Snapshot()
	if len(snap.Obstacles) != 2 {
		t.Fatalf("expected 2 obstacles, got %d", len(snap.Obstacles))
	}
	// Spawned at -120 on tick 45, moved on ticks 45..90
	if snap.Obstacles[0].Y != -120+46*5 {
		t.Errorf("first obstacle y = %v, expected %v", snap.Obstacles[0].Y, -120+46*5)
	}
}

func TestSpawnTimersFollowConfig(t *testing.T) {
	w := newTestWorld(3)
	for i := 0; i < 300; i++ {
		w.Tick(false)
	}

	// 45-tick obstacle interval and 300-tick crossing interval
	stats := w.Stats()
	if stats.ObstaclesSpawned != 6 || stats.CrossingsSpawned != 1 {
		t.Errorf("after 300 ticks spawned %d obstacles and %d crossings, expected 6 and 1",
			stats.ObstaclesSpawned, stats.CrossingsSpawned)
	}
	if w.crossings.Len() != 1 {
		t.Errorf("crossing feed holds %d zones, expected 1", w.crossings.Len())
	}
}

func TestCrossingPausesExactlyOnce(t *testing.T) {
	w := newTestWorld(1)

	pauses := 0
	for tick := 1; tick <= firstPauseTick+50; tick++ {
		events := w.Tick(false)
		if hasEvent(events, EventPaused) {
			pauses++
			if tick != firstPauseTick {
				t.Errorf("paused on tick %d, expected %d", tick, firstPauseTick)
			}
			snap := w.Snapshot()
			if len(snap.Crossings) != 1 || snap.Crossings[0].Y != 335 {
				t.Errorf("crossings at pause = %v, expected one at y=335", snap.Crossings)
			}
			if snap.ActiveZone != snap.Crossings[0].ID {
				t.Errorf("ActiveZone = %d, expected %d", snap.ActiveZone, snap.Crossings[0].ID)
			}
		}
	}

	if pauses != 1 {
		t.Errorf("paused %d times, expected exactly once", pauses)
	}
	if w.Stats().Pauses != 1 {
		t.Errorf("Stats().Pauses = %d, expected 1", w.Stats().Pauses)
	}
}

func TestPausedWorldIsFrozen(t *testing.T) {
	w := newTestWorld(3)
	runUntilPaused(t, w, 1000)

	before := w.Snapshot()
	for i := 0; i < 100; i++ {
		w.Tick(false)
	}
	after := w.Snapshot()

	if after.Tick != before.Tick+100 {
		t.Errorf("tick counter = %d, expected %d", after.Tick, before.Tick+100)
	}
	after.Tick = before.Tick
	if !reflect.DeepEqual(before, after) {
		t.Errorf("world changed while paused:\nbefore %+v\nafter  %+v", before, after)
	}

	stats := w.Stats()
	if stats.PausedTicks != 100 {
		t.Errorf("PausedTicks = %d, expected 100", stats.PausedTicks)
	}
	// Obstacle timer fired on ticks 405 and 450
	if stats.SpawnsIgnored != 2 {
		t.Errorf("SpawnsIgnored = %d, expected 2", stats.SpawnsIgnored)
	}
}

func TestIgnoredSpawnsAreNotReplayed(t *testing.T) {
	w := newTestWorld(5)
	runUntilPaused(t, w, 1000)
	for w.tick < firstPauseTick+100 {
		w.Tick(false)
	}
	spawnedBefore := w.Stats().ObstaclesSpawned

	events := w.Tick(true)
	if !hasEvent(events, EventResumed) {
		t.Fatal("resume signal while paused should resume")
	}

	// Next firing is on tick 495; nothing may spawn before it
	for w.tick < 494 {
		if hasEvent(w.Tick(false), EventObstacleSpawned) {
			t.Fatalf("obstacle spawned on tick %d from a dropped timer firing", w.tick)
		}
	}
	if w.Stats().ObstaclesSpawned != spawnedBefore {
		t.Errorf("ObstaclesSpawned = %d, expected %d", w.Stats().ObstaclesSpawned, spawnedBefore)
	}
	if !hasEvent(w.Tick(false), EventObstacleSpawned) {
		t.Error("obstacle should spawn on tick 495")
	}
}

func TestResumeClearsCrossingAndStartsGrace(t *testing.T) {
	w := newTestWorld(9)
	runUntilPaused(t, w, 1000)
	w.Tick(false)

	w.Tick(true)

	snap := w.Snapshot()
	if snap.Paused {
		t.Fatal("world should be running after resume")
	}
	if len(snap.Crossings) != 0 {
		t.Errorf("the crossing that caused the pause should be gone, got %v", snap.Crossings)
	}
	if snap.ActiveZone != NoZone {
		t.Errorf("ActiveZone = %d, expected none", snap.ActiveZone)
	}
	// The resume tick itself is the first unpaused tick of the grace period
	if snap.IgnoreTicks != 59 {
		t.Errorf("IgnoreTicks = %d, expected 59", snap.IgnoreTicks)
	}
}

func TestResumeSignalWhileRunningIsIgnored(t *testing.T) {
	w := newTestWorld(1)

	events := w.Tick(true)
	if hasEvent(events, EventResumed) {
		t.Error("resume while running should be ignored")
	}
	if w.Snapshot().IgnoreTicks != 0 {
		t.Error("resume while running should not start a grace period")
	}
}

func TestGraceAfterResumeInWorld(t *testing.T) {
	cfg := config.DefaultMatatuConfig()
	cfg.Crossings.EverySeconds = 0.2 // one every 6 ticks, so the band is never empty for long
	w := NewWorld(cfg, 1)

	runUntilPaused(t, w, 1000)
	w.Tick(true)

	// Resume tick plus 59 more are protected
	for i := 1; i < 60; i++ {
		if w.Tick(false); w.Paused() {
			t.Fatalf("re-paused %d ticks after resume", i)
		}
	}
	if w.Tick(false); !w.Paused() {
		t.Error("should pause again once the grace period is over and a crossing is in the band")
	}
}

func TestWorldInvariantsOverLongRun(t *testing.T) {
	w := newTestWorld(2024)
	lanes := NewLaneTable(w.cfg.Lanes)
	pausedFor := 0

	for i := 0; i < 6000; i++ {
		resume := pausedFor >= 15
		w.Tick(resume)
		if w.Paused() {
			pausedFor++
		} else {
			pausedFor = 0
		}

		snap := w.Snapshot()
		if !lanes.Valid(snap.TargetLane) {
			t.Fatalf("tick %d: invalid target lane %d", snap.Tick, snap.TargetLane)
		}
		if snap.AgentX < lanes.X(0) || snap.AgentX > lanes.X(lanes.Len()-1) {
			t.Fatalf("tick %d: agent left the road at x=%v", snap.Tick, snap.AgentX)
		}
		if snap.IgnoreTicks < 0 {
			t.Fatalf("tick %d: negative grace countdown", snap.Tick)
		}
		if (snap.ActiveZone != NoZone) != snap.Paused {
			t.Fatalf("tick %d: active zone %d with paused=%v", snap.Tick, snap.ActiveZone, snap.Paused)
		}
		for _, o := range snap.Obstacles {
			if o.Y >= w.cfg.World.Height {
				t.Fatalf("tick %d: obstacle past the world at y=%v", snap.Tick, o.Y)
			}
		}
	}

	stats := w.Stats()
	if stats.Pauses == 0 || stats.Dodges == 0 {
		t.Errorf("a long run should pause and dodge, got %+v", stats)
	}
}

func TestWorldDeterminism(t *testing.T) {
	run := func() (Snapshot, core.RunStats) {
		w := newTestWorld(12345)
		for i := 0; i < 3000; i++ {
			w.Tick(w.Paused() && i%20 == 0)
		}
		return w.Snapshot(), w.Stats()
	}

	snap1, stats1 := run()
	snap2, stats2 := run()

	if !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("Determinism failed: snapshots differ\n%+v\n%+v", snap1, snap2)
	}
	if stats1 != stats2 {
		t.Errorf("Determinism failed: stats differ\n%+v\n%+v", stats1, stats2)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	w := newTestWorld(1)
	for i := 0; i < 50; i++ {
		w.Tick(false)
	}

	snap := w.Snapshot()
	snap.Obstacles[0].Y = -9999
	snap.Lanes[0] = -1

	fresh := w.Snapshot()
	if fresh.Obstacles[0].Y == -9999 || fresh.Lanes[0] == -1 {
		t.Error("mutating a snapshot must not change the world")
	}
}
