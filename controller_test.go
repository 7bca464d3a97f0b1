package panorama

import "testing"

func noInitialSpeed(o *Options) { o.InitialSpeed = 0 }

func TestPressMoveSetsVelocityAndHolds(t *testing.T) {
	p, _ := newLoaded(t, noInitialSpeed)
	c := p.Controller()
	if p.State() != StateIdle {
		t.Fatalf("State = %v before input, want idle", p.State())
	}

	c.Press(100)
	if !p.Holding() {
		t.Fatal("Holding = false after Press")
	}
	if !p.Pan().HasMovedOnce {
		t.Error("HasMovedOnce = false after Press")
	}
	c.Move(80)
	if p.Velocity() != 20 {
		t.Errorf("Velocity = %g, want 20", p.Velocity())
	}
	if got := pendingTicks(p); got != 1 {
		t.Errorf("pending ticks = %d after Move, want 1", got)
	}

	// While held, the tick neither damps nor reschedules.
	p.Scheduler().Step(newStepper().next())
	if p.Velocity() != 20 {
		t.Errorf("Velocity = %g after held tick, want 20", p.Velocity())
	}
	if p.State() != StateIdle {
		t.Errorf("State = %v after held tick, want idle", p.State())
	}
	if !approxEqual(p.Position(), 1800+20*6, 1e-6) {
		t.Errorf("Position = %g, want %g", p.Position(), 1800.0+20*6)
	}
}

func TestMoveWithoutPressIsIgnored(t *testing.T) {
	p, _ := newLoaded(t, noInitialSpeed)
	p.Controller().Move(50)
	if p.Velocity() != 0 {
		t.Errorf("Velocity = %g, want 0", p.Velocity())
	}
	if got := pendingTicks(p); got != 0 {
		t.Errorf("pending ticks = %d, want 0", got)
	}
}

func TestMoveUsesDeltaSincePreviousMove(t *testing.T) {
	p, _ := newLoaded(t, noInitialSpeed)
	c := p.Controller()
	c.Press(100)
	c.Move(90)
	c.Move(95)
	if p.Velocity() != -5 {
		t.Errorf("Velocity = %g, want -5", p.Velocity())
	}
	// Both moves coalesce into one pending tick.
	if got := pendingTicks(p); got != 1 {
		t.Errorf("pending ticks = %d, want 1", got)
	}
}

func TestKeySchedulesExactlyOneTick(t *testing.T) {
	p, _ := newLoaded(t, noInitialSpeed)
	c := p.Controller()

	c.Key(KeyLeft)
	if p.Velocity() != -DefaultKeySpeed {
		t.Errorf("Velocity = %g, want %g", p.Velocity(), -DefaultKeySpeed)
	}
	if !p.Holding() {
		t.Error("Holding = false after Key")
	}
	c.Key(KeyLeft)
	if got := pendingTicks(p); got != 1 {
		t.Errorf("pending ticks = %d, want 1", got)
	}

	c.Key(KeyRight)
	if p.Velocity() != DefaultKeySpeed {
		t.Errorf("Velocity = %g, want %g", p.Velocity(), DefaultKeySpeed)
	}
}

func TestKeyHoldLastsOneTickThenDamps(t *testing.T) {
	p, _ := newLoaded(t, noInitialSpeed)
	clock := newStepper()
	p.Controller().Key(KeyLeft)

	// First tick runs undamped and clears the hold.
	p.Scheduler().Step(clock.next())
	if p.Holding() {
		t.Fatal("Holding = true after the key tick")
	}
	if p.Velocity() != -5 {
		t.Errorf("Velocity = %g after key tick, want -5", p.Velocity())
	}
	if !approxEqual(p.Position(), 1800-30, 1e-6) {
		t.Errorf("Position = %g, want 1770", p.Position())
	}
	if p.State() != StateAnimating {
		t.Fatalf("State = %v, want animating", p.State())
	}

	p.Scheduler().Step(clock.next())
	if !approxEqual(p.Velocity(), -5/DefaultDamping, epsilon) {
		t.Errorf("Velocity = %g, want %g", p.Velocity(), -5/DefaultDamping)
	}

	steps := 0
	for p.State() == StateAnimating && steps < 1000 {
		p.Scheduler().Step(clock.next())
		steps++
	}
	if p.State() != StateIdle {
		t.Fatal("loop did not settle")
	}
	// |v| drops below 1 after 33 dampings, one of which already ran.
	if steps != 32 {
		t.Errorf("settled after %d more ticks, want 32", steps)
	}
}

func TestKeyDuringDragKeepsPointerHold(t *testing.T) {
	p, _ := newLoaded(t, noInitialSpeed)
	c := p.Controller()
	c.Press(100)
	c.Key(KeyRight)
	p.Scheduler().Step(newStepper().next())
	if !p.Holding() {
		t.Error("Holding = false, want the pointer hold kept")
	}
	c.Move(90)
	if p.Velocity() != 10 {
		t.Errorf("Velocity = %g, want 10", p.Velocity())
	}
}

func TestReleaseRedrawsImmediately(t *testing.T) {
	p, surface := newLoaded(t, noInitialSpeed)
	c := p.Controller()
	c.Press(100)
	c.Move(80)
	before := surface.draws

	c.Release()
	if surface.draws != before+1 {
		t.Errorf("draws = %d, want %d", surface.draws, before+1)
	}
	if p.Holding() {
		t.Error("Holding = true after Release")
	}
	// The redraw damped once and the loop keeps running.
	if !approxEqual(p.Velocity(), 20/DefaultDamping, epsilon) {
		t.Errorf("Velocity = %g, want %g", p.Velocity(), 20/DefaultDamping)
	}
	if p.State() != StateAnimating {
		t.Errorf("State = %v, want animating", p.State())
	}
}

func TestHandlersRouteToController(t *testing.T) {
	p, _ := newLoaded(t, noInitialSpeed)
	in := NewInjectedInput()
	in.Attach(p.Controller().Handlers())
	in.InjectPress(300)
	in.InjectMove(290)
	for in.Poll() {
	}
	if !p.Holding() || p.Velocity() != 10 {
		t.Errorf("Holding = %t, Velocity = %g; want true, 10", p.Holding(), p.Velocity())
	}
}
