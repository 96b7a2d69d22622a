package replay

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/lixenwraith/recoil/parameter"
)

// Source is the playback side of a recoil engine
type Source interface {
	Activate()
	Deactivate()
	FireNext() (int, int)
	IsActive() bool
	MicroStepInterval() float64
}

// Mover receives compensation offsets in whole pixels
type Mover interface {
	Move(dx, dy int)
}

// MoverFunc adapts a function to Mover
type MoverFunc func(dx, dy int)

func (f MoverFunc) Move(dx, dy int) { f(dx, dy) }

// Loop paces playback of a Source while a trigger is held
// The engine owns no timers; Loop is the host control loop that does
type Loop struct {
	Source  Source
	Trigger func() bool
	Mover   Mover

	// Poll is how often the trigger is sampled while idle
	// Zero uses parameter.UpdateRate
	Poll time.Duration

	// OnFire is called after every micro-step, including zero offsets
	OnFire func(dx, dy int)

	// OnEmpty is called when a burst exhausts the table with the trigger still held
	OnEmpty func()
}

// Interval converts the source's micro-step interval to a duration
// Falls back to parameter.UpdateRate when the source reports none
func Interval(s Source) time.Duration {
	ms := s.MicroStepInterval()
	if !(ms > 0) {
		return parameter.UpdateRate
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// Run drives playback until ctx is cancelled and returns ctx.Err()
// Every trigger press restarts the pattern from the first micro-step
// A burst that exhausts the table waits for the trigger to be released before re-arming
func (l *Loop) Run(ctx context.Context) error {
	poll := l.Poll
	if poll <= 0 {
		poll = parameter.UpdateRate
	}

	idle := time.NewTicker(poll)
	defer idle.Stop()

	armed := true
	for {
		held := l.Trigger()
		switch {
		case held && armed:
			if err := l.Burst(ctx); err != nil {
				return err
			}
			armed = false
		case !held:
			armed = true
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-idle.C:
		}
	}
}

// Burst plays one trigger hold: activate, fire once per interval while held and active, deactivate
// The first step fires immediately; returns nil when the trigger is released or the table is exhausted
// OnEmpty runs only when this burst fired the last step and the trigger is still held
func (l *Loop) Burst(ctx context.Context) error {
	l.Source.Activate()
	defer l.Source.Deactivate()

	interval := Interval(l.Source)
	pace := rate.NewLimiter(rate.Every(interval), 1)

	log.Printf("replay: burst start, interval %v", interval)
	exhausted := false
	for l.Source.IsActive() && l.Trigger() {
		if err := pace.Wait(ctx); err != nil {
			return err
		}
		// Release or reconfiguration may land while waiting
		if !l.Trigger() || !l.Source.IsActive() {
			break
		}
		l.step()
		if !l.Source.IsActive() {
			exhausted = true
			break
		}
	}
	if exhausted && l.Trigger() && l.OnEmpty != nil {
		l.OnEmpty()
	}
	log.Printf("replay: burst end")
	return nil
}

// step fires once and forwards non-zero offsets
func (l *Loop) step() {
	dx, dy := l.Source.FireNext()
	if dx != 0 || dy != 0 {
		if l.Mover != nil {
			l.Mover.Move(dx, dy)
		}
	}
	if l.OnFire != nil {
		l.OnFire(dx, dy)
	}
}
