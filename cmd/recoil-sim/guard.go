package main

import (
	"sync"

	"github.com/lixenwraith/recoil/recoil"
)

// guardedEngine serializes engine access between the replay goroutine and the UI
type guardedEngine struct {
	mu  sync.Mutex
	eng *recoil.Engine
}

// Do runs fn with exclusive access to the engine
func (g *guardedEngine) Do(fn func(e *recoil.Engine)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.eng)
}

func (g *guardedEngine) Activate() {
	g.Do(func(e *recoil.Engine) { e.Activate() })
}

func (g *guardedEngine) Deactivate() {
	g.Do(func(e *recoil.Engine) { e.Deactivate() })
}

func (g *guardedEngine) FireNext() (x, y int) {
	g.Do(func(e *recoil.Engine) { x, y = e.FireNext() })
	return x, y
}

func (g *guardedEngine) IsActive() (active bool) {
	g.Do(func(e *recoil.Engine) { active = e.IsActive() })
	return active
}

func (g *guardedEngine) MicroStepInterval() (ms float64) {
	g.Do(func(e *recoil.Engine) { ms = e.MicroStepInterval() })
	return ms
}
