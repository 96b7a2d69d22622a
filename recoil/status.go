package recoil

import (
	"sync/atomic"

	"github.com/lixenwraith/recoil/status"
)

// Metric keys published by AttachStatus
const (
	MetricWeapon      = "recoil.weapon"
	MetricBarrel      = "recoil.barrel"
	MetricSight       = "recoil.sight"
	MetricSensitivity = "recoil.sensitivity"
	MetricFieldOfView = "recoil.fov"
	MetricInterval    = "recoil.interval_ms"
	MetricTableLen    = "recoil.table_len"
	MetricCursor      = "recoil.cursor"
	MetricShots       = "recoil.shots"
	MetricActive      = "recoil.active"
)

// metrics caches registry pointers so publishing never touches the map locks
type metrics struct {
	weapon, barrel, sight *status.AtomicString
	sens, fov, interval   *status.AtomicFloat
	tableLen, cursor      *atomic.Int64
	shots                 *atomic.Int64
	active                *atomic.Bool
}

// AttachStatus publishes engine state into reg from now on
// The engine still has a single owner; only the published values are safe to read concurrently
func (e *Engine) AttachStatus(reg *status.Registry) {
	e.metrics = &metrics{
		weapon:   reg.Strings.Get(MetricWeapon),
		barrel:   reg.Strings.Get(MetricBarrel),
		sight:    reg.Strings.Get(MetricSight),
		sens:     reg.Floats.Get(MetricSensitivity),
		fov:      reg.Floats.Get(MetricFieldOfView),
		interval: reg.Floats.Get(MetricInterval),
		tableLen: reg.Ints.Get(MetricTableLen),
		cursor:   reg.Ints.Get(MetricCursor),
		shots:    reg.Ints.Get(MetricShots),
		active:   reg.Bools.Get(MetricActive),
	}
	e.publishConfig()
}

func (e *Engine) publishConfig() {
	m := e.metrics
	if m == nil {
		return
	}
	m.weapon.Store(e.weapon.Name)
	m.barrel.Store(e.barrel.Name)
	m.sight.Store(e.sight.Name)
	m.sens.Set(e.cfg.Sensitivity)
	m.fov.Set(e.cfg.FieldOfView)
	m.interval.Set(e.MicroStepInterval())
	m.tableLen.Store(int64(len(e.table)))
	e.publishCursor()
}

func (e *Engine) publishCursor() {
	m := e.metrics
	if m == nil {
		return
	}
	m.cursor.Store(int64(e.cursor.Position()))
	m.active.Store(e.cursor.IsActive())
}

func (e *Engine) publishFire() {
	m := e.metrics
	if m == nil {
		return
	}
	m.shots.Add(1)
	e.publishCursor()
}
