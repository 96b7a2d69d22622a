package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/recoil/audio"
	"github.com/lixenwraith/recoil/config"
	"github.com/lixenwraith/recoil/parameter"
	"github.com/lixenwraith/recoil/profile"
	"github.com/lixenwraith/recoil/recoil"
	"github.com/lixenwraith/recoil/replay"
	"github.com/lixenwraith/recoil/status"
)

const (
	sensStep = 0.1
	fovStep  = 1.0

	// pixelsPerCell shrinks the pixel path to terminal cells; rows are roughly twice as tall as columns
	pixelsPerCellX = 4
	pixelsPerCellY = 8

	hudRows = 4

	// metricsWidth is the right-hand column reserved for the metrics panel
	metricsWidth = 36
)

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLabel  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFiring = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleOrigin = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePath   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHead   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

type point struct{ x, y int }

// sim is the interactive simulator: UI on the main goroutine, replay on its own
type sim struct {
	screen   tcell.Screen
	eng      *guardedEngine
	metrics  *status.Registry
	clicker  *audio.Clicker
	settings config.Settings
	savePath string

	trigger     atomic.Bool
	showMetrics bool

	pathMu sync.Mutex
	path   []point // cumulative compensation of the current burst, origin first
}

func newSim(screen tcell.Screen, eng *recoil.Engine, settings config.Settings, savePath string, clicker *audio.Clicker) *sim {
	s := &sim{
		screen:   screen,
		eng:      &guardedEngine{eng: eng},
		metrics:  status.NewRegistry(),
		clicker:  clicker,
		settings: settings,
		savePath: savePath,
		path:     []point{{}},
	}
	eng.AttachStatus(s.metrics)
	return s
}

// move records one forwarded offset
func (s *sim) move(dx, dy int) {
	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	last := s.path[len(s.path)-1]
	s.path = append(s.path, point{last.x + dx, last.y + dy})
}

func (s *sim) clearPath() {
	s.pathMu.Lock()
	s.path = s.path[:1]
	s.pathMu.Unlock()
}

func (s *sim) snapshotPath() []point {
	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	out := make([]point, len(s.path))
	copy(out, s.path)
	return out
}

// run blocks until the user quits
func (s *sim) run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := &replay.Loop{
		Source:  s.eng,
		Trigger: s.trigger.Load,
		Mover:   replay.MoverFunc(s.move),
		OnFire: func(dx, dy int) {
			if s.clicker != nil {
				s.clicker.Fire()
			}
		},
		OnEmpty: func() {
			if s.clicker != nil {
				s.clicker.Empty()
			}
		},
	}
	go func() {
		if err := loop.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("replay stopped: %v", err)
		}
	}()

	frame := time.NewTicker(parameter.UpdateRate)
	defer frame.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !s.handleEvent(ev) {
				return
			}
		case <-frame.C:
			s.draw()
		}
	}
}

// handleEvent applies one input event; false means quit
func (s *sim) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return s.handleRune(ev.Rune())
		}
	}
	return true
}

func (s *sim) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		firing := !s.trigger.Load()
		if firing {
			s.clearPath()
		}
		s.trigger.Store(firing)
	case 'c':
		s.clearPath()
	case 'm':
		s.showMetrics = !s.showMetrics
	case 'w', 'W', 'b', 's', '+', '=', '-', '_', ']', '[':
		s.trigger.Store(false)
		s.eng.Do(func(e *recoil.Engine) { reconfigure(e, r) })
		s.clearPath()
	case 'p':
		s.save()
	case 'i':
		s.export()
	}
	return true
}

// reconfigure maps a key to an engine change
func reconfigure(e *recoil.Engine, r rune) {
	cfg := e.Config()
	switch r {
	case 'w':
		e.SetEquipment(cycleWeapon(cfg.Weapon, 1))
	case 'W':
		e.SetEquipment(cycleWeapon(cfg.Weapon, -1))
	case 'b':
		e.SetEquipment(profile.Barrel((int(cfg.Barrel) + 1) % len(profile.Barrels())))
	case 's':
		e.SetEquipment(profile.Sight((int(cfg.Sight) + 1) % len(profile.Sights())))
	case '+', '=':
		e.SetSensitivity(cfg.Sensitivity + sensStep)
	case '-', '_':
		e.SetSensitivity(cfg.Sensitivity - sensStep)
	case ']':
		e.SetFieldOfView(cfg.FieldOfView + fovStep)
	case '[':
		e.SetFieldOfView(cfg.FieldOfView - fovStep)
	}
}

func cycleWeapon(w profile.Weapon, dir int) profile.Weapon {
	n := len(profile.Weapons())
	return profile.Weapon(((int(w)+dir)%n + n) % n)
}

func (s *sim) save() {
	if s.savePath == "" {
		return
	}
	s.eng.Do(func(e *recoil.Engine) { s.settings = s.settings.FromEngine(e) })
	if err := s.settings.Save(s.savePath); err != nil {
		log.Printf("save settings: %v", err)
		return
	}
	log.Printf("settings saved to %s", s.savePath)
}

// export writes the current pattern to <weapon key>.webp in the working directory
func (s *sim) export() {
	var (
		path string
		n    int64
		err  error
	)
	s.eng.Do(func(e *recoil.Engine) {
		path = e.Config().Weapon.Key() + ".webp"
		n, err = savePlot(path, e)
	})
	if err != nil {
		log.Printf("export pattern: %v", err)
		return
	}
	log.Printf("pattern written to %s (%s)", path, humanize.Bytes(uint64(n)))
}

func (s *sim) draw() {
	var metrics []status.Metric
	if s.showMetrics {
		metrics = s.metrics.Snapshot()
	}
	render(s.screen, readHUD(s.metrics, s.trigger.Load()), s.snapshotPath(), metrics)
	s.screen.Show()
}

// hud is the text state shown above the plot
type hud struct {
	weapon, barrel, sight string
	sens, fov             string
	interval              float64
	tableLen, cursor      int64
	shots                 int64
	active, firing        bool
}

func readHUD(reg *status.Registry, firing bool) hud {
	return hud{
		weapon:   reg.Strings.Get(recoil.MetricWeapon).Load(),
		barrel:   reg.Strings.Get(recoil.MetricBarrel).Load(),
		sight:    reg.Strings.Get(recoil.MetricSight).Load(),
		sens:     recoil.FormatSensitivity(reg.Floats.Get(recoil.MetricSensitivity).Get()),
		fov:      recoil.FormatFieldOfView(reg.Floats.Get(recoil.MetricFieldOfView).Get()),
		interval: reg.Floats.Get(recoil.MetricInterval).Get(),
		tableLen: reg.Ints.Get(recoil.MetricTableLen).Load(),
		cursor:   reg.Ints.Get(recoil.MetricCursor).Load(),
		shots:    reg.Ints.Get(recoil.MetricShots).Load(),
		active:   reg.Bools.Get(recoil.MetricActive).Load(),
		firing:   firing,
	}
}

// render draws the HUD, the compensation path and the key help
// A non-empty metrics list is drawn as a panel on the right, over the plot
func render(screen tcell.Screen, h hud, path []point, metrics []status.Metric) {
	screen.Clear()
	w, ht := screen.Size()

	drawText(screen, 0, 0, styleLabel, "weapon ")
	drawText(screen, 7, 0, styleHUD, fmt.Sprintf("%s | barrel %s | sight %s", h.weapon, h.barrel, h.sight))
	drawText(screen, 0, 1, styleHUD, fmt.Sprintf("sens %s  fov %s  step %.2fms", h.sens, h.fov, h.interval))
	drawText(screen, 0, 2, styleHUD, fmt.Sprintf("table %d  cursor %d  shots %s", h.tableLen, h.cursor, humanize.Comma(h.shots)))
	if h.firing {
		state := "FIRING"
		if !h.active {
			state = "EMPTY"
		}
		drawText(screen, 0, 3, styleFiring, state)
	}

	help := "w/W weapon  b barrel  s sight  +/- sens  [/] fov  space trigger  c clear  m metrics  p save  i image  q quit"
	drawText(screen, 0, ht-1, styleLabel, help)

	// Plot: origin top-centre of the free area; compensation pulls downward
	ox, oy := w/2, hudRows+1
	for i, p := range path {
		x := ox + p.x/pixelsPerCellX
		y := oy + p.y/pixelsPerCellY
		if x < 0 || x >= w || y < hudRows || y >= ht-1 {
			continue
		}
		switch {
		case i == 0:
			screen.SetContent(x, y, '+', nil, styleOrigin)
		case i == len(path)-1:
			screen.SetContent(x, y, '●', nil, styleHead)
		default:
			screen.SetContent(x, y, '·', nil, stylePath)
		}
	}

	if len(metrics) == 0 {
		return
	}
	px := w - metricsWidth
	if px < 0 {
		px = 0
	}
	for i, m := range metrics {
		y := hudRows + i
		if y >= ht-1 {
			break
		}
		drawText(screen, px, y, styleLabel, m.Key)
		drawText(screen, px+len(m.Key)+1, y, styleHUD, m.Value)
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	w, _ := screen.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
