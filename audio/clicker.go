package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// clickFreq is the tone of a bullet cue, emptyFreq of the exhausted-magazine cue
	clickFreq = 880
	emptyFreq = 220

	clickDuration = 25 * time.Millisecond
)

// Clicker plays short cues for fired and exhausted playback
// Starts muted; a Clicker whose speaker failed to initialize stays silent
type Clicker struct {
	mu          sync.Mutex
	initialized bool
	muted       bool
	mixer       *beep.Mixer
}

// NewClicker creates a muted, uninitialized clicker
func NewClicker() *Clicker {
	return &Clicker{
		muted: true,
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker; safe to call more than once
func (c *Clicker) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// SetMuted enables or silences cues
func (c *Clicker) SetMuted(muted bool) {
	c.mu.Lock()
	c.muted = muted
	c.mu.Unlock()
}

// Muted reports whether cues are silenced
func (c *Clicker) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// Fire plays the bullet cue
func (c *Clicker) Fire() {
	c.play(clickFreq)
}

// Empty plays the exhausted-table cue
func (c *Clicker) Empty() {
	c.play(emptyFreq)
}

// Close stops playback; the speaker stays open for the process lifetime
func (c *Clicker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

func (c *Clicker) play(freq float64) {
	c.mu.Lock()
	active := c.initialized && !c.muted
	c.mu.Unlock()
	if !active {
		return
	}

	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	cue := beep.Take(sampleRate.N(clickDuration), tone)

	speaker.Lock()
	c.mixer.Add(cue)
	speaker.Unlock()
}
