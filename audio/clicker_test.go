package audio

import "testing"

func TestClicker_StartsMuted(t *testing.T) {
	c := NewClicker()
	if !c.Muted() {
		t.Error("Expected new clicker to be muted")
	}
	c.SetMuted(false)
	if c.Muted() {
		t.Error("Expected SetMuted(false) to unmute")
	}
}

func TestClicker_UninitializedIsSilent(t *testing.T) {
	c := NewClicker()
	c.SetMuted(false)

	// Without a speaker these must be no-ops
	c.Fire()
	c.Empty()
	c.Close()

	if c.mixer.Len() != 0 {
		t.Errorf("Expected no queued cues, got %d", c.mixer.Len())
	}
}
