// Package audio is the presentation boundary of the game. It maps board
// events onto the sound-file vocabulary (numbers, wall, select, win, lose,
// wild and friends) and hands resolved paths to a Player. The board core
// never reaches into this package; it only emits events.
package audio

import (
	"fmt"
	"os/exec"
)

// Player plays one sound file. Implementations own their own queueing or
// mixing; the Speaker fires and forgets.
type Player interface {
	Play(path string) error
}

// NullPlayer discards everything. Used when muted and in tests.
type NullPlayer struct{}

// Play does nothing.
func (NullPlayer) Play(string) error { return nil }

// CmdPlayer shells out to an external playback command (aplay, afplay,
// paplay) with the file path appended.
type CmdPlayer struct {
	// Command is the playback binary, e.g. "aplay".
	Command string
}

// Play launches the playback command without waiting for it, so a long
// sample never stalls the input loop.
func (p CmdPlayer) Play(path string) error {
	cmd := exec.Command(p.Command, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", p.Command, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
