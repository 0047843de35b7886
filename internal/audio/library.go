package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Interface sound files expected at the library root.
var interfaceSounds = []string{
	"select.wav",
	"win.wav",
	"lose.wav",
	"wall.wav",
	"fail.wav",
	"deselect.wav",
	"randomise.wav",
	"won.wav",
}

// Voice files every pack must carry besides the spoken numbers.
var voiceSounds = []string{
	"wild.wav",
	"intro.wav",
	"name.wav",
}

// Library resolves sound names against a sounds directory and the active
// voice pack. Interface sounds live at the root; spoken numbers and the
// wild/intro/name phrases come from sounds/voices/<pack>/.
type Library struct {
	root  string
	voice string
}

// NewLibrary returns a library rooted at dir using the given voice pack.
// An empty voice falls back to the first installed pack, when any exists.
func NewLibrary(dir, voice string) (*Library, error) {
	if voice == "" {
		packs, err := Voices(dir)
		if err != nil {
			return nil, err
		}
		if len(packs) > 0 {
			voice = packs[0]
		}
	}
	return &Library{root: dir, voice: voice}, nil
}

// Voice returns the active voice pack name.
func (l *Library) Voice() string { return l.voice }

// SetVoice switches the active voice pack.
func (l *Library) SetVoice(name string) { l.voice = name }

// CycleVoice rotates to the next installed voice pack and returns its
// name. With zero or one pack installed it is a no-op.
func (l *Library) CycleVoice() (string, error) {
	packs, err := Voices(l.root)
	if err != nil {
		return "", err
	}
	if len(packs) == 0 {
		return l.voice, nil
	}
	next := packs[0]
	for i, p := range packs {
		if p == l.voice && i+1 < len(packs) {
			next = packs[i+1]
			break
		}
	}
	l.voice = next
	return next, nil
}

// InterfacePath resolves an interface sound name to a path.
func (l *Library) InterfacePath(name string) string {
	return filepath.Join(l.root, name)
}

// VoicePath resolves a spoken phrase to a path inside the active pack.
func (l *Library) VoicePath(name string) string {
	return filepath.Join(l.root, "voices", l.voice, name)
}

// NumberPath resolves the spoken form of n.
func (l *Library) NumberPath(n int) string {
	return l.VoicePath(fmt.Sprintf("%d.wav", n))
}

// Voices lists the voice packs installed under dir, sorted by name.
func Voices(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dir, "voices"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning voice packs: %w", err)
	}
	var packs []string
	for _, e := range entries {
		if e.IsDir() {
			packs = append(packs, e.Name())
		}
	}
	sort.Strings(packs)
	return packs, nil
}

// Missing reports which files the library lacks for a game with the given
// target number: all interface sounds plus, for the active voice, the
// fixed phrases and the spoken numbers 1..target.
func (l *Library) Missing(target int) []string {
	var missing []string
	for _, name := range interfaceSounds {
		missing = appendIfAbsent(missing, l.InterfacePath(name))
	}
	for _, name := range voiceSounds {
		missing = appendIfAbsent(missing, l.VoicePath(name))
	}
	for n := 1; n <= target; n++ {
		missing = appendIfAbsent(missing, l.NumberPath(n))
	}
	return missing
}

func appendIfAbsent(missing []string, path string) []string {
	if _, err := os.Stat(path); err != nil {
		missing = append(missing, path)
	}
	return missing
}
