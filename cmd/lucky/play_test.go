package main

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luckythirteen/cmd/lucky/ui"
	"luckythirteen/internal/audio"
	"luckythirteen/internal/board"
	"luckythirteen/internal/config"
	"luckythirteen/internal/rng"
	"luckythirteen/internal/session"
)

func TestDescribeEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   board.Event
		want string
	}{
		{"moved to number", board.Event{Kind: board.EventMoved, Cell: board.Coord{X: 1, Y: 2}, State: board.CellNumber, Top: 7}, "(1,2) 7"},
		{"moved to wild", board.Event{Kind: board.EventMoved, Cell: board.Coord{X: 0, Y: 0}, State: board.CellEmpty}, "(0,0) wild"},
		{"blocked", board.Event{Kind: board.EventBlocked}, "wall"},
		{"progress", board.Event{Kind: board.EventProgress, Cell: board.Coord{X: 1, Y: 0}, Sum: 9}, "selected (1,0), sum 9"},
		{"win", board.Event{Kind: board.EventWin, Sum: 13}, "thirteen! cleared 13"},
		{"lose", board.Event{Kind: board.EventLose, Sum: 15}, "bust at 15 - penalty"},
		{"depth", board.Event{Kind: board.EventDepth, Depth: 4}, "depth 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeEvent(tt.ev))
		})
	}
}

func TestTranscript_Bounded(t *testing.T) {
	tr := &transcript{}
	for i := 0; i < transcriptLimit+50; i++ {
		tr.Handle(board.Event{Kind: board.EventBlocked})
	}
	assert.Len(t, tr.lines, transcriptLimit)
}

func testSession(t *testing.T) (*session.Session, *transcript) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "voices", "emily"), 0o755))

	cfg := config.DefaultConfig()
	cfg.Audio.SoundsDir = dir
	cfg.Game.BoardSize = 2

	tr := &transcript{}
	sess, err := session.New(cfg, audio.NullPlayer{}, nil,
		session.WithSource(rng.New(13)),
		session.WithObserver(tr),
	)
	require.NoError(t, err)
	return sess, tr
}

func TestGameModel_KeyFlow(t *testing.T) {
	sess, tr := testSession(t)
	m := newGameModel(sess, tr, ui.DefaultStyles())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(gameModel)
	require.True(t, m.ready)

	// Enter skips the intro and starts the round.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(gameModel)
	assert.Equal(t, session.LevelPlaying, sess.Level())
	assert.NotEmpty(t, tr.lines)

	// Arrow keys drive the cursor.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(gameModel)
	assert.Equal(t, board.Coord{X: 1}, sess.Board().Cursor())

	// Help toggles without touching the session.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = next.(gameModel)
	assert.True(t, m.showHelp)
	view := m.View()
	assert.Contains(t, view, "Lucky Thirteen")

	// q quits.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestGameModel_BoardView(t *testing.T) {
	sess, tr := testSession(t)
	m := newGameModel(sess, tr, ui.DefaultStyles())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(gameModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(gameModel)

	view := m.View()
	top, ok := sess.Board().Top(board.Coord{})
	require.True(t, ok)
	assert.Contains(t, view, "Lucky Thirteen")
	assert.Contains(t, stripAnsi(view), string(rune('0'+top%10)))
}

// stripAnsi is a crude escape-sequence filter good enough for asserting
// on rendered digits.
func stripAnsi(s string) string {
	var out []rune
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == 0x1b:
			inEscape = true
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
