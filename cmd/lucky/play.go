// This file implements the interactive game loop using bubbletea.
package main

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"luckythirteen/cmd/lucky/ui"
	"luckythirteen/internal/audio"
	"luckythirteen/internal/board"
	"luckythirteen/internal/rng"
	"luckythirteen/internal/session"
)

// helpText is rendered by glamour on the help screen.
const helpText = `# Lucky Thirteen

Select cells whose visible numbers add up to exactly 13.

| Key | Action |
| --- | ------ |
| arrows | move around the board |
| enter | select the current cell / skip intro |
| esc | deselect all |
| d | speak the stack depth |
| m / M | music volume up / down |
| c | change voice |
| ? | toggle this help |
| q, ctrl+c | quit |

Empty cells are wild: with nothing selected they reveal a fresh number,
with one cell selected they reroll it, with two or more they score the
selection immediately.`

// transcript collects board events as text lines for the viewport. The
// session delivers events synchronously inside Update, so no locking.
type transcript struct {
	lines []string
}

const transcriptLimit = 200

func (tr *transcript) Handle(ev board.Event) {
	line := describeEvent(ev)
	if line == "" {
		return
	}
	tr.lines = append(tr.lines, line)
	if len(tr.lines) > transcriptLimit {
		tr.lines = tr.lines[len(tr.lines)-transcriptLimit:]
	}
}

// describeEvent turns a board event into a transcript line.
func describeEvent(ev board.Event) string {
	switch ev.Kind {
	case board.EventPopulated:
		return "board populated"
	case board.EventMoved:
		switch ev.State {
		case board.CellSelected:
			return fmt.Sprintf("%s (selected)", ev.Cell)
		case board.CellEmpty:
			return fmt.Sprintf("%s wild", ev.Cell)
		default:
			return fmt.Sprintf("%s %d", ev.Cell, ev.Top)
		}
	case board.EventBlocked:
		return "wall"
	case board.EventProgress:
		return fmt.Sprintf("selected %s, sum %d", ev.Cell, ev.Sum)
	case board.EventRevealed:
		return fmt.Sprintf("revealed %d at %s", ev.Top, ev.Cell)
	case board.EventRerolled:
		return fmt.Sprintf("rerolled %s to %d", ev.Cell, ev.Top)
	case board.EventWin:
		return fmt.Sprintf("thirteen! cleared %d", ev.Sum)
	case board.EventGameWon:
		return "board cleared - you win!"
	case board.EventLose:
		return fmt.Sprintf("bust at %d - penalty", ev.Sum)
	case board.EventDeselected:
		return "deselected"
	case board.EventReject:
		return "already selected"
	case board.EventDepth:
		return fmt.Sprintf("depth %d", ev.Depth)
	default:
		return ""
	}
}

// gameModel is the bubbletea model for the interactive game.
type gameModel struct {
	sess       *session.Session
	transcript *transcript
	styles     ui.Styles
	viewport   viewport.Model
	renderer   *glamour.TermRenderer

	width    int
	height   int
	ready    bool
	showHelp bool
}

func newGameModel(sess *session.Session, tr *transcript, styles ui.Styles) gameModel {
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	return gameModel{
		sess:       sess,
		transcript: tr,
		styles:     styles,
		renderer:   renderer,
	}
}

func (m gameModel) Init() tea.Cmd {
	return nil
}

func (m gameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "?":
			m.showHelp = !m.showHelp
			return m, nil

		case "up":
			m.dispatch(session.CmdMoveNorth)
		case "down":
			m.dispatch(session.CmdMoveSouth)
		case "right":
			m.dispatch(session.CmdMoveEast)
		case "left":
			m.dispatch(session.CmdMoveWest)
		case "enter":
			if m.sess.Level() == session.LevelPlaying {
				m.dispatch(session.CmdSelect)
			} else {
				m.dispatch(session.CmdSkip)
			}
		case "esc":
			m.dispatch(session.CmdDeselectAll)
		case "d":
			m.dispatch(session.CmdQueryDepth)
		case "m":
			m.dispatch(session.CmdVolumeUp)
		case "M":
			m.dispatch(session.CmdVolumeDown)
		case "c":
			m.dispatch(session.CmdCycleVoice)
		}
		m.syncViewport()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		boardHeight := m.sess.Board().Size()*3 + 2
		vpHeight := msg.Height - boardHeight - 6
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = vpHeight
		}
		m.syncViewport()
		return m, nil
	}
	return m, nil
}

// dispatch forwards a command to the session. Gameplay signals are already
// voiced and logged by the session; nothing to do with them here.
func (m *gameModel) dispatch(cmd session.Command) {
	_ = m.sess.Dispatch(cmd)
}

func (m *gameModel) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.transcript.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m gameModel) View() string {
	if !m.ready {
		return "starting..."
	}
	if m.showHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Lucky Thirteen"))
	b.WriteString("\n")

	switch m.sess.Level() {
	case session.LevelIntro:
		b.WriteString(m.styles.Title.Render("\nWelcome."))
		b.WriteString(m.styles.Muted.Render("\nPress enter to start, ? for help.\n"))
	case session.LevelWon:
		b.WriteString(m.styles.Win.Render("\nBoard cleared!"))
		b.WriteString(m.styles.Muted.Render("\nPress enter to play again.\n"))
	default:
		b.WriteString(m.boardView())
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("voice %s | volume %.2f | ? help | q quit",
		orNone(m.sess.Voice()), m.sess.MusicVolume())
	b.WriteString(m.styles.Footer.Render(footer))
	return b.String()
}

// boardView draws the grid with the cursor, selection and stack tops.
// North is the top row, matching the up arrow.
func (m gameModel) boardView() string {
	brd := m.sess.Board()
	size := brd.Size()
	selected := make(map[board.Coord]bool)
	for _, c := range brd.Selected() {
		selected[c] = true
	}

	var rows []string
	for y := size - 1; y >= 0; y-- {
		var cells []string
		for x := 0; x < size; x++ {
			c := board.Coord{X: x, Y: y}
			label := "·"
			if top, ok := brd.Top(c); ok {
				label = fmt.Sprintf("%d", top)
			}
			style := m.styles.Cell
			switch {
			case c == brd.Cursor():
				style = m.styles.CursorCell
			case selected[c]:
				style = m.styles.SelectedCell
			case label == "·":
				style = m.styles.EmptyCell
			}
			cells = append(cells, style.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return m.styles.Board.Render(strings.Join(rows, "\n"))
}

func (m gameModel) helpView() string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(helpText); err == nil {
			return out
		}
	}
	return helpText
}

// detectPlayer finds an external playback command on the PATH. No player
// means the game runs silent, which is still useful with the TUI.
func detectPlayer(log *zap.Logger) audio.Player {
	for _, cmd := range []string{"paplay", "aplay", "afplay", "play"} {
		if _, err := exec.LookPath(cmd); err == nil {
			log.Info("using playback command", zap.String("command", cmd))
			return audio.CmdPlayer{Command: cmd}
		}
	}
	log.Warn("no playback command found, running silent")
	return audio.NullPlayer{}
}

// runGame wires config, audio and session together and runs the TUI.
func runGame() error {
	path, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var player audio.Player = audio.NullPlayer{}
	if !mute {
		player = detectPlayer(logger)
	}

	opts := []session.Option{}
	if seed != 0 {
		opts = append(opts, session.WithSource(rng.New(seed)))
	} else {
		opts = append(opts, session.WithSource(rng.New(time.Now().UnixNano())))
	}

	tr := &transcript{}
	opts = append(opts, session.WithObserver(tr))

	sess, err := session.New(cfg, player, logger, opts...)
	if err != nil {
		return err
	}

	styles := ui.DefaultStyles()
	if cfg.UI.Theme == "light" {
		styles = ui.NewStyles(ui.LightTheme())
	}

	p := tea.NewProgram(newGameModel(sess, tr, styles), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	// Volume and voice changes made during play persist across runs.
	if err := cfg.Save(path); err != nil {
		logger.Warn("could not save settings", zap.Error(err))
	}
	return nil
}
