// Package session owns one playthrough of Lucky Thirteen: a board, the
// audio speaker, the level flow around the board (intro, playing, won) and
// the host-side settings commands. It replaces the process-wide game
// object of the original design with an explicit handle the event loop is
// given.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"luckythirteen/internal/audio"
	"luckythirteen/internal/board"
	"luckythirteen/internal/config"
	"luckythirteen/internal/rng"
)

// Level is where the player is in the session flow.
type Level int

const (
	// LevelIntro plays the voice intro until skipped.
	LevelIntro Level = iota

	// LevelPlaying is active play on the board.
	LevelPlaying

	// LevelWon follows a full clear; skipping returns to the intro.
	LevelWon
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelIntro:
		return "intro"
	case LevelPlaying:
		return "playing"
	case LevelWon:
		return "won"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Command is the host-side input vocabulary: the board actions plus the
// session controls that never reach the board.
type Command int

const (
	CmdMoveNorth Command = iota
	CmdMoveSouth
	CmdMoveEast
	CmdMoveWest
	CmdSelect
	CmdDeselectAll
	CmdQueryDepth
	CmdSkip
	CmdVolumeUp
	CmdVolumeDown
	CmdCycleVoice
)

// volumeStep is how far one volume command moves the music gain.
const volumeStep = 0.05

// Session is the game-session controller. Single-writer: one Dispatch at
// a time, driven by the host event loop.
type Session struct {
	id      string
	cfg     *config.Config
	lib     *audio.Library
	speaker *audio.Speaker
	board   *board.Board
	level   Level
	log     *zap.Logger
	src     rng.Source

	// observers receive board events after the speaker, only while the
	// board level is active.
	observers []board.Sink
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithSource substitutes the board's random source. Tests use this to pin
// the draw sequence.
func WithSource(src rng.Source) Option {
	return func(s *Session) { s.src = src }
}

// WithObserver registers an extra event sink, e.g. the TUI transcript.
func WithObserver(sink board.Sink) Option {
	return func(s *Session) { s.observers = append(s.observers, sink) }
}

// New builds a session from settings. The board is created immediately but
// the session starts on the intro level; play begins when the intro is
// skipped.
func New(cfg *config.Config, player audio.Player, log *zap.Logger, opts ...Option) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	lib, err := audio.NewLibrary(cfg.Audio.SoundsDir, cfg.Audio.Voice)
	if err != nil {
		return nil, err
	}
	if cfg.Audio.Muted {
		player = audio.NullPlayer{}
	}

	s := &Session{
		id:      uuid.NewString(),
		cfg:     cfg,
		lib:     lib,
		speaker: audio.NewSpeaker(lib, player, cfg.Game.Target, log),
		level:   LevelIntro,
		log:     log,
		src:     rng.New(time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(s)
	}

	b, err := board.New(cfg.Game.BoardSize, cfg.Game.Target, s.src, board.SinkFunc(s.handleEvent))
	if err != nil {
		return nil, err
	}
	s.board = b

	s.log.Info("session started",
		zap.String("session_id", s.id),
		zap.Int("board_size", cfg.Game.BoardSize),
		zap.Int("target", cfg.Game.Target),
		zap.String("voice", lib.Voice()),
	)
	s.speaker.Speak("intro.wav")
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Level returns the current level.
func (s *Session) Level() Level { return s.level }

// Board exposes the board for read-only queries (cursor, depth, size).
// Mutation goes through Dispatch only.
func (s *Session) Board() *board.Board { return s.board }

// Voice returns the active voice pack name.
func (s *Session) Voice() string { return s.lib.Voice() }

// MusicVolume returns the current music gain.
func (s *Session) MusicVolume() float64 { return s.cfg.Audio.MusicVolume }

// Dispatch applies one player command. Gameplay signals (out of bounds,
// already selected, nothing selected) come back as the board's sentinel
// errors; the caller may surface them but the session has already routed
// the matching feedback sound.
func (s *Session) Dispatch(cmd Command) error {
	s.log.Debug("dispatch",
		zap.String("session_id", s.id),
		zap.Int("command", int(cmd)),
		zap.String("level", s.level.String()),
	)

	// Settings commands work on every level.
	switch cmd {
	case CmdVolumeUp:
		s.setVolume(s.cfg.Audio.MusicVolume + volumeStep)
		return nil
	case CmdVolumeDown:
		s.setVolume(s.cfg.Audio.MusicVolume - volumeStep)
		return nil
	case CmdCycleVoice:
		return s.cycleVoice()
	}

	switch s.level {
	case LevelIntro:
		if cmd == CmdSkip {
			s.startRound()
		}
		return nil
	case LevelWon:
		if cmd == CmdSkip {
			s.level = LevelIntro
			s.speaker.Speak("intro.wav")
		}
		return nil
	}

	switch cmd {
	case CmdMoveNorth:
		return s.board.HandleInput(board.ActionMoveNorth)
	case CmdMoveSouth:
		return s.board.HandleInput(board.ActionMoveSouth)
	case CmdMoveEast:
		return s.board.HandleInput(board.ActionMoveEast)
	case CmdMoveWest:
		return s.board.HandleInput(board.ActionMoveWest)
	case CmdSelect:
		return s.board.HandleInput(board.ActionSelect)
	case CmdDeselectAll:
		// Deselecting nothing is signal-only on the board side; the
		// feedback sound is routed here.
		err := s.board.HandleInput(board.ActionDeselectAll)
		if errors.Is(err, board.ErrNothingSelected) {
			s.speaker.Handle(board.Event{Kind: board.EventReject})
		}
		return err
	case CmdQueryDepth:
		return s.board.HandleInput(board.ActionQueryDepth)
	case CmdSkip:
		return nil
	default:
		return fmt.Errorf("unknown command %d", int(cmd))
	}
}

// startRound regenerates the board and enters active play. Also the path
// taken after a full clear: the board holds its cleared state until the
// won level is skipped and the next round begins.
func (s *Session) startRound() {
	s.level = LevelPlaying
	s.board.Populate()
}

// handleEvent is the board's sink: audio first, then observers, then the
// session's own level bookkeeping. Events are muted outside active play so
// constructing a session does not announce a board nobody is on yet.
func (s *Session) handleEvent(ev board.Event) {
	if s.level != LevelPlaying {
		return
	}
	s.speaker.Handle(ev)
	for _, o := range s.observers {
		o.Handle(ev)
	}
	if ev.Kind == board.EventGameWon {
		s.log.Info("board cleared", zap.String("session_id", s.id))
		s.level = LevelWon
	}
}

// setVolume clamps the music gain into [0,1] and records it in the
// settings, which the host persists on exit.
func (s *Session) setVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.cfg.Audio.MusicVolume = v
}

// cycleVoice rotates the voice pack and announces the new voice's name.
func (s *Session) cycleVoice() error {
	name, err := s.lib.CycleVoice()
	if err != nil {
		return err
	}
	s.cfg.Audio.Voice = name
	s.speaker.Speak("name.wav")
	return nil
}
