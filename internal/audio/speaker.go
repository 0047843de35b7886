package audio

import (
	"go.uber.org/zap"

	"luckythirteen/internal/board"
)

// Speaker renders board events as sounds. It implements board.Sink and is
// the only consumer of the event vocabulary; everything it does is a pure
// event-to-filename mapping followed by a Play call.
type Speaker struct {
	lib    *Library
	player Player
	target int
	log    *zap.Logger
}

// NewSpeaker wires a speaker to a library and player. The target number
// bounds which depths are speakable.
func NewSpeaker(lib *Library, player Player, target int, log *zap.Logger) *Speaker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Speaker{lib: lib, player: player, target: target, log: log}
}

// Handle maps one board event to its sound. Unknown or silent kinds
// (populated, win) play nothing; the win outcome is voiced by the
// round-continues or game-won event that follows.
func (s *Speaker) Handle(ev board.Event) {
	switch ev.Kind {
	case board.EventMoved:
		switch ev.State {
		case board.CellSelected:
			s.play(s.lib.InterfacePath("select.wav"))
		case board.CellEmpty:
			s.play(s.lib.VoicePath("wild.wav"))
		default:
			s.play(s.lib.NumberPath(ev.Top))
		}
	case board.EventBlocked:
		s.play(s.lib.InterfacePath("wall.wav"))
	case board.EventProgress:
		s.play(s.lib.InterfacePath("select.wav"))
	case board.EventRevealed:
		s.play(s.lib.NumberPath(ev.Top))
	case board.EventRerolled:
		s.play(s.lib.InterfacePath("randomise.wav"))
	case board.EventRoundContinues:
		s.play(s.lib.InterfacePath("win.wav"))
	case board.EventGameWon:
		s.play(s.lib.InterfacePath("won.wav"))
	case board.EventLose:
		s.play(s.lib.InterfacePath("lose.wav"))
	case board.EventDeselected:
		s.play(s.lib.InterfacePath("deselect.wav"))
	case board.EventReject:
		s.play(s.lib.InterfacePath("fail.wav"))
	case board.EventDepth:
		// Depth zero and depths past the speakable range render as the
		// failure signal rather than a spoken number.
		if ev.Depth < 1 || ev.Depth > s.target {
			s.play(s.lib.InterfacePath("fail.wav"))
		} else {
			s.play(s.lib.NumberPath(ev.Depth))
		}
	}
}

// Speak plays a phrase from the active voice pack directly. The session
// uses it for announcements outside the board vocabulary (intro, name).
func (s *Speaker) Speak(name string) {
	s.play(s.lib.VoicePath(name))
}

func (s *Speaker) play(path string) {
	if err := s.player.Play(path); err != nil {
		s.log.Warn("playback failed", zap.String("path", path), zap.Error(err))
	}
}
