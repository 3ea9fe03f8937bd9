package quiz

import (
	"time"

	sess "github.com/saanvi/preppal/internal/session"
)

// poolReadyMsg is sent when the question pool has been assembled and the
// session started (or refused).
type poolReadyMsg struct {
	Engine *sess.Engine
	Err    error
}

// timerTickMsg is sent every second to drive the countdown. It carries
// the session ID so ticks from an abandoned session are dropped.
type timerTickMsg struct {
	SessionID string
	At        time.Time
}

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}
