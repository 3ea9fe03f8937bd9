package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/saanvi/preppal/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title      string
	initRan    bool
	sawUsage   bool
	sawLastMsg tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.sawLastMsg = msg
	if _, ok := msg.(screen.UsageChangedMsg); ok {
		s.sawUsage = true
	}
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replacing screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	s2 := &stubScreen{title: "second"}
	r := New(s1)
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Update(ReplaceScreenMsg{Screen: s3})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

func TestUsageBroadcastReachesWholeStack(t *testing.T) {
	bottom := &stubScreen{title: "home"}
	top := &stubScreen{title: "results"}
	r := New(bottom)
	r.Push(top)

	r.Update(screen.UsageChangedMsg{})

	if !bottom.sawUsage {
		t.Error("expected bottom screen to receive UsageChangedMsg")
	}
	if !top.sawUsage {
		t.Error("expected top screen to receive UsageChangedMsg")
	}
}

func TestOtherMessagesOnlyReachActive(t *testing.T) {
	bottom := &stubScreen{title: "home"}
	top := &stubScreen{title: "quiz"}
	r := New(bottom)
	r.Push(top)

	type customMsg struct{}
	r.Update(customMsg{})

	if bottom.sawLastMsg != nil {
		t.Error("expected bottom screen to see no messages")
	}
	if _, ok := top.sawLastMsg.(customMsg); !ok {
		t.Errorf("expected top screen to see customMsg, got %T", top.sawLastMsg)
	}
}
