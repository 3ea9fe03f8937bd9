package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/saanvi/preppal/internal/question"
	"github.com/saanvi/preppal/internal/router"
	sess "github.com/saanvi/preppal/internal/session"
)

func sampleResults() *ResultsScreen {
	qs := []question.Question{
		{ID: "q1", Tags: []string{"topic:arithmetic"}},
		{ID: "q2", Tags: []string{"topic:arithmetic"}},
		{ID: "q3", Tags: []string{"topic:fractions"}},
		{ID: "q4"},
	}
	answers := []sess.Answer{
		{QuestionID: "q1", Correct: true},
		{QuestionID: "q2", Correct: false},
		{QuestionID: "q3", Correct: true},
		{QuestionID: "q4", Correct: true},
	}
	return New(question.SubjectMaths, qs, answers, 185, nil)
}

func TestScoreAndView(t *testing.T) {
	s := sampleResults()

	view := s.View(80, 24)
	if !strings.Contains(view, "3 out of 4 correct") {
		t.Errorf("expected score line in view, got:\n%s", view)
	}
	if !strings.Contains(view, "3:05") {
		t.Errorf("expected elapsed time 3:05 in view, got:\n%s", view)
	}
}

func TestTopicBreakdown(t *testing.T) {
	s := sampleResults()

	topics := s.topicBreakdown()
	if len(topics) != 3 {
		t.Fatalf("expected 3 topics, got %d", len(topics))
	}

	// Sorted by name: arithmetic, fractions, general.
	if topics[0].Topic != "arithmetic" || topics[0].Correct != 1 || topics[0].Total != 2 {
		t.Errorf("arithmetic breakdown wrong: %+v", topics[0])
	}
	if topics[1].Topic != "fractions" || topics[1].Correct != 1 || topics[1].Total != 1 {
		t.Errorf("fractions breakdown wrong: %+v", topics[1])
	}
	if topics[2].Topic != "general" || topics[2].Correct != 1 || topics[2].Total != 1 {
		t.Errorf("general breakdown wrong: %+v", topics[2])
	}
}

func TestEscPopsScreen(t *testing.T) {
	s := sampleResults()

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command from Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg from Esc")
	}
}

func TestEmptySession(t *testing.T) {
	s := New(question.SubjectEnglish, nil, nil, 0, nil)
	view := s.View(80, 24)
	if !strings.Contains(view, "No questions answered") {
		t.Errorf("expected empty-session notice, got:\n%s", view)
	}
}
