package usage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/saanvi/preppal/internal/question"
)

// settingsKey is the fixed kv key holding the serialized settings.
const settingsKey = "settings"

// Default session lengths and daily allowance, in seconds.
const (
	DefaultQuizSecs    = 10 * 60
	DefaultWritingSecs = 15 * 60
	DefaultDailySecs   = 30 * 60
)

// Settings is everything the learner can configure.
type Settings struct {
	Profile     question.Profile `json:"profile"`
	QuizSecs    int              `json:"quizSecs"`
	WritingSecs int              `json:"writingSecs"`
	DailySecs   int              `json:"dailySecs"`
}

// DefaultSettings returns the first-run configuration.
func DefaultSettings() Settings {
	return Settings{
		Profile:     question.DefaultProfile(),
		QuizSecs:    DefaultQuizSecs,
		WritingSecs: DefaultWritingSecs,
		DailySecs:   DefaultDailySecs,
	}
}

// LoadSettings reads settings from the store, falling back to defaults
// when the key is absent or the stored JSON fails to parse.
func LoadSettings(ctx context.Context, kv KV) Settings {
	raw, ok, err := kv.Get(ctx, settingsKey)
	if err != nil || !ok {
		return DefaultSettings()
	}
	var s Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return DefaultSettings()
	}
	// Backfill zero-valued fields written by older versions.
	if s.QuizSecs <= 0 {
		s.QuizSecs = DefaultQuizSecs
	}
	if s.WritingSecs <= 0 {
		s.WritingSecs = DefaultWritingSecs
	}
	if s.DailySecs <= 0 {
		s.DailySecs = DefaultDailySecs
	}
	if s.Profile.Grade == "" {
		s.Profile = question.DefaultProfile()
	}
	if len(s.Profile.Boards) == 0 {
		s.Profile.Boards = []string{"Generic"}
	}
	return s
}

// SaveSettings persists settings as JSON under the fixed key.
func SaveSettings(ctx context.Context, kv KV, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := kv.Set(ctx, settingsKey, string(data)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
