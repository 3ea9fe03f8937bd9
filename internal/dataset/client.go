// Package dataset reads the curated question resources. The source is
// best-effort by contract: any failure (missing resource, network
// error, malformed payload) yields an empty result, never an error —
// the pool assembler degrades to generator-only output.
package dataset

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/saanvi/preppal/internal/question"
)

// resourceNames maps subjects to their curated resource files.
var resourceNames = map[question.Subject]string{
	question.SubjectMaths:   "math.json",
	question.SubjectEnglish: "english.json",
	question.SubjectVR:      "vr.json",
	question.SubjectNVR:     "nvr.json",
}

const (
	passagesResource = "passages.json"
	promptsResource  = "prompts.json"
)

// maxResourceBytes caps how much of a resource is read.
const maxResourceBytes = 4 << 20

// Client reads curated resources from an HTTP base URL or, when the
// base has no scheme, from a local directory.
type Client struct {
	base string
	http *http.Client
}

// New creates a Client for the given base. An empty base produces a
// client whose every read comes back empty.
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Questions fetches and normalizes the curated set for a quiz subject.
func (c *Client) Questions(ctx context.Context, subject question.Subject) []question.Question {
	name, ok := resourceNames[subject]
	if !ok {
		return nil
	}
	return question.Normalize(c.fetch(ctx, name), subject)
}

// Passages fetches and normalizes the comprehension passages.
func (c *Client) Passages(ctx context.Context) []question.Passage {
	return question.NormalizePassages(c.fetch(ctx, passagesResource))
}

// WritingPrompts fetches the writing prompt list. Entries may be plain
// strings or objects with a "prompt" field.
func (c *Client) WritingPrompts(ctx context.Context) []string {
	data := c.fetch(ctx, promptsResource)
	if len(data) == 0 {
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil
	}

	var prompts []string
	for _, raw := range raws {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			prompts = append(prompts, s)
			continue
		}
		var obj struct {
			Prompt string `json:"prompt"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil && obj.Prompt != "" {
			prompts = append(prompts, obj.Prompt)
		}
	}
	return prompts
}

// fetch reads one resource, returning nil on any failure.
func (c *Client) fetch(ctx context.Context, name string) []byte {
	if c.base == "" {
		return nil
	}

	if strings.HasPrefix(c.base, "http://") || strings.HasPrefix(c.base, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/"+name, nil)
		if err != nil {
			return nil
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceBytes))
		if err != nil {
			return nil
		}
		return data
	}

	data, err := os.ReadFile(filepath.Join(c.base, name))
	if err != nil {
		return nil
	}
	return data
}
