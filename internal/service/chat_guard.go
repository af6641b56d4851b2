package service

import (
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

const (
	questionRuneLimit  = 500
	chatRateWindow     = time.Minute
	chatRateMaxPerWind = 10
)

// blockedQuestionPatterns are lowercase substrings that mark a question as a
// markup or script injection attempt rather than a real question.
var blockedQuestionPatterns = []string{
	"<script",
	"javascript:",
	"data:",
	"onload=",
	"onerror=",
	"onclick=",
	"eval(",
	"alert(",
	"document.",
	"window.",
}

var questionStripper = bluemonday.StrictPolicy()

// SanitizeQuestion reduces a visitor question to plain printable ASCII:
// markup is stripped, angle and curly brackets removed, line breaks collapsed
// to spaces, and the result capped at 500 characters.
func SanitizeQuestion(raw string) string {
	cleaned := questionStripper.Sanitize(raw)

	var b strings.Builder
	b.Grow(len(cleaned))
	for _, r := range cleaned {
		switch r {
		case '<', '>', '{', '}':
			continue
		case '\n', '\r', '\t':
			b.WriteRune(' ')
		default:
			if r < 0x20 || r > 0x7e {
				continue
			}
			b.WriteRune(r)
		}
	}

	out := strings.Join(strings.Fields(b.String()), " ")
	if len(out) > questionRuneLimit {
		out = out[:questionRuneLimit]
	}
	return strings.TrimSpace(out)
}

// QuestionAllowed reports whether a raw question is free of the blocked
// injection patterns. The check runs on the raw input, before sanitizing,
// so stripped markup cannot hide a payload.
func QuestionAllowed(raw string) bool {
	lowered := strings.ToLower(raw)
	for _, pattern := range blockedQuestionPatterns {
		if strings.Contains(lowered, pattern) {
			return false
		}
	}
	return true
}

// ChatGuard rate limits assistant questions per visitor with a sliding
// one-minute window.
type ChatGuard struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	now     func() time.Time
	history map[string][]time.Time
}

// NewChatGuard creates a guard with the default 10 questions/minute budget.
func NewChatGuard() *ChatGuard {
	return &ChatGuard{
		window:  chatRateWindow,
		max:     chatRateMaxPerWind,
		now:     time.Now,
		history: make(map[string][]time.Time),
	}
}

// Allow records an attempt for the visitor and reports whether it fits the
// current window. Denied attempts are not recorded.
func (g *ChatGuard) Allow(visitorID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	cutoff := now.Add(-g.window)

	recent := g.history[visitorID][:0]
	for _, t := range g.history[visitorID] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= g.max {
		g.history[visitorID] = recent
		return false
	}

	g.history[visitorID] = append(recent, now)
	return true
}

// Remaining reports how many questions the visitor has left in the window.
func (g *ChatGuard) Remaining(visitorID string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := g.now().Add(-g.window)
	used := 0
	for _, t := range g.history[visitorID] {
		if t.After(cutoff) {
			used++
		}
	}
	if used >= g.max {
		return 0
	}
	return g.max - used
}
