// Package notify delivers short user-facing notices (sign-in failures,
// expired sessions) to whichever front end is running. Notices are not part
// of the authentication state; front ends render them however they like.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/aiworkbench/internal/logging"
)

// Level classifies a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notifier is the UI notification channel.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Nop drops every notice.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}
func (Nop) Info(string)    {}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// Terminal prints styled notices to w, one per line.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Success(msg string) { t.print(successStyle, "✓ "+msg) }
func (t *Terminal) Error(msg string)   { t.print(errorStyle, "✗ "+msg) }
func (t *Terminal) Info(msg string)    { t.print(infoStyle, "• "+msg) }

func (t *Terminal) print(style lipgloss.Style, s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintln(t.w, style.Render(s))
}

// Log forwards notices to a logger. Used by headless front ends.
type Log struct {
	logger logging.Logger
}

func NewLog(l logging.Logger) *Log {
	return &Log{logger: l.With("component", "notify")}
}

func (n *Log) Success(msg string) { n.logger.Info(context.Background(), msg, "notice", LevelSuccess) }
func (n *Log) Error(msg string)   { n.logger.Warn(context.Background(), msg, "notice", LevelError) }
func (n *Log) Info(msg string)    { n.logger.Info(context.Background(), msg, "notice", LevelInfo) }

// Notice is one recorded notification.
type Notice struct {
	Level   Level
	Message string
}

// Recorder keeps notices in memory. The web shell drains it into flash
// messages; tests inspect it.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(LevelError, msg) }
func (r *Recorder) Info(msg string)    { r.add(LevelInfo, msg) }

func (r *Recorder) add(l Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Level: l, Message: msg})
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Drain returns recorded notices and forgets them.
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}

// Multi fans a notice out to several notifiers.
type Multi []Notifier

func (m Multi) Success(msg string) {
	for _, n := range m {
		n.Success(msg)
	}
}

func (m Multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}

func (m Multi) Info(msg string) {
	for _, n := range m {
		n.Info(msg)
	}
}
