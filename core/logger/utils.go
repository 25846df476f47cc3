package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"
)

// EventType identifies the kind of a LogEntry.
type EventType string

const (
	EventSessionStart   EventType = "session_start"
	EventSessionEnd     EventType = "session_end"
	EventBuiltin        EventType = "builtin"
	EventRunCommand     EventType = "run_command"
	EventUnknownCommand EventType = "unknown_command"
	EventSpawnFailure   EventType = "spawn_failure"
	EventHistoryRecall  EventType = "history_recall"
	EventUnknownHistory EventType = "unknown_history"
	EventInterrupt      EventType = "interrupt"
)

// LogEntry is a single logged event.
type LogEntry struct {
	TimestampMicros int64     `json:"timestamp_micros"`
	SessionID       string    `json:"session_id,omitempty"`
	Type            EventType `json:"type"`

	// Builtin names the built-in that handled the command.
	Builtin string `json:"builtin,omitempty"`
	// Command holds the tokens of the command involved, if any.
	Command    []string `json:"command,omitempty"`
	Background bool     `json:"background,omitempty"`
	// Directive holds the history directive for recall events.
	Directive string `json:"directive,omitempty"`
	// Text holds the recalled or recorded command line.
	Text string `json:"text,omitempty"`
	// Error holds a description of any failure.
	Error string `json:"error,omitempty"`
	// Status holds an exit status for session end events.
	Status int `json:"status,omitempty"`
}

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures events emitted by shell sessions.
type Logger struct {
	Record LogRecorder
	// Now is the time source, time.Now if nil.
	Now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format. It's safe for concurrent use.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that drops every event.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*LogEntry) error { return nil },
	}
}

func (l *Logger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Logger) recordEntry(sessionID string, le *LogEntry) error {
	le.TimestampMicros = l.now().UnixNano() / int64(time.Microsecond)
	le.SessionID = sessionID
	return l.Record(le)
}

// NewSession creates a logger with attached session ID. A random ID is
// generated if id is empty.
func (l *Logger) NewSession(id string) *SessionLogger {
	if id == "" {
		id = fmt.Sprintf("%d", rand.Uint64())
	}
	return &SessionLogger{Logger: l, sessionID: id}
}

// Sessionless creates a logger without a session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: ""}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record logs the event under the session.
func (l *SessionLogger) Record(le *LogEntry) error {
	return l.recordEntry(l.sessionID, le)
}

func (l *SessionLogger) SessionStart() error {
	return l.Record(&LogEntry{Type: EventSessionStart})
}

func (l *SessionLogger) SessionEnd(status int) error {
	return l.Record(&LogEntry{Type: EventSessionEnd, Status: status})
}

// Builtin logs a builtin run. err holds a failure the user was already told
// about, such as a cd to a missing directory.
func (l *SessionLogger) Builtin(name string, command []string, recorded string, err error) error {
	return l.Record(&LogEntry{Type: EventBuiltin, Builtin: name, Command: command, Text: recorded, Error: errString(err)})
}

func (l *SessionLogger) RunCommand(command []string, background bool) error {
	return l.Record(&LogEntry{Type: EventRunCommand, Command: command, Background: background})
}

func (l *SessionLogger) UnknownCommand(command []string, err error) error {
	return l.Record(&LogEntry{Type: EventUnknownCommand, Command: command, Error: errString(err)})
}

func (l *SessionLogger) SpawnFailure(command []string, err error) error {
	return l.Record(&LogEntry{Type: EventSpawnFailure, Command: command, Error: errString(err)})
}

func (l *SessionLogger) HistoryRecall(directive, text string) error {
	return l.Record(&LogEntry{Type: EventHistoryRecall, Directive: directive, Text: text})
}

func (l *SessionLogger) UnknownHistory(directive string, err error) error {
	return l.Record(&LogEntry{Type: EventUnknownHistory, Directive: directive, Error: errString(err)})
}

func (l *SessionLogger) Interrupt() error {
	return l.Record(&LogEntry{Type: EventInterrupt})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
