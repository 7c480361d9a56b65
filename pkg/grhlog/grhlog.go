// Copyright 2026 The Grh Authors
// This file is part of Grh.
//
// Grh is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Grh is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Grh. If not, see <http://www.gnu.org/licenses/>.

// Package grhlog is the logging contract passes are given through their
// context: a level-and-tag-gated event stream dispatched to a
// caller-supplied Sink, decoupled from any particular backend the way
// erigon decouples its call sites from the concrete zap core.
package grhlog

import "fmt"

// Level is the closed Trace < Debug < Info < Warn < Error < Off ordering
// used for both the threshold check and an event's own severity.
type Level int8

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
	Off
)

func (l Level) String() string {
	switch l {
	case Trace:
		return "trace"
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	case Off:
		return "off"
	default:
		return "unknown"
	}
}

// LogEvent is a single gated log message: a pass names the tag it is
// emitting under (e.g. "fold", "dce", "xmr") so a caller can narrow a
// noisy pipeline down to one pass's output via the tag allow-list.
type LogEvent struct {
	Level   Level
	Tag     string
	Message string
}

// Sink receives every event that survives the Logger's threshold and
// tag-allow-list gate.
type Sink interface {
	Log(LogEvent)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(LogEvent)

func (f SinkFunc) Log(e LogEvent) { f(e) }

// NopSink discards every event. (A zero-value Logger does not need it:
// with a nil Sink it drops every event on its own.)
type NopSink struct{}

func (NopSink) Log(LogEvent) {}

// SliceSink accumulates events in memory, for tests asserting on a
// pass's logging behavior without standing up a real backend.
type SliceSink struct {
	Events []LogEvent
}

func (s *SliceSink) Log(e LogEvent) { s.Events = append(s.Events, e) }

// Logger gates events by level threshold and an optional tag allow-list
// (empty allow-list means every tag passes) before forwarding to Sink.
// The zero value is a valid, silent logger.
type Logger struct {
	Sink      Sink
	Threshold Level
	Tags      map[string]bool // nil or empty: allow every tag
}

// NewLogger builds a Logger writing to sink, gated at threshold, with an
// optional tag allow-list (pass none to allow every tag).
func NewLogger(sink Sink, threshold Level, allowedTags ...string) *Logger {
	l := &Logger{Sink: sink, Threshold: threshold}
	if len(allowedTags) > 0 {
		l.Tags = make(map[string]bool, len(allowedTags))
		for _, t := range allowedTags {
			l.Tags[t] = true
		}
	}
	return l
}

func (l *Logger) allows(level Level, tag string) bool {
	if l == nil || l.Sink == nil {
		return false
	}
	if level < l.Threshold {
		return false
	}
	if len(l.Tags) > 0 && !l.Tags[tag] {
		return false
	}
	return true
}

func (l *Logger) emit(level Level, tag, msg string) {
	if !l.allows(level, tag) {
		return
	}
	l.Sink.Log(LogEvent{Level: level, Tag: tag, Message: msg})
}

func (l *Logger) Tracef(tag, format string, args ...any) {
	l.emit(Trace, tag, fmt.Sprintf(format, args...))
}
func (l *Logger) Debugf(tag, format string, args ...any) {
	l.emit(Debug, tag, fmt.Sprintf(format, args...))
}
func (l *Logger) Infof(tag, format string, args ...any) {
	l.emit(Info, tag, fmt.Sprintf(format, args...))
}
func (l *Logger) Warnf(tag, format string, args ...any) {
	l.emit(Warn, tag, fmt.Sprintf(format, args...))
}
func (l *Logger) Errorf(tag, format string, args ...any) {
	l.emit(Error, tag, fmt.Sprintf(format, args...))
}
