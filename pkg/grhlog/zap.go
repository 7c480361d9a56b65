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

package grhlog

import "go.uber.org/zap"

// ZapSink adapts a *zap.Logger as a Sink, tagging every record with the
// event's tag field the way the teacher's own services tag log lines
// with a subsystem name.
type ZapSink struct {
	L *zap.Logger
}

// NewZapSink wraps an existing zap logger.
func NewZapSink(l *zap.Logger) ZapSink { return ZapSink{L: l} }

func (z ZapSink) Log(e LogEvent) {
	if z.L == nil {
		return
	}
	fields := []zap.Field{zap.String("tag", e.Tag)}
	switch e.Level {
	case Trace, Debug:
		z.L.Debug(e.Message, fields...)
	case Info:
		z.L.Info(e.Message, fields...)
	case Warn:
		z.L.Warn(e.Message, fields...)
	case Error:
		z.L.Error(e.Message, fields...)
	}
}
