// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvLogLevel names the environment variable read by SetDefaultStructuredLogger.
	EnvLogLevel = "LOG_LEVEL"
)

// ParseLogLevel converts a level name into a slog.Level.
// Unknown or empty names map to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger returns a JSON logger writing to stderr with module
// and version attached to every record.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return newStructuredLogger(os.Stderr, module, version, ParseLogLevel(level))
}

func newStructuredLogger(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(handler).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// SetDefaultStructuredLogger installs a structured logger as the slog
// default, taking the level from LOG_LEVEL.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv(EnvLogLevel))
}

// SetDefaultStructuredLoggerWithLevel installs a structured logger with an
// explicit level as the slog default.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// NewLogLogger returns a standard library logger backed by a JSON slog
// handler on stderr, for APIs such as http.Server.ErrorLog.
func NewLogLogger(level slog.Level, addSource bool) *log.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	})
	return slog.NewLogLogger(handler, level)
}
