// This file is part of actcore.
//
// actcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// actcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with actcore.  If not, see <https://www.gnu.org/licenses/>.

// Package logger is a lightweight, ring-buffered log used throughout this
// module. Entries are plain "tag: detail" lines, kept in memory and
// retrieved with Write or Tail, the way a debugger front-end would poll for
// recent activity.
package logger

import (
	"fmt"
	"io"
	"sync"
)

// Permission decides whether a log entry is allowed to be recorded. Callers
// that never want to be silenced can use Allow.
type Permission interface {
	AllowLogging() bool
}

type allowPermission struct{}

func (allowPermission) AllowLogging() bool { return true }

// Allow is a Permission that always permits logging.
var Allow Permission = allowPermission{}

// Logger is a capacity-bounded, in-memory log of "tag: detail" entries.
type Logger struct {
	mu       sync.Mutex
	capacity int
	entries  []string
}

// NewLogger creates a Logger that retains at most capacity entries, dropping
// the oldest entry whenever a new one arrives past that limit.
func NewLogger(capacity int) *Logger {
	return &Logger{capacity: capacity}
}

func stringify(detail interface{}) string {
	switch v := detail.(type) {
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Log records tag and detail as a single entry, provided perm allows it.
// detail is rendered using Error() or String() when available, falling back
// to the %v verb from the fmt package.
func (l *Logger) Log(perm Permission, tag string, detail interface{}) {
	if perm != nil && !perm.AllowLogging() {
		return
	}
	l.append(fmt.Sprintf("%s: %s", tag, stringify(detail)))
}

// Logf is like Log but builds detail from a format string, the way
// fmt.Sprintf does. The %v verb is the usual choice for wrapping an
// existing error.
func (l *Logger) Logf(perm Permission, tag, format string, args ...interface{}) {
	if perm != nil && !perm.AllowLogging() {
		return
	}
	l.append(fmt.Sprintf("%s: %s", tag, fmt.Sprintf(format, args...)))
}

func (l *Logger) append(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	if l.capacity > 0 && len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Write writes every retained entry to w, oldest first.
func (l *Logger) Write(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		fmt.Fprintf(w, "%s\n", e)
	}
}

// Tail writes only the most recent n entries to w, oldest of those first.
// Asking for more entries than are retained is not an error.
func (l *Logger) Tail(w io.Writer, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 {
		return
	}
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	for _, e := range l.entries[start:] {
		fmt.Fprintf(w, "%s\n", e)
	}
}

// Clear discards all retained entries.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}

// central is the package-level log used by code that has no Logger of its
// own to hand, mirroring how this module's rest of the tree calls
// logger.Log directly rather than threading a *Logger through every call
// site.
var central = NewLogger(1000)

// Log records tag and detail on the central logger.
func Log(tag string, detail interface{}) {
	central.Log(Allow, tag, detail)
}

// Logf records a formatted entry on the central logger.
func Logf(tag, format string, args ...interface{}) {
	central.Logf(Allow, tag, format, args...)
}

// Write writes the central logger's retained entries to w.
func Write(w io.Writer) {
	central.Write(w)
}

// Tail writes the central logger's most recent n entries to w.
func Tail(w io.Writer, n int) {
	central.Tail(w, n)
}

// Clear discards all entries retained by the central logger.
func Clear() {
	central.Clear()
}
