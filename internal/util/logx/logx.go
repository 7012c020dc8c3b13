// Package logx is a small levelled logger. Lines are kept in a bounded ring
// for the in-app log view and forwarded to the standard log package, which
// main points at a file so the TUI is never written over.
package logx

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var (
	mu       sync.Mutex
	level    = Info
	buf      = make([]string, 0, 500)
	maxLines = 500
	forward  = true
)

func SetLevel(l Level) { mu.Lock(); level = l; mu.Unlock() }

// SetForward turns forwarding to the standard log package on or off
func SetForward(on bool) { mu.Lock(); forward = on; mu.Unlock() }

// ParseLevel maps a config value to a Level. Unknown values are Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func Debugf(format string, a ...any) { logf(Debug, "DEBUG", format, a...) }
func Infof(format string, a ...any)  { logf(Info, "INFO", format, a...) }
func Warnf(format string, a ...any)  { logf(Warn, "WARN", format, a...) }
func Errorf(format string, a ...any) { logf(Error, "ERROR", format, a...) }

func logf(l Level, tag, format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	msg := fmt.Sprintf(format, a...)
	ts := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	line := fmt.Sprintf("%s %-5s %s", ts, tag, msg)
	if len(buf) >= maxLines {
		// drop oldest
		copy(buf[0:], buf[1:])
		buf = buf[:len(buf)-1]
	}
	buf = append(buf, line)
	if forward {
		log.Printf("%-5s %s", tag, msg)
	}
}

func Dump() string {
	mu.Lock()
	defer mu.Unlock()
	return strings.Join(buf, "\n")
}

func Lines() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(buf))
	copy(out, buf)
	return out
}

// Reset drops every buffered line
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	buf = buf[:0]
}
