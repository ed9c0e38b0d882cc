// Package logging adapts the Wails logger for use outside the runtime.
package logging

import (
	"sync/atomic"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

// Leveled drops messages below its level before handing them to the wrapped
// logger. Print is never filtered. The level can change while in use.
type Leveled struct {
	next  logger.Logger
	level atomic.Uint32
}

// NewLeveled wraps next
func NewLeveled(next logger.Logger, level logger.LogLevel) *Leveled {
	l := &Leveled{next: next}
	l.SetLevel(level)
	return l
}

// SetLevel changes the minimum level
func (l *Leveled) SetLevel(level logger.LogLevel) {
	l.level.Store(uint32(level))
}

// Level returns the minimum level
func (l *Leveled) Level() logger.LogLevel {
	return logger.LogLevel(l.level.Load())
}

func (l *Leveled) enabled(level logger.LogLevel) bool {
	return l.Level() <= level
}

func (l *Leveled) Print(message string) { l.next.Print(message) }

func (l *Leveled) Trace(message string) {
	if l.enabled(logger.TRACE) {
		l.next.Trace(message)
	}
}

func (l *Leveled) Debug(message string) {
	if l.enabled(logger.DEBUG) {
		l.next.Debug(message)
	}
}

func (l *Leveled) Info(message string) {
	if l.enabled(logger.INFO) {
		l.next.Info(message)
	}
}

func (l *Leveled) Warning(message string) {
	if l.enabled(logger.WARNING) {
		l.next.Warning(message)
	}
}

func (l *Leveled) Error(message string) {
	if l.enabled(logger.ERROR) {
		l.next.Error(message)
	}
}

func (l *Leveled) Fatal(message string) { l.next.Fatal(message) }
