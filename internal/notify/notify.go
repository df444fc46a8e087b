// Package notify provides transient feedback surfaces.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/dtroode/gymfit-client/internal/logger"
	"github.com/dtroode/gymfit-client/internal/model"
)

var (
	_ model.Notifier = (*Console)(nil)
	_ model.Notifier = (*Log)(nil)
	_ model.Notifier = Fanout(nil)
)

// Console prints notifications as single lines, the CLI's toast.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Notify(n model.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "[%s] %s\n", n.Severity, n.Title)
}

// Log writes notifications to the logger.
type Log struct {
	logger *logger.Logger
}

func NewLog(logger *logger.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(n model.Notification) {
	if n.Severity == model.SeverityError {
		l.logger.Warn("Notification", "title", n.Title)
		return
	}
	l.logger.Info("Notification", "title", n.Title, "severity", string(n.Severity))
}

// Fanout delivers every notification to all notifiers in order.
type Fanout []model.Notifier

func (f Fanout) Notify(n model.Notification) {
	for _, nt := range f {
		nt.Notify(n)
	}
}
