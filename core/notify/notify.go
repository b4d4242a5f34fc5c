package notify

import (
	"context"
	"sync"
	"time"

	"experience-manager/core/reconcile"

	"go.uber.org/zap"
)

// Logger reports save results through zap.
type Logger struct {
	log *zap.Logger
}

// NewLogger creates a notifier writing to log.
func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Notify(ctx context.Context, n reconcile.Notification) {
	fields := []zap.Field{
		zap.String("section", n.Section),
		zap.String("experience_id", n.ExperienceID),
	}
	if n.Report != nil {
		fields = append(fields, zap.Duration("duration", n.Report.Duration))
	}
	if n.Success {
		l.log.Info("Section saved", fields...)
		return
	}
	l.log.Error("Section save failed", append(fields, zap.Error(n.Err))...)
}

// Message is a user-facing save notification.
type Message struct {
	Section string    `json:"section"`
	Success bool      `json:"success"`
	Text    string    `json:"text"`
	Time    time.Time `json:"time"`
}

// Feed keeps the latest messages of each experience until they are drained.
type Feed struct {
	mu    sync.Mutex
	limit int
	byExp map[string][]Message
	now   func() time.Time
}

// NewFeed creates a feed holding at most limit messages per experience.
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 20
	}
	return &Feed{limit: limit, byExp: map[string][]Message{}, now: time.Now}
}

func (f *Feed) Notify(ctx context.Context, n reconcile.Notification) {
	msg := Message{Section: n.Section, Success: n.Success, Time: f.now().UTC()}
	if n.Success {
		msg.Text = n.Section + " saved"
	} else if n.Err != nil {
		msg.Text = n.Err.Error()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	list := append(f.byExp[n.ExperienceID], msg)
	if len(list) > f.limit {
		list = list[len(list)-f.limit:]
	}
	f.byExp[n.ExperienceID] = list
}

// Drain returns and forgets the pending messages of an experience, oldest first.
func (f *Feed) Drain(experienceID string) []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.byExp[experienceID]
	delete(f.byExp, experienceID)
	if list == nil {
		return []Message{}
	}
	return list
}

// Multi fans a notification out to several notifiers.
type Multi []reconcile.Notifier

func (m Multi) Notify(ctx context.Context, n reconcile.Notification) {
	for _, target := range m {
		target.Notify(ctx, n)
	}
}
