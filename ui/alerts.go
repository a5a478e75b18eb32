package ui

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

type AlertKind string

const (
	AlertInfo    AlertKind = "info"
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
	AlertWarning AlertKind = "warning"
)

const (
	// DefaultAlertDuration applies to info and success alerts
	DefaultAlertDuration = 3 * time.Second
	// ErrorAlertDuration keeps errors on screen longer
	ErrorAlertDuration = 5 * time.Second
	// defaultFadeDuration is the transition window between expiry and removal
	defaultFadeDuration = 300 * time.Millisecond
)

// Alert is a transient, auto-expiring notification
type Alert struct {
	ID        string        `json:"id"`
	Kind      AlertKind     `json:"kind"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
	Fading    bool          `json:"fading"`
}

// AlertCenter stacks alerts. Each alert expires independently: after its
// duration it fades, and after the fade window it is removed entirely.
type AlertCenter struct {
	mu     sync.Mutex
	alerts map[string]*Alert
	timers map[string][]*time.Timer
	fade   time.Duration
}

func NewAlertCenter() *AlertCenter {
	return &AlertCenter{
		alerts: make(map[string]*Alert),
		timers: make(map[string][]*time.Timer),
		fade:   defaultFadeDuration,
	}
}

// SetFadeDuration overrides the fade window. Zero restores the default.
func (c *AlertCenter) SetFadeDuration(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d <= 0 {
		d = defaultFadeDuration
	}
	c.fade = d
}

func (c *AlertCenter) ShowSuccess(message string) *Alert {
	return c.Show(message, AlertSuccess, DefaultAlertDuration)
}

func (c *AlertCenter) ShowError(message string) *Alert {
	return c.Show(message, AlertError, ErrorAlertDuration)
}

func (c *AlertCenter) ShowInfo(message string) *Alert {
	return c.Show(message, AlertInfo, DefaultAlertDuration)
}

// Show creates an alert with a unique time-based id and schedules its
// fade and removal. Multiple alerts may be visible simultaneously.
func (c *AlertCenter) Show(message string, kind AlertKind, duration time.Duration) *Alert {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	alert := &Alert{
		ID:        fmt.Sprintf("alert-%d", now.UnixNano()),
		Kind:      kind,
		Message:   message,
		Duration:  duration,
		CreatedAt: now,
	}
	c.alerts[alert.ID] = alert

	id := alert.ID
	fadeTimer := time.AfterFunc(duration, func() { c.beginFade(id) })
	removeTimer := time.AfterFunc(duration+c.fade, func() { c.remove(id) })
	c.timers[id] = []*time.Timer{fadeTimer, removeTimer}

	return alert
}

// Dismiss removes an alert immediately, cancelling its pending timers.
// Unknown ids are ignored.
func (c *AlertCenter) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.timers[id] {
		t.Stop()
	}
	delete(c.timers, id)
	delete(c.alerts, id)
}

// Active returns the currently visible alerts, oldest first. Fading alerts
// are still visible.
func (c *AlertCenter) Active() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Alert, 0, len(c.alerts))
	for _, a := range c.alerts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Close cancels every pending timer and drops all alerts
func (c *AlertCenter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timers := range c.timers {
		for _, t := range timers {
			t.Stop()
		}
		delete(c.timers, id)
	}
	c.alerts = make(map[string]*Alert)
}

func (c *AlertCenter) beginFade(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.alerts[id]; ok {
		a.Fading = true
	}
}

func (c *AlertCenter) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.alerts, id)
	delete(c.timers, id)
}
