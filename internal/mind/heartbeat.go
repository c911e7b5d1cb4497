package mind

import (
	"log/slog"
	"time"
)

// Heartbeat drives the mind at a fixed beat interval. One beat per
// second is the simulation's native tempo.
type Heartbeat struct {
	Interval time.Duration
	mind     *Mind
	stop     chan struct{}
	done     chan struct{}
}

// NewHeartbeat builds a scheduler over a mind.
func NewHeartbeat(m *Mind, interval time.Duration) *Heartbeat {
	if interval <= 0 {
		interval = time.Second
	}
	return &Heartbeat{
		Interval: interval,
		mind:     m,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run blocks, stepping the mind each interval, until Stop is called. A
// slow beat eats into its own slot rather than shifting later beats.
func (h *Heartbeat) Run() {
	slog.Info("heartbeat started", "interval", h.Interval)
	defer close(h.done)
	for {
		select {
		case <-h.stop:
			slog.Info("heartbeat stopped", "beat", h.mind.Beat())
			return
		default:
		}

		start := time.Now()
		h.mind.Step(start)

		remain := h.Interval - time.Since(start)
		if remain > 0 {
			select {
			case <-h.stop:
				slog.Info("heartbeat stopped", "beat", h.mind.Beat())
				return
			case <-time.After(remain):
			}
		}
	}
}

// Stop halts the loop and waits for the in-flight beat to finish.
func (h *Heartbeat) Stop() {
	close(h.stop)
	<-h.done
}
