package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/promptdeck/promptdeck/internal/domain/prompt"
	"github.com/promptdeck/promptdeck/internal/logging"
	"github.com/promptdeck/promptdeck/internal/monitoring"
)

// Scheduler saves the session on a debounce after each change and on a
// periodic tick while there is content. A failed save only logs; the next
// trigger tries again.
type Scheduler struct {
	store    *prompt.Manager
	sessions *Manager
	interval time.Duration
	debounce time.Duration
	metrics  *monitoring.Metrics
	logger   *logging.Logger

	stop chan struct{}
	done chan struct{}
}

// SchedulerOptions configures a Scheduler.
type SchedulerOptions struct {
	// Interval is the periodic save cadence. Default 30s.
	Interval time.Duration
	// Debounce is the quiet period after a change before saving. Default 2s.
	Debounce time.Duration
	// Metrics counts save attempts. Optional.
	Metrics *monitoring.Metrics
	// Logger defaults to a nop logger.
	Logger *logging.Logger
}

// NewScheduler creates a stopped scheduler; call Start to begin saving.
func NewScheduler(store *prompt.Manager, sessions *Manager, opts SchedulerOptions) *Scheduler {
	if opts.Interval == 0 {
		opts.Interval = 30 * time.Second
	}
	if opts.Debounce == 0 {
		opts.Debounce = 2 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &Scheduler{
		store:    store,
		sessions: sessions,
		interval: opts.Interval,
		debounce: opts.Debounce,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the autosave loop. The change subscription is taken
// synchronously so mutations made immediately after Start are observed.
func (s *Scheduler) Start() {
	changes := s.store.Subscribe()
	go s.run(changes)
}

// Stop halts the loop and performs a final save if there is content.
// Blocks until the loop has exited.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run(changes <-chan struct{}) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// The debounce timer is armed only while a save is pending.
	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-changes:
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(s.debounce)
			pending = true

		case <-timer.C:
			pending = false
			s.save()

		case <-ticker.C:
			if s.store.HasContent() {
				s.save()
			}

		case <-s.stop:
			if pending && !timer.Stop() {
				<-timer.C
			}
			if s.store.HasContent() {
				s.save()
			}
			return
		}
	}
}

func (s *Scheduler) save() {
	err := s.sessions.Save(s.store.Snapshot())
	if s.metrics != nil {
		s.metrics.RecordAutosave(err == nil)
	}
	if err != nil {
		s.logger.Warn("Autosave failed", zap.Error(err))
		return
	}
	s.logger.Debug("Session autosaved")
}
