package push

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
	"github.com/gumallc/loanspa-ssp-v2/internal/metrics"
	"github.com/jonboulle/clockwork"
)

// tipTargets is the slice of the Broadcaster the scheduler needs.
type tipTargets interface {
	Users() []int64
	PushTip(userID int64, tip domain.Tip)
}

// TipScheduler pushes one random tip to every connected user on a fixed
// interval. Every registered user gets a tip; there is no per-user
// eligibility or hardcoded recipient.
type TipScheduler struct {
	targets  tipTargets
	catalog  *Catalog
	clock    clockwork.Clock
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// NewTipScheduler creates a scheduler and starts its timer goroutine.
func NewTipScheduler(targets tipTargets, catalog *Catalog, interval time.Duration, clock clockwork.Clock) *TipScheduler {
	s := &TipScheduler{
		targets:  targets,
		catalog:  catalog,
		clock:    clock,
		interval: interval,
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *TipScheduler) run() {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			s.broadcastTips()
		case <-s.done:
			return
		}
	}
}

func (s *TipScheduler) broadcastTips() {
	users := s.targets.Users()
	if len(users) == 0 {
		return
	}

	metrics.TipBroadcastsTotal.Inc()
	for _, userID := range users {
		tip := s.catalog.PickRandom()
		s.targets.PushTip(userID, tip)
	}
	slog.Debug("Scheduled tip broadcast", "users", len(users))
}

// Stop cancels the timer. Safe to call more than once.
func (s *TipScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}
