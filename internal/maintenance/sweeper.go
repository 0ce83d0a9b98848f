package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/velann/socialize-be/internal/store"
)

// Sweeper periodically clears expired reset tokens, so stale token/expiry
// pairs do not linger on accounts that never completed their reset.
type Sweeper struct {
	store    store.AccountStore
	schedule cron.Schedule
	ticker   *time.Ticker
	done     chan bool
}

// NewSweeper creates a sweeper from a standard cron expression.
func NewSweeper(st store.AccountStore, cronExpr string) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Sweeper{
		store:    st,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the sweeper's ticking loop.
func (s *Sweeper) Run() {
	log.Info().Msg("Starting reset-token sweeper")
	next := s.schedule.Next(time.Now())

	s.ticker = time.NewTicker(30 * time.Second)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping reset-token sweeper")
			return
		case now := <-s.ticker.C:
			if now.After(next) {
				s.sweep()
				next = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the sweeper.
func (s *Sweeper) Stop() {
	s.done <- true
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cleared, err := s.store.ClearExpiredResetTokens(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to clear expired reset tokens")
		return
	}
	if cleared > 0 {
		log.Info().Int64("accounts", cleared).Msg("Cleared expired reset tokens")
	}
}
