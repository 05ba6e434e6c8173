package service

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/ptvinh/wordnest/config"
	"github.com/ptvinh/wordnest/internal/repository"
	"github.com/rs/zerolog/log"
)

// SessionSweeper periodically abandons active sessions that have seen no
// submission within the configured inactivity window, so a closed browser tab
// does not hold a session open forever. Abandonment never touches schedule
// state.
type SessionSweeper struct {
	scheduler   *gocron.Scheduler
	sessionRepo repository.ReviewSessionRepository
	window      time.Duration
}

func NewSessionSweeper(cfg *config.Config, sessionRepo repository.ReviewSessionRepository) *SessionSweeper {
	window := time.Duration(cfg.Session.InactivityMinutes) * time.Minute
	if window <= 0 {
		window = 30 * time.Minute
	}
	return &SessionSweeper{
		scheduler:   gocron.NewScheduler(time.UTC),
		sessionRepo: sessionRepo,
		window:      window,
	}
}

// Start begins the sweep loop in a non-blocking manner.
func (s *SessionSweeper) Start() {
	s.scheduler.Every(1).Minute().Do(s.sweep)
	s.scheduler.StartAsync()
}

func (s *SessionSweeper) Stop() {
	s.scheduler.Stop()
}

func (s *SessionSweeper) sweep() {
	cutoff := time.Now().Add(-s.window)
	count, err := s.sessionRepo.AbandonStale(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Session sweep failed")
		return
	}
	if count > 0 {
		log.Info().Int64("abandoned", count).Msg("Swept inactive review sessions")
	}
}
