package matching

import (
	"context"
	"errors"
	"log"
	"time"
)

// Scheduler runs the nightly full generation pass off the request path.
type Scheduler struct {
	service Service
	hour    int
}

func NewScheduler(service Service, hour int) *Scheduler {
	return &Scheduler{service: service, hour: hour}
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.runDaily(ctx, s.hour, 0, s.generateAll)
}

func (s *Scheduler) generateAll(ctx context.Context) error {
	result, err := s.service.GenerateAllMatches(ctx)
	if err != nil {
		if errors.Is(err, ErrBatchInProgress) {
			log.Println("matching: nightly batch skipped, another run holds the lock")
			return nil
		}
		return err
	}

	log.Printf("matching: nightly batch done: %d users, %d matches created, %d errors",
		result.TotalUsers, result.MatchesCreated, result.Errors)
	return nil
}

func (s *Scheduler) runDaily(ctx context.Context, hour, minute int, task func(context.Context) error) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}

		timer := time.NewTimer(next.Sub(now))

		select {
		case <-timer.C:
			if err := task(ctx); err != nil {
				log.Printf("matching: scheduled task failed: %v", err)
			}
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}
