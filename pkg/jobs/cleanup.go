package jobs

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/hocus-focus/challenge-api/pkg/challenge_api/services"
	"github.com/hocus-focus/challenge-api/pkg/tools"
)

// ScheduleNightlyCleanup sets up a cron job that purges stale test
// challenges every day. Permanent rows are exempt.
func ScheduleNightlyCleanup(ctx context.Context, svc *services.ChallengesAPIService) *cron.Cron {
	c := cron.New()
	_, _ = c.AddFunc("@daily", func() {
		tools.Dispatch(context.Background(), "purge_test_challenges", func(ctx context.Context) error {
			removed, err := svc.PurgeStaleTestChallenges(ctx)
			if err != nil {
				log.Printf("[WARN] test challenge purge failed: %v", err)
				return err
			}
			if removed > 0 {
				remaining, cerr := svc.CountChallenges(ctx)
				if cerr != nil {
					log.Printf("purged %d stale test challenges", removed)
					return nil
				}
				log.Printf("purged %d stale test challenges, %d remaining", removed, remaining)
			}
			return nil
		})
	})
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return c
}
