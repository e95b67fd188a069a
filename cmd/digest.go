package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "realestate-crm.com/realestate-crm/internal/configs"
	"realestate-crm.com/realestate-crm/internal/queue"
	"realestate-crm.com/realestate-crm/internal/services"
)

var (
	digestCron        string
	digestResetTokens bool
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Log dashboard counters and overdue tasks",
	Long:  "Logs the dashboard digest once, or on a cron schedule until interrupted when --cron or DIGEST_CRON is set",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := bootstrap()

		var statsCache services.StatsCache
		redisClient := config.NewRedisClient(cfg.RedisAddr)
		if redisClient != nil {
			defer redisClient.Close()
			statsCache = newStatsCache(redisClient, cfg)
		}
		svc := services.New(config.NewDatabaseClient(cfg), statsCache)

		schedule := digestCron
		if schedule == "" {
			schedule = cfg.DigestCron
		}

		runner := services.NewDigestRunner(svc.Dashboard, nil)
		if redisClient != nil {
			tokens := queue.NewRedisTokenManager(redisClient, queue.DigestTokensKey)
			if err := tokens.EnsureTokens(cmd.Context(), 1, digestResetTokens); err != nil {
				return fmt.Errorf("initialize digest tokens: %w", err)
			}
			runner.UseTokens(tokens)
		}
		shutdown := func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
			defer cancel()
			runner.Shutdown(ctx)
		}

		if schedule == "" {
			runner.Trigger()
			shutdown()
			return nil
		}

		scheduler := cron.New()
		if _, err := scheduler.AddFunc(schedule, func() { runner.Trigger() }); err != nil {
			shutdown()
			return fmt.Errorf("invalid cron expression: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Infof("digest scheduled with cron: %s", schedule)
		scheduler.Start()
		<-ctx.Done()

		<-scheduler.Stop().Done()
		shutdown()
		return nil
	},
}

func init() {
	digestCmd.Flags().StringVar(&digestCron, "cron", "", "cron expression, e.g. \"0 8 * * *\"")
	digestCmd.Flags().BoolVar(&digestResetTokens, "reset-tokens", false, "refill the shared digest run token")
	rootCmd.AddCommand(digestCmd)
}
