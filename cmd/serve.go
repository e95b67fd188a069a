package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/rueidis"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"realestate-crm.com/realestate-crm/internal/cache"
	config "realestate-crm.com/realestate-crm/internal/configs"
	httpapi "realestate-crm.com/realestate-crm/internal/http"
	"realestate-crm.com/realestate-crm/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the CRM HTTP API on APP_HOST:APP_PORT",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := bootstrap()
		database := config.NewDatabaseClient(cfg)

		var statsCache services.StatsCache
		if redisClient := config.NewRedisClient(cfg.RedisAddr); redisClient != nil {
			defer redisClient.Close()
			statsCache = newStatsCache(redisClient, cfg)
		}

		svc := services.New(database, statsCache)
		e := httpapi.NewServer(httpapi.NewHandler(svc), cfg.RateLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Infof("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("server stopped: %v", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}

		log.Info("HTTP server shut down gracefully")
		return nil
	},
}

func newStatsCache(client rueidis.Client, cfg config.Config) services.StatsCache {
	ttl := time.Duration(cfg.DashboardCacheTTLSeconds) * time.Second
	log.WithField("ttl", ttl).Info("dashboard cache enabled")
	return cache.NewRedisStatsCache(client, ttl)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
