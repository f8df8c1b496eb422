package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "github.com/Anirban2958/clapgrow/internal/configs"
	"github.com/Anirban2958/clapgrow/internal/cyclelock"
	"github.com/Anirban2958/clapgrow/internal/followup"
	httpapi "github.com/Anirban2958/clapgrow/internal/http"
	"github.com/Anirban2958/clapgrow/internal/notify"
	repository "github.com/Anirban2958/clapgrow/internal/repositories"
	"github.com/Anirban2958/clapgrow/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the follow-up API and the background automation scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.NewDatabase(cfg.DatabaseDSN)
		repo := repository.NewFollowUpRepository(database)
		clock := followup.SystemClock{}

		var notifier notify.Notifier
		if cfg.NotificationDryRun {
			notifier = notify.DryRunNotifier{}
		} else {
			notifier = notify.NewSMTPNotifier(
				cfg.SMTPHost,
				cfg.SMTPPort,
				cfg.SMTPUsername,
				cfg.SMTPPassword,
				cfg.SMTPFrom,
				time.Duration(cfg.SMTPTimeoutSeconds)*time.Second,
			)
		}

		var lock cyclelock.Locker
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			lock = cyclelock.NewRedisLocker(redisClient, cfg.RedisLockKey, 5*time.Minute)
		} else {
			lock = cyclelock.NewLocalLocker()
		}

		dispatcher := services.NewDispatcher(notifier, cfg.DefaultNotifyEmail, clock)
		automation := services.NewAutomationService(repo, dispatcher, lock, clock, cfg.LookaheadDays)
		scheduler := services.NewScheduler(automation, time.Duration(cfg.IntervalMinutes)*time.Minute)
		followUpService := services.NewFollowUpService(repo, clock, scheduler)

		scheduler.Start()

		e := echo.New()
		handler := httpapi.NewHandler(followUpService, automation, scheduler, httpapi.HealthConfig{
			SMTPConfigured:   cfg.SMTPHost != "",
			DryRun:           cfg.NotificationDryRun,
			DefaultRecipient: cfg.DefaultNotifyEmail != "",
		})
		httpapi.Register(e, handler, cfg.RateLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		scheduler.Stop()

		log.Println("HTTP server and automation scheduler shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
