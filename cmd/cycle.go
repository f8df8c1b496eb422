package cmd

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "github.com/Anirban2958/clapgrow/internal/configs"
	"github.com/Anirban2958/clapgrow/internal/cyclelock"
	"github.com/Anirban2958/clapgrow/internal/followup"
	"github.com/Anirban2958/clapgrow/internal/notify"
	repository "github.com/Anirban2958/clapgrow/internal/repositories"
	"github.com/Anirban2958/clapgrow/internal/services"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Run one automation cycle and exit",
	Long:  "Evaluates every open follow-up against today, dispatches due reminders, and releases expired snoozes",
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

		stats, err := automation.RunCycle(context.Background())
		if err != nil {
			return err
		}

		log.Printf("cycle complete: %d evaluated, %d reminders sent, %d snoozes released",
			stats.Evaluated, stats.RemindersSent, stats.Released)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cycleCmd)
}
