package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmaulana/maintenance-management/internal/notifier"
	"github.com/hmaulana/maintenance-management/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start worker pools",
	Long:  `Start and manage worker pools, currently the notification dispatcher.`,
}

var notifierWorkerCmd = &cobra.Command{
	Use:   "notifier",
	Short: "Start the notification dispatcher",
	Long:  `Start the notification worker pool that delivers on-call webhook notifications`,
	Run: func(cmd *cobra.Command, args []string) {
		startNotifierWorker()
	},
}

var (
	maxWorkers     int
	jobQueueSize   int
	workerPoolSize int
	webhookURL     string
)

func startNotifierWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	lg := logger.LoggerWrapper()

	notifierConfig := notifier.Config{
		WebhookURL:     getStringFlag(webhookURL, config.Notifier.WebhookURL),
		Timeout:        config.Notifier.RequestTimeout,
		MaxWorkers:     getIntFlag(maxWorkers, config.Notifier.MaxWorkers),
		JobQueueSize:   getIntFlag(jobQueueSize, config.Notifier.JobQueueSize),
		WorkerPoolSize: getIntFlag(workerPoolSize, config.Notifier.WorkerPoolSize),
	}

	lg.Info("starting notifier worker",
		"max_workers", notifierConfig.MaxWorkers,
		"job_queue_size", notifierConfig.JobQueueSize,
		"webhook_url", notifierConfig.WebhookURL)

	dispatcher := notifier.NewDispatcher(notifierConfig, lg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	lg.Info("notifier worker is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	lg.Info("received signal, shutting down notifier worker", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownDone := make(chan struct{})
	go func() {
		dispatcher.Shutdown()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		lg.Info("notifier worker shutdown complete")
	case <-ctx.Done():
		lg.Warn("shutdown timeout reached, forcing exit")
	}
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func getIntFlag(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func init() {
	notifierWorkerCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Maximum number of workers (overrides config)")
	notifierWorkerCmd.Flags().IntVar(&jobQueueSize, "job-queue-size", 0, "Job queue buffer size (overrides config)")
	notifierWorkerCmd.Flags().IntVar(&workerPoolSize, "worker-pool-size", 0, "Worker pool channel size (overrides config)")
	notifierWorkerCmd.Flags().StringVar(&webhookURL, "webhook-url", "", "Notification webhook URL (overrides config)")

	workerCmd.AddCommand(notifierWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
