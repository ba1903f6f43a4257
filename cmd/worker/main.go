package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/futuresmile/clinic-api/config"
	"github.com/futuresmile/clinic-api/internal/repository/postgres"
	"github.com/futuresmile/clinic-api/internal/worker"
	"github.com/futuresmile/clinic-api/pkg/logger"
	"github.com/futuresmile/clinic-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Pretty:  cfg.Log.Pretty,
		Service: "clinic-worker",
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.New("clinic", "worker")

	w := worker.NewQueueStatisticsWorker(
		postgres.NewAppointmentRepository(db),
		postgres.NewServiceRepository(db),
		postgres.NewQueueStatisticsRepository(db),
		cfg.Statistics,
		m,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()
	log.Info("worker stopped")
}
