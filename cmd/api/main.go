package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futuresmile/clinic-api/config"
	appointmentHandler "github.com/futuresmile/clinic-api/internal/handler/appointment"
	blogHandler "github.com/futuresmile/clinic-api/internal/handler/blog"
	catalogHandler "github.com/futuresmile/clinic-api/internal/handler/catalog"
	contactHandler "github.com/futuresmile/clinic-api/internal/handler/contact"
	galleryHandler "github.com/futuresmile/clinic-api/internal/handler/gallery"
	"github.com/futuresmile/clinic-api/internal/handler/health"
	patientHandler "github.com/futuresmile/clinic-api/internal/handler/patient"
	"github.com/futuresmile/clinic-api/internal/handler/prometheus"
	queueHandler "github.com/futuresmile/clinic-api/internal/handler/queue"
	reportHandler "github.com/futuresmile/clinic-api/internal/handler/report"
	testimonialHandler "github.com/futuresmile/clinic-api/internal/handler/testimonial"
	"github.com/futuresmile/clinic-api/internal/repository/postgres"
	"github.com/futuresmile/clinic-api/internal/router"
	appointmentService "github.com/futuresmile/clinic-api/internal/service/appointment"
	blogService "github.com/futuresmile/clinic-api/internal/service/blog"
	catalogService "github.com/futuresmile/clinic-api/internal/service/catalog"
	contactService "github.com/futuresmile/clinic-api/internal/service/contact"
	galleryService "github.com/futuresmile/clinic-api/internal/service/gallery"
	"github.com/futuresmile/clinic-api/internal/service/notification"
	patientService "github.com/futuresmile/clinic-api/internal/service/patient"
	queueService "github.com/futuresmile/clinic-api/internal/service/queue"
	reportService "github.com/futuresmile/clinic-api/internal/service/report"
	testimonialService "github.com/futuresmile/clinic-api/internal/service/testimonial"
	"github.com/futuresmile/clinic-api/pkg/logger"
	"github.com/futuresmile/clinic-api/pkg/messaging/redis"
	"github.com/futuresmile/clinic-api/pkg/metrics"
	"github.com/futuresmile/clinic-api/pkg/validator"
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
		Service: "clinic-api",
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewBroker(cfg.Redis.ToBrokerConfig(), log)
	if err != nil {
		log.Fatal(err, "failed to connect to redis")
	}
	defer broker.Close()

	m := metrics.New("clinic", "api")
	v := validator.New()

	appointmentRepo := postgres.NewAppointmentRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	testimonialRepo := postgres.NewTestimonialRepository(db)
	contactRepo := postgres.NewContactMessageRepository(db)
	blogRepo := postgres.NewBlogPostRepository(db)
	galleryRepo := postgres.NewGalleryRepository(db)

	notifier := notification.NewNoop()
	if cfg.Notifications.Enabled {
		notifier = notification.NewEmailNotifier(cfg.Notifications.SMTP, patientRepo, log)
	}

	appointmentSvc := appointmentService.NewService(appointmentRepo, serviceRepo, patientRepo, notifier, broker, m, log)
	catalogSvc := catalogService.NewService(serviceRepo)
	patientSvc := patientService.NewService(patientRepo)
	testimonialSvc := testimonialService.NewService(testimonialRepo)
	contactSvc := contactService.NewService(contactRepo)
	blogSvc := blogService.NewService(blogRepo)
	gallerySvc := galleryService.NewService(galleryRepo)
	queueSvc := queueService.NewService(appointmentRepo, serviceRepo, m, log)
	reportSvc := reportService.NewService(appointmentRepo, patientRepo)

	prom := prometheus.New()
	r := router.New(cfg.Router, log,
		health.NewHandler(db),
		prom,
		appointmentHandler.NewHandler(appointmentSvc, v),
		catalogHandler.NewHandler(catalogSvc, v),
		patientHandler.NewHandler(patientSvc, v),
		testimonialHandler.NewHandler(testimonialSvc, v),
		contactHandler.NewHandler(contactSvc, v),
		blogHandler.NewHandler(blogSvc, v),
		galleryHandler.NewHandler(gallerySvc, v),
		queueHandler.NewHandler(queueSvc),
		reportHandler.NewHandler(reportSvc),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
}
