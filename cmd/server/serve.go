package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"scheduler/internal/api"
	"scheduler/internal/auth"
	"scheduler/internal/config"
	"scheduler/internal/events"
	"scheduler/internal/logger"
	"scheduler/internal/repository"
	"scheduler/internal/service"
)

const shutdownTimeout = 10 * time.Second

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Init(cfg.IsProduction())
	defer log.Sync()

	gdb, err := repository.Open(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	defer closeDB(log, sqlDB.Close)

	if err := repository.Migrate(gdb); err != nil {
		return err
	}

	var pub events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		pub = amqpPub
		log.Info("publishing events", zap.String("exchange", cfg.AMQPExchange))
	}
	defer pub.Close()

	var mailer service.Mailer
	if cfg.EmailEnabled() {
		mailer = service.NewSendGridMailer(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName, log)
	}
	var sms service.SMSSender
	if cfg.SMSEnabled() {
		sms = service.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, log)
	}

	slotRepo := repository.NewSlotRepository(gdb)
	bookingRepo := repository.NewBookingRepository(gdb)

	ownerHash, err := service.OwnerPasswordHash(cfg.OwnerPasswordHash, cfg.OwnerPassword)
	if err != nil {
		return err
	}
	ownerAuth, err := service.NewOwnerAuthService(ownerHash)
	if err != nil {
		return err
	}
	senderSvc, err := service.NewSenderService(mailer, sms, cfg.OwnerEmail, cfg.OwnerPhone, log)
	if err != nil {
		return err
	}
	jobSvc, err := service.NewJobService(slotRepo, mailer, cfg.OwnerEmail, nil, log)
	if err != nil {
		return err
	}
	calendarSvc := service.NewCalendarService(slotRepo, nil)
	slotSvc := service.NewSlotService(slotRepo, pub, log)
	bookingSvc := service.NewBookingService(slotRepo, bookingRepo, senderSvc, pub, log)

	views, err := api.NewRenderer(log)
	if err != nil {
		return err
	}
	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookies)

	router := api.NewRouter(api.Handlers{
		Calendar: api.NewCalendarHandler(calendarSvc, views),
		Auth:     api.NewAdminAuthHandler(ownerAuth, sessions, views, log),
		Admin:    api.NewAdminHandler(slotSvc, views),
		Booking:  api.NewUserBookingHandler(bookingSvc, views),
	}, sessions)
	handler := api.NewHandler(router, api.Options{
		CSRFKey:       []byte(cfg.CSRFKey),
		SecureCookies: cfg.SecureCookies,
		Log:           log,
	})

	if mailer != nil && cfg.OwnerEmail != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.DigestCron, jobSvc.SendTodayAgenda); err != nil {
			return fmt.Errorf("schedule daily agenda %q: %w", cfg.DigestCron, err)
		}
		c.Start()
		defer c.Stop()
		log.Info("Cron Job: daily agenda scheduled", zap.String("spec", cfg.DigestCron))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server running", zap.String("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
		}
	}

	bookingSvc.Wait()
	return nil
}
