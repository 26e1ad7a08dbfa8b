package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"hotel-reservation/cache"
	"hotel-reservation/config"
	"hotel-reservation/controllers"
	"hotel-reservation/queue"
	"hotel-reservation/repository"
	"hotel-reservation/repository/memory"
	"hotel-reservation/routes"
	"hotel-reservation/services"
	"hotel-reservation/utils"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := config.NewLogger(cfg)
	if envErr != nil {
		log.Debug(".env not loaded; using process environment")
	}
	gin.SetMode(cfg.GinMode)

	store, err := openStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("open store")
	}

	var searchCache services.SearchCache
	if cfg.RedisEnabled {
		if rdb := config.NewRedisClient(); rdb != nil {
			defer rdb.Close()
			searchCache = cache.NewSearchCache(rdb)
			log.Info("search cache enabled")
		} else {
			log.Warn("redis unavailable; search runs uncached")
		}
	}

	var notifier services.Notifier = services.LogNotifier{Log: log}
	if cfg.AMQPEnabled {
		publisher := queue.NewPublisher(cfg.AMQPURL, log)
		defer publisher.Close()
		notifier = publisher
		log.Info("booking events go to rabbitmq")
	}
	dispatcher := services.NewDispatcher(notifier, log)

	codes, err := utils.NewBookingCodes(cfg.SnowflakeNode)
	if err != nil {
		log.WithError(err).Fatal("booking code generator")
	}

	searchService := services.NewSearchService(store, searchCache, cfg.SearchCacheTTL, log)
	bookingService := services.NewBookingService(store, codes, dispatcher, log)
	paymentService := services.NewPaymentService(store, dispatcher, log)
	walletService := services.NewWalletService(store, dispatcher, log)
	cancellationService := services.NewCancellationService(store, log)
	agencyService := services.NewAgencyService(store, log)

	router := routes.SetupRouter(routes.Controllers{
		Search:   controllers.NewSearchController(searchService, cfg.MaxStayNights),
		Bookings: controllers.NewBookingController(bookingService, cancellationService, walletService, cfg.MaxStayNights),
		Payments: controllers.NewPaymentController(paymentService),
		Wallets:  controllers.NewWalletController(walletService),
		Agencies: controllers.NewAgencyController(agencyService),
	}, routes.Options{
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "store": cfg.StoreDriver}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	// let confirmations already in flight reach the broker
	dispatcher.Wait()
	log.Info("server stopped")
}

func openStore(cfg config.Config, log *logrus.Logger) (repository.Store, error) {
	if cfg.StoreDriver == config.StoreMemory {
		store := memory.New()
		if cfg.SeedDemoData {
			if err := store.Insert(config.DemoCatalog(time.Now())...); err != nil {
				return nil, err
			}
		}
		log.Warn("using the in-memory store; data is lost on exit")
		return store, nil
	}
	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	return repository.NewGormStore(db), nil
}
