package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	addTimeSlotHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/add_time_slot"
	adminCancelBookingHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/admin_cancel_booking"
	cancelBookingHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/cancel_booking"
	cancelRefundHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/cancel_refund"
	createBookingHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/create_booking"
	deleteTimeSlotsHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/delete_time_slots"
	getAvailabilityHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/get_booking"
	getBookingRefundsHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/get_booking_refunds"
	getProviderBookingsHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/get_provider_bookings"
	getUserBookingsHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/get_user_bookings"
	processRefundHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/process_refund"
	updateBookingStatusHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	"github.com/m04kA/RainbowPaws-BookingService/internal/config"
	"github.com/m04kA/RainbowPaws-BookingService/internal/infra/cache"
	bookingRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/notification"
	providerRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/provider"
	refundRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/refund"
	timeslotRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/timeslot"
	userRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/user"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/events"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/mailer"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/paymentgateway"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/sms"
	bookingsService "github.com/m04kA/RainbowPaws-BookingService/internal/service/bookings"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/notifications"
	refundsService "github.com/m04kA/RainbowPaws-BookingService/internal/service/refunds"
	timeslotsService "github.com/m04kA/RainbowPaws-BookingService/internal/service/timeslots"
	cancelBookingUC "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/create_booking"
	processRefundUC "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/process_refund"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/clock"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/logger"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/metrics"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/txmanager"
)

const cacheKeyPrefix = "rainbowpaws:"

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting RainbowPaws-BookingService...")

	// Часы в часовом поясе приложения: от них считаются окна возврата и "сегодня" для слотов
	appClock, err := clock.New(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.App.Timezone, err)
	}
	log.Info("Application timezone: %s", cfg.App.Timezone)

	// Инициализируем метрики (если включены)
	// Nil коллектор допустим: все Record* методы его игнорируют
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis: кэш расписания и общее хранилище rate limiter
	var (
		redisClient   *redis.Client
		scheduleCache timeslotsService.Cache = cache.Noop{}
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		scheduleCache = cache.NewRedisCache(redisClient, cacheKeyPrefix, log)
		log.Info("Redis cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	refundRepository := refundRepo.NewRepository(wrappedDB)
	timeslotRepository := timeslotRepo.NewRepository(wrappedDB)
	providerRepository := providerRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)

	// Каналы уведомлений: in-app всегда, остальные по конфигурации
	channels := notifications.Channels{InApp: notificationRepository}

	if cfg.SMTP.Enabled {
		channels.Email = mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
		log.Info("Email notifications enabled (host=%s)", cfg.SMTP.Host)
	}

	if cfg.SMS.Enabled {
		channels.SMS = sms.NewClient(cfg.SMS.URL, cfg.SMS.APIKey, cfg.SMS.Sender,
			time.Duration(cfg.SMS.Timeout)*time.Second, log)
		log.Info("SMS notifications enabled (url=%s)", cfg.SMS.URL)
	}

	if cfg.Kafka.Enabled {
		publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("Failed to close kafka publisher: %v", err)
			}
		}()
		channels.Events = publisher
		log.Info("Booking events enabled (topic=%s)", cfg.Kafka.Topic)
	}

	// Платежный шлюз нужен только для автоматических возвратов
	var gateway processRefundUC.PaymentGateway
	if cfg.PaymentGateway.Enabled {
		gateway = paymentgateway.NewClient(cfg.PaymentGateway.KeyID, cfg.PaymentGateway.KeySecret)
		log.Info("Payment gateway refunds enabled")
	} else {
		log.Warn("Payment gateway disabled: automatic refunds will stay pending")
	}

	// Инициализируем сервисы
	dispatcher := notifications.NewDispatcher(
		channels,
		userRepository,
		cfg.App.Currency,
		metricsCollector,
		appClock,
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, dispatcher, log)
	refundSvc := refundsService.NewService(refundRepository, bookingRepository, metricsCollector, log)
	timeslotSvc := timeslotsService.NewService(
		timeslotRepository,
		providerRepository,
		txMgr,
		scheduleCache,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		appClock,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		timeslotRepository,
		providerRepository,
		timeslotSvc,
		txMgr,
		appClock,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		refundRepository,
		dispatcher,
		metricsCollector,
		appClock,
		log,
	)
	processRefundUseCase := processRefundUC.NewUseCase(
		refundRepository,
		bookingRepository,
		gateway,
		dispatcher,
		txMgr,
		metricsCollector,
		appClock,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBookingRefunds := getBookingRefundsHandler.NewHandler(refundSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, cancelBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(timeslotSvc, appClock, log)
	addTimeSlot := addTimeSlotHandler.NewHandler(timeslotSvc, log)
	deleteTimeSlots := deleteTimeSlotsHandler.NewHandler(timeslotSvc, log)
	adminCancelBooking := adminCancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	processRefund := processRefundHandler.NewHandler(processRefundUseCase, log)
	cancelRefund := cancelRefundHandler.NewHandler(refundSvc, log)

	// Rate limiter для изменяющих запросов
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		rateLimit, err := middleware.RateLimit(cfg.RateLimit.Rate, redisClient, log)
		if err != nil {
			log.Fatal("Failed to configure rate limiter: %v", err)
		}
		limit = func(h http.HandlerFunc) http.Handler { return rateLimit(h) }
		log.Info("Rate limiting enabled (rate=%s, shared=%t)", cfg.RateLimit.Rate, redisClient != nil)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	// Auth пропускает анонимные запросы; защищенные обработчики сами отвечают 401
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(log))

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Расписание провайдера
	api.HandleFunc("/providers/{providerId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// CUSTOMER ROUTES
	// ============================================================

	api.Handle("/bookings", limit(createBooking.Handle)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.Handle("/bookings/{bookingId}/cancel", limit(cancelBooking.Handle)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/refunds", getBookingRefunds.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROVIDER ROUTES (X-User-Role: provider + X-Provider-ID)
	// ============================================================

	api.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)
	api.Handle("/providers/{providerId}/bookings/{bookingId}", limit(updateBookingStatus.Handle)).Methods(http.MethodPut)
	api.Handle("/providers/{providerId}/availability/timeslots", limit(addTimeSlot.Handle)).Methods(http.MethodPost)
	api.Handle("/providers/{providerId}/availability/timeslots", limit(deleteTimeSlots.Handle)).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES (X-User-Role: admin)
	// ============================================================

	api.Handle("/admin/bookings/{bookingId}/cancel", limit(adminCancelBooking.Handle)).Methods(http.MethodPost)
	api.Handle("/admin/refunds/{refundId}/process", limit(processRefund.Handle)).Methods(http.MethodPost)
	api.Handle("/admin/refunds/{refundId}/cancel", limit(cancelRefund.Handle)).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
