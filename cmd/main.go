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
	"golang.org/x/time/rate"

	"github.com/m04kA/PetCare-BookingService/internal/access"
	cancelBookingHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/confirm_booking"
	getBookingHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/get_booking"
	getProviderBookingsHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/get_provider_bookings"
	getTimeSlotsHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/get_time_slots"
	getUserBookingsHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/get_user_bookings"
	getWizardHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/get_wizard"
	joinWaitlistHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/join_waitlist"
	previewRecurrenceHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/preview_recurrence"
	startWizardHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/start_wizard"
	updateBookingStatusHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/update_booking_status"
	updateWizardPetHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/update_wizard_pet"
	updateWizardScheduleHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/update_wizard_schedule"
	wizardStepHandler "github.com/m04kA/PetCare-BookingService/internal/api/handlers/wizard_step"
	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/config"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/infra/events"
	"github.com/m04kA/PetCare-BookingService/internal/infra/session"
	bookingRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/catalog"
	waitlistRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/waitlist"
	accountsClient "github.com/m04kA/PetCare-BookingService/internal/integrations/accounts"
	"github.com/m04kA/PetCare-BookingService/internal/recurrence"
	bookingsService "github.com/m04kA/PetCare-BookingService/internal/service/bookings"
	wizardsService "github.com/m04kA/PetCare-BookingService/internal/service/wizards"
	confirmBookingUC "github.com/m04kA/PetCare-BookingService/internal/usecase/confirm_booking"
	getTimeSlotsUC "github.com/m04kA/PetCare-BookingService/internal/usecase/get_time_slots"
	joinWaitlistUC "github.com/m04kA/PetCare-BookingService/internal/usecase/join_waitlist"
	"github.com/m04kA/PetCare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
	"github.com/m04kA/PetCare-BookingService/pkg/metrics"
	"github.com/m04kA/PetCare-BookingService/pkg/txmanager"
)

// eventPublisher общий интерфейс kafka-издателя и заглушки
type eventPublisher interface {
	PublishBookingsCreated(ctx context.Context, bookings []domain.Booking) error
	PublishWaitlistJoined(ctx context.Context, entry *domain.WaitlistEntry) error
	Close() error
}

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

	log.Info("Starting PetCare-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// При выключенных метриках *metrics.Metrics остаётся nil, все его методы ничего не делают
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	waitlistRepository := waitlistRepo.NewRepository(wrappedDB)

	// Инициализируем интеграционных клиентов
	accounts := accountsClient.NewClient(
		cfg.Accounts.URL,
		time.Duration(cfg.Accounts.Timeout)*time.Second,
		log,
	)
	log.Info("Accounts client initialized (url=%s timeout=%ds)", cfg.Accounts.URL, cfg.Accounts.Timeout)

	resolver := access.NewResolver(accounts, time.Duration(cfg.Access.CacheTTLSeconds)*time.Second, log)

	// Публикация событий
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := events.NewPublisher(events.Config{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			Source:       cfg.Metrics.ServiceName,
			WriteTimeout: time.Duration(cfg.Kafka.WriteTimeout) * time.Second,
		})
		if err != nil {
			log.Fatal("Failed to create kafka publisher: %v", err)
		}
		publisher = kafkaPublisher
		log.Info("Kafka publisher initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Сессии мастера бронирования живут в памяти процесса
	sessions := session.NewStore(
		time.Duration(cfg.Sessions.TTLMinutes)*time.Minute,
		time.Duration(cfg.Sessions.CleanupMinutes)*time.Minute,
		metricsCollector,
	)
	expander := recurrence.NewExpander(cfg.Booking.MaxOccurrences)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogRepository,
		resolver,
		log,
	)
	wizardSvc := wizardsService.NewService(
		catalogRepository,
		sessions,
		expander,
		log,
	)

	// Инициализируем use cases
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		sessions,
		resolver,
		txMgr,
		publisher,
		metricsCollector,
		domain.PricingMode(cfg.Booking.PricingMode),
		cfg.Booking.ProviderCapacity,
		log,
	)
	joinWaitlistUseCase := joinWaitlistUC.NewUseCase(
		waitlistRepository,
		sessions,
		resolver,
		publisher,
		metricsCollector,
		log,
	)
	getTimeSlotsUseCase := getTimeSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		waitlistRepository,
		cfg.Booking.ProviderCapacity,
		log,
	)

	// Инициализируем handlers
	previewRecurrence := previewRecurrenceHandler.NewHandler(wizardSvc, log)
	getTimeSlots := getTimeSlotsHandler.NewHandler(getTimeSlotsUseCase, log)
	startWizard := startWizardHandler.NewHandler(wizardSvc, log)
	getWizard := getWizardHandler.NewHandler(wizardSvc, log)
	updateWizardSchedule := updateWizardScheduleHandler.NewHandler(wizardSvc, log)
	updateWizardPet := updateWizardPetHandler.NewHandler(wizardSvc, log)
	wizardStep := wizardStepHandler.NewHandler(wizardSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(joinWaitlistUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewIPRateLimiter(
			rate.Limit(cfg.RateLimit.RPS),
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTTLMinutes)*time.Minute,
			cfg.RateLimit.TrustedProxies,
		)
		if err != nil {
			log.Fatal("Failed to configure rate limiter: %v", err)
		}
		api.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d, trusted proxies=%d)",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst, len(cfg.RateLimit.TrustedProxies))
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Предпросмотр повторяющихся бронирований
	api.HandleFunc("/recurrence/preview", previewRecurrence.Handle).Methods(http.MethodGet)

	// Свободные слоты специалиста на дату
	api.HandleFunc("/providers/{providerId}/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// WIZARD ROUTES (гость может собрать черновик, отправка требует X-User-ID)
	// ============================================================

	wizards := api.PathPrefix("/wizards").Subrouter()
	wizards.Use(middleware.OptionalAuth)
	wizards.Use(middleware.Access(resolver))

	wizards.HandleFunc("", startWizard.Handle).Methods(http.MethodPost)
	wizards.HandleFunc("/{wizardId}", getWizard.Handle).Methods(http.MethodGet)
	wizards.HandleFunc("/{wizardId}/schedule", updateWizardSchedule.Handle).Methods(http.MethodPatch)
	wizards.HandleFunc("/{wizardId}/pet", updateWizardPet.Handle).Methods(http.MethodPatch)
	wizards.HandleFunc("/{wizardId}/next", wizardStep.HandleNext).Methods(http.MethodPost)
	wizards.HandleFunc("/{wizardId}/back", wizardStep.HandleBack).Methods(http.MethodPost)
	wizards.HandleFunc("/{wizardId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	wizards.HandleFunc("/{wizardId}/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)
	protected.Use(middleware.Access(resolver))

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление записями специалиста (владелец бизнеса или администратор) ---
	business := protected.PathPrefix("").Subrouter()
	business.Use(middleware.RequireRoles(domain.UserBusiness, domain.UserAdmin))

	business.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)
	business.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

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

	// Ожидаем сигнал завершения
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
