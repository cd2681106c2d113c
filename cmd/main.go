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

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	acceptBookingHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/accept_booking"
	cancelBookingHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/create_booking"
	findCandidatesHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/find_candidates"
	getAdvisorHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_advisor"
	getAvailabilityHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_booking"
	getRejectionsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_rejections"
	listAdvisorsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/list_advisors"
	listBookingsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/list_bookings"
	offerBookingHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/offer_booking"
	rejectBookingHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/reject_booking"
	setAvailabilityHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/set_availability"
	updateAdvisorHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/update_advisor"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/config"
	cacheAvailability "github.com/m04kA/SMC-ConsultationService/internal/infra/cache/availability"
	advisorRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/advisor"
	availabilityRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultationService/internal/infra/storage/migrations"
	rejectionRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/rejection"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	advisorsService "github.com/m04kA/SMC-ConsultationService/internal/service/advisors"
	availabilityService "github.com/m04kA/SMC-ConsultationService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ConsultationService/internal/service/bookings"
	acceptBookingUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/accept_booking"
	cancelBookingUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/create_booking"
	findCandidatesUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/find_candidates"
	getAvailableSlotsUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/get_available_slots"
	offerBookingUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/offer_booking"
	rejectBookingUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/reject_booking"
	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
	"github.com/m04kA/SMC-ConsultationService/pkg/metrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/migrate"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
)

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

	log.Info("Starting SMC-ConsultationService...")

	location, err := cfg.App.Location()
	if err != nil {
		log.Fatal("Invalid timezone %q: %v", cfg.App.Timezone, err)
	}

	// Инициализируем метрики (если включены)
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

	if cfg.Database.AutoMigrate {
		if err := migrate.Up(context.Background(), db, migrations.FS, migrations.Dir); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Без метрик обёртка прозрачна, поэтому репозитории всегда работают через неё
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш доступности
	var availabilityCache availabilityService.Cache = cacheAvailability.Nop{}

	var redisClient *redis.Client
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
		availabilityCache = cacheAvailability.NewCache(redisClient, cfg.Redis.TTL())
		log.Info("Availability cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
	}

	// Публикация событий по заявкам
	var publisher notifier.Publisher = notifier.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := notifier.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Booking events are published to exchange %q", cfg.RabbitMQ.Exchange)
	}
	eventNotifier := notifier.NewNotifier(publisher, metricsCollector, log)

	// Инициализируем репозитории
	advisorRepository := advisorRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	rejectionRepository := rejectionRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		advisorRepository,
		availabilityRepository,
		bookingRepository,
		availabilityCache,
		txMgr,
		eventNotifier,
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, rejectionRepository, location, log)
	advisorSvc := advisorsService.NewService(advisorRepository, bookingRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(availabilityRepository, log)
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, eventNotifier, log)
	acceptBookingUseCase := acceptBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		availabilityCache,
		txMgr,
		eventNotifier,
		metricsCollector,
		log,
	)
	rejectBookingUseCase := rejectBookingUC.NewUseCase(
		bookingRepository,
		rejectionRepository,
		txMgr,
		eventNotifier,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		availabilityCache,
		txMgr,
		eventNotifier,
		log,
	)
	offerBookingUseCase := offerBookingUC.NewUseCase(
		bookingRepository,
		advisorRepository,
		rejectionRepository,
		txMgr,
		eventNotifier,
		log,
	)
	findCandidatesUseCase := findCandidatesUC.NewUseCase(
		availabilityRepository,
		bookingRepository,
		rejectionRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	setAvailability := setAvailabilityHandler.NewHandler(availabilitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getRejections := getRejectionsHandler.NewHandler(bookingSvc, log)
	acceptBooking := acceptBookingHandler.NewHandler(acceptBookingUseCase, log)
	rejectBooking := rejectBookingHandler.NewHandler(rejectBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	offerBooking := offerBookingHandler.NewHandler(offerBookingUseCase, log)
	findCandidates := findCandidatesHandler.NewHandler(findCandidatesUseCase, log)
	listAdvisors := listAdvisorsHandler.NewHandler(advisorSvc, log)
	getAdvisor := getAdvisorHandler.NewHandler(advisorSvc, log)
	updateAdvisor := updateAdvisorHandler.NewHandler(advisorSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := wrappedDB.PingContext(req.Context()); err != nil {
			log.Error("GET /health - Database ping failed: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "база данных недоступна")
			return
		}
		if redisClient != nil {
			if err := redisClient.Ping(req.Context()).Err(); err != nil {
				log.Error("GET /health - Redis ping failed: %v", err)
				handlers.RespondError(w, http.StatusServiceUnavailable, "кэш недоступен")
				return
			}
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог слотов (с числом свободных консультантов на дату)
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Форма записи на консультацию
	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		public.Use(limiter.Middleware)
		log.Info("Rate limit for public booking form: rps=%.1f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Консультанты ---
	protected.HandleFunc("/advisors", listAdvisors.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/advisors/{advisorId}", getAdvisor.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/advisors/{advisorId}", updateAdvisor.Handle).Methods(http.MethodPatch)

	// --- Доступность ---
	protected.HandleFunc("/advisors/{advisorId}/availability", getAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/advisors/{advisorId}/availability", setAvailability.Handle).Methods(http.MethodPut)

	// --- Заявки ---
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/accept", acceptBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Диспетчеризация ---
	protected.HandleFunc("/bookings/{bookingId}/offer", offerBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/rejections", getRejections.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/candidates", findCandidates.Handle).Methods(http.MethodGet)

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
