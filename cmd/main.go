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

	addTipHandler "github.com/m04kA/SMC-PaymentService/internal/api/handlers/add_tip"
	cancelBookingHandler "github.com/m04kA/SMC-PaymentService/internal/api/handlers/cancel_booking"
	getPaymentHandler "github.com/m04kA/SMC-PaymentService/internal/api/handlers/get_payment"
	getPolicyHandler "github.com/m04kA/SMC-PaymentService/internal/api/handlers/get_policy"
	markNoShowHandler "github.com/m04kA/SMC-PaymentService/internal/api/handlers/mark_no_show"
	runCaptureHandler "github.com/m04kA/SMC-PaymentService/internal/api/handlers/run_capture"
	runPreauthHandler "github.com/m04kA/SMC-PaymentService/internal/api/handlers/run_preauth"
	updatePolicyHandler "github.com/m04kA/SMC-PaymentService/internal/api/handlers/update_policy"
	"github.com/m04kA/SMC-PaymentService/internal/api/middleware"
	"github.com/m04kA/SMC-PaymentService/internal/config"
	bookingRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/payment"
	policyRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/policy"
	notifierClient "github.com/m04kA/SMC-PaymentService/internal/integrations/notifier"
	processorClient "github.com/m04kA/SMC-PaymentService/internal/integrations/processor"
	replicaClient "github.com/m04kA/SMC-PaymentService/internal/integrations/replica"
	paymentsService "github.com/m04kA/SMC-PaymentService/internal/service/payments"
	policyService "github.com/m04kA/SMC-PaymentService/internal/service/policy"
	cancelBookingUC "github.com/m04kA/SMC-PaymentService/internal/usecase/cancel_booking"
	markNoShowUC "github.com/m04kA/SMC-PaymentService/internal/usecase/mark_no_show"
	runCaptureUC "github.com/m04kA/SMC-PaymentService/internal/usecase/run_capture"
	runPreauthUC "github.com/m04kA/SMC-PaymentService/internal/usecase/run_preauth"
	"github.com/m04kA/SMC-PaymentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PaymentService/pkg/logger"
	"github.com/m04kA/SMC-PaymentService/pkg/metrics"
	"github.com/m04kA/SMC-PaymentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-PaymentService/pkg/txmanager"
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

	log.Info("Starting SMC-PaymentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	processor := processorClient.NewClient(
		cfg.Processor.BaseURL,
		cfg.Processor.SecretKey,
		cfg.Processor.Currency,
		time.Duration(cfg.Processor.Timeout)*time.Second,
		log,
	)
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Processor=%s timeout=%ds, Notifier=%s timeout=%ds)",
		cfg.Processor.BaseURL, cfg.Processor.Timeout, cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Клиент вторичного окружения (только если репликация включена)
	var replica *replicaClient.Client
	if cfg.Replication.Enabled {
		replica = replicaClient.NewClient(
			cfg.Replication.SecondaryURL,
			cfg.Jobs.Secret,
			time.Duration(cfg.Replication.Timeout)*time.Second,
			log,
		)
		log.Info("Job replication to secondary environment enabled (%s)", cfg.Replication.SecondaryURL)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		paymentRepository *paymentRepo.Repository
		bookingRepository *bookingRepo.Repository
		policyRepository  *policyRepo.Repository
	)

	// Интерфейс transaction manager (используется в сервисе политик)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		paymentRepository = paymentRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	paymentsSvc := paymentsService.NewService(paymentRepository, processor, log)
	policySvc := policyService.NewService(policyRepository, txMgr, log)

	// Инициализируем use cases
	preauthJob := runPreauthUC.NewUseCase(
		paymentRepository,
		bookingRepository,
		processor,
		notifier,
		cfg.Jobs.BatchLimit,
		log,
	)
	captureJob := runCaptureUC.NewUseCase(
		paymentRepository,
		processor,
		notifier,
		cfg.Jobs.BatchLimit,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		paymentRepository,
		bookingRepository,
		policyRepository,
		paymentsSvc,
		notifier,
		log,
	)
	markNoShowUseCase := markNoShowUC.NewUseCase(
		paymentRepository,
		bookingRepository,
		paymentsSvc,
		notifier,
		log,
	)

	// Инициализируем handlers. Replicator и metrics recorder передаются
	// только когда включены, handlers принимают nil
	var jobReplica runPreauthHandler.Replicator
	var jobMetrics runPreauthHandler.MetricsRecorder
	if replica != nil {
		jobReplica = replica
	}
	if metricsCollector != nil {
		jobMetrics = metricsCollector
	}

	runPreauth := runPreauthHandler.NewHandler(preauthJob, jobReplica, jobMetrics, log)
	runCapture := runCaptureHandler.NewHandler(captureJob, jobReplica, jobMetrics, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	markNoShow := markNoShowHandler.NewHandler(markNoShowUseCase, log)
	getPayment := getPaymentHandler.NewHandler(paymentsSvc, log)
	addTip := addTipHandler.NewHandler(paymentsSvc, log)
	getPolicy := getPolicyHandler.NewHandler(policySvc, log)
	updatePolicy := updatePolicyHandler.NewHandler(policySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// JOB ROUTES (для внешнего планировщика, bearer-токен)
	// ============================================================

	jobs := r.PathPrefix("/internal/jobs").Subrouter()
	jobs.Use(middleware.JobAuth(cfg.Jobs.Secret))

	// Пре-авторизация: создание холдов за ~25 часов до визита
	jobs.HandleFunc("/pre-auth", runPreauth.Handle).Methods(http.MethodGet)

	// Capture: списание средств после завершения визита
	jobs.HandleFunc("/capture", runCapture.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Платежи ---
	// Платеж бронирования
	protected.HandleFunc("/bookings/{bookingId}/payment", getPayment.Handle).Methods(http.MethodGet)

	// Изменение чаевых (до capture)
	protected.HandleFunc("/bookings/{bookingId}/tip", addTip.Handle).Methods(http.MethodPost)

	// Отмена бронирования с расчетом платы за отмену
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Пометка визита как no-show
	protected.HandleFunc("/appointments/{appointmentId}/no-show", markNoShow.Handle).Methods(http.MethodPost)

	// --- Платежные политики профессионалов ---
	protected.HandleFunc("/professionals/{professionalId}/payment-policy", getPolicy.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/payment-policy", updatePolicy.Handle).Methods(http.MethodPut)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
