package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bootstrapAdminHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/bootstrap_admin"
	completeTreatmentHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/complete_treatment"
	createAppointmentHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/create_appointment"
	createCustomerHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/create_customer"
	deleteAppointmentHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/delete_appointment"
	deleteCustomerHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/delete_customer"
	getAppointmentHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/get_appointment"
	getCustomerHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/get_customer"
	getScheduleHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/get_schedule"
	searchCustomersHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/search_customers"
	updateAppointmentHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/update_appointment"
	updateAppointmentStatusHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/update_appointment_status"
	updateCustomerHandler "github.com/avelsk/NSD-SchedulingService/internal/api/handlers/update_customer"
	"github.com/avelsk/NSD-SchedulingService/internal/api/middleware"
	"github.com/avelsk/NSD-SchedulingService/internal/catalog"
	"github.com/avelsk/NSD-SchedulingService/internal/config"
	appointmentRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/appointment"
	customerRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/customer"
	staffRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/staff"
	treatmentRepo "github.com/avelsk/NSD-SchedulingService/internal/infra/storage/treatment"
	"github.com/avelsk/NSD-SchedulingService/internal/integrations/gcalendar"
	appointmentsService "github.com/avelsk/NSD-SchedulingService/internal/service/appointments"
	customersService "github.com/avelsk/NSD-SchedulingService/internal/service/customers"
	staffService "github.com/avelsk/NSD-SchedulingService/internal/service/staff"
	completeTreatmentUC "github.com/avelsk/NSD-SchedulingService/internal/usecase/complete_treatment"
	createAppointmentUC "github.com/avelsk/NSD-SchedulingService/internal/usecase/create_appointment"
	updateAppointmentUC "github.com/avelsk/NSD-SchedulingService/internal/usecase/update_appointment"
	"github.com/avelsk/NSD-SchedulingService/migrations"
	"github.com/avelsk/NSD-SchedulingService/pkg/dbmetrics"
	"github.com/avelsk/NSD-SchedulingService/pkg/logger"
	"github.com/avelsk/NSD-SchedulingService/pkg/metrics"
	"github.com/avelsk/NSD-SchedulingService/pkg/simpletxmanager"
	"github.com/avelsk/NSD-SchedulingService/pkg/txmanager"
)

// calendarClient общий контракт боевого клиента и заглушки
type calendarClient interface {
	CreateEvent(ctx context.Context, event *gcalendar.Event) (string, error)
	UpdateEvent(ctx context.Context, eventID string, event *gcalendar.Event) error
	DeleteEvent(ctx context.Context, eventID string) error
}

// txManager контракт транзакционных обёрток (с метриками и без)
type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// .env (если есть) читается до конфигурации: env переопределяет секреты
	_ = godotenv.Load()

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

	log.Info("Starting NSD-SchedulingService...")
	log.Info("Configuration loaded from config.toml (environment=%s)", cfg.Server.Environment)

	// Рабочие часы салона
	hours, err := cfg.Business.Hours()
	if err != nil {
		log.Fatal("Invalid business hours: %v", err)
	}
	log.Info("Business hours: %02d:%02d - %02d:%02d, slot=%dmin",
		hours.OpenHour, hours.OpenMinute, hours.CloseHour, hours.CloseMinute,
		cfg.Business.SlotDurationMinutes)

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

	// Применяем миграции
	if err := migrations.Up(context.Background(), db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Клиент внешнего календаря
	var calendar calendarClient
	if cfg.Calendar.Enabled {
		client := gcalendar.NewClient(
			cfg.Calendar.URL,
			cfg.Calendar.CalendarID,
			cfg.Calendar.APIToken,
			time.Duration(cfg.Calendar.Timeout)*time.Second,
			log,
		)
		if metricsCollector != nil {
			client = client.WithMetrics(metricsCollector)
		}
		calendar = client
		log.Info("Calendar client initialized (url=%s, calendar=%s, timeout=%ds)",
			cfg.Calendar.URL, cfg.Calendar.CalendarID, cfg.Calendar.Timeout)
	} else {
		calendar = gcalendar.NoopClient{}
		log.Info("Calendar sync disabled")
	}

	// Справочник меню услуг
	menu := catalog.Default()
	log.Info("Menu catalog loaded: %d items", len(menu.List()))

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		customerRepository    *customerRepo.Repository
		staffRepository       *staffRepo.Repository
		treatmentRepository   *treatmentRepo.Repository
		txMgr                 txManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		treatmentRepository = treatmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		treatmentRepository = treatmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		customerRepository,
		staffRepository,
		calendar,
		hours,
		cfg.Business.SlotDurationMinutes,
		log,
	)
	customerSvc := customersService.NewService(
		customerRepository,
		treatmentRepository,
		log,
	)
	staffSvc := staffService.NewService(
		staffRepository,
		cfg.Server.IsProduction(),
		log,
	)

	// Первичный администратор из конфигурации (вне production)
	bootstrapAdminFromConfig(staffSvc, cfg, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		customerRepository,
		staffRepository,
		menu,
		calendar,
		txMgr,
		hours,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		customerRepository,
		staffRepository,
		menu,
		calendar,
		txMgr,
		hours,
		log,
	)
	completeTreatmentUseCase := completeTreatmentUC.NewUseCase(
		appointmentRepository,
		treatmentRepository,
		menu,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	completeTreatment := completeTreatmentHandler.NewHandler(completeTreatmentUseCase, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getSchedule := getScheduleHandler.NewHandler(appointmentSvc, log)
	createCustomer := createCustomerHandler.NewHandler(customerSvc, log)
	updateCustomer := updateCustomerHandler.NewHandler(customerSvc, log)
	getCustomer := getCustomerHandler.NewHandler(customerSvc, log)
	searchCustomers := searchCustomersHandler.NewHandler(customerSvc, log)
	deleteCustomer := deleteCustomerHandler.NewHandler(customerSvc, log)
	bootstrapAdmin := bootstrapAdminHandler.NewHandler(staffSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Первичное создание администратора (сервис сам отклонит в production)
	api.HandleFunc("/admin/bootstrap", bootstrapAdmin.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на прием ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeTreatment.Handle).Methods(http.MethodPost)

	// --- Расписание ---
	protected.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// --- Клиенты ---
	protected.HandleFunc("/customers", createCustomer.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/customers/search", searchCustomers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}", getCustomer.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}", updateCustomer.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/customers/{customerId}", deleteCustomer.Handle).Methods(http.MethodDelete)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	log.Info("Server stopped")
}

// bootstrapAdminFromConfig создает первичного администратора из конфигурации
// Пропускается в production и когда администратор уже существует
func bootstrapAdminFromConfig(svc *staffService.Service, cfg *config.Config, log *logger.Logger) {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := svc.BootstrapAdmin(ctx, &staffService.BootstrapAdminRequest{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	})
	switch {
	case err == nil:
		log.Info("Initial admin created from config (email=%s)", cfg.Admin.Email)
	case errors.Is(err, staffService.ErrAdminExists):
		log.Info("Initial admin already exists, skipping bootstrap")
	case errors.Is(err, staffService.ErrForbiddenInProduction):
		log.Info("Admin bootstrap from config skipped in production")
	default:
		log.Warn("Failed to bootstrap admin from config: %v", err)
	}
}
