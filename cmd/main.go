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

	archiveBookingsHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/archive_bookings"
	cancelBookingHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/create_booking"
	createUserHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/create_user"
	getAllBookingsHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/get_all_bookings"
	getBookingHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/get_user_bookings"
	getStatsHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/get_stats"
	getWeekViewHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/get_week_view"
	listFreeSlotsHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/list_free_slots"
	listUsersHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/list_users"
	loginHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/login"
	setUserActiveHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/set_user_active"
	transferBookingHandler "github.com/m04kA/SMC-DutyRosterService/internal/api/handlers/transfer_booking"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/config"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/inmemory"
	userRepo "github.com/m04kA/SMC-DutyRosterService/internal/infra/storage/user"
	"github.com/m04kA/SMC-DutyRosterService/internal/integrations/notifications"
	"github.com/m04kA/SMC-DutyRosterService/internal/schedule"
	bookingsService "github.com/m04kA/SMC-DutyRosterService/internal/service/bookings"
	usersService "github.com/m04kA/SMC-DutyRosterService/internal/service/users"
	archiveBookingsUC "github.com/m04kA/SMC-DutyRosterService/internal/usecase/archive_bookings"
	createBookingUC "github.com/m04kA/SMC-DutyRosterService/internal/usecase/create_booking"
	getStatsUC "github.com/m04kA/SMC-DutyRosterService/internal/usecase/get_stats"
	getWeekViewUC "github.com/m04kA/SMC-DutyRosterService/internal/usecase/get_week_view"
	listFreeSlotsUC "github.com/m04kA/SMC-DutyRosterService/internal/usecase/list_free_slots"
	sendRemindersUC "github.com/m04kA/SMC-DutyRosterService/internal/usecase/send_reminders"
	transferBookingUC "github.com/m04kA/SMC-DutyRosterService/internal/usecase/transfer_booking"
	"github.com/m04kA/SMC-DutyRosterService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DutyRosterService/pkg/logger"
	"github.com/m04kA/SMC-DutyRosterService/pkg/metrics"
	"github.com/m04kA/SMC-DutyRosterService/pkg/txmanager"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

const dailyJobsInterval = 24 * time.Hour

// bookingStore хранилище бронирований, общее для postgres и in-memory реализаций
type bookingStore interface {
	FindConfirmed(ctx context.Context, date time.Time, slotTime types.TimeRange) (*domain.Booking, error)
	FindConfirmedInRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	InsertConfirmed(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	MarkCancelled(ctx context.Context, id string, cancelledBy string, at time.Time) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	FindByUser(ctx context.Context, email string, from *time.Time) ([]*domain.Booking, error)
	FindAll(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	MoveToArchive(ctx context.Context, olderThan time.Time) (int, error)
}

// userStore хранилище пользователей
type userStore interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	SetActive(ctx context.Context, email string, active bool) error
}

// txManager транзакции для замены и передачи бронирований
type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	IsAtomic() bool
}

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-DutyRosterService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Календарь и шаблон дежурств
	loc, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}

	var holidays map[string][]string
	if cfg.Calendar.HolidaysFile != "" {
		holidays, err = calendar.LoadHolidays(cfg.Calendar.HolidaysFile)
		if err != nil {
			log.Fatal("Failed to load holidays: %v", err)
		}
	}

	blackoutFrom, blackoutTo := cfg.Calendar.BlackoutMonths()
	rules, err := calendar.NewRules(calendar.Config{
		Holidays:          holidays,
		BlackoutFromMonth: blackoutFrom,
		BlackoutToMonth:   blackoutTo,
		Location:          loc,
	})
	if err != nil {
		log.Fatal("Invalid calendar config: %v", err)
	}

	template := schedule.Default()
	if defs := cfg.SlotDefinitions(); defs != nil {
		template, err = schedule.New(defs)
		if err != nil {
			log.Fatal("Invalid slot template: %v", err)
		}
	}
	log.Info("Calendar initialized (timezone=%s, holiday years=%d, slots=%d)",
		cfg.Calendar.Timezone, len(holidays), len(template.All()))

	// Инициализируем хранилища (postgres или in-memory)
	var (
		bookingRepository bookingStore
		userRepository    userStore
		txMgr             txManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		bookingRepository = inmemory.NewBookingStore()
		userRepository = inmemory.NewUserStore()
		txMgr = txmanager.NewPassthrough()
		log.Warn("Using in-memory storage: data is lost on restart, override and transfer are not atomic")

	default:
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
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Уведомления: RabbitMQ или запись в лог
	var publisher notifications.Publisher = notifications.NewLogPublisher(log)
	if cfg.Notifications.Enabled {
		rabbit, err := notifications.NewRabbitPublisher(cfg.Notifications.RabbitURL, cfg.Notifications.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer rabbit.Close()
		publisher = rabbit
		log.Info("Notifications are published to exchange %s", cfg.Notifications.Exchange)
	}
	notifier := notifications.NewDispatcher(publisher, userRepository, log, cfg.Notifications.PublishTimeoutDuration())

	// Инициализируем сервисы
	userSvc := usersService.NewService(userRepository, log)
	if cfg.Admin.Email != "" {
		created, err := userSvc.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Name, cfg.Admin.Password)
		if err != nil {
			log.Fatal("Failed to bootstrap admin: %v", err)
		}
		if created {
			log.Info("Admin %s created", cfg.Admin.Email)
		}
	}

	bookingSvc := bookingsService.NewService(bookingRepository, userSvc, notifier, rules, metricsCollector, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		userSvc,
		rules,
		template,
		notifier,
		txMgr,
		metricsCollector,
		log,
	)
	transferBookingUseCase := transferBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		userSvc,
		rules,
		notifier,
		txMgr,
		metricsCollector,
		log,
	)
	getWeekViewUseCase := getWeekViewUC.NewUseCase(bookingRepository, rules, template, log)
	listFreeSlotsUseCase := listFreeSlotsUC.NewUseCase(
		bookingRepository,
		rules,
		template,
		userRepository,
		notifier,
		cfg.Alerts.HorizonDays,
		log,
	)
	archiveBookingsUseCase := archiveBookingsUC.NewUseCase(
		bookingRepository,
		userSvc,
		rules,
		cfg.Archive.RetentionDays,
		metricsCollector,
		log,
	)

	sendRemindersUseCase := sendRemindersUC.NewUseCase(bookingRepository, userRepository, rules, notifier, log)
	getStatsUseCase := getStatsUC.NewUseCase(bookingRepository, userRepository, userSvc, rules, listFreeSlotsUseCase, log)

	// Инициализируем handlers
	login := loginHandler.NewHandler(userSvc, log)
	getWeekView := getWeekViewHandler.NewHandler(getWeekViewUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	transferBooking := transferBookingHandler.NewHandler(transferBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAllBookings := getAllBookingsHandler.NewHandler(bookingSvc, log)
	listFreeSlots := listFreeSlotsHandler.NewHandler(listFreeSlotsUseCase, userSvc, cfg.Alerts.HorizonDays, log)
	archiveBookings := archiveBookingsHandler.NewHandler(archiveBookingsUseCase, log)
	getStats := getStatsHandler.NewHandler(getStatsUseCase, log)
	listUsers := listUsersHandler.NewHandler(userSvc, log)
	createUser := createUserHandler.NewHandler(userSvc, log)
	setUserActive := setUserActiveHandler.NewHandler(userSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-Email header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание ---
	protected.HandleFunc("/weeks/{date}/slots", getWeekView.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/transfer", transferBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{email}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	protected.HandleFunc("/admin/bookings", getAllBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/free-slots", listFreeSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/archive", archiveBookings.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/stats", getStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/users", listUsers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/users", createUser.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/users/{email}/active", setUserActive.Handle).Methods(http.MethodPatch)

	// Ежедневные задачи: архивирование, напоминания и оповещение о свободных слотах
	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()
	go runDailyJobs(jobsCtx, archiveBookingsUseCase, sendRemindersUseCase, listFreeSlotsUseCase, log)

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

	stopJobs()
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

// runDailyJobs запускает задачи при старте и затем раз в сутки до отмены ctx
func runDailyJobs(
	ctx context.Context,
	archiver *archiveBookingsUC.UseCase,
	reminders *sendRemindersUC.UseCase,
	alerts *listFreeSlotsUC.UseCase,
	log *logger.Logger,
) {
	run := func() {
		if resp, err := archiver.Run(ctx); err != nil {
			log.Error("Daily archive failed after %d bookings: %v", resp.Moved, err)
		}
		if _, err := reminders.Run(ctx); err != nil {
			log.Warn("Daily reminders failed: %v", err)
		}
		if _, err := alerts.Alert(ctx); err != nil {
			log.Warn("Daily free slots alert failed: %v", err)
		}
	}

	run()

	ticker := time.NewTicker(dailyJobsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
