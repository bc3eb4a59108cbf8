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

	createBookingHandler "github.com/atlab/booking-service/internal/api/handlers/create_booking"
	exportBookingsHandler "github.com/atlab/booking-service/internal/api/handlers/export_bookings"
	getAvailableSlotsHandler "github.com/atlab/booking-service/internal/api/handlers/get_available_slots"
	getLabBookingsHandler "github.com/atlab/booking-service/internal/api/handlers/get_lab_bookings"
	getStudentBookingsHandler "github.com/atlab/booking-service/internal/api/handlers/get_student_bookings"
	gradeBookingHandler "github.com/atlab/booking-service/internal/api/handlers/grade_booking"
	rescheduleBookingHandler "github.com/atlab/booking-service/internal/api/handlers/reschedule_booking"
	"github.com/atlab/booking-service/internal/api/middleware"
	"github.com/atlab/booking-service/internal/app"
	"github.com/atlab/booking-service/internal/config"
	"github.com/atlab/booking-service/internal/domain"
	bookingRepo "github.com/atlab/booking-service/internal/infra/storage/booking"
	"github.com/atlab/booking-service/internal/integrations/mailer"
	bookingsService "github.com/atlab/booking-service/internal/service/bookings"
	createBookingUC "github.com/atlab/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/atlab/booking-service/internal/usecase/get_available_slots"
	gradeBookingUC "github.com/atlab/booking-service/internal/usecase/grade_booking"
	rescheduleBookingUC "github.com/atlab/booking-service/internal/usecase/reschedule_booking"
	"github.com/atlab/booking-service/pkg/logger"
	"github.com/atlab/booking-service/pkg/metrics"
	"github.com/atlab/booking-service/pkg/txmanager"
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

	log.Info("Starting AT Lab booking service...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс лаборатории: все сравнения дат и времени идут в нем
	labTZ, err := time.LoadLocation(cfg.Lab.Timezone)
	if err != nil {
		log.Fatal("Failed to load lab timezone %q: %v", cfg.Lab.Timezone, err)
	}

	// Разбираем недельные расписания локаций
	hours := make(map[domain.Location]domain.WeekHours, len(cfg.Lab.Locations))
	for name, loc := range cfg.Lab.Locations {
		wh, err := domain.ParseWeekHours(loc.Hours)
		if err != nil {
			log.Fatal("Invalid hours for location %q: %v", name, err)
		}
		hours[domain.Location(name)] = wh
	}
	log.Info("Lab schedule loaded: %d locations, horizon %d days, timezone %s",
		len(hours), cfg.Lab.HorizonDays, cfg.Lab.Timezone)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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
	migrator, err := app.NewMigrator(db, cfg.Database.MigrationsDir)
	if err != nil {
		log.Fatal("Failed to init migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Migrations applied, schema version %d", version)
	}

	// Отправка подтверждений: почтовый релей кампуса или лог-заглушка
	var confirmation createBookingUC.ConfirmationSender
	if cfg.Mailer.Enabled {
		confirmation = mailer.NewClient(
			cfg.Mailer.URL,
			cfg.Mailer.From,
			time.Duration(cfg.Mailer.Timeout)*time.Second,
			log,
		)
		log.Info("Mailer enabled (relay=%s)", cfg.Mailer.URL)
	} else {
		confirmation = mailer.NewLogSender(log)
		log.Info("Mailer disabled, confirmations will be logged only")
	}

	// Инициализируем репозиторий и transaction manager
	bookingRepository := bookingRepo.NewRepository(db, labTZ)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервис персонала
	bookingSvc := bookingsService.NewService(bookingRepository, labTZ, log)

	// Инициализируем use cases
	lab := createBookingUC.Lab{
		Hours:       hours,
		HorizonDays: cfg.Lab.HorizonDays,
		Timezone:    labTZ,
	}
	eligibility := createBookingUC.Eligibility{
		StudentIDPrefix: cfg.Eligibility.StudentIDPrefix,
		EmailSuffixes:   cfg.Eligibility.EmailSuffixes,
		ExamNumbers:     cfg.Eligibility.ExamNumbers,
	}

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		confirmation,
		lab,
		eligibility,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		getAvailableSlotsUC.Lab{
			Hours:       hours,
			HorizonDays: cfg.Lab.HorizonDays,
			Timezone:    labTZ,
		},
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		rescheduleBookingUC.Lab{
			Hours:       hours,
			HorizonDays: cfg.Lab.HorizonDays,
			Timezone:    labTZ,
		},
		log,
	)
	gradeBookingUseCase := gradeBookingUC.NewUseCase(bookingRepository, txMgr, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getStudentBookings := getStudentBookingsHandler.NewHandler(bookingSvc, log)
	getLabBookings := getLabBookingsHandler.NewHandler(bookingSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	gradeBooking := gradeBookingHandler.NewHandler(gradeBookingUseCase, log)

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

	// ============================================================
	// PUBLIC ROUTES (студенческая запись)
	// ============================================================

	// Свободные слоты: с date один день, без date весь горизонт
	api.HandleFunc("/locations/{location}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/locations/{location}/schedule",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Бронирования студента
	api.HandleFunc("/students/{email}/bookings", getStudentBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (требуют X-Staff-Passcode)
	// ============================================================

	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(middleware.StaffAuth(cfg.Staff.Passcode))

	// Журнал бронирований
	staff.HandleFunc("/bookings", getLabBookings.Handle).Methods(http.MethodGet)

	// Выгрузка журнала в CSV
	staff.HandleFunc("/bookings/export", exportBookings.Handle).Methods(http.MethodGet)

	// Перенос бронирования
	staff.HandleFunc("/bookings/{groupId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// Выставление оценки
	staff.HandleFunc("/bookings/{groupId}/grade", gradeBooking.Handle).Methods(http.MethodPost)

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
