package app

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/yigitentrk/show-booking-system/internal/booking"
	"github.com/yigitentrk/show-booking-system/internal/event"
	"github.com/yigitentrk/show-booking-system/internal/repository"
	appvalidator "github.com/yigitentrk/show-booking-system/internal/validator"
	"github.com/yigitentrk/show-booking-system/internal/vcs"
)

var (
	version = vcs.Version()
)

type application struct {
	config    config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate

	bookings  *booking.Service
	reaper    *booking.Reaper
	publisher *event.RedisPublisher
}

type config struct {
	port int
	env  string
	db   struct {
		dsn          string
		maxOpenConns int
		maxIdleTime  time.Duration
		automigrate  bool
	}
	redis struct {
		url          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  time.Duration
	}
	booking struct {
		lockTimeout    time.Duration
		reaperInterval time.Duration
	}
}

func Run() error {
	var cfg config

	flag.IntVar(&cfg.port, "port", 3000, "server port")
	flag.StringVar(&cfg.env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.db.dsn, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.db.maxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")
	flag.BoolVar(&cfg.db.automigrate, "db-automigrate", false, "Run database migrations on startup")

	flag.StringVar(&cfg.redis.url, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.redis.maxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.redis.maxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.redis.maxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.DurationVar(&cfg.booking.lockTimeout, "seat-lock-timeout", booking.DefaultLockTimeout, "How long an unconfirmed seat lock is honored")
	flag.DurationVar(&cfg.booking.reaperInterval, "reaper-interval", booking.DefaultReaperInterval, "How often expired seat locks are swept")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	validator := appvalidator.NewValidator()

	db, err := newDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.db.automigrate {
		if err := runMigrations(cfg.db.dsn); err != nil {
			return err
		}

		logger.Info("database migrations applied")
	}

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	publisher, err := event.NewRedisPublisher(redisClient, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	showRepo := repository.NewPostgresShowRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)
	ticketRepo := repository.NewPostgresTicketRepository(db)
	seatStore := repository.NewPostgresSeatStore(db)

	lockManager := booking.NewSeatLockManager(seatStore, logger)
	bookings := booking.NewService(showRepo, userRepo, ticketRepo, seatStore, lockManager, publisher, logger, cfg.booking.lockTimeout)
	reaper := booking.NewReaper(seatStore, logger, cfg.booking.lockTimeout, cfg.booking.reaperInterval)

	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redisClient,
		validator: validator,
		bookings:  bookings,
		reaper:    reaper,
		publisher: publisher,
	}

	return app.run()
}

func newRedisClient(cfg config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.redis.url,
		MaxIdleConns:    cfg.redis.maxIdleConns,
		MaxActiveConns:  cfg.redis.maxOpenConns,
		ConnMaxIdleTime: cfg.redis.maxIdleTime,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.db.maxIdleTime
	config.MaxConns = int32(cfg.db.maxOpenConns)

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "pgx", driver)
	if err != nil {
		return fmt.Errorf("migrate.New error: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func (app *application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()

	go app.reaper.Run(reaperCtx)

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		stopReaper()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
