// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rotavan/rotavan/adapters/clock"
	"github.com/rotavan/rotavan/adapters/idgen"
	"github.com/rotavan/rotavan/adapters/metrics"
	"github.com/rotavan/rotavan/adapters/sqlite"
	"github.com/rotavan/rotavan/app"
	"github.com/rotavan/rotavan/config"
	"github.com/rotavan/rotavan/web"
)

// App holds all application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	DB         *sqlite.DB
	HTTPServer *http.Server
	Metrics    *metrics.Collector

	holder *config.Holder

	billing   *app.BillingConfigService
	ledger    *app.Ledger
	navigator *app.Navigator
}

// New creates a fully wired application from the given configuration.
func New(cfg *config.Config) (*App, error) {
	logger := setupLogger(cfg.Logging)

	a := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := a.initDatabase(); err != nil {
		return nil, err
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
	}

	if err := a.initServices(); err != nil {
		a.DB.Close()
		return nil, err
	}

	a.initHTTPServer()

	return a, nil
}

// NewWithHotReload creates an application whose configuration reloads
// on file change or SIGHUP. Only the log level takes effect live.
func NewWithHotReload(configPath string) (*App, error) {
	bootLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	holder, err := config.NewHolder(configPath, bootLogger)
	if err != nil {
		return nil, err
	}

	a, err := New(holder.Get())
	if err != nil {
		holder.Stop()
		return nil, err
	}
	a.holder = holder

	holder.OnChange(func(cfg *config.Config) {
		if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	})

	if err := holder.WatchFile(); err != nil {
		a.Logger.Warn().Err(err).Msg("config file watching disabled")
	}
	holder.WatchSignals()

	return a, nil
}

func (a *App) initDatabase() error {
	db, err := sqlite.Open(a.Config.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return fmt.Errorf("migrate database: %w", err)
	}

	a.DB = db
	a.Logger.Info().Str("path", a.Config.Database.Path).Msg("database ready")
	return nil
}

func (a *App) initServices() error {
	ctx := context.Background()
	clk := clock.Real{}
	ids := idgen.UUID{}

	configStore := sqlite.NewConfigStore(a.DB)
	studentStore := sqlite.NewStudentStore(a.DB)
	paymentStore := sqlite.NewPaymentStatusStore(a.DB)

	// Rollover runs once per startup, before any period is served.
	// Failures are logged inside and never block startup.
	var rolloverMetrics app.RolloverMetrics
	var ledgerMetrics app.LedgerMetrics
	if a.Metrics != nil {
		rolloverMetrics = a.Metrics
		ledgerMetrics = a.Metrics
	}
	app.NewRollover(configStore, clk, a.Logger, rolloverMetrics).Run(ctx)

	a.billing = app.NewBillingConfigService(configStore, clk, a.Logger)
	a.ledger = app.NewLedger(studentStore, paymentStore, a.billing, ids, a.Logger, ledgerMetrics)

	navigator, err := app.NewNavigator(ctx, a.billing, a.Logger)
	if err != nil {
		return fmt.Errorf("init navigator: %w", err)
	}
	a.navigator = navigator

	if a.Metrics != nil {
		if students, err := studentStore.List(ctx); err == nil {
			a.Metrics.SetStudentCount(len(students))
		}
	}

	return nil
}

func (a *App) initHTTPServer() {
	handler := web.NewHandler(web.Deps{
		Ledger:    a.ledger,
		Navigator: a.navigator,
		Billing:   a.billing,
		Students:  sqlite.NewStudentStore(a.DB),
		Stops:     sqlite.NewStopStore(a.DB),
		Vehicles:  sqlite.NewVehicleStore(a.DB),
		Trips:     sqlite.NewTripStore(a.DB),
		Reminders: sqlite.NewReminderStore(a.DB),
		Clock:     clock.Real{},
		IDGen:     idgen.UUID{},
		Metrics:   a.Metrics,
		Logger:    a.Logger,

		UpcomingWindow: a.Config.Reminders.UpcomingWindow,
	})

	mux := http.NewServeMux()
	if a.Metrics != nil {
		mux.Handle(a.Config.Metrics.Path, web.MetricsHandler())
		a.Logger.Info().Str("path", a.Config.Metrics.Path).Msg("metrics endpoint enabled")
	}
	mux.Handle("/", handler.Router())

	addr := fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port)
	a.HTTPServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.holder != nil {
		a.holder.Stop()
	}

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
