package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/Sadiq-Teslim/ules-voting-sub000/cliparse"
	"github.com/Sadiq-Teslim/ules-voting-sub000/db"
	"github.com/Sadiq-Teslim/ules-voting-sub000/fingerprint"
	"github.com/Sadiq-Teslim/ules-voting-sub000/handlers"
	"github.com/Sadiq-Teslim/ules-voting-sub000/metrics"
	"github.com/Sadiq-Teslim/ules-voting-sub000/middleware"
	"github.com/Sadiq-Teslim/ules-voting-sub000/remote"
	"github.com/Sadiq-Teslim/ules-voting-sub000/router"
	"github.com/Sadiq-Teslim/ules-voting-sub000/session"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	driver, err := db.DriverName(cfg.DatabaseType)
	if err != nil {
		slog.Error("unsupported database", "error", err)
		os.Exit(1)
	}

	// Open the session store
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()
	if driver == db.DriverSQLite {
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "driver", driver)

	m, err := metrics.NewPrometheus()
	if err != nil {
		slog.Error("metrics setup failed", "error", err)
		os.Exit(1)
	}

	client := remote.NewClient(&http.Client{}, remote.Endpoints{
		TallyURL:      cfg.TallyURL,
		ValidationURL: cfg.ValidationURL,
		CatalogURL:    cfg.CatalogURL,
	})

	portal := handlers.NewPortal(
		session.NewStore(dbConn),
		client,
		fingerprint.NewHostSource(cfg.Display),
		m,
		cfg.RetryPolicy(),
	)

	// Create router
	mux := router.NewRouter(portal, m)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "retries", cfg.MaxRetries, "backoff", cfg.BaseDelay)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
