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

	"github.com/danielhkuo/roll-call/auth"
	"github.com/danielhkuo/roll-call/cliparse"
	"github.com/danielhkuo/roll-call/db"
	"github.com/danielhkuo/roll-call/discord"
	"github.com/danielhkuo/roll-call/handlers"
	"github.com/danielhkuo/roll-call/locale"
	"github.com/danielhkuo/roll-call/prompt"
	"github.com/danielhkuo/roll-call/registry"
	"github.com/danielhkuo/roll-call/roster"
	"github.com/danielhkuo/roll-call/router"
)

func main() {
	var err error

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	locales, err := locale.NewProvider()
	if err != nil {
		slog.Error("locale bundles invalid", "error", err)
		os.Exit(1)
	}

	prompts, err := prompt.NewBuilder(cfg.Times, cfg.UTCOffset)
	if err != nil {
		slog.Error("attendance times invalid", "error", err)
		os.Exit(1)
	}

	// Roster backend
	var gw roster.Gateway
	switch cfg.RosterBackend {
	case cliparse.BackendSQL:
		dbConn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		if err := dbConn.Ping(); err != nil {
			slog.Error("database ping failed", "error", err)
			os.Exit(1)
		}
		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)
		gw = roster.NewSQLGateway(dbConn)
	default:
		gw = roster.NewHTTPGateway(roster.HTTPConfig{
			SubmitURL: cfg.SubmitURL,
			FetchURL:  cfg.FetchURL,
			ClearURL:  cfg.ClearURL,
			NameField: cfg.NameField,
			TimeField: cfg.TimeField,
			NameKey:   cfg.NameKey,
			TimeKey:   cfg.TimeKey,
			Timeout:   cfg.RosterTimeout,
		}, nil)
	}

	reg := registry.New()
	attendance := handlers.NewAttendanceHandler(reg, gw, auth.NewPolicy(cfg.AdminRoleIDs), locales, prompts, cfg)

	bot, err := discord.NewBot(cfg.DiscordToken, cfg.GuildID, discord.NewDispatcher(attendance))
	if err != nil {
		slog.Error("discord setup failed", "error", err)
		os.Exit(1)
	}
	if err := bot.Open(); err != nil {
		slog.Error("discord connection failed", "error", err)
		os.Exit(1)
	}
	defer bot.Close()

	// Keep-alive server
	server := http.Server{
		Handler: router.NewRouter(reg),
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

	slog.Info("Listening", "port", cfg.Port, "backend", cfg.RosterBackend)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
