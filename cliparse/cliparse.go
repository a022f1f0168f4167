package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Roster backends
const (
	BackendHTTP = "http"
	BackendSQL  = "sql"
)

type Config struct {
	Port int

	DiscordToken string
	GuildID      string

	RosterBackend string
	SubmitURL     string
	FetchURL      string
	ClearURL      string
	NameField     string
	TimeField     string
	NameKey       string
	TimeKey       string
	RosterTimeout time.Duration

	DatabaseURL  string
	DatabaseType string

	AdminRoleIDs []string
	Times        []string
	UTCOffset    int
}

// LoadDotEnv loads variables from path into the environment without
// overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags parses CLI flags, falls back to environment variables and
// validates the result
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("roll-call", pflag.ContinueOnError)

	// Keep-alive server
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Keep-alive HTTP port")

	// Discord (prefer env for the token)
	fs.StringVar(&cfg.DiscordToken, "token", "", "Discord bot token (prefer env)")
	fs.StringVar(&cfg.GuildID, "guild", "", "Register commands in this guild only")

	// Roster
	fs.StringVarP(&cfg.RosterBackend, "backend", "b", "", "Roster backend (http or sql)")
	fs.StringVar(&cfg.SubmitURL, "submit-url", "", "Roster form submit URL")
	fs.StringVar(&cfg.FetchURL, "fetch-url", "", "Roster JSON export URL")
	fs.StringVar(&cfg.ClearURL, "clear-url", "", "Roster clear trigger URL")
	fs.StringVar(&cfg.NameField, "name-field", "", "Form field for the display name")
	fs.StringVar(&cfg.TimeField, "time-field", "", "Form field for the choice")
	fs.StringVar(&cfg.NameKey, "name-key", "", "JSON key for the display name")
	fs.StringVar(&cfg.TimeKey, "time-key", "", "JSON key for the choice")
	fs.DurationVar(&cfg.RosterTimeout, "roster-timeout", 0, "Timeout for roster calls")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL for the sql backend")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")

	// Attendance
	fs.StringSliceVar(&cfg.AdminRoleIDs, "admin-roles", nil, "Role IDs allowed to run admin commands")
	fs.StringSliceVar(&cfg.Times, "times", nil, "Canonical attendance times (HH:MM)")
	fs.IntVar(&cfg.UTCOffset, "utc-offset", 0, "UTC offset in hours of the canonical times")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}

	envFallback(&cfg.DiscordToken, "DISCORD_TOKEN", "")
	envFallback(&cfg.GuildID, "DISCORD_GUILD_ID", "")
	envFallback(&cfg.RosterBackend, "ROSTER_BACKEND", BackendHTTP)
	envFallback(&cfg.SubmitURL, "GOOGLE_FORM_URL", "")
	envFallback(&cfg.FetchURL, "ROSTER_FETCH_URL", "")
	envFallback(&cfg.ClearURL, "ROSTER_CLEAR_URL", "")
	envFallback(&cfg.NameField, "DISCORD_NAME_ENTRY", "")
	envFallback(&cfg.TimeField, "TIME_ENTRY", "")
	envFallback(&cfg.NameKey, "ROSTER_NAME_KEY", "name")
	envFallback(&cfg.TimeKey, "ROSTER_TIME_KEY", "time")
	envFallback(&cfg.DatabaseURL, "DATABASE_URL", "")
	envFallback(&cfg.DatabaseType, "DATABASE_TYPE", "sqlite")

	if !fs.Changed("roster-timeout") {
		cfg.RosterTimeout = 5 * time.Second
		if v := os.Getenv("ROSTER_TIMEOUT"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, errors.New("invalid ROSTER_TIMEOUT env variable")
			}
			cfg.RosterTimeout = d
		}
	}
	if cfg.RosterTimeout <= 0 {
		return Config{}, errors.New("roster timeout must be positive")
	}

	if !fs.Changed("utc-offset") {
		cfg.UTCOffset = 8
		if v := os.Getenv("ATTENDANCE_UTC_OFFSET"); v != "" {
			off, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.New("invalid ATTENDANCE_UTC_OFFSET env variable")
			}
			cfg.UTCOffset = off
		}
	}
	if cfg.UTCOffset < -12 || cfg.UTCOffset > 14 {
		return Config{}, fmt.Errorf("utc offset %d out of range", cfg.UTCOffset)
	}

	if len(cfg.AdminRoleIDs) == 0 {
		cfg.AdminRoleIDs = splitList(os.Getenv("ADMIN_ROLE_IDS"))
	}
	if len(cfg.Times) == 0 {
		cfg.Times = splitList(os.Getenv("ATTENDANCE_TIMES"))
	}
	if len(cfg.Times) == 0 {
		cfg.Times = []string{"19:30", "19:45", "20:00"}
	}

	// Secrets - MUST be provided
	if cfg.DiscordToken == "" {
		return Config{}, errors.New("DISCORD_TOKEN required")
	}

	switch cfg.RosterBackend {
	case BackendHTTP:
		if cfg.SubmitURL == "" {
			return Config{}, errors.New("GOOGLE_FORM_URL required for the http backend")
		}
		if cfg.NameField == "" || cfg.TimeField == "" {
			return Config{}, errors.New("DISCORD_NAME_ENTRY and TIME_ENTRY required for the http backend")
		}
	case BackendSQL:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for the sql backend (use -d or DATABASE_URL env)")
		}
		if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
			return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
		}
	default:
		return Config{}, fmt.Errorf("unknown roster backend %q", cfg.RosterBackend)
	}

	return cfg, nil
}

func envFallback(dst *string, key, def string) {
	if *dst != "" {
		return
	}
	*dst = os.Getenv(key)
	if *dst == "" {
		*dst = def
	}
}

// splitList splits a comma separated env value, dropping blanks
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
