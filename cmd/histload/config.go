package main

import (
	"net/url"

	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

// placeholderPassword is deliberately non-functional. A real password
// or a full TIMESCALE_URL must come from the environment.
const placeholderPassword = "changeme"

type config struct {
	WorkbookPath string
	Sheet        string

	DBName string
	DBUser string
	DBPass string
	DBHost string
	DBPort string
	URL    string
	Schema string
	Table  string

	SlackToken   string
	SlackChannel string

	LogLevel string
	Pretty   bool
	DryRun   bool
}

func loadConfig() *config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("TIMESCALE_DB_NAME", "appdata")
	v.SetDefault("TIMESCALE_DB_USER", "postgres")
	v.SetDefault("TIMESCALE_DB_PASS", placeholderPassword)
	v.SetDefault("TIMESCALE_DB_PORT", "5432")
	v.SetDefault("TIMESCALE_SCHEMA", "public")
	v.SetDefault("TIMESCALE_TABLE", "waltero_tqv")
	v.SetDefault("WORKBOOK_SHEET", "Totaliser Reading")
	v.SetDefault("LOG_LEVEL", "info")

	return &config{
		WorkbookPath: v.GetString("WORKBOOK_PATH"),
		Sheet:        v.GetString("WORKBOOK_SHEET"),

		DBName: v.GetString("TIMESCALE_DB_NAME"),
		DBUser: v.GetString("TIMESCALE_DB_USER"),
		DBPass: v.GetString("TIMESCALE_DB_PASS"),
		DBHost: v.GetString("TIMESCALE_DB_HOST"),
		DBPort: v.GetString("TIMESCALE_DB_PORT"),
		URL:    v.GetString("TIMESCALE_URL"),
		Schema: v.GetString("TIMESCALE_SCHEMA"),
		Table:  v.GetString("TIMESCALE_TABLE"),

		SlackToken:   v.GetString("SLACK_TOKEN"),
		SlackChannel: v.GetString("SLACK_CHANNEL"),

		LogLevel: v.GetString("LOG_LEVEL"),
		Pretty:   v.GetBool("LOG_PRETTY"),
		DryRun:   v.GetBool("DRY_RUN"),
	}
}

// dsn assembles the connection URL. TIMESCALE_URL wins over the
// individual DB_* parts when set.
func (c *config) dsn() string {
	if c.URL != "" {
		return c.URL
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPass),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}

	return u.String()
}

func (c *config) validate() error {
	if c.WorkbookPath == "" {
		return xerrors.New("workbook path is required (first argument or WORKBOOK_PATH)")
	}

	if c.DryRun || c.URL != "" {
		return nil
	}

	if c.DBHost == "" {
		return xerrors.New("TIMESCALE_DB_HOST is required when TIMESCALE_URL is not set")
	}
	if c.DBPass == placeholderPassword {
		return xerrors.New("TIMESCALE_DB_PASS is still the placeholder; set a real password or TIMESCALE_URL")
	}

	return nil
}
