package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Xaberico/monitor-empleo-santafe/internal/secrets"
)

const (
	DefaultPortalURL = "https://www.santafe.gob.ar/simtyss/portalempleo/"
	DefaultSearchURL = DefaultPortalURL + "ofertas/"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultStateFile = "empleos_anteriores.json"
)

type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	// EmailRecipient is read for parity with the previous deployment's
	// environment. No delivery path uses it.
	EmailRecipient string `yaml:"email_recipient"`

	Portal struct {
		BaseURL   string `yaml:"base_url"`
		SearchURL string `yaml:"search_url"`
		UserAgent string `yaml:"user_agent"`
		MaxPages  int    `yaml:"max_pages"`
	} `yaml:"portal"`

	StateFile string `yaml:"state_file"`
	RunLogDB  string `yaml:"run_log_db"` // empty disables the run-history log
}

// Load builds the config once at process start: defaults, then the optional
// YAML file, then environment variables (a .env file is honored), then the
// OS keychain for the bot token. Components take the result by reference and
// never read the environment themselves.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.Portal.BaseURL = DefaultPortalURL
	cfg.Portal.SearchURL = DefaultSearchURL
	cfg.Portal.UserAgent = DefaultUserAgent
	cfg.Portal.MaxPages = 1
	cfg.StateFile = DefaultStateFile

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Printf("[config] %s not found, using defaults and env", path)
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	if tok := os.Getenv("TELEGRAM_BOT_TOKEN"); tok != "" {
		cfg.Telegram.Token = tok
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return cfg, errors.New("invalid TELEGRAM_CHAT_ID: " + chatID)
		}
		cfg.Telegram.ChatID = id
	}
	if dest := os.Getenv("EMAIL_DESTINATARIO"); dest != "" {
		cfg.EmailRecipient = dest
	}

	if cfg.Telegram.Token == "" {
		if tok, err := secrets.GetTelegramToken(); err == nil {
			cfg.Telegram.Token = tok
		}
	}

	return cfg, nil
}
