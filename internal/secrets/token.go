package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the monitor's secrets in the OS keychain.
	KeyringService = "empleo-monitor"

	telegramTokenAccount = "telegram:bot-token"
)

// GetTelegramToken reads the bot token from the OS keychain. It is the
// fallback when TELEGRAM_BOT_TOKEN is absent from the environment and the
// config file.
func GetTelegramToken() (string, error) {
	tok, err := keyring.Get(KeyringService, telegramTokenAccount)
	if err == nil && strings.TrimSpace(tok) != "" {
		return tok, nil
	}
	return "", errors.New("telegram bot token not found (set it in keychain or via env)")
}

func SetTelegramToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, telegramTokenAccount, token)
}

func DeleteTelegramToken() error {
	return keyring.Delete(KeyringService, telegramTokenAccount)
}
