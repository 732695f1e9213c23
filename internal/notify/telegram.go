// Package notify delivers the new-listing digest over Telegram.
package notify

import (
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Xaberico/monitor-empleo-santafe/internal/domain"
)

type Telegram struct {
	token  string
	chatID int64
	hc     *http.Client
}

func NewTelegram(token string, chatID int64) *Telegram {
	return &Telegram{
		token:  token,
		chatID: chatID,
		hc:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *Telegram) Configured() bool {
	return n.token != "" && n.chatID != 0
}

// Send posts the digest for the new listings. Delivery is best-effort: any
// failure is logged and reported as not-sent, never raised, so the run can
// still persist its state afterwards. With missing credentials this is a
// no-op.
func (n *Telegram) Send(newListings []domain.Listing) bool {
	if !n.Configured() {
		log.Printf("[notify] telegram not configured, skipping notification")
		return false
	}

	// The Bot API client validates the token with a getMe call, so it is
	// built per send rather than at startup; a run with nothing to notify
	// never talks to Telegram at all.
	api, err := tgbotapi.NewBotAPIWithClient(n.token, tgbotapi.APIEndpoint, n.hc)
	if err != nil {
		log.Printf("[notify] telegram auth: %v", err)
		return false
	}

	msg := tgbotapi.NewMessage(n.chatID, Digest(newListings))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	if _, err := api.Send(msg); err != nil {
		log.Printf("[notify] telegram send: %v", err)
		return false
	}
	log.Printf("[notify] telegram notification sent (%d listings)", len(newListings))
	return true
}
