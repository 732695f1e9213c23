package main

import (
	"context"
	"flag"
	"log"

	"github.com/Xaberico/monitor-empleo-santafe/internal/config"
	"github.com/Xaberico/monitor-empleo-santafe/internal/notify"
	"github.com/Xaberico/monitor-empleo-santafe/internal/run"
	"github.com/Xaberico/monitor-empleo-santafe/internal/scrape/portal"
	"github.com/Xaberico/monitor-empleo-santafe/internal/scrape/util"
	"github.com/Xaberico/monitor-empleo-santafe/internal/secrets"
	"github.com/Xaberico/monitor-empleo-santafe/internal/state"
	"github.com/Xaberico/monitor-empleo-santafe/internal/store"
)

var (
	configPath = flag.String("config", "config.yml", "path to the YAML config file (optional)")
	statePath  = flag.String("state", "", "override the state snapshot path")
	setToken   = flag.String("set-token", "", "store the Telegram bot token in the OS keychain and exit")
)

func main() {
	flag.Parse()

	if *setToken != "" {
		if err := secrets.SetTelegramToken(*setToken); err != nil {
			log.Fatalf("[secrets] %v", err)
		}
		log.Printf("[secrets] token stored in keychain (service %q)", secrets.KeyringService)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	if *statePath != "" {
		cfg.StateFile = *statePath
	}

	cfg, val := config.NormalizeAndValidate(cfg)
	for _, w := range val.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !val.OK() {
		for _, e := range val.Errors {
			log.Printf("[config] error: %s", e)
		}
		log.Fatalf("[config] invalid configuration")
	}

	states := state.NewStore(cfg.StateFile)
	locked, err := states.TryLock()
	if err != nil {
		log.Printf("[state] lock: %v (continuing unlocked)", err)
	} else if !locked {
		log.Printf("[state] another run holds %s.lock, exiting", cfg.StateFile)
		return
	} else {
		defer states.Unlock()
	}

	var runlog run.RunLog
	if cfg.RunLogDB != "" {
		db, err := store.Open(cfg.RunLogDB)
		if err != nil {
			log.Printf("[store] run log disabled: %v", err)
		} else {
			defer db.Close()
			runlog = db
		}
	}

	scraper := portal.New(portal.Config{
		PortalURL: cfg.Portal.BaseURL,
		SearchURL: cfg.Portal.SearchURL,
		UserAgent: cfg.Portal.UserAgent,
		MaxPages:  cfg.Portal.MaxPages,
	}, util.NewHostLimiter(1.0, 2))
	notifier := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)

	log.Printf("[run] iniciando verificación de ofertas de empleo")
	res := run.Once(context.Background(), scraper, states, notifier, runlog)
	if res.Aborted {
		log.Printf("[run] verificación abortada sin cambios de estado")
		return
	}
	log.Printf("[run] verificación completada (total=%d nuevas=%d notificado=%v)", res.Total, res.New, res.Notified)
}
