// Package run sequences one monitor invocation: fetch, diff, summarize,
// notify, persist.
package run

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Xaberico/monitor-empleo-santafe/internal/diff"
	"github.com/Xaberico/monitor-empleo-santafe/internal/domain"
	"github.com/Xaberico/monitor-empleo-santafe/internal/store"
)

type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.Listing, error)
}

type Notifier interface {
	Send(newListings []domain.Listing) bool
}

type StateStore interface {
	Load() []domain.Listing
	Save([]domain.Listing) error
}

// RunLog is optional; a nil value disables run-history recording.
type RunLog interface {
	RecordRun(ctx context.Context, r store.RunRow) error
}

type Result struct {
	Total    int
	New      int
	Known    int
	Notified bool
	Aborted  bool
}

// Once executes a single check. State is only advanced past runs that fetched
// real data: an unreachable site or an empty extraction aborts before notify
// and persist, so a recovered site never looks like a mass new-listing event
// and an empty fetch never wipes the baseline.
func Once(ctx context.Context, fetcher Fetcher, states StateStore, notifier Notifier, runlog RunLog) Result {
	started := time.Now()

	listings, err := fetcher.Fetch(ctx)
	if err != nil {
		log.Printf("[run] fetch failed: %v (aborting, state untouched)", err)
		res := Result{Aborted: true}
		record(ctx, runlog, started, res)
		return res
	}
	if len(listings) == 0 {
		log.Printf("[run] no listings extracted; site structure may have changed (aborting, state untouched)")
		res := Result{Aborted: true}
		record(ctx, runlog, started, res)
		return res
	}

	previous := states.Load()
	fresh := diff.NewListings(listings, previous)

	res := Result{
		Total: len(listings),
		New:   len(fresh),
		Known: len(previous),
	}
	printSummary(res, fresh)

	if len(fresh) > 0 {
		res.Notified = notifier.Send(fresh)
	}

	if err := states.Save(listings); err != nil {
		// Notification already went out; only the next run's baseline
		// suffers.
		log.Printf("[run] state save failed: %v", err)
	}

	record(ctx, runlog, started, res)
	return res
}

func record(ctx context.Context, runlog RunLog, started time.Time, res Result) {
	if runlog == nil {
		return
	}
	err := runlog.RecordRun(ctx, store.RunRow{
		StartedAt: started,
		Duration:  time.Since(started),
		Total:     res.Total,
		New:       res.New,
		Known:     res.Known,
		Notified:  res.Notified,
		Aborted:   res.Aborted,
	})
	if err != nil {
		log.Printf("[run] run log write failed: %v", err)
	}
}

func printSummary(res Result, fresh []domain.Listing) {
	rule := strings.Repeat("=", 70)

	fmt.Println()
	fmt.Println(rule)
	fmt.Printf("RESUMEN DE MONITOREO - %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println(rule)
	fmt.Printf("Ofertas totales en el portal: %d\n", res.Total)
	fmt.Printf("Ofertas nuevas detectadas: %d\n", res.New)
	fmt.Printf("Ofertas ya conocidas: %d\n", res.Known)

	if len(fresh) == 0 {
		fmt.Println("\nNo se detectaron nuevas ofertas en esta ejecución.")
	} else {
		fmt.Println("\nNUEVAS OFERTAS:")
		for i, l := range fresh {
			fmt.Printf("\n%d. %s\n", i+1, l.Title)
			fmt.Printf("   Empresa: %s\n", l.Employer)
			fmt.Printf("   Ubicación: %s\n", l.Location)
			fmt.Printf("   Link: %s\n", l.URL)
		}
	}

	fmt.Println("\n" + rule)
	fmt.Println()
}
