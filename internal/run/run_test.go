package run

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xaberico/monitor-empleo-santafe/internal/diff"
	"github.com/Xaberico/monitor-empleo-santafe/internal/domain"
	"github.com/Xaberico/monitor-empleo-santafe/internal/scrape/portal"
	"github.com/Xaberico/monitor-empleo-santafe/internal/state"
	"github.com/Xaberico/monitor-empleo-santafe/internal/store"
)

type fakeNotifier struct {
	sent [][]domain.Listing
	ok   bool
}

func (f *fakeNotifier) Send(newListings []domain.Listing) bool {
	f.sent = append(f.sent, newListings)
	return f.ok
}

type fakeRunLog struct {
	rows []store.RunRow
}

func (f *fakeRunLog) RecordRun(_ context.Context, r store.RunRow) error {
	f.rows = append(f.rows, r)
	return nil
}

func portalHTML(titles ...string) string {
	body := ""
	for i, title := range titles {
		body += fmt.Sprintf(`<div class="oferta"><h3>%s</h3><a href="/ofertas/%d">ver</a></div>`, title, i+1)
	}
	return "<html><body>" + body + "</body></html>"
}

func serve(t *testing.T, handler http.HandlerFunc) *portal.Scraper {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return portal.New(portal.Config{
		PortalURL: srv.URL + "/",
		SearchURL: srv.URL + "/ofertas/",
		UserAgent: "test",
	}, nil)
}

func seed(t *testing.T, st *state.Store, titles ...string) {
	t.Helper()
	var prev []domain.Listing
	for _, title := range titles {
		prev = append(prev, domain.Listing{
			Title:       title,
			Employer:    domain.DefaultEmployer,
			Fingerprint: diff.Fingerprint(title, domain.DefaultEmployer),
		})
	}
	require.NoError(t, st.Save(prev))
}

func TestOnceNotifiesOnlyNewAndPersistsAll(t *testing.T) {
	scraper := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, portalHTML("Oferta A", "Oferta B", "Oferta C"))
	})

	st := state.NewStore(filepath.Join(t.TempDir(), "estado.json"))
	seed(t, st, "Oferta A", "Oferta B")

	notifier := &fakeNotifier{ok: true}
	runlog := &fakeRunLog{}

	res := Once(context.Background(), scraper, st, notifier, runlog)

	assert.Equal(t, Result{Total: 3, New: 1, Known: 2, Notified: true}, res)

	require.Len(t, notifier.sent, 1)
	require.Len(t, notifier.sent[0], 1)
	assert.Equal(t, "Oferta C", notifier.sent[0][0].Title)

	// persisted snapshot is the full current set, in fetch order
	persisted := st.Load()
	require.Len(t, persisted, 3)
	assert.Equal(t, "Oferta A", persisted[0].Title)
	assert.Equal(t, "Oferta B", persisted[1].Title)
	assert.Equal(t, "Oferta C", persisted[2].Title)

	require.Len(t, runlog.rows, 1)
	assert.Equal(t, 3, runlog.rows[0].Total)
	assert.True(t, runlog.rows[0].Notified)
}

func TestOnceBootstrapNotifiesEverything(t *testing.T) {
	scraper := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, portalHTML("Oferta A", "Oferta B"))
	})

	st := state.NewStore(filepath.Join(t.TempDir(), "estado.json"))
	notifier := &fakeNotifier{ok: true}

	res := Once(context.Background(), scraper, st, notifier, nil)

	assert.Equal(t, Result{Total: 2, New: 2, Known: 0, Notified: true}, res)
	require.Len(t, notifier.sent, 1)
	assert.Len(t, notifier.sent[0], 2)
}

func TestOnceNoNewListingsSkipsNotifier(t *testing.T) {
	scraper := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, portalHTML("Oferta A"))
	})

	st := state.NewStore(filepath.Join(t.TempDir(), "estado.json"))
	seed(t, st, "Oferta A")

	notifier := &fakeNotifier{ok: true}
	res := Once(context.Background(), scraper, st, notifier, nil)

	assert.Equal(t, Result{Total: 1, New: 0, Known: 1}, res)
	assert.Empty(t, notifier.sent)
}

func TestOnceEmptyExtractionAborts(t *testing.T) {
	scraper := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>sin ofertas</p></body></html>")
	})

	statePath := filepath.Join(t.TempDir(), "estado.json")
	st := state.NewStore(statePath)
	notifier := &fakeNotifier{ok: true}
	runlog := &fakeRunLog{}

	res := Once(context.Background(), scraper, st, notifier, runlog)

	assert.True(t, res.Aborted)
	assert.Empty(t, notifier.sent)

	_, err := os.Stat(statePath)
	assert.True(t, os.IsNotExist(err), "state file must not be written on an empty fetch")

	require.Len(t, runlog.rows, 1)
	assert.True(t, runlog.rows[0].Aborted)
}

func TestOnceFetchFailureLeavesStateUntouched(t *testing.T) {
	scraper := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "mantenimiento", http.StatusServiceUnavailable)
	})

	st := state.NewStore(filepath.Join(t.TempDir(), "estado.json"))
	seed(t, st, "Oferta A")

	notifier := &fakeNotifier{ok: true}
	res := Once(context.Background(), scraper, st, notifier, nil)

	assert.True(t, res.Aborted)
	assert.Empty(t, notifier.sent)
	assert.Len(t, st.Load(), 1)
}

func TestOnceNotifierFailureStillPersists(t *testing.T) {
	scraper := serve(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, portalHTML("Oferta A"))
	})

	st := state.NewStore(filepath.Join(t.TempDir(), "estado.json"))
	notifier := &fakeNotifier{ok: false}

	res := Once(context.Background(), scraper, st, notifier, nil)

	assert.False(t, res.Notified)
	assert.Len(t, st.Load(), 1)
}
