package portal

import (
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Xaberico/monitor-empleo-santafe/internal/diff"
	"github.com/Xaberico/monitor-empleo-santafe/internal/domain"
	"github.com/Xaberico/monitor-empleo-santafe/internal/scrape/util"
)

// The portal markup has changed more than once; each chain is tried in order
// and the first selector that matches anything wins.
var containerSelectors = []string{
	"div.oferta",
	"div.job-item",
	"article",
	"div.card",
	"li.list-item",
}

// fieldStrategy resolves one field from a listing container. Empty string
// means "not found, try the next strategy".
type fieldStrategy func(*goquery.Selection) string

func textOf(selector string) fieldStrategy {
	return func(s *goquery.Selection) string {
		return util.CleanText(s.Find(selector).First().Text())
	}
}

var (
	titleStrategies = []fieldStrategy{
		textOf("h2"), textOf("h3"), textOf("h4"), textOf("h5"),
		textOf("a.titulo"),
		textOf("strong"),
	}
	employerStrategies = []fieldStrategy{
		textOf(".empresa"), textOf(".company"), textOf(".empleador"), textOf(".organismo"),
	}
	locationStrategies = []fieldStrategy{
		textOf(".ubicacion"), textOf(".location"), textOf(".localidad"), textOf(".lugar"),
	}
)

func firstMatch(s *goquery.Selection, strategies []fieldStrategy) string {
	for _, st := range strategies {
		if v := st(s); v != "" {
			return v
		}
	}
	return ""
}

// skipReason is the typed outcome for a container that produced no listing.
// Keeping the cause explicit beats swallowing whole error classes; the skip
// is still non-fatal either way.
type skipReason string

const (
	skipOK      skipReason = ""
	skipNoTitle skipReason = "no title markup matched"
)

// Extractor turns portal HTML into listings. Link resolution needs the site
// origin and the search path, both derived from the configured URLs.
type Extractor struct {
	portalURL string
	searchURL string
	origin    string
}

func NewExtractor(portalURL, searchURL string) *Extractor {
	origin := ""
	if u, err := url.Parse(searchURL); err == nil && u.Host != "" {
		origin = u.Scheme + "://" + u.Host
	}
	return &Extractor{portalURL: portalURL, searchURL: searchURL, origin: origin}
}

// Extract walks the container fallback chain and returns every container that
// resolves a title. Containers without one are skipped and logged, never
// fatal.
func (e *Extractor) Extract(doc *goquery.Document) []domain.Listing {
	containers, selector := e.findContainers(doc)
	if containers == nil {
		log.Printf("[portal] no listing containers matched any known selector")
		return nil
	}
	log.Printf("[portal] selector %q matched %d containers", selector, containers.Length())

	now := time.Now()
	var out []domain.Listing
	containers.Each(func(i int, s *goquery.Selection) {
		l, reason := e.extractContainer(s, now)
		if reason != skipOK {
			log.Printf("[portal] container %d skipped: %s", i, reason)
			return
		}
		out = append(out, l)
	})
	return out
}

func (e *Extractor) findContainers(doc *goquery.Document) (*goquery.Selection, string) {
	for _, sel := range containerSelectors {
		if m := doc.Find(sel); m.Length() > 0 {
			return m, sel
		}
	}
	return nil, ""
}

func (e *Extractor) extractContainer(s *goquery.Selection, now time.Time) (domain.Listing, skipReason) {
	title := firstMatch(s, titleStrategies)
	if title == "" {
		return domain.Listing{}, skipNoTitle
	}

	employer := firstMatch(s, employerStrategies)
	if employer == "" {
		employer = domain.DefaultEmployer
	}
	location := util.NormalizeLocation(firstMatch(s, locationStrategies))
	if location == "" {
		location = domain.DefaultLocation
	}

	href, _ := s.Find("a[href]").First().Attr("href")

	return domain.Listing{
		Title:       title,
		Employer:    employer,
		Location:    location,
		URL:         e.resolveLink(href),
		DetectedAt:  now,
		Fingerprint: diff.Fingerprint(title, employer),
	}, skipOK
}

// resolveLink mirrors how the portal links its entries: absolute hrefs pass
// through, root-relative ones get the site origin, anything else is relative
// to the search results path. No anchor at all falls back to the portal home.
func (e *Extractor) resolveLink(href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return e.portalURL
	case strings.Contains(href, "://"):
		return href
	case strings.HasPrefix(href, "/"):
		return e.origin + href
	default:
		return e.searchURL + href
	}
}
