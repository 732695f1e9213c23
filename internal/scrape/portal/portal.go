// Package portal fetches and extracts job listings from the Santa Fe
// employment portal.
package portal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Xaberico/monitor-empleo-santafe/internal/domain"
	"github.com/Xaberico/monitor-empleo-santafe/internal/scrape/util"
)

type Config struct {
	PortalURL string
	SearchURL string
	UserAgent string
	MaxPages  int // pages fetched per run; 1 preserves the single-page behavior
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
	ex      *Extractor
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 1
	}
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 30 * time.Second},
		limiter: limiter,
		ex:      NewExtractor(cfg.PortalURL, cfg.SearchURL),
	}
}

// Fetch retrieves up to cfg.MaxPages result pages sequentially. A failure on
// the first page is a real failure: the runner must not confuse "site down"
// with "portal is empty". Failures on later pages only stop pagination, as
// does a page with no containers.
func (s *Scraper) Fetch(ctx context.Context) ([]domain.Listing, error) {
	var out []domain.Listing
	for page := 1; page <= s.cfg.MaxPages; page++ {
		listings, err := s.fetchPage(ctx, page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			log.Printf("[portal] page %d: %v (stopping pagination)", page, err)
			break
		}
		if len(listings) == 0 {
			break
		}
		out = append(out, listings...)
	}
	return out, nil
}

func (s *Scraper) fetchPage(ctx context.Context, page int) ([]domain.Listing, error) {
	pageURL := s.cfg.SearchURL
	if page > 1 {
		pageURL = fmt.Sprintf("%s?pagina=%d", s.cfg.SearchURL, page)
	}

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, pageURL); err != nil {
			return nil, err
		}
	}

	log.Printf("[portal] GET %s", pageURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("portal build request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("portal get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("portal status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("portal parse html: %w", err)
	}

	return s.ex.Extract(doc), nil
}
