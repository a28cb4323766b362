package scraper

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"DropWatch/internal/domain/repository"
	"DropWatch/pkg/config"
	httpclient "DropWatch/pkg/http"
	"DropWatch/pkg/logger"
	"DropWatch/pkg/util"
)

const symbolSelector = "table#main-table tbody tr td.sym a"

// StockListScraper builds the ticker universe from stockanalysis.com list
// pages. Pages are fetched in config order (mega-caps before large-caps),
// so evaluation order follows market-cap tiers.
type StockListScraper struct {
	client *httpclient.Client
	urls   []string
	log    *logger.Logger
}

func NewStockListScraper(cfg *config.Config, log *logger.Logger) *StockListScraper {
	return &StockListScraper{
		client: httpclient.NewClient(
			httpclient.WithTimeout(cfg.Universe.Timeout),
			httpclient.WithUserAgent("Mozilla/5.0 (compatible; DropWatch/1.0)"),
		),
		urls: cfg.Universe.ListURLs,
		log:  log,
	}
}

// Symbols fetches every configured list page and returns the normalized,
// de-duplicated union in page order.
func (s *StockListScraper) Symbols(ctx context.Context) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})

	for _, url := range s.urls {
		syms, err := s.fetchPage(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch list %s: %w", url, err)
		}
		for _, sym := range syms {
			if _, ok := seen[sym]; ok {
				continue
			}
			seen[sym] = struct{}{}
			out = append(out, sym)
		}
		s.log.Info("fetched symbol list", logger.String("url", url), logger.Int("symbols", len(syms)))
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no symbols scraped from %d list pages", len(s.urls))
	}
	return out, nil
}

func (s *StockListScraper) fetchPage(ctx context.Context, url string) ([]string, error) {
	var body []byte
	err := s.client.SendAndParse(ctx, &httpclient.RequestOptions{
		Method: httpclient.MethodGet,
		URL:    url,
	}, &body)
	if err != nil {
		return nil, err
	}
	return ParseSymbolTable(body)
}

// ParseSymbolTable extracts ticker symbols from a list page's main table.
// Blank cells and header artifacts are dropped during normalization.
func ParseSymbolTable(html []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var syms []string
	doc.Find(symbolSelector).Each(func(_ int, sel *goquery.Selection) {
		if sym := util.NormalizeSymbol(sel.Text()); sym != "" {
			syms = append(syms, sym)
		}
	})
	return syms, nil
}

var _ repository.SymbolSource = (*StockListScraper)(nil)
