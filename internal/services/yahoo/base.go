package yahoo

import (
	"context"
	"fmt"
	"strings"

	"DropWatch/pkg/config"
	httpclient "DropWatch/pkg/http"
	"DropWatch/pkg/logger"
)

const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// serviceBase holds the shared HTTP plumbing for the Yahoo Finance
// endpoints. Yahoo rejects requests without a browser-ish User-Agent.
type serviceBase struct {
	client  *httpclient.Client
	baseURL string
	log     *logger.Logger
}

func newServiceBase(cfg *config.Config, log *logger.Logger) *serviceBase {
	return &serviceBase{
		client: httpclient.NewClient(
			httpclient.WithTimeout(cfg.Prices.Timeout),
			httpclient.WithUserAgent(browserUA),
		),
		baseURL: strings.TrimRight(cfg.Prices.BaseURL, "/"),
		log:     log,
	}
}

func (b *serviceBase) getJSON(ctx context.Context, path string, params map[string][]string, dest interface{}) error {
	err := b.client.SendAndParse(ctx, &httpclient.RequestOptions{
		Method:      httpclient.MethodGet,
		URL:         b.baseURL + path,
		QueryParams: params,
	}, dest)
	if err != nil {
		return fmt.Errorf("yahoo %s: %w", path, err)
	}
	return nil
}
