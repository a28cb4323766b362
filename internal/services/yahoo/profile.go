package yahoo

import (
	"context"
	"strings"

	"DropWatch/internal/domain/repository"
	"DropWatch/pkg/config"
	"DropWatch/pkg/logger"
)

// UnknownSector is the fallback bucket for symbols whose profile lookup
// fails or carries no sector.
const UnknownSector = "Unknown"

// ProfileSource resolves sectors via the quoteSummary assetProfile module.
type ProfileSource struct {
	base *serviceBase
}

func NewProfileSource(cfg *config.Config, log *logger.Logger) *ProfileSource {
	return &ProfileSource{base: newServiceBase(cfg, log)}
}

type profileResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector string `json:"sector"`
			} `json:"assetProfile"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// Sector returns the symbol's sector, or "Unknown" on any fault. Lookup
// failures are not propagated; sector data is cosmetic for grouping and a
// missing value must never knock a symbol out of the report.
func (s *ProfileSource) Sector(ctx context.Context, symbol string) (string, error) {
	var resp profileResponse
	err := s.base.getJSON(ctx, "/v10/finance/quoteSummary/"+symbol, map[string][]string{
		"modules": {"assetProfile"},
	}, &resp)
	if err != nil {
		s.base.log.Debug("sector lookup failed", logger.String("symbol", symbol), logger.Error(err))
		return UnknownSector, nil
	}

	if len(resp.QuoteSummary.Result) == 0 {
		return UnknownSector, nil
	}
	sector := strings.TrimSpace(resp.QuoteSummary.Result[0].AssetProfile.Sector)
	if sector == "" {
		return UnknownSector, nil
	}
	return sector, nil
}

var _ repository.SectorSource = (*ProfileSource)(nil)
