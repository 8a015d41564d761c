// Package di provides dependency injection factories for creating application components.
package di

import (
	"market_backend/internal/feature/market/adapters"
	"market_backend/internal/feature/market/usecase"
	"market_backend/internal/platform/externalapi/coingecko"
	"market_backend/internal/platform/externalapi/datagokr"
	"market_backend/internal/platform/externalapi/finnhub"
	"market_backend/internal/platform/externalapi/goldapi"
	"market_backend/internal/platform/externalapi/kis"
	"market_backend/internal/platform/externalapi/upbit"
	infrahttp "market_backend/internal/platform/http"
)

// NewSources creates every upstream market data client from environment variables.
// Clients without credentials are still returned; they report fallback.ErrNotConfigured
// on each call so the usecase serves mock data.
func NewSources() usecase.Sources {
	kisCfg := kis.LoadConfig()
	finnhubCfg := finnhub.LoadConfig()
	upbitCfg := upbit.LoadConfig()
	geckoCfg := coingecko.LoadConfig()
	goldCfg := goldapi.LoadConfig()
	bondCfg := datagokr.LoadConfig()

	crypto := adapters.NewCryptoSource(
		upbit.NewClient(upbitCfg, infrahttp.NewHTTPClient(upbitCfg.Timeout)),
		coingecko.NewClient(geckoCfg, infrahttp.NewHTTPClient(geckoCfg.Timeout)),
	)

	return usecase.Sources{
		Korea:  kis.NewClient(kisCfg, infrahttp.NewHTTPClient(kisCfg.Timeout)),
		US:     finnhub.NewClient(finnhubCfg, infrahttp.NewHTTPClient(finnhubCfg.Timeout)),
		Crypto: crypto,
		Metals: goldapi.NewClient(goldCfg, infrahttp.NewHTTPClient(goldCfg.Timeout)),
		Bonds:  datagokr.NewClient(bondCfg, infrahttp.NewHTTPClient(bondCfg.Timeout)),
	}
}
