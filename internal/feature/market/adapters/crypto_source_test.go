package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_backend/internal/feature/market/domain/entity"
	"market_backend/internal/platform/externalapi/upbit"
)

type fakeKRW struct {
	tickers []upbit.Ticker
	err     error
	got     []string
}

func (f *fakeKRW) Tickers(ctx context.Context, symbols []string) ([]upbit.Ticker, error) {
	f.got = symbols
	return f.tickers, f.err
}

type fakeUSD struct {
	prices map[string]float64
	err    error
	got    []string
}

func (f *fakeUSD) PricesUSD(ctx context.Context, ids []string) (map[string]float64, error) {
	f.got = ids
	return f.prices, f.err
}

var testTickers = []entity.Ticker{
	{Symbol: "BTC", Name: "Bitcoin", ExternalID: "bitcoin"},
	{Symbol: "ETH", Name: "Ethereum", ExternalID: "ethereum"},
}

func TestCryptoSource_Tickers_MergesPrices(t *testing.T) {
	t.Parallel()

	krw := &fakeKRW{tickers: []upbit.Ticker{
		// Upbitは順序を保証しない
		{Symbol: "ETH", Price: 3520000, Change: -29800, ChangePercent: -0.84, Volume24h: 1.45e11, Timestamp: 2},
		{Symbol: "BTC", Price: 92500000, Change: 1142000, ChangePercent: 1.25, Volume24h: 3.12e11, Timestamp: 1},
	}}
	usd := &fakeUSD{prices: map[string]float64{"bitcoin": 67850}}

	got, err := NewCryptoSource(krw, usd).Tickers(context.Background(), testTickers)

	require.NoError(t, err)
	assert.Equal(t, []string{"BTC", "ETH"}, krw.got)
	assert.Equal(t, []string{"bitcoin", "ethereum"}, usd.got)
	require.Len(t, got, 2)
	assert.Equal(t, entity.CryptoData{
		Symbol: "BTC", Name: "Bitcoin", Price: 92500000, PriceUSD: 67850,
		Change: 1142000, ChangePercent: 1.25, Volume24h: 3.12e11, Timestamp: 1,
	}, got[0])
	assert.Equal(t, "ETH", got[1].Symbol)
	assert.Zero(t, got[1].PriceUSD)
}

func TestCryptoSource_Tickers_USDFailureIsTolerated(t *testing.T) {
	t.Parallel()

	krw := &fakeKRW{tickers: []upbit.Ticker{{Symbol: "BTC", Price: 1}, {Symbol: "ETH", Price: 2}}}
	usd := &fakeUSD{err: errors.New("coingecko http 429")}

	got, err := NewCryptoSource(krw, usd).Tickers(context.Background(), testTickers)

	require.NoError(t, err)
	assert.Zero(t, got[0].PriceUSD)
	assert.Equal(t, 2.0, got[1].Price)
}

func TestCryptoSource_Tickers_KRWFailure(t *testing.T) {
	t.Parallel()

	krw := &fakeKRW{err: errors.New("upbit http 500")}

	_, err := NewCryptoSource(krw, nil).Tickers(context.Background(), testTickers)

	require.Error(t, err)
	assert.Equal(t, "upbit http 500", err.Error())
}

func TestCryptoSource_Tickers_MissingMarket(t *testing.T) {
	t.Parallel()

	krw := &fakeKRW{tickers: []upbit.Ticker{{Symbol: "BTC", Price: 1}}}

	_, err := NewCryptoSource(krw, nil).Tickers(context.Background(), testTickers)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no KRW market for ETH")
}
