// Package mockdata は外部APIが使えないときに返す決定的なダミーデータを生成します。
// 同じ入力には常に同じ出力を返します。レスポンスの形はライブデータと同一です。
package mockdata

import (
	"hash/fnv"
	"math"
	"time"

	"market_backend/internal/feature/market/domain/entity"
)

// DefaultUSTickers はウォッチリストが読めないときに使う米国株の銘柄です。
var DefaultUSTickers = []entity.Ticker{
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "MSFT", Name: "Microsoft Corp."},
	{Symbol: "NVDA", Name: "NVIDIA Corp."},
	{Symbol: "GOOGL", Name: "Alphabet Inc."},
	{Symbol: "AMZN", Name: "Amazon.com Inc."},
	{Symbol: "TSLA", Name: "Tesla Inc."},
}

// DefaultCryptoTickers はウォッチリストが読めないときに使う暗号資産です。
var DefaultCryptoTickers = []entity.Ticker{
	{Symbol: "BTC", Name: "Bitcoin", ExternalID: "bitcoin"},
	{Symbol: "ETH", Name: "Ethereum", ExternalID: "ethereum"},
	{Symbol: "XRP", Name: "XRP", ExternalID: "ripple"},
	{Symbol: "SOL", Name: "Solana", ExternalID: "solana"},
	{Symbol: "DOGE", Name: "Dogecoin", ExternalID: "dogecoin"},
}

type rankSeed struct {
	code, name    string
	price, change float64
	volume        int64
}

var kospiSeeds = []rankSeed{
	{"005930", "삼성전자", 71200, 1300, 18234567},
	{"000660", "SK하이닉스", 178500, 4500, 4123456},
	{"005380", "현대차", 243000, -2000, 987654},
	{"035420", "NAVER", 187600, 2100, 876543},
	{"051910", "LG화학", 372500, -5500, 345678},
	{"006400", "삼성SDI", 398000, 9000, 412345},
	{"035720", "카카오", 42350, -350, 2345678},
	{"105560", "KB금융", 78900, 1100, 1234567},
	{"012330", "현대모비스", 231500, 500, 298765},
	{"066570", "LG전자", 98700, 2300, 1098765},
}

var kosdaqSeeds = []rankSeed{
	{"247540", "에코프로비엠", 212000, 6500, 1456789},
	{"086520", "에코프로", 98500, -1500, 1987654},
	{"196170", "알테오젠", 331000, 12000, 765432},
	{"028300", "HLB", 87600, 3400, 2109876},
	{"403870", "HPSP", 43250, -750, 876543},
	{"277810", "레인보우로보틱스", 156300, 8100, 654321},
	{"058470", "리노공업", 198400, 1400, 123456},
	{"293490", "카카오게임즈", 21450, -250, 1345678},
	{"263750", "펄어비스", 38900, 650, 987123},
	{"145020", "휴젤", 234500, -3500, 112233},
}

// VolumeRank は市場ごとの出来高ランキングのダミーデータを返します。
func VolumeRank(market entity.Market) []entity.VolumeRankItem {
	seeds := kospiSeeds
	if market == entity.KOSDAQ {
		seeds = kosdaqSeeds
	}
	out := make([]entity.VolumeRankItem, 0, len(seeds))
	for i, s := range seeds {
		out = append(out, entity.VolumeRankItem{
			Rank:          i + 1,
			Code:          s.code,
			Name:          s.name,
			Price:         s.price,
			Change:        s.change,
			ChangePercent: percent(s.change, s.price-s.change),
			Volume:        s.volume,
			TradingValue:  int64(s.price) * s.volume,
		})
	}
	return out
}

// Summary は主要指数のダミーデータを返します。
func Summary(now time.Time) entity.MarketSummary {
	return entity.MarketSummary{
		Kospi:     entity.IndexQuote{Name: "KOSPI", Value: 2580.32, Change: 12.45, ChangePercent: 0.48},
		Kosdaq:    entity.IndexQuote{Name: "KOSDAQ", Value: 745.12, Change: -3.21, ChangePercent: -0.43},
		Timestamp: now.UnixMilli(),
	}
}

var usSeeds = map[string]struct{ price, change float64 }{
	"AAPL":  {227.52, 1.84},
	"MSFT":  {428.15, -2.31},
	"NVDA":  {138.07, 3.12},
	"GOOGL": {165.39, 0.87},
	"AMZN":  {186.51, -1.02},
	"TSLA":  {249.83, 5.66},
	"META":  {573.44, 4.20},
}

// USStocks は指定された銘柄の米国株ダミーデータを返します。
// 既知の銘柄は固定値、それ以外はシンボルのハッシュから価格を導出します。
func USStocks(tickers []entity.Ticker, now time.Time) []entity.StockData {
	out := make([]entity.StockData, 0, len(tickers))
	for _, t := range tickers {
		seed, ok := usSeeds[t.Symbol]
		if !ok {
			h := hash(t.Symbol)
			seed.price = 20 + float64(h%48000)/100
			seed.change = float64(int(h%600)-300) / 100
		}
		prev := seed.price - seed.change
		out = append(out, entity.StockData{
			Symbol:        t.Symbol,
			Name:          t.Name,
			Price:         seed.price,
			Change:        seed.change,
			ChangePercent: percent(seed.change, prev),
			High:          round2(math.Max(seed.price, prev) * 1.01),
			Low:           round2(math.Min(seed.price, prev) * 0.99),
			Open:          prev,
			PreviousClose: prev,
			Timestamp:     now.UnixMilli(),
		})
	}
	return out
}

var cryptoSeeds = map[string]struct{ krw, usd, changePct, volume float64 }{
	"BTC":  {92500000, 67850, 1.25, 312000000000},
	"ETH":  {3520000, 2590, -0.84, 145000000000},
	"XRP":  {745, 0.54, 2.10, 98000000000},
	"SOL":  {198000, 145.3, 3.45, 56000000000},
	"DOGE": {162, 0.118, -1.75, 41000000000},
}

// Crypto は指定された暗号資産のダミーデータを返します。
func Crypto(tickers []entity.Ticker, now time.Time) []entity.CryptoData {
	out := make([]entity.CryptoData, 0, len(tickers))
	for _, t := range tickers {
		seed, ok := cryptoSeeds[t.Symbol]
		if !ok {
			h := hash(t.Symbol)
			seed.krw = float64(100 + h%100000)
			seed.usd = round2(seed.krw / 1365)
			seed.changePct = float64(int(h%1000)-500) / 100
			seed.volume = float64(h%1000) * 1e7
		}
		out = append(out, entity.CryptoData{
			Symbol:        t.Symbol,
			Name:          t.Name,
			Price:         seed.krw,
			PriceUSD:      seed.usd,
			Change:        round2(seed.krw * seed.changePct / (100 + seed.changePct)),
			ChangePercent: seed.changePct,
			Volume24h:     seed.volume,
			Timestamp:     now.UnixMilli(),
		})
	}
	return out
}

// GoldSilver は金・銀のダミー価格を返します。
func GoldSilver(now time.Time) entity.GoldSilverData {
	return entity.GoldSilverData{
		Gold: entity.MetalPrice{
			Symbol: "XAU", Name: "Gold", Price: 2650.40, Change: 12.30, ChangePercent: 0.47,
			PricePerGram: 85.21, Currency: "USD",
		},
		Silver: entity.MetalPrice{
			Symbol: "XAG", Name: "Silver", Price: 31.25, Change: -0.18, ChangePercent: -0.57,
			PricePerGram: 1.00, Currency: "USD",
		},
		Timestamp: now.UnixMilli(),
	}
}

// Bonds は債券利回りのダミーデータを返します。
func Bonds(now time.Time) []entity.BondData {
	ts := now.UnixMilli()
	return []entity.BondData{
		{Name: "국고채 3년", Yield: 2.912, Change: -0.015, ChangePercent: -0.51, Timestamp: ts},
		{Name: "국고채 5년", Yield: 2.985, Change: -0.012, ChangePercent: -0.40, Timestamp: ts},
		{Name: "국고채 10년", Yield: 3.074, Change: 0.008, ChangePercent: 0.26, Timestamp: ts},
		{Name: "회사채 AA- 3년", Yield: 3.451, Change: -0.010, ChangePercent: -0.29, Timestamp: ts},
		{Name: "CD 91일", Yield: 3.400, Change: 0, ChangePercent: 0, Timestamp: ts},
	}
}

func hash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

func percent(change, base float64) float64 {
	if base == 0 {
		return 0
	}
	return round2(change / base * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
