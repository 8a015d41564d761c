package usecase

import (
	"fmt"
	"math"
	"sort"

	"market_backend/internal/feature/market/domain/entity"
)

const (
	// MaxPicks は返す注目銘柄の最大数です。
	MaxPicks = 5
	// 上限以上の急騰銘柄は過熱とみなして除外する
	maxPickChangePercent = 15.0
	baseScore            = 50.0
	maxMomentumScore     = 30.0
)

// SelectPicks は出来高ランキングから注目銘柄を選びます。
//
// 前日比が 0% 超 15% 未満の銘柄を候補とし、
// score = 50 + min(騰落率*3, 30) + rankBonus を小数第1位で丸めます。
// rankBonus は1位が20点で、順位が1つ下がるごとに2点減ります（下限0）。
// スコアの高い順に最大5件を返し、同点の場合は出来高の多い順に並べます。
func SelectPicks(ranks map[entity.Market][]entity.VolumeRankItem) []entity.StockPick {
	picks := make([]entity.StockPick, 0)
	for _, market := range []entity.Market{entity.KOSPI, entity.KOSDAQ} {
		for _, it := range ranks[market] {
			if it.ChangePercent <= 0 || it.ChangePercent >= maxPickChangePercent {
				continue
			}
			picks = append(picks, entity.StockPick{
				Code:          it.Code,
				Name:          it.Name,
				Market:        market,
				Price:         it.Price,
				ChangePercent: it.ChangePercent,
				Volume:        it.Volume,
				Score:         score(it),
				Reason:        fmt.Sprintf("%s 거래량 %d위, 전일 대비 +%.2f%%", market, it.Rank, it.ChangePercent),
			})
		}
	}

	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].Score != picks[j].Score {
			return picks[i].Score > picks[j].Score
		}
		if picks[i].Volume != picks[j].Volume {
			return picks[i].Volume > picks[j].Volume
		}
		return picks[i].Code < picks[j].Code
	})
	if len(picks) > MaxPicks {
		picks = picks[:MaxPicks]
	}
	return picks
}

func score(it entity.VolumeRankItem) float64 {
	s := baseScore + math.Min(it.ChangePercent*3, maxMomentumScore) + rankBonus(it.Rank)
	return math.Round(s*10) / 10
}

func rankBonus(rank int) float64 {
	if rank < 1 {
		return 0
	}
	return math.Max(0, 20-float64(rank-1)*2)
}
