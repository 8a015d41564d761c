package adapters

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"market_backend/internal/feature/watchlist/domain/entity"
)

//go:embed watchlist.yaml
var defaultSeed []byte

type seedItem struct {
	Code       string `yaml:"code"`
	Name       string `yaml:"name"`
	ExternalID string `yaml:"externalId"`
	Active     *bool  `yaml:"active"` // 省略時は true
}

// ParseSeed はアセットクラスごとに銘柄を並べたYAMLを読み込みます。
// SortKey はアセットクラス内の記載順（1始まり）になります。
func ParseSeed(b []byte) ([]entity.Symbol, error) {
	var doc map[string][]seedItem
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse watchlist seed: %w", err)
	}

	classes := make([]string, 0, len(doc))
	for class := range doc {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	var out []entity.Symbol
	for _, class := range classes {
		for i, it := range doc[class] {
			if it.Code == "" {
				return nil, fmt.Errorf("parse watchlist seed: %s[%d]: code is required", class, i)
			}
			name := it.Name
			if name == "" {
				name = it.Code
			}
			active := true
			if it.Active != nil {
				active = *it.Active
			}
			out = append(out, entity.Symbol{
				AssetClass: class,
				Code:       it.Code,
				Name:       name,
				ExternalID: it.ExternalID,
				IsActive:   active,
				SortKey:    i + 1,
			})
		}
	}
	return out, nil
}

// LoadSeed は path のYAMLを読み込みます。path が空の場合は組み込みの既定リストを使います。
func LoadSeed(path string) ([]entity.Symbol, error) {
	if path == "" {
		return ParseSeed(defaultSeed)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist seed: %w", err)
	}
	return ParseSeed(b)
}
