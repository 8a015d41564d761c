// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// Symbol is an instrument the dashboard tracks.
// Code is unique within an asset class.
type Symbol struct {
	ID         uint      `gorm:"primaryKey"`
	AssetClass string    `gorm:"size:32;not null;uniqueIndex:watchlist_class_code,priority:1"`
	Code       string    `gorm:"size:32;not null;uniqueIndex:watchlist_class_code,priority:2"`
	Name       string    `gorm:"size:255;not null"`
	ExternalID string    `gorm:"size:100;not null"` // provider id, e.g. CoinGecko "bitcoin"
	IsActive   bool      `gorm:"not null"`
	SortKey    int       `gorm:"not null;default:0"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName keeps the table name stable regardless of the struct name.
func (Symbol) TableName() string {
	return "watchlist_symbols"
}
