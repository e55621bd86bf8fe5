package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Camera is a rentable catalog item.
//
// Pricing is stored in the tiered shape. Legacy rows imported from the first
// catalog version carry only LegacyPricePerDay; the cameras repository
// normalizes those into the tiers before they reach callers, so everything
// above the persistence boundary sees exactly one pricing shape.
type Camera struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex"`
	Name        string    `gorm:"column:name;not null"`
	Brand       string    `gorm:"column:brand;not null"`
	Category    string    `gorm:"column:category;not null"`
	Description string    `gorm:"column:description;not null"`
	ImageURL    string    `gorm:"column:image_url;not null"`
	Available   bool      `gorm:"column:available;not null;default:true"`
	IsNew       bool      `gorm:"column:is_new;not null;default:false"`

	Specs    pq.StringArray `gorm:"column:specs;type:text[];not null;default:ARRAY[]::text[]"`
	Included pq.StringArray `gorm:"column:included;type:text[];not null;default:ARRAY[]::text[]"`

	PriceHalfDay      int64  `gorm:"column:price_half_day;not null;default:0"`
	PriceFullDay9Hrs  int64  `gorm:"column:price_full_day_9hrs;not null;default:0"`
	PriceFullDay24Hrs int64  `gorm:"column:price_full_day_24hrs;not null;default:0"`
	LegacyPricePerDay *int64 `gorm:"column:legacy_price_per_day"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// HasTieredPricing reports whether any tier is populated.
func (c Camera) HasTieredPricing() bool {
	return c.PriceHalfDay > 0 || c.PriceFullDay9Hrs > 0 || c.PriceFullDay24Hrs > 0
}
