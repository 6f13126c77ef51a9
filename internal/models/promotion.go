package models

import (
	"time"
)

var (
	PromotionTypes = []string{"Discount Code", "Loyalty", "Flash Sale", "Bundle"}
	Genders        = []string{"Men", "Women", "Unisex"}
	Styles         = []string{"Casual", "Formal", "Athletic"}
)

// Promotion - a discount that can be applied to staged (retrieved) items
type Promotion struct {
	Document
	PromotionID          uint      `gorm:"uniqueIndex;not null" json:"promotionID"`
	Type                 string    `gorm:"size:20" json:"type"`
	DiscountType         string    `gorm:"size:10" json:"discountType"` // flat or percentage
	DiscountValue        *float64  `json:"discountValue"`
	DiscountPercentage   *float64  `json:"discountPercentage"`
	ValidUntil           time.Time `json:"validUntil"`
	PromoCreatedDate     time.Time `json:"promoCreatedDate"`
	PromoCode            string    `gorm:"uniqueIndex;size:64;not null" json:"promoCode"`
	ApplicableProducts   []string  `gorm:"serializer:json" json:"applicableProducts"`   // RetrievedInventory ids
	ApplicableCategories []string  `gorm:"serializer:json" json:"applicableCategories"` // matched against Gender
	MinimumPurchase      float64   `json:"minimumPurchase"`
	IsActive             bool      `json:"isActive"`
	UsageLimit           *int      `json:"usageLimit"`
	UsageCount           int       `json:"usageCount"`
}

// AppliesTo reports whether the promotion covers the staged item, either by
// explicit product id or by the item's Gender listed as a category.
func (p *Promotion) AppliesTo(item *RetrievedInventory) bool {
	for _, id := range p.ApplicableProducts {
		if id == item.ID {
			return true
		}
	}
	for _, c := range p.ApplicableCategories {
		if c == item.Gender {
			return true
		}
	}
	return false
}

// Usable reports whether the promotion can still be redeemed at now.
func (p *Promotion) Usable(now time.Time) bool {
	if !p.IsActive || now.After(p.ValidUntil) {
		return false
	}
	return p.UsageLimit == nil || p.UsageCount < *p.UsageLimit
}
