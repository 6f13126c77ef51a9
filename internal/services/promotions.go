package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"retail-sense/internal/models"
	"retail-sense/internal/pricing"
	"retail-sense/internal/utils"
)

// PromotionInput is used for both create and update.
type PromotionInput struct {
	PromotionID          *utils.FlexInt   `json:"promotionID"`
	Type                 string           `json:"type"`
	DiscountType         string           `json:"discountType"`
	DiscountValue        *utils.FlexFloat `json:"discountValue"`
	DiscountPercentage   *utils.FlexFloat `json:"discountPercentage"`
	ValidUntil           *utils.FlexTime  `json:"validUntil"`
	PromoCreatedDate     *utils.FlexTime  `json:"promoCreatedDate"`
	PromoCode            string           `json:"promoCode"`
	ApplicableProducts   utils.StringList `json:"applicableProducts"`
	ApplicableCategories utils.StringList `json:"applicableCategories"`
	MinimumPurchase      *utils.FlexFloat `json:"minimumPurchase"`
	IsActive             *bool            `json:"isActive"`
	UsageLimit           *utils.FlexInt   `json:"usageLimit"`
}

func (in *PromotionInput) validate() error {
	var p problems
	p.addf(in.PromotionID == nil || in.PromotionID.Int() < 1, "promotionID is required")
	p.addf(!contains(models.PromotionTypes, in.Type), "type must be one of "+strings.Join(models.PromotionTypes, ", "))
	p.addf(strings.TrimSpace(in.PromoCode) == "", "promoCode is required")
	p.addf(in.ValidUntil == nil, "validUntil is required")

	value, pct := in.DiscountValue.Float64Ptr(), in.DiscountPercentage.Float64Ptr()
	switch in.DiscountType {
	case pricing.DiscountFlat:
		p.addf(value == nil, "discountValue is required for flat discounts")
		p.addf(value != nil && *value <= 0, "discountValue must be greater than 0")
		p.addf(pct != nil, "discountPercentage must not be set for flat discounts")
	case pricing.DiscountPercentage:
		p.addf(pct == nil, "discountPercentage is required for percentage discounts")
		p.addf(pct != nil && (*pct <= 0 || *pct > 100), "discountPercentage must be greater than 0 and at most 100")
		p.addf(value != nil, "discountValue must not be set for percentage discounts")
	default:
		p = append(p, "discountType must be flat or percentage")
	}

	for _, c := range in.ApplicableCategories {
		p.addf(!contains(models.Genders, c), fmt.Sprintf("applicableCategories: %q is not one of %s", c, strings.Join(models.Genders, ", ")))
	}
	if m := in.MinimumPurchase.Float64Ptr(); m != nil {
		p.addf(*m < 0, "minimumPurchase cannot be negative")
	}
	if in.UsageLimit != nil {
		p.addf(in.UsageLimit.Int() < 0, "usageLimit cannot be negative")
	}
	return p.err()
}

func (in *PromotionInput) apply(p *models.Promotion) {
	p.PromotionID = uint(in.PromotionID.Int())
	p.Type = in.Type
	p.DiscountType = in.DiscountType
	p.DiscountValue = in.DiscountValue.Float64Ptr()
	p.DiscountPercentage = in.DiscountPercentage.Float64Ptr()
	p.ValidUntil = in.ValidUntil.Time()
	if in.PromoCreatedDate != nil {
		p.PromoCreatedDate = in.PromoCreatedDate.Time()
	} else if p.PromoCreatedDate.IsZero() {
		p.PromoCreatedDate = time.Now()
	}
	p.PromoCode = strings.TrimSpace(in.PromoCode)
	p.ApplicableProducts = in.ApplicableProducts.OrEmpty()
	p.ApplicableCategories = in.ApplicableCategories.OrEmpty()
	p.MinimumPurchase = 0
	if m := in.MinimumPurchase.Float64Ptr(); m != nil {
		p.MinimumPurchase = *m
	}
	p.IsActive = in.IsActive == nil || *in.IsActive
	p.UsageLimit = nil
	if in.UsageLimit != nil {
		limit := in.UsageLimit.Int()
		p.UsageLimit = &limit
	}
}

// PromotionDetail is a promotion with its applicable products loaded.
type PromotionDetail struct {
	models.Promotion
	ApplicableProducts []models.RetrievedInventory `json:"applicableProducts"`
}

// DiscountCheck is the result of pricing one product under one promotion.
type DiscountCheck struct {
	OriginalPrice   *float64 `json:"originalPrice"`
	DiscountedPrice float64  `json:"discountedPrice"`
	Promotion       string   `json:"promotion"`
	Product         string   `json:"product"`
}

// AppliedPromotion is returned after a promotion has been written to a product.
type AppliedPromotion struct {
	DiscountCheck
	Retrieved *models.RetrievedInventory `json:"retrieved"`
}

func CreatePromotion(ctx context.Context, db *gorm.DB, in PromotionInput) (*PromotionDetail, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var promo models.Promotion
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProductsExist(tx, in.ApplicableProducts); err != nil {
			return err
		}
		in.apply(&promo)
		return uniqueViolation(tx.Create(&promo).Error)
	})
	if err != nil {
		return nil, err
	}
	return populate(ctx, db, promo)
}

func ListPromotions(ctx context.Context, db *gorm.DB) ([]PromotionDetail, error) {
	var promos []models.Promotion
	if err := db.WithContext(ctx).Order("promotion_id ASC").Find(&promos).Error; err != nil {
		return nil, err
	}

	out := make([]PromotionDetail, 0, len(promos))
	for _, p := range promos {
		d, err := populate(ctx, db, p)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func GetPromotion(ctx context.Context, db *gorm.DB, promotionID uint) (*PromotionDetail, error) {
	var promo models.Promotion
	if err := db.WithContext(ctx).Where("promotion_id = ?", promotionID).Take(&promo).Error; err != nil {
		return nil, notFound(err)
	}
	return populate(ctx, db, promo)
}

func UpdatePromotion(ctx context.Context, db *gorm.DB, promotionID uint, in PromotionInput) (*PromotionDetail, error) {
	if in.PromotionID == nil {
		n := utils.FlexInt(promotionID)
		in.PromotionID = &n
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var promo models.Promotion
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("promotion_id = ?", promotionID).
			Take(&promo).Error
		if err != nil {
			return notFound(err)
		}
		if err := ensureProductsExist(tx, in.ApplicableProducts); err != nil {
			return err
		}
		in.apply(&promo)
		return uniqueViolation(tx.Save(&promo).Error)
	})
	if err != nil {
		return nil, err
	}
	return populate(ctx, db, promo)
}

// DeletePromotion removes the promotion and puts the final price of every
// product it listed back to the unit price.
func DeletePromotion(ctx context.Context, db *gorm.DB, promotionID uint) (*models.Promotion, error) {
	var promo models.Promotion
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("promotion_id = ?", promotionID).Take(&promo).Error; err != nil {
			return notFound(err)
		}
		if len(promo.ApplicableProducts) > 0 {
			err := tx.Model(&models.RetrievedInventory{}).
				Where("id IN ?", promo.ApplicableProducts).
				Update("final_price", gorm.Expr("unit_price")).Error
			if err != nil {
				return err
			}
		}
		return tx.Delete(&promo).Error
	})
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// CheckDiscount prices productID (a retrieved item) under the promotion
// without changing anything.
func CheckDiscount(ctx context.Context, db *gorm.DB, promotionID uint, productID string) (*DiscountCheck, error) {
	tx := db.WithContext(ctx)
	var promo models.Promotion
	if err := tx.Where("promotion_id = ?", promotionID).Take(&promo).Error; err != nil {
		return nil, fmt.Errorf("promotion %d: %w", promotionID, notFound(err))
	}
	var item models.RetrievedInventory
	if err := tx.Where("id = ?", productID).Take(&item).Error; err != nil {
		return nil, fmt.Errorf("product %s: %w", productID, notFound(err))
	}
	return discountFor(&promo, &item)
}

// ApplyPromotion is CheckDiscount plus the write: the product's final price
// becomes the discounted price and the promotion's usage count goes up.
func ApplyPromotion(ctx context.Context, db *gorm.DB, promotionID uint, productID string) (*AppliedPromotion, error) {
	var out AppliedPromotion
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var promo models.Promotion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("promotion_id = ?", promotionID).
			Take(&promo).Error
		if err != nil {
			return fmt.Errorf("promotion %d: %w", promotionID, notFound(err))
		}
		if !promo.Usable(time.Now()) {
			return ErrPromotionInactive
		}

		var item models.RetrievedInventory
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", productID).
			Take(&item).Error
		if err != nil {
			return fmt.Errorf("product %s: %w", productID, notFound(err))
		}

		check, err := discountFor(&promo, &item)
		if err != nil {
			return err
		}
		if item.UnitPrice == nil {
			return invalid("product has no unit price, send it to store first")
		}
		if promo.MinimumPurchase > 0 && check.OriginalPrice != nil && *check.OriginalPrice < promo.MinimumPurchase {
			return fmt.Errorf("%w: minimum purchase is %.2f", ErrNotApplicable, promo.MinimumPurchase)
		}

		final := check.DiscountedPrice
		if err := tx.Model(&item).Update("final_price", final).Error; err != nil {
			return err
		}
		err = tx.Model(&promo).Update("usage_count", gorm.Expr("usage_count + 1")).Error
		if err != nil {
			return err
		}

		item.FinalPrice = &final
		out.DiscountCheck = *check
		out.Retrieved = &item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func discountFor(promo *models.Promotion, item *models.RetrievedInventory) (*DiscountCheck, error) {
	if !promo.AppliesTo(item) {
		return nil, ErrNotApplicable
	}
	var base float64
	if item.UnitPrice != nil {
		base = *item.UnitPrice
	}
	return &DiscountCheck{
		OriginalPrice:   item.UnitPrice,
		DiscountedPrice: pricing.ApplyDiscount(base, promo.DiscountType, promo.DiscountValue, promo.DiscountPercentage),
		Promotion:       promo.PromoCode,
		Product:         item.ItemName,
	}, nil
}

func ensureProductsExist(tx *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var found []string
	err := tx.Model(&models.RetrievedInventory{}).Where("id IN ?", ids).Pluck("id", &found).Error
	if err != nil {
		return err
	}

	var p problems
	for _, id := range ids {
		p.addf(!contains(found, id), fmt.Sprintf("applicableProducts: %s does not exist in retrieved inventory", id))
	}
	return p.err()
}

func populate(ctx context.Context, db *gorm.DB, promo models.Promotion) (*PromotionDetail, error) {
	d := PromotionDetail{Promotion: promo, ApplicableProducts: []models.RetrievedInventory{}}
	if len(promo.ApplicableProducts) == 0 {
		return &d, nil
	}
	err := db.WithContext(ctx).Where("id IN ?", promo.ApplicableProducts).Find(&d.ApplicableProducts).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}
