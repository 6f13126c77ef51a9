package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"retail-sense/internal/models"
	"retail-sense/internal/pricing"
	"retail-sense/internal/utils"
)

type FeedbackInput struct {
	UserID    *utils.FlexInt `json:"userID"`
	ProductID string         `json:"productID"`
	OrderID   string         `json:"orderID"`
	Rating    *utils.FlexInt `json:"rating"`
	Comment   string         `json:"comment"`
}

func (in *FeedbackInput) validate() error {
	var p problems
	p.addf(in.UserID == nil || in.UserID.Int() < 1, "userID is required")
	p.addf(in.Rating == nil, "rating is required")
	if in.Rating != nil {
		p.addf(in.Rating.Int() < 1 || in.Rating.Int() > 5, "rating must be between 1 and 5")
	}
	p.addf(len(in.Comment) > 1000, "comment must be at most 1000 characters")
	return p.err()
}

// RatingAverage is the mean rating over Count feedback entries.
type RatingAverage struct {
	Average float64 `json:"averageRating"`
	Count   int     `json:"count"`
}

func CreateFeedback(ctx context.Context, db *gorm.DB, in FeedbackInput) (*models.Feedback, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	fb := models.Feedback{
		UserID:    uint(in.UserID.Int()),
		ProductID: strings.TrimSpace(in.ProductID),
		OrderID:   strings.TrimSpace(in.OrderID),
		Rating:    in.Rating.Int(),
		Comment:   strings.TrimSpace(in.Comment),
	}
	if err := db.WithContext(ctx).Create(&fb).Error; err != nil {
		return nil, err
	}
	return &fb, nil
}

func ListFeedback(ctx context.Context, db *gorm.DB) ([]models.Feedback, error) {
	out := []models.Feedback{}
	err := db.WithContext(ctx).Order("feedback_id DESC").Find(&out).Error
	return out, err
}

func FeedbackByUser(ctx context.Context, db *gorm.DB, userID uint) ([]models.Feedback, error) {
	out := []models.Feedback{}
	err := db.WithContext(ctx).Where("user_id = ?", userID).Order("feedback_id DESC").Find(&out).Error
	return out, err
}

func FeedbackByProduct(ctx context.Context, db *gorm.DB, productID string) ([]models.Feedback, error) {
	out := []models.Feedback{}
	err := db.WithContext(ctx).Where("product_id = ?", productID).Order("feedback_id DESC").Find(&out).Error
	return out, err
}

func UpdateFeedback(ctx context.Context, db *gorm.DB, id string, in FeedbackInput) (*models.Feedback, error) {
	var fb models.Feedback
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&fb).Error; err != nil {
		return nil, notFound(err)
	}

	// userID cannot be moved to another user
	if in.UserID == nil {
		n := utils.FlexInt(fb.UserID)
		in.UserID = &n
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	fb.Rating = in.Rating.Int()
	fb.Comment = strings.TrimSpace(in.Comment)
	if in.ProductID != "" {
		fb.ProductID = strings.TrimSpace(in.ProductID)
	}
	if in.OrderID != "" {
		fb.OrderID = strings.TrimSpace(in.OrderID)
	}
	if err := db.WithContext(ctx).Save(&fb).Error; err != nil {
		return nil, err
	}
	return &fb, nil
}

func DeleteFeedback(ctx context.Context, db *gorm.DB, id string) error {
	if !models.IsObjectID(id) {
		return invalid("Invalid feedback ID format")
	}
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Feedback{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AverageRating averages every rating, or only those for productID when it
// is not empty. No ratings is ErrNotFound.
func AverageRating(ctx context.Context, db *gorm.DB, productID string) (*RatingAverage, error) {
	q := db.WithContext(ctx).Model(&models.Feedback{})
	if productID != "" {
		q = q.Where("product_id = ?", productID)
	}

	var ratings []int
	if err := q.Pluck("rating", &ratings).Error; err != nil {
		return nil, err
	}
	avg, ok := pricing.Average(ratings)
	if !ok {
		return nil, ErrNotFound
	}
	return &RatingAverage{Average: avg, Count: len(ratings)}, nil
}
