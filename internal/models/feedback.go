package models

import "gorm.io/gorm"

// Feedback - a customer rating
type Feedback struct {
	Document
	FeedbackID uint   `gorm:"uniqueIndex" json:"feedbackID"`
	UserID     uint   `gorm:"index" json:"userID"`
	ProductID  string `gorm:"size:64;index" json:"productID,omitempty"`
	OrderID    string `gorm:"size:64" json:"orderID,omitempty"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	f.ensureID()
	seq, err := NextSequence(tx, "feedbackID")
	if err != nil {
		return err
	}
	f.FeedbackID = seq
	return nil
}
