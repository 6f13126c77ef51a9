package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is embedded by every stored entity. The "_id" is an ObjectID hex
// string so ids handed out by the old document store stay valid.
type Document struct {
	ID        string    `gorm:"primaryKey;size:24" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *Document) ensureID() {
	if d.ID == "" {
		d.ID = primitive.NewObjectID().Hex()
	}
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	d.ensureID()
	return nil
}

// IsObjectID reports whether s looks like a document "_id".
func IsObjectID(s string) bool {
	return primitive.IsValidObjectID(s)
}

// Counter - named sequences backing the numeric ids (inventoryID, userID, ...)
type Counter struct {
	ID  string `gorm:"primaryKey;size:64"`
	Seq uint
}

// NextSequence bumps the named counter and returns the new value. It runs on
// tx so the increment commits or rolls back with the row being created.
func NextSequence(tx *gorm.DB, name string) (uint, error) {
	db := tx.Session(&gorm.Session{NewDB: true})

	var c Counter
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(Counter{ID: name}).
		FirstOrCreate(&c).Error
	if err != nil {
		return 0, err
	}

	c.Seq++
	if err := db.Model(&Counter{}).Where("id = ?", name).Update("seq", c.Seq).Error; err != nil {
		return 0, err
	}
	return c.Seq, nil
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User - shop customers and back-office staff
type User struct {
	Document
	UserID   uint   `gorm:"uniqueIndex" json:"userID"`
	UserName string `gorm:"size:100;not null" json:"UserName"`
	Email    string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash, never serialised
	Address  string `json:"address"`
	Mobile   string `gorm:"size:10" json:"mobile"`
	Role     string `gorm:"size:20" json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.ensureID()
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	seq, err := NextSequence(tx, "userID")
	if err != nil {
		return err
	}
	u.UserID = seq
	return nil
}

// All lists every model for migrations.
func All() []interface{} {
	return []interface{}{
		&Counter{},
		&User{},
		&Inventory{},
		&RetrievedInventory{},
		&Order{},
		&OrderItem{},
		&Promotion{},
		&Feedback{},
	}
}
