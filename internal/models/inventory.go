package models

import (
	"time"

	"gorm.io/gorm"

	"retail-sense/internal/pricing"
)

// Inventory - warehouse stock of a single article
type Inventory struct {
	Document
	InventoryID      uint     `gorm:"uniqueIndex" json:"inventoryID"`
	ItemName         string   `gorm:"size:255;not null" json:"ItemName"`
	Category         string   `gorm:"size:100;index;not null" json:"Category"`
	ReorderThreshold int      `json:"reorderThreshold"`
	Quantity         int      `json:"Quantity"`
	Location         string   `json:"Location"`
	StockStatus      string   `gorm:"size:20;index" json:"StockStatus"` // derived, see BeforeSave
	Brand            string   `json:"Brand"`
	Sizes            []string `gorm:"serializer:json" json:"Sizes"`
	Colors           []string `gorm:"serializer:json" json:"Colors"`
	Gender           string   `gorm:"size:10" json:"Gender"` // Men, Women, Unisex
	Style            string   `gorm:"size:20" json:"Style"`  // Casual, Formal, Athletic
	SupplierName     string   `json:"SupplierName"`
	SupplierContact  string   `json:"SupplierContact"`
	Image            string   `json:"image"`
	UnitPrice        *float64 `json:"unitPrice"`
}

func (i *Inventory) BeforeCreate(tx *gorm.DB) error {
	i.ensureID()
	seq, err := NextSequence(tx, "inventoryID")
	if err != nil {
		return err
	}
	i.InventoryID = seq
	return nil
}

// BeforeSave keeps StockStatus in line with Quantity on every write that
// goes through the struct (Create/Save).
func (i *Inventory) BeforeSave(tx *gorm.DB) error {
	i.RefreshStockStatus()
	return nil
}

func (i *Inventory) RefreshStockStatus() {
	i.StockStatus = pricing.StockStatusFor(i.Quantity, i.ReorderThreshold)
}

// RetrievedInventory - stock moved out of the warehouse and staged for sale
type RetrievedInventory struct {
	Document
	InventoryID       uint      `gorm:"index;not null" json:"inventoryID"`
	ItemName          string    `gorm:"size:255;not null" json:"ItemName"`
	Category          string    `gorm:"size:100" json:"Category"`
	RetrievedQuantity int       `json:"retrievedQuantity"`
	Brand             string    `json:"Brand"`
	Sizes             []string  `gorm:"serializer:json" json:"Sizes"`
	Colors            []string  `gorm:"serializer:json" json:"Colors"`
	Gender            string    `gorm:"size:10" json:"Gender"`
	Style             string    `gorm:"size:20" json:"Style"`
	Image             string    `json:"image"`
	UnitPrice         *float64  `json:"unitPrice"`
	FinalPrice        *float64  `json:"finalPrice"`
	RetrievedDate     time.Time `gorm:"index" json:"retrievedDate"`
}

// Retrieve builds the staged copy of inv for qty units.
func (i *Inventory) Retrieve(qty int) *RetrievedInventory {
	r := &RetrievedInventory{
		InventoryID:       i.InventoryID,
		ItemName:          i.ItemName,
		Category:          i.Category,
		RetrievedQuantity: qty,
		Brand:             i.Brand,
		Sizes:             append([]string{}, i.Sizes...),
		Colors:            append([]string{}, i.Colors...),
		Gender:            i.Gender,
		Style:             i.Style,
		Image:             i.Image,
		RetrievedDate:     time.Now(),
	}
	if r.Gender == "" {
		r.Gender = "Unisex"
	}
	if i.UnitPrice != nil {
		price := *i.UnitPrice
		final := price
		r.UnitPrice = &price
		r.FinalPrice = &final
	}
	return r
}
