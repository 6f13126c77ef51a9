package services

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"retail-sense/internal/models"
	"retail-sense/internal/pricing"
	"retail-sense/internal/utils"
)

const (
	ActionRetrieve = "retrieve"
	ActionAdd      = "add"
	ActionUpdate   = "update"
)

// InventoryInput is the create payload. Numbers may arrive as strings and
// Sizes/Colors as comma separated lists, the way the back-office form posts them.
type InventoryInput struct {
	ItemName         string           `json:"ItemName" binding:"required"`
	Category         string           `json:"Category" binding:"required"`
	ReorderThreshold *utils.FlexInt   `json:"reorderThreshold" binding:"required,min=0"`
	Quantity         *utils.FlexInt   `json:"Quantity" binding:"required,min=0"`
	Location         string           `json:"Location" binding:"required"`
	Brand            string           `json:"Brand" binding:"required"`
	Sizes            utils.StringList `json:"Sizes"`
	Colors           utils.StringList `json:"Colors"`
	Gender           string           `json:"Gender" binding:"required,oneof=Men Women Unisex"`
	Style            string           `json:"Style" binding:"required,oneof=Casual Formal Athletic"`
	SupplierName     string           `json:"SupplierName" binding:"required"`
	SupplierContact  string           `json:"SupplierContact" binding:"required"`
	Image            string           `json:"image" binding:"required"`
	UnitPrice        *utils.FlexFloat `json:"unitPrice" binding:"omitempty,min=0"`
}

// InventoryUpdate is a partial update; nil fields are left untouched.
type InventoryUpdate struct {
	ItemName         *string          `json:"ItemName" binding:"omitempty,min=1"`
	Category         *string          `json:"Category" binding:"omitempty,min=1"`
	ReorderThreshold *utils.FlexInt   `json:"reorderThreshold" binding:"omitempty,min=0"`
	Quantity         *utils.FlexInt   `json:"Quantity" binding:"omitempty,min=0"`
	Location         *string          `json:"Location"`
	Brand            *string          `json:"Brand"`
	Sizes            utils.StringList `json:"Sizes"`
	Colors           utils.StringList `json:"Colors"`
	Gender           *string          `json:"Gender" binding:"omitempty,oneof=Men Women Unisex"`
	Style            *string          `json:"Style" binding:"omitempty,oneof=Casual Formal Athletic"`
	SupplierName     *string          `json:"SupplierName"`
	SupplierContact  *string          `json:"SupplierContact"`
	Image            *string          `json:"image"`
	UnitPrice        *utils.FlexFloat `json:"unitPrice" binding:"omitempty,min=0"`
}

// StockUpdate drives the stock-status workflow. For "retrieve" Quantity is
// the amount moved to the store, for "add" the amount received, for
// "update" the new absolute quantity.
type StockUpdate struct {
	Action    string           `json:"action" binding:"omitempty,oneof=retrieve add update"`
	Quantity  *utils.FlexInt   `json:"Quantity" binding:"required"`
	UnitPrice *utils.FlexFloat `json:"unitPrice" binding:"omitempty,min=0"`
}

type StockUpdateResult struct {
	Inventory *models.Inventory          `json:"inventory"`
	Retrieved *models.RetrievedInventory `json:"retrieved,omitempty"`
}

type InventoryPage struct {
	Items []models.Inventory `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Pages int                `json:"pages"`
}

// Lookup holds whichever collection matched an id.
type Lookup struct {
	Inventory *models.Inventory
	Retrieved *models.RetrievedInventory
}

func CreateInventory(ctx context.Context, db *gorm.DB, in InventoryInput) (*models.Inventory, error) {
	image, err := utils.NormalizeImagePath(in.Image)
	if err != nil {
		return nil, invalid(err.Error())
	}

	inv := models.Inventory{
		ItemName:         in.ItemName,
		Category:         in.Category,
		ReorderThreshold: in.ReorderThreshold.Int(),
		Quantity:         in.Quantity.Int(),
		Location:         in.Location,
		Brand:            in.Brand,
		Sizes:            in.Sizes.OrEmpty(),
		Colors:           in.Colors.OrEmpty(),
		Gender:           in.Gender,
		Style:            in.Style,
		SupplierName:     in.SupplierName,
		SupplierContact:  in.SupplierContact,
		Image:            image,
		UnitPrice:        in.UnitPrice.Float64Ptr(),
	}

	if err := db.WithContext(ctx).Create(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func ListInventory(ctx context.Context, db *gorm.DB, page, limit int) (*InventoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	out := InventoryPage{Page: page, Items: []models.Inventory{}}
	q := db.WithContext(ctx).Model(&models.Inventory{})
	if err := q.Count(&out.Total).Error; err != nil {
		return nil, err
	}
	err := db.WithContext(ctx).
		Order("inventory_id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out.Items).Error
	if err != nil {
		return nil, err
	}
	out.Pages = int(math.Ceil(float64(out.Total) / float64(limit)))
	return &out, nil
}

// GetInventory resolves id as a document "_id", then as a numeric
// inventoryID, then as the "_id" of a retrieved item.
func GetInventory(ctx context.Context, db *gorm.DB, id string) (*Lookup, error) {
	tx := db.WithContext(ctx)

	if models.IsObjectID(id) {
		var inv models.Inventory
		err := tx.Where("id = ?", id).Take(&inv).Error
		if err == nil {
			return &Lookup{Inventory: &inv}, nil
		}
		if notFound(err) != ErrNotFound {
			return nil, err
		}
	}

	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		var inv models.Inventory
		err := tx.Where("inventory_id = ?", n).Take(&inv).Error
		if err == nil {
			return &Lookup{Inventory: &inv}, nil
		}
		if notFound(err) != ErrNotFound {
			return nil, err
		}
	}

	if models.IsObjectID(id) {
		var r models.RetrievedInventory
		err := tx.Where("id = ?", id).Take(&r).Error
		if err == nil {
			return &Lookup{Retrieved: &r}, nil
		}
		if notFound(err) != ErrNotFound {
			return nil, err
		}
	}

	return nil, ErrNotFound
}

func UpdateInventory(ctx context.Context, db *gorm.DB, inventoryID uint, upd InventoryUpdate) (*models.Inventory, error) {
	var image string
	if upd.Image != nil {
		var err error
		if image, err = utils.NormalizeImagePath(*upd.Image); err != nil {
			return nil, invalid(err.Error())
		}
	}

	var inv models.Inventory
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockInventory(tx, inventoryID, &inv); err != nil {
			return err
		}

		setString(&inv.ItemName, upd.ItemName)
		setString(&inv.Category, upd.Category)
		setString(&inv.Location, upd.Location)
		setString(&inv.Brand, upd.Brand)
		setString(&inv.Gender, upd.Gender)
		setString(&inv.Style, upd.Style)
		setString(&inv.SupplierName, upd.SupplierName)
		setString(&inv.SupplierContact, upd.SupplierContact)
		if upd.Image != nil {
			inv.Image = image
		}
		if upd.ReorderThreshold != nil {
			inv.ReorderThreshold = upd.ReorderThreshold.Int()
		}
		if upd.Quantity != nil {
			inv.Quantity = upd.Quantity.Int()
		}
		if upd.Sizes != nil {
			inv.Sizes = upd.Sizes.OrEmpty()
		}
		if upd.Colors != nil {
			inv.Colors = upd.Colors.OrEmpty()
		}
		if upd.UnitPrice != nil {
			inv.UnitPrice = upd.UnitPrice.Float64Ptr()
		}

		return tx.Save(&inv).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func DeleteInventory(ctx context.Context, db *gorm.DB, inventoryID uint) error {
	res := db.WithContext(ctx).Where("inventory_id = ?", inventoryID).Delete(&models.Inventory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func ListInventoryByCategory(ctx context.Context, db *gorm.DB, category string) ([]models.Inventory, error) {
	var items []models.Inventory
	err := db.WithContext(ctx).Where("category = ?", category).Order("inventory_id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return items, nil
}

func ListLowStock(ctx context.Context, db *gorm.DB) ([]models.Inventory, error) {
	items := []models.Inventory{}
	err := db.WithContext(ctx).Where("stock_status = ?", pricing.StatusLowStock).Order("quantity ASC").Find(&items).Error
	return items, err
}

// UpdateStockStatus runs the stock workflow on one inventory row. The
// inventory write and the staged copy commit together.
func UpdateStockStatus(ctx context.Context, db *gorm.DB, inventoryID uint, upd StockUpdate) (*StockUpdateResult, error) {
	if upd.Quantity == nil {
		return nil, invalid("Quantity is required")
	}
	qty := upd.Quantity.Int()
	if qty < 0 {
		return nil, invalid(fmt.Sprintf("Invalid quantity: %d", qty))
	}

	action := upd.Action
	if action == "" {
		action = ActionUpdate
	}

	var result StockUpdateResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.Inventory
		if err := lockInventory(tx, inventoryID, &inv); err != nil {
			return err
		}

		switch action {
		case ActionRetrieve:
			if qty == 0 {
				return invalid("Quantity to retrieve must be at least 1")
			}
			if qty > inv.Quantity {
				return fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, qty, inv.Quantity)
			}
			inv.Quantity -= qty
			retrieved := inv.Retrieve(qty)
			if err := tx.Create(retrieved).Error; err != nil {
				return err
			}
			result.Retrieved = retrieved
		case ActionAdd:
			inv.Quantity += qty
			if upd.UnitPrice != nil {
				inv.UnitPrice = upd.UnitPrice.Float64Ptr()
			}
		case ActionUpdate:
			inv.Quantity = qty
		default:
			return invalid("action must be one of retrieve, add, update")
		}

		if err := tx.Save(&inv).Error; err != nil {
			return err
		}
		result.Inventory = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func ListRetrieved(ctx context.Context, db *gorm.DB) ([]models.RetrievedInventory, error) {
	items := []models.RetrievedInventory{}
	err := db.WithContext(ctx).Order("retrieved_date DESC").Find(&items).Error
	return items, err
}

func GetRetrieved(ctx context.Context, db *gorm.DB, id string) (*models.RetrievedInventory, error) {
	var r models.RetrievedInventory
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&r).Error; err != nil {
		return nil, notFound(err)
	}
	return &r, nil
}

// DeleteRetrieved drops a staged record without touching inventory.
func DeleteRetrieved(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.RetrievedInventory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RevertRetrieved deletes a staged record and returns its quantity to the
// inventory row it came from, in one transaction.
func RevertRetrieved(ctx context.Context, db *gorm.DB, id string) (*models.Inventory, error) {
	var inv models.Inventory
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.RetrievedInventory
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).Take(&r).Error
		if err != nil {
			return notFound(err)
		}
		if err := lockInventory(tx, r.InventoryID, &inv); err != nil {
			return fmt.Errorf("source inventory %d of retrieved item: %w", r.InventoryID, err)
		}

		inv.Quantity += r.RetrievedQuantity
		if err := tx.Save(&inv).Error; err != nil {
			return err
		}
		return tx.Delete(&r).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// UpdateFinalPrice sets the selling price of a staged item, clamped at zero.
func UpdateFinalPrice(ctx context.Context, db *gorm.DB, id string, finalPrice float64) (*models.RetrievedInventory, error) {
	if math.IsNaN(finalPrice) || math.IsInf(finalPrice, 0) {
		return nil, invalid("Final price must be a valid number")
	}
	price := math.Max(0, finalPrice)
	return updateRetrieved(ctx, db, id, map[string]interface{}{"final_price": price})
}

// SendToStore prices a staged item; its final price starts equal to the unit price.
func SendToStore(ctx context.Context, db *gorm.DB, id string, unitPrice float64) (*models.RetrievedInventory, error) {
	if math.IsNaN(unitPrice) || unitPrice <= 0 {
		return nil, invalid("Valid unit price required")
	}
	return updateRetrieved(ctx, db, id, map[string]interface{}{
		"unit_price":  unitPrice,
		"final_price": unitPrice,
	})
}

func updateRetrieved(ctx context.Context, db *gorm.DB, id string, fields map[string]interface{}) (*models.RetrievedInventory, error) {
	var r models.RetrievedInventory
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&r).Error; err != nil {
			return notFound(err)
		}
		return tx.Model(&r).Updates(fields).Error
	})
	if err != nil {
		return nil, err
	}
	return GetRetrieved(ctx, db, id)
}

func lockInventory(tx *gorm.DB, inventoryID uint, inv *models.Inventory) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("inventory_id = ?", inventoryID).
		Take(inv).Error
	return notFound(err)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
