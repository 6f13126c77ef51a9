package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"retail-sense/internal/models"
	"retail-sense/internal/services"
)

// likeEscaper makes user text match literally inside a LIKE ... ESCAPE '!' pattern.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// article is the trimmed inventory view handed to the model.
type article struct {
	InventoryID uint     `json:"inventoryID"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Quantity    int      `json:"quantity"`
	Threshold   int      `json:"reorderThreshold"`
	Status      string   `json:"stockStatus"`
	UnitPrice   *float64 `json:"unitPrice,omitempty"`
}

func toArticles(items []models.Inventory) []article {
	out := make([]article, 0, len(items))
	for _, it := range items {
		out = append(out, article{
			InventoryID: it.InventoryID,
			Name:        it.ItemName,
			Brand:       it.Brand,
			Category:    it.Category,
			Quantity:    it.Quantity,
			Threshold:   it.ReorderThreshold,
			Status:      it.StockStatus,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}

// ExecuteTool runs one assistant tool against db and returns the payload
// sent back to the model. The payload only holds JSON primitives, maps and
// slices, which is all a function response can carry.
func ExecuteTool(ctx context.Context, db *gorm.DB, name string, args map[string]any) (map[string]any, error) {
	result, err := executeTool(ctx, db, name, args)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func executeTool(ctx context.Context, db *gorm.DB, name string, args map[string]any) (map[string]any, error) {
	switch name {
	case "check_inventory":
		q := db.WithContext(ctx).Order("inventory_id ASC").Limit(100)
		if query, _ := args["query"].(string); strings.TrimSpace(query) != "" {
			like := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(query))) + "%"
			q = q.Where("LOWER(item_name) LIKE ? ESCAPE '!' OR LOWER(brand) LIKE ? ESCAPE '!' OR LOWER(category) LIKE ? ESCAPE '!'",
				like, like, like)
		}
		var items []models.Inventory
		if err := q.Find(&items).Error; err != nil {
			return nil, err
		}
		return map[string]any{"inventory": toArticles(items)}, nil

	case "list_low_stock":
		items, err := services.ListLowStock(ctx, db)
		if err != nil {
			return nil, err
		}
		return map[string]any{"lowStock": toArticles(items)}, nil

	case "get_order_summary":
		start, err := dateArg(args, "start_date")
		if err != nil {
			return nil, err
		}
		end, err := dateArg(args, "end_date")
		if err != nil {
			return nil, err
		}
		report, err := services.OrderSummary(ctx, db, start, services.EndOfDay(end))
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"revenue":     report.TotalRevenue,
			"sales_count": report.TotalCount,
			"by_status":   report.ByStatus,
		}, nil

	case "list_promotions":
		promos, err := services.ListPromotions(ctx, db)
		if err != nil {
			return nil, err
		}
		out := make([]map[string]any, 0, len(promos))
		for _, p := range promos {
			out = append(out, map[string]any{
				"promotionID":        p.PromotionID,
				"promoCode":          p.PromoCode,
				"type":               p.Type,
				"discountType":       p.DiscountType,
				"discountValue":      p.DiscountValue,
				"discountPercentage": p.DiscountPercentage,
				"validUntil":         p.ValidUntil.Format("2006-01-02"),
				"isActive":           p.IsActive,
				"usageCount":         p.UsageCount,
				"products":           len(p.ApplicableProducts),
			})
		}
		return map[string]any{"promotions": out}, nil
	}

	return nil, fmt.Errorf("unknown tool %q", name)
}

func dateArg(args map[string]any, key string) (time.Time, error) {
	s, _ := args[key].(string)
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", key)
	}
	return t, nil
}
