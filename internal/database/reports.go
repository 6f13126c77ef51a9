package database

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"retail-sense/internal/models"
	"retail-sense/internal/pricing"
)

// SalesReportResult summarises orders placed in a period.
type SalesReportResult struct {
	TotalRevenue float64          `json:"totalRevenue"`
	TotalCount   int64            `json:"totalCount"`
	ByStatus     map[string]int64 `json:"byStatus"`
}

// GetSalesReport calculates order revenue within [start, end]. Cancelled
// orders count towards ByStatus but not towards revenue or TotalCount.
func GetSalesReport(ctx context.Context, db *gorm.DB, start, end time.Time) (*SalesReportResult, error) {
	result := SalesReportResult{ByStatus: map[string]int64{}}

	inPeriod := db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ?", start, end)

	// COALESCE ensures we get 0 instead of NULL if no orders exist
	err := inPeriod.Session(&gorm.Session{}).
		Where("status <> ?", models.OrderCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = inPeriod.Session(&gorm.Session{}).
		Where("status <> ?", models.OrderCancelled).
		Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Status string
		N      int64
	}
	err = inPeriod.Session(&gorm.Session{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		result.ByStatus[r.Status] = r.N
	}

	return &result, nil
}

// ValuationItem is one inventory row priced at its unit price.
type ValuationItem struct {
	InventoryID uint    `json:"inventoryID"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalValue  float64 `json:"totalValue"`
}

// CategoryGroup is one category of the valuation report.
type CategoryGroup struct {
	CategoryName string          `json:"categoryName"`
	Items        []ValuationItem `json:"items"`
	Subtotal     float64         `json:"subtotal"`
}

type ValuationResponse struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal float64         `json:"grandTotal"`
	Unpriced   int             `json:"unpriced"` // rows without a unit price, valued at 0
}

// GetStockValuation values warehouse stock (quantity x unit price) grouped
// by category, categories sorted by name.
func GetStockValuation(ctx context.Context, db *gorm.DB) (*ValuationResponse, error) {
	var items []models.Inventory
	if err := db.WithContext(ctx).Order("category ASC, inventory_id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	resp := ValuationResponse{Categories: []CategoryGroup{}}
	grouped := make(map[string]*CategoryGroup)
	var all []pricing.Line

	for _, it := range items {
		cat := it.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		if _, ok := grouped[cat]; !ok {
			grouped[cat] = &CategoryGroup{CategoryName: cat, Items: []ValuationItem{}}
		}

		var price float64
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		} else {
			resp.Unpriced++
		}
		line := pricing.Line{Price: price, Quantity: it.Quantity}
		all = append(all, line)

		g := grouped[cat]
		g.Items = append(g.Items, ValuationItem{
			InventoryID: it.InventoryID,
			Name:        it.ItemName,
			Quantity:    it.Quantity,
			UnitPrice:   price,
			TotalValue:  pricing.Total([]pricing.Line{line}),
		})
	}

	for _, g := range grouped {
		lines := make([]pricing.Line, len(g.Items))
		for i, it := range g.Items {
			lines[i] = pricing.Line{Price: it.UnitPrice, Quantity: it.Quantity}
		}
		g.Subtotal = pricing.Total(lines)
		resp.Categories = append(resp.Categories, *g)
	}
	sort.Slice(resp.Categories, func(i, j int) bool {
		return resp.Categories[i].CategoryName < resp.Categories[j].CategoryName
	})
	resp.GrandTotal = pricing.Total(all)

	return &resp, nil
}
