package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"retail-sense/internal/database"
	"retail-sense/internal/models"
)

var (
	emailRe      = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	mobileRe     = regexp.MustCompile(`^\d{10}$`)
	postalCodeRe = regexp.MustCompile(`^\d{5}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

type OrderItemInput struct {
	ItemID   string  `json:"itemId"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Title    string  `json:"title"`
	Color    string  `json:"color"`
	Size     string  `json:"size"`
	Img      string  `json:"img"`
}

type CardInput struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

// OrderInput is the checkout payload. Any "total" the client sends is
// ignored; the total is always recomputed from items.
type OrderInput struct {
	UserID        string              `json:"userId"`
	Items         []OrderItemInput    `json:"items"`
	CustomerInfo  models.CustomerInfo `json:"customerInfo"`
	DeliveryInfo  models.DeliveryInfo `json:"deliveryInfo"`
	PaymentMethod string              `json:"paymentMethod"`
	CardInfo      *CardInput          `json:"cardInfo"`
	Status        string              `json:"status"`
}

func (in *OrderInput) validate() error {
	var p problems
	p.addf(strings.TrimSpace(in.UserID) == "", "userId is required")
	p.addf(len(in.Items) == 0, "items must contain at least one item")
	for i, it := range in.Items {
		n := i + 1
		p.addf(strings.TrimSpace(it.ItemID) == "", fmt.Sprintf("item %d: itemId is required", n))
		p.addf(it.Quantity < 1, fmt.Sprintf("item %d: quantity must be at least 1", n))
		p.addf(it.Price < 0, fmt.Sprintf("item %d: price cannot be negative", n))
		p.addf(strings.TrimSpace(it.Title) == "", fmt.Sprintf("item %d: title is required", n))
		p.addf(!contains(models.ItemSizes, it.Size), fmt.Sprintf("item %d: size must be one of %s", n, strings.Join(models.ItemSizes, ", ")))
		p.addf(strings.TrimSpace(it.Img) == "", fmt.Sprintf("item %d: img is required", n))
	}

	p.addf(strings.TrimSpace(in.CustomerInfo.Name) == "", "customerInfo.name is required")
	p.addf(!emailRe.MatchString(in.CustomerInfo.Email), "customerInfo.email must be a valid email address")
	p.addf(!mobileRe.MatchString(in.CustomerInfo.Mobile), "customerInfo.mobile must be 10 digits")

	p.addf(strings.TrimSpace(in.DeliveryInfo.Address) == "", "deliveryInfo.address is required")
	p.addf(strings.TrimSpace(in.DeliveryInfo.City) == "", "deliveryInfo.city is required")
	p.addf(!postalCodeRe.MatchString(in.DeliveryInfo.PostalCode), "deliveryInfo.postalCode must be 5 digits")

	switch in.PaymentMethod {
	case models.PaymentCash:
	case models.PaymentCard:
		card := in.CardInfo
		if card == nil {
			card = &CardInput{}
		}
		digits := strings.ReplaceAll(card.CardNumber, " ", "")
		p.addf(len(digits) < 12 || len(digits) > 19 || !allDigits(digits), "cardInfo.cardNumber is invalid")
		p.addf(!expiryRe.MatchString(card.ExpiryDate), "cardInfo.expiryDate must be MM/YY")
		p.addf(!cvvRe.MatchString(card.CVV), "cardInfo.cvv must be 3 or 4 digits")
	default:
		p = append(p, "paymentMethod must be Cash or Card")
	}

	p.addf(in.Status != "" && !contains(models.OrderStatuses, in.Status), "status is invalid")
	return p.err()
}

func (in *OrderInput) items() []models.OrderItem {
	items := make([]models.OrderItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = models.OrderItem{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
			Price:    it.Price,
			Title:    it.Title,
			Color:    it.Color,
			Size:     it.Size,
			Img:      it.Img,
		}
	}
	return items
}

func (in *OrderInput) cardInfo() models.CardInfo {
	if in.PaymentMethod != models.PaymentCard || in.CardInfo == nil {
		return models.CardInfo{}
	}
	return models.CardInfo{
		CardNumber: maskCard(in.CardInfo.CardNumber),
		ExpiryDate: in.CardInfo.ExpiryDate,
	}
}

// NewOrderID returns "ORD-" and six upper case hex characters.
func NewOrderID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(id[:6])
}

// orderIDAttempts bounds retries when a generated order id is already taken.
const orderIDAttempts = 5

var newOrderID = NewOrderID

func CreateOrder(ctx context.Context, db *gorm.DB, in OrderInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	order := models.Order{
		UserID:        in.UserID,
		Items:         in.items(),
		CustomerInfo:  in.CustomerInfo,
		DeliveryInfo:  in.DeliveryInfo,
		PaymentMethod: in.PaymentMethod,
		CardInfo:      in.cardInfo(),
		Status:        in.Status,
	}
	order.CustomerInfo.Email = strings.ToLower(strings.TrimSpace(order.CustomerInfo.Email))

	var err error
	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		order.OrderID = newOrderID()
		err = uniqueViolation(db.WithContext(ctx).Create(&order).Error)
		if !errors.Is(err, ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func ListOrders(ctx context.Context, db *gorm.DB) ([]models.Order, error) {
	orders := []models.Order{}
	err := db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func OrdersByUser(ctx context.Context, db *gorm.DB, userID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetOrder accepts either the public orderId or the document "_id".
func GetOrder(ctx context.Context, db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := db.WithContext(ctx).Preload("Items").
		Where("order_id = ? OR id = ?", id, id).
		Take(&order).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func UpdateOrderStatus(ctx context.Context, db *gorm.DB, id, status string) (*models.Order, error) {
	if !contains(models.OrderStatuses, status) {
		return nil, invalid("Invalid status value. Must be one of: " + strings.Join(models.OrderStatuses, ", "))
	}
	order, err := GetOrder(ctx, db, id)
	if err != nil {
		return nil, err
	}
	err = db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("status", status).Error
	if err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

// UpdateOrder replaces the editable parts of an order. The orderId never
// changes. Items replace the stored lines wholesale and the total follows.
func UpdateOrder(ctx context.Context, db *gorm.DB, id string, in OrderInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var order models.Order
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("order_id = ? OR id = ?", id, id).Take(&order).Error
		if err != nil {
			return notFound(err)
		}

		if err := tx.Where("order_ref = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}

		order.UserID = in.UserID
		order.Items = in.items()
		order.CustomerInfo = in.CustomerInfo
		order.CustomerInfo.Email = strings.ToLower(strings.TrimSpace(order.CustomerInfo.Email))
		order.DeliveryInfo = in.DeliveryInfo
		order.PaymentMethod = in.PaymentMethod
		order.CardInfo = in.cardInfo()
		if in.Status != "" {
			order.Status = in.Status
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return GetOrder(ctx, db, order.ID)
}

func DeleteOrder(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("order_id = ? OR id = ?", id, id).Take(&order).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("order_ref = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// EndOfDay returns the last instant of the day starting at day, so a date
// used as an upper bound includes the whole day.
func EndOfDay(day time.Time) time.Time {
	return day.Add(24*time.Hour - time.Nanosecond)
}

// OrderSummary reports revenue between from and to inclusive. Zero bounds
// mean "since the beginning" and "now".
func OrderSummary(ctx context.Context, db *gorm.DB, from, to time.Time) (*database.SalesReportResult, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if to.Before(from) {
		return nil, invalid("from must not be after to")
	}
	return database.GetSalesReport(ctx, db, from, to)
}

func maskCard(number string) string {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
