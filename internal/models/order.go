package models

import (
	"gorm.io/gorm"

	"retail-sense/internal/pricing"
)

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"

	PaymentCash = "Cash"
	PaymentCard = "Card"
)

// OrderStatuses is the fixed status set. Any status may follow any other.
var OrderStatuses = []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

// ItemSizes are the clothing sizes an order line can carry.
var ItemSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

type CustomerInfo struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type DeliveryInfo struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// CardInfo keeps the masked card number and expiry only; the CVV is checked
// on create and dropped.
type CardInfo struct {
	CardNumber string `json:"cardNumber,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
}

// Order - a customer checkout
type Order struct {
	Document
	OrderID       string       `gorm:"uniqueIndex;size:32;not null" json:"orderId"`
	UserID        string       `gorm:"index;size:64;not null" json:"userId"`
	Items         []OrderItem  `gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE" json:"items"`
	Total         float64      `json:"total"`
	CustomerInfo  CustomerInfo `gorm:"embedded;embeddedPrefix:customer_" json:"customerInfo"`
	DeliveryInfo  DeliveryInfo `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryInfo"`
	PaymentMethod string       `gorm:"size:10" json:"paymentMethod"`
	CardInfo      CardInfo     `gorm:"embedded;embeddedPrefix:card_" json:"cardInfo"`
	Status        string       `gorm:"size:20;index" json:"status"`
}

// OrderItem - one line of an order
type OrderItem struct {
	ID       uint    `gorm:"primaryKey" json:"-"`
	OrderRef string  `gorm:"size:24;index" json:"-"`
	ItemID   string  `gorm:"size:64" json:"itemId"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Title    string  `json:"title"`
	Color    string  `json:"color"`
	Size     string  `gorm:"size:4" json:"size"`
	Img      string  `json:"img"`
}

// BeforeSave recomputes the total whenever the items travel with the order.
// Status-only writes, which carry no items, leave it alone.
func (o *Order) BeforeSave(tx *gorm.DB) error {
	if o.Status == "" {
		o.Status = OrderPending
	}
	if len(o.Items) > 0 {
		o.Total = o.ItemsTotal()
	}
	return nil
}

func (o *Order) ItemsTotal() float64 {
	lines := make([]pricing.Line, len(o.Items))
	for i, it := range o.Items {
		lines[i] = pricing.Line{Price: it.Price, Quantity: it.Quantity}
	}
	return pricing.Total(lines)
}
