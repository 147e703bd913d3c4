package models

import "time"

type OrderStatus string

const (
	OrderStatusNotProcessed OrderStatus = "Not processed"
	OrderStatusProcessing   OrderStatus = "Processing"
	OrderStatusShipped      OrderStatus = "Shipped"
	OrderStatusDelivered    OrderStatus = "Delivered"
	OrderStatusCancelled    OrderStatus = "Cancelled"
)

// OrderStatusValues lists the admissible statuses in display order.
func OrderStatusValues() []OrderStatus {
	return []OrderStatus{
		OrderStatusNotProcessed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// Valid reports whether s is one of the admissible statuses.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatusValues() {
		if s == v {
			return true
		}
	}
	return false
}

type Order struct {
	ID            string      `gorm:"primaryKey" json:"_id" bson:"_id"`
	TransactionID string      `json:"transaction_id" bson:"transaction_id"`
	Amount        float64     `gorm:"not null" json:"amount" bson:"amount"`
	Address       string      `json:"address" bson:"address"`
	Status        OrderStatus `gorm:"type:varchar(20);default:'Not processed'" json:"status" bson:"status"`
	UserID        string      `gorm:"index;not null" json:"-" bson:"user_id"`
	User          User        `json:"user" bson:"-"`
	Products      []CartItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products" bson:"products"`
	CreatedAt     time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// CartItem snapshots a product's name and price at purchase time; it is not a
// live join against the catalog.
type CartItem struct {
	ID        string  `gorm:"primaryKey" json:"_id" bson:"_id"`
	OrderID   string  `gorm:"index" json:"-" bson:"-"`
	ProductID string  `gorm:"not null" json:"product" bson:"product"`
	Name      string  `gorm:"not null" json:"name" bson:"name"`
	Price     float64 `gorm:"not null" json:"price" bson:"price"`
	Count     int     `gorm:"not null" json:"count" bson:"count"`
}
