package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Every order leaves creation in the same state: the fake payment flow
// marks it paid immediately and no later transition exists in this service.
const (
	OrderStatusProcessing = "processing"
	PaymentStatusPaid     = "paid"
)

// Product rows are owned by the catalog; this service only reads them for
// order enrichment. Their ids are opaque strings minted elsewhere, so no
// shape is assumed beyond non-emptiness.
type Product struct {
	ID              string   `gorm:"primaryKey"            json:"id"`
	Name            string   `gorm:"not null"              json:"name"`
	Slug            string   `gorm:"uniqueIndex;not null"  json:"slug"`
	Images          []string `gorm:"serializer:json"       json:"images"`
	Price           float64  `gorm:"not null"              json:"price"`
	DiscountedPrice float64  `json:"discountedPrice"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"  json:"username"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ShippingAddress is captured at checkout and stored on the order itself,
// it is never reconciled with any address book afterwards.
type ShippingAddress struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

type OrderItem struct {
	ID        uint      `gorm:"primaryKey"               json:"-"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	ProductID string    `gorm:"index;not null"           json:"product"`
	Quantity  int       `gorm:"not null"                 json:"quantity"`
	Price     float64   `gorm:"not null"                 json:"price"`

	// Loaded with Preload("Items.Product") for read-time enrichment,
	// never written from order input. Stays nil when the referenced
	// product no longer exists (or never did).
	Product *Product `gorm:"foreignKey:ProductID;references:ID" json:"productDetails,omitempty"`
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"          json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"      json:"user"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID"            json:"items"`
	TotalAmount     float64         `gorm:"not null"                      json:"totalAmount"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"not null"                      json:"paymentMethod"`
	PaymentStatus   string          `gorm:"not null"                      json:"paymentStatus"`
	Status          string          `gorm:"not null"                      json:"status"`
	CreatedAt       time.Time       `gorm:"not null;index"                json:"createdAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
