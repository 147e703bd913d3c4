package models

import "time"

type Product struct {
	ID          string  `gorm:"primaryKey" json:"_id" bson:"_id"`
	Name        string  `gorm:"size:50;not null" json:"name" bson:"name"`
	Description string  `gorm:"size:2000;not null" json:"description" bson:"description"`
	Price       float64 `gorm:"not null" json:"price" bson:"price"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	Sold        int     `gorm:"default:0" json:"sold" bson:"sold"`

	// Photo binary never travels in JSON; it is served by the photo endpoint.
	Photo            []byte `gorm:"type:bytea" json:"-" bson:"photo,omitempty"`
	PhotoContentType string `json:"-" bson:"photo_content_type,omitempty"`

	Shipping   bool      `json:"shipping" bson:"shipping"`
	CategoryID string    `gorm:"index;not null" json:"-" bson:"category_id"`
	Category   Category  `json:"category" bson:"-"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HasPhoto reports whether a photo was ever uploaded for the product.
func (p *Product) HasPhoto() bool {
	return len(p.Photo) > 0
}
