package models

import "time"

type Category struct {
	ID        string    `gorm:"primaryKey" json:"_id" bson:"_id"`
	Name      string    `gorm:"size:32;uniqueIndex;not null" json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
