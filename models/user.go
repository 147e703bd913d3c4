package models

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = 0
	RoleAdmin = 1
)

type User struct {
	ID             string           `gorm:"primaryKey" json:"_id" bson:"_id"`
	Name           string           `gorm:"size:32;not null" json:"name" bson:"name"`
	Email          string           `gorm:"uniqueIndex;not null" json:"email" bson:"email"`
	HashedPassword string           `gorm:"not null" json:"-" bson:"hashed_password"`
	Salt           string           `json:"-" bson:"salt"`
	About          string           `json:"about,omitempty" bson:"about,omitempty"`
	Role           int              `gorm:"default:0" json:"role" bson:"role"`
	History        []PurchaseRecord `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"history" bson:"history"`
	CreatedAt      time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// PurchaseRecord is one line of a user's purchase history, written when an
// order completes.
type PurchaseRecord struct {
	ID            string    `gorm:"primaryKey" json:"_id" bson:"_id"`
	UserID        string    `gorm:"index" json:"-" bson:"-"`
	ProductID     string    `json:"product_id" bson:"product_id"`
	Name          string    `json:"name" bson:"name"`
	Quantity      int       `json:"quantity" bson:"quantity"`
	TransactionID string    `json:"transaction_id" bson:"transaction_id"`
	Amount        float64   `json:"amount" bson:"amount"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// SetPassword generates a fresh salt and stores the salted HMAC-SHA1 digest.
// The plaintext is never stored.
func (u *User) SetPassword(plain string) {
	u.Salt = uuid.NewString()
	u.HashedPassword = u.encryptPassword(plain)
}

// Authenticate reports whether plain matches the stored credentials. A user
// with no salt or no hash can never authenticate.
func (u *User) Authenticate(plain string) bool {
	if u.Salt == "" || u.HashedPassword == "" {
		return false
	}
	return u.encryptPassword(plain) == u.HashedPassword
}

// encryptPassword returns the hex HMAC-SHA1 of plain keyed by the user's salt.
// An empty plaintext yields an empty hash, which degrades to always-false
// authentication instead of an error.
func (u *User) encryptPassword(plain string) string {
	if plain == "" {
		return ""
	}
	mac := hmac.New(sha1.New, []byte(u.Salt))
	mac.Write([]byte(plain))
	return hex.EncodeToString(mac.Sum(nil))
}

// Sanitize clears credential material before the user is serialized to a
// client.
func (u *User) Sanitize() {
	u.HashedPassword = ""
	u.Salt = ""
}
