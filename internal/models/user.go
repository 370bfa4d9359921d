package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database.
// The password hash never leaves the service layer.
type UserDB struct {
	UserID       uuid.UUID `db:"user_id"`       // Primary key
	Name         string    `db:"name"`          // Display name
	Handle       string    `db:"handle"`        // Unique public handle
	Email        string    `db:"email"`         // Unique email, stored lowercased
	PasswordHash string    `db:"password_hash"` // Bcrypt hash
	ProfileImg   *string   `db:"profile_img"`   // Optional profile image URL
	QRCodeURL    *string   `db:"qr_code_url"`   // Optional QR code URL
	CreatedAt    time.Time `db:"created_at"`    // Creation timestamp, immutable
}

// PublicUser is the externally visible subset of a user record.
type PublicUser struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Handle      string    `json:"handle"`
	ProfileImg  *string   `json:"profileImg"`
	QRCodeURL   *string   `json:"qrCodeUrl"`
	DateCreated time.Time `json:"dateCreated"`
}

// Public converts a database record to its public view.
func (u *UserDB) Public() PublicUser {
	return PublicUser{
		ID:          u.UserID.String(),
		Name:        u.Name,
		Handle:      u.Handle,
		ProfileImg:  u.ProfileImg,
		QRCodeURL:   u.QRCodeURL,
		DateCreated: u.CreatedAt,
	}
}
