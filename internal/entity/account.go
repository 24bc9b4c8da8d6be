package entity

import (
	"time"

	"github.com/google/uuid"
)

type AccountType string

const (
	AccountTypeUser  AccountType = "user"
	AccountTypeAdmin AccountType = "admin"
)

// Account holds credentials as entered at signup. Passwords are stored
// and compared in plaintext; this mirrors the existing data and is a
// known gap, not an oversight.
type Account struct {
	ID       uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email    string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string      `gorm:"type:text;not null"`
	Type     AccountType `gorm:"type:account_type;default:'user';not null"`

	CreatedAt time.Time
}
