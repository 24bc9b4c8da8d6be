package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Study is a published research paper. File holds the paper PDF itself;
// listings never load it, only the download path does. BookmarkedBy is the
// set of account emails that bookmarked it.
type Study struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string    `gorm:"type:text;not null"`

	File     []byte `gorm:"type:bytea;not null"`
	FileName string `gorm:"type:varchar(255);not null"`
	FileType string `gorm:"type:varchar(100)"`

	Keywords     datatypes.JSONSlice[string] `gorm:"not null"`
	Authors      datatypes.JSONSlice[string] `gorm:"not null"`
	BookmarkedBy datatypes.JSONSlice[string]

	Publisher  string `gorm:"type:varchar(255);not null;index"`
	IsBest     bool   `gorm:"default:false"`
	IsArchived bool   `gorm:"default:false"`

	CreatedAt time.Time
}
