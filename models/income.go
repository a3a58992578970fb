package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Income is a single income record.
type Income struct {
	ID           string         `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       string         `json:"user_id" gorm:"type:char(36);index;not null"`
	Name         string         `json:"name" gorm:"size:100;not null"`
	Amount       float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Source       string         `json:"source" gorm:"size:100;not null"`
	DateReceived time.Time      `json:"date_received" gorm:"not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
	User         User           `json:"-" gorm:"foreignKey:UserID"`
}

func (Income) TableName() string {
	return "income"
}

// BeforeCreate assigns the primary key.
func (i *Income) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
