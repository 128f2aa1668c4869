package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Room struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	StartTime    string `gorm:"size:5;not null" json:"startTime"`
	EndTime      string `gorm:"size:5;not null" json:"endTime"`
	SlotDuration int    `gorm:"not null" json:"slotDuration"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
