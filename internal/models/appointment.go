package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	UserID string `gorm:"type:uuid;index;not null" json:"userId"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	RoomID string `gorm:"type:uuid;index;not null" json:"roomId"`
	Room   Room   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"room"`

	StartTime time.Time `gorm:"index" json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	ConfirmedAt *time.Time `json:"confirmedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`
	CancelledBy *string    `gorm:"type:uuid" json:"cancelledBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
