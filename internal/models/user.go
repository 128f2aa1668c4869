package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
)

type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	LastName     string `gorm:"size:100;not null" json:"lastName"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Cep          string `gorm:"size:9" json:"cep"`
	Street       string `gorm:"size:150" json:"street"`
	Number       string `gorm:"size:20" json:"number"`
	Complement   string `gorm:"size:100" json:"complement"`
	Neighborhood string `gorm:"size:100" json:"neighborhood"`
	City         string `gorm:"size:100" json:"city"`
	State        string `gorm:"size:2" json:"state"`

	Role        string   `gorm:"size:20;default:'USER'" json:"role"`
	Permissions []string `gorm:"serializer:json;type:text" json:"permissions"`
	IsActive    bool     `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	return u.Name + " " + u.LastName
}

// Principal converts the stored row into the identity carried by sessions.
func (u *User) Principal() identity.Principal {
	perms, _ := identity.NormalizePermissions(u.Permissions)
	return identity.Principal{
		ID:          u.ID,
		Role:        identity.Role(u.Role),
		Permissions: perms,
		IsActive:    u.IsActive,
	}
}
