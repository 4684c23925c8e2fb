package models

import (
	"github.com/bizadmin/backend/internal/domain/identity"
)

// AdminModel is the persistence model for the Admin domain entity.
type AdminModel struct {
	AggregateModel
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(200)"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	Enabled      bool   `gorm:"not null;default:true"`
	Removed      bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AdminModel) TableName() string {
	return "admins"
}

// ToDomain converts the persistence model to a domain Admin entity.
func (m *AdminModel) ToDomain() *identity.Admin {
	return &identity.Admin{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		Name:              m.Name,
		PasswordHash:      m.PasswordHash,
		Enabled:           m.Enabled,
		Removed:           m.Removed,
	}
}

// FromDomain populates the persistence model from a domain Admin entity.
func (m *AdminModel) FromDomain(a *identity.Admin) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Email = a.Email
	m.Name = a.Name
	m.PasswordHash = a.PasswordHash
	m.Enabled = a.Enabled
	m.Removed = a.Removed
}
