package models

import (
	"github.com/bizadmin/backend/internal/domain/partner"
)

// ClientModel is the persistence model for the Client domain entity.
type ClientModel struct {
	AuditedAggregateModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Email   string `gorm:"type:varchar(200);index"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
	Country string `gorm:"type:varchar(100)"`
	Enabled bool   `gorm:"not null;default:true"`
	Removed bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		Name:                 m.Name,
		Email:                m.Email,
		Phone:                m.Phone,
		Address:              m.Address,
		Country:              m.Country,
		Enabled:              m.Enabled,
		Removed:              m.Removed,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainAuditedAggregateRoot(c.AuditedAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.Country = c.Country
	m.Enabled = c.Enabled
	m.Removed = c.Removed
}

// SupplierModel is the persistence model for the Supplier domain entity.
type SupplierModel struct {
	AuditedAggregateModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Email   string `gorm:"type:varchar(200);index"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
	Country string `gorm:"type:varchar(100)"`
	Enabled bool   `gorm:"not null;default:true"`
	Removed bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		AuditedAggregateRoot: m.ToDomainAuditedAggregateRoot(),
		Name:                 m.Name,
		Email:                m.Email,
		Phone:                m.Phone,
		Address:              m.Address,
		Country:              m.Country,
		Enabled:              m.Enabled,
		Removed:              m.Removed,
	}
}

// FromDomain populates the persistence model from a domain Supplier entity.
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainAuditedAggregateRoot(s.AuditedAggregateRoot)
	m.Name = s.Name
	m.Email = s.Email
	m.Phone = s.Phone
	m.Address = s.Address
	m.Country = s.Country
	m.Enabled = s.Enabled
	m.Removed = s.Removed
}
