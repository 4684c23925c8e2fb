package partner

import (
	"strings"
	"time"

	"github.com/bizadmin/backend/internal/domain/shared"
)

// Supplier represents a vendor the business purchases from
type Supplier struct {
	shared.AuditedAggregateRoot
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Country string `json:"country"`
	Enabled bool   `json:"enabled"`
	Removed bool   `json:"removed"`
}

// NewSupplier creates a new supplier
func NewSupplier(name, email, phone, address, country string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}

	return &Supplier{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(nil),
		Name:                 name,
		Email:                email,
		Phone:                phone,
		Address:              address,
		Country:              country,
		Enabled:              true,
	}, nil
}

// UpdateDetails changes the supplier's contact information
func (s *Supplier) UpdateDetails(name, email, phone, address, country string) error {
	if s.Removed {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a removed supplier")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}

	s.Name = name
	s.Email = email
	s.Phone = phone
	s.Address = address
	s.Country = country
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// MarkRemoved soft-deletes the supplier
func (s *Supplier) MarkRemoved() error {
	if s.Removed {
		return shared.NewDomainError("INVALID_STATE", "Supplier is already removed")
	}
	s.Removed = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
