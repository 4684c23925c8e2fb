package partner

import (
	"strings"
	"time"

	"github.com/bizadmin/backend/internal/domain/shared"
)

// Client represents a customer the business invoices
type Client struct {
	shared.AuditedAggregateRoot
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Country string `json:"country"`
	Enabled bool   `json:"enabled"`
	Removed bool   `json:"removed"`
}

// NewClient creates a new client
func NewClient(name, email, phone, address, country string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}

	return &Client{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(nil),
		Name:                 name,
		Email:                email,
		Phone:                phone,
		Address:              address,
		Country:              country,
		Enabled:              true,
	}, nil
}

// UpdateDetails changes the client's contact information
func (c *Client) UpdateDetails(name, email, phone, address, country string) error {
	if c.Removed {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a removed client")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}

	c.Name = name
	c.Email = email
	c.Phone = phone
	c.Address = address
	c.Country = country
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Disable blocks the client from new transactions without removing history
func (c *Client) Disable() {
	c.Enabled = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Enable re-activates a disabled client
func (c *Client) Enable() {
	c.Enabled = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// MarkRemoved soft-deletes the client
func (c *Client) MarkRemoved() error {
	if c.Removed {
		return shared.NewDomainError("INVALID_STATE", "Client is already removed")
	}
	c.Removed = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
