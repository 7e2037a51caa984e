package db

import (
	"fmt"

	"github.com/teczamora/repositorio65/pkg/internal/model"
)

// Migrate creates or updates the relational schema.
func (c *Client) Migrate() error {
	if err := c.AutoMigrate(
		&model.Fraction{},
		&model.UserProfile{},
		&model.Document{},
		&model.AccessLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
