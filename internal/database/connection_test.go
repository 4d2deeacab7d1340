package database

import (
	"testing"

	"github.com/skyvoyage/booking-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnection_RequiresURL(t *testing.T) {
	db, err := NewConnection(config.DatabaseConfig{})
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "database URL is required")
}
