package database

import (
	"ambulance/config"
	"ambulance/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestOpenInMemoryMigratesSchema(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)

	for _, model := range []interface{}{&models.User{}, &models.OTP{}, &models.AuthToken{}, &models.LoginTracking{}} {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
}

func TestInMemoryDatabasesAreIsolated(t *testing.T) {
	first, err := OpenInMemory()
	require.NoError(t, err)
	second, err := OpenInMemory()
	require.NoError(t, err)

	require.NoError(t, first.Create(&models.LoginTracking{UserID: 1}).Error)

	var count int64
	require.NoError(t, second.Model(&models.LoginTracking{}).Count(&count).Error)
	assert.Zero(t, count)
}
