package services

import (
	"net/http"
	"testing"

	"golmaster-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsLazyDefaults(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	user := createTestUser(t, db, "Ana", "ana@example.com", "GM-AAAA-AAAA")

	resp, err := app.Test(jsonRequest(t, fiber.MethodGet, "/api/user-settings", testToken(t, user.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	settings := body["settings"].(map[string]interface{})
	assert.Equal(t, "pt", settings["language"])
	assert.Equal(t, "America/Sao_Paulo", settings["timezone"])
	assert.Equal(t, true, settings["notifications_enabled"])

	// the row now exists; a second read does not create another
	var count int64
	require.NoError(t, db.Model(&models.UserSettings{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = app.Test(jsonRequest(t, fiber.MethodGet, "/api/user-settings", testToken(t, user.ID), nil))
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.UserSettings{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateSettingsPartialPatch(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	user := createTestUser(t, db, "Ana", "ana@example.com", "GM-AAAA-AAAA")
	token := testToken(t, user.ID)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPut, "/api/user-settings", token, fiber.Map{
		"language": "en",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.UserSettings
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, "en", stored.Language)
	assert.Equal(t, "America/Sao_Paulo", stored.Timezone) // untouched
	assert.True(t, stored.NotificationsEnabled)           // untouched

	resp, err = app.Test(jsonRequest(t, fiber.MethodPut, "/api/user-settings", token, fiber.Map{
		"notifications_enabled": false,
		"timezone":              "Europe/Lisbon",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.Where("user_id = ?", user.ID).First(&stored).Error)
	assert.Equal(t, "en", stored.Language) // untouched this time
	assert.Equal(t, "Europe/Lisbon", stored.Timezone)
	assert.False(t, stored.NotificationsEnabled)
}

func TestUpdateSettingsRejectsUnknownLanguage(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	user := createTestUser(t, db, "Ana", "ana@example.com", "GM-AAAA-AAAA")

	resp, err := app.Test(jsonRequest(t, fiber.MethodPut, "/api/user-settings", testToken(t, user.ID), fiber.Map{
		"language": "fr",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
