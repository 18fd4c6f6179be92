package services

import (
	"net/http"
	"testing"

	"golmaster-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFriendRequest(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	ana := createTestUser(t, db, "Ana", "ana@example.com", "GM-AAAA-AAAA")
	bia := createTestUser(t, db, "Bia", "bia@example.com", "GM-BBBB-BBBB")
	token := testToken(t, ana.ID)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/friends", token, fiber.Map{
		"friend_email": "Bia@Example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var friendship models.Friendship
	require.NoError(t, db.First(&friendship).Error)
	assert.Equal(t, ana.ID, friendship.UserID)
	assert.Equal(t, bia.ID, friendship.FriendID)
	assert.Equal(t, models.FriendshipPending, friendship.Status)

	// a second request in either direction is rejected
	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/api/friends", token, fiber.Map{
		"friend_email": "bia@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/api/friends", testToken(t, bia.ID), fiber.Map{
		"friend_email": "ana@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateFriendRequestByCode(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	ana := createTestUser(t, db, "Ana", "ana@example.com", "GM-AAAA-AAAA")
	bia := createTestUser(t, db, "Bia", "bia@example.com", "GM-BBBB-BBBB")

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/friends", testToken(t, ana.ID), fiber.Map{
		"friend_code": "gm-bbbb-bbbb",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var friendship models.Friendship
	require.NoError(t, db.First(&friendship).Error)
	assert.Equal(t, bia.ID, friendship.FriendID)
}

func TestCreateFriendRequestRejections(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	ana := createTestUser(t, db, "Ana", "ana@example.com", "GM-AAAA-AAAA")
	token := testToken(t, ana.ID)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/friends", token, fiber.Map{
		"friend_email": "ana@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/api/friends", token, fiber.Map{
		"friend_email": "nobody@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/api/friends", token, fiber.Map{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRespondFriendRequest(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	ana := createTestUser(t, db, "Ana", "ana@example.com", "GM-AAAA-AAAA")
	bia := createTestUser(t, db, "Bia", "bia@example.com", "GM-BBBB-BBBB")
	caio := createTestUser(t, db, "Caio", "caio@example.com", "GM-CCCC-CCCC")

	friendship := models.Friendship{
		ID: newID(), UserID: ana.ID, FriendID: bia.ID, Status: models.FriendshipPending,
	}
	require.NoError(t, db.Create(&friendship).Error)

	// the requester cannot accept their own request
	resp, err := app.Test(jsonRequest(t, fiber.MethodPut, "/api/friends/"+friendship.ID, testToken(t, ana.ID), fiber.Map{
		"action": "accept",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// neither can a third party
	resp, err = app.Test(jsonRequest(t, fiber.MethodPut, "/api/friends/"+friendship.ID, testToken(t, caio.ID), fiber.Map{
		"action": "accept",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var stored models.Friendship
	require.NoError(t, db.First(&stored, "id = ?", friendship.ID).Error)
	assert.Equal(t, models.FriendshipPending, stored.Status)

	// the recipient can
	resp, err = app.Test(jsonRequest(t, fiber.MethodPut, "/api/friends/"+friendship.ID, testToken(t, bia.ID), fiber.Map{
		"action": "accept",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&stored, "id = ?", friendship.ID).Error)
	assert.Equal(t, models.FriendshipAccepted, stored.Status)

	resp, err = app.Test(jsonRequest(t, fiber.MethodPut, "/api/friends/"+friendship.ID, testToken(t, bia.ID), fiber.Map{
		"action": "explode",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeclineDeletesRow(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	ana := createTestUser(t, db, "Ana", "ana@example.com", "GM-AAAA-AAAA")
	bia := createTestUser(t, db, "Bia", "bia@example.com", "GM-BBBB-BBBB")

	friendship := models.Friendship{
		ID: newID(), UserID: ana.ID, FriendID: bia.ID, Status: models.FriendshipPending,
	}
	require.NoError(t, db.Create(&friendship).Error)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPut, "/api/friends/"+friendship.ID, testToken(t, bia.ID), fiber.Map{
		"action": "decline",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// a fresh request is allowed after a decline
	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/api/friends", testToken(t, ana.ID), fiber.Map{
		"friend_email": "bia@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRemoveFriendEitherParty(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	ana := createTestUser(t, db, "Ana", "ana@example.com", "GM-AAAA-AAAA")
	bia := createTestUser(t, db, "Bia", "bia@example.com", "GM-BBBB-BBBB")
	caio := createTestUser(t, db, "Caio", "caio@example.com", "GM-CCCC-CCCC")

	friendship := models.Friendship{
		ID: newID(), UserID: ana.ID, FriendID: bia.ID, Status: models.FriendshipAccepted,
	}
	require.NoError(t, db.Create(&friendship).Error)

	resp, err := app.Test(jsonRequest(t, fiber.MethodDelete, "/api/friends/"+friendship.ID, testToken(t, caio.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodDelete, "/api/friends/"+friendship.ID, testToken(t, ana.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestGetFriendsWithStats(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)
	ana := createTestUser(t, db, "Ana", "ana@example.com", "GM-AAAA-AAAA")
	bia := createTestUser(t, db, "Bia", "bia@example.com", "GM-BBBB-BBBB")
	match := createTestMatch(t, db, "Brazil", "Germany", models.MatchStatusFinished)

	require.NoError(t, db.Create(&models.Friendship{
		ID: newID(), UserID: bia.ID, FriendID: ana.ID, Status: models.FriendshipAccepted,
	}).Error)

	correct := true
	incorrect := false
	require.NoError(t, db.Create(&models.Prediction{
		ID: newID(), UserID: bia.ID, MatchID: match.ID,
		PredictedHomeScore: 2, PredictedAwayScore: 1, IsCorrect: &correct,
	}).Error)
	other := createTestMatch(t, db, "Mexico", "Canada", models.MatchStatusFinished)
	require.NoError(t, db.Create(&models.Prediction{
		ID: newID(), UserID: bia.ID, MatchID: other.ID,
		PredictedHomeScore: 0, PredictedAwayScore: 0, IsCorrect: &incorrect,
	}).Error)

	resp, err := app.Test(jsonRequest(t, fiber.MethodGet, "/api/friends", testToken(t, ana.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.EqualValues(t, 1, body["total"])
	friends := body["friends"].([]interface{})
	require.Len(t, friends, 1)
	friend := friends[0].(map[string]interface{})
	assert.Equal(t, "Bia", friend["name"])
	assert.EqualValues(t, 2, friend["total_predictions"])
	assert.EqualValues(t, 1, friend["correct_predictions"])
	assert.EqualValues(t, 50, friend["success_rate"])
}
