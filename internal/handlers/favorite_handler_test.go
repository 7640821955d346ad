package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func favoriteBody(eventID uuid.UUID) string {
	return fmt.Sprintf(`{"event_id": %q}`, eventID)
}

func TestCreateFavoriteRequiresAuth(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(r, "POST", "/v1/favorites", favoriteBody(uuid.New()), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateFavoriteEventNotFound(t *testing.T) {
	r, mock, authCfg := newTestServer(t)
	token := authToken(t, authCfg, uuid.New(), "student")

	mock.ExpectQuery(`SELECT .* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(r, "POST", "/v1/favorites", favoriteBody(uuid.New()), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateFavoriteDuplicateRejected(t *testing.T) {
	r, mock, authCfg := newTestServer(t)
	userID := uuid.New()
	eventID := uuid.New()
	token := authToken(t, authCfg, userID, "student")

	mock.ExpectQuery(`SELECT .* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(eventID.String()))
	mock.ExpectQuery(`SELECT \* FROM "favorites"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "event_id"}).
			AddRow(uuid.NewString(), userID.String(), eventID.String()))

	w := doJSON(r, "POST", "/v1/favorites", favoriteBody(eventID), token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFavoriteSuccess(t *testing.T) {
	r, mock, authCfg := newTestServer(t)
	eventID := uuid.New()
	token := authToken(t, authCfg, uuid.New(), "student")

	mock.ExpectQuery(`SELECT .* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(eventID.String()))
	mock.ExpectQuery(`SELECT \* FROM "favorites"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "favorites"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectCommit()

	w := doJSON(r, "POST", "/v1/favorites", favoriteBody(eventID), token)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "favorite_id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUserFavoritesForbiddenForOtherUsers(t *testing.T) {
	r, _, authCfg := newTestServer(t)
	token := authToken(t, authCfg, uuid.New(), "student")

	w := doJSON(r, "GET", "/v1/users/"+uuid.NewString()+"/favorites", "", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListUserFavoritesOwnListing(t *testing.T) {
	r, mock, authCfg := newTestServer(t)
	userID := uuid.New()
	token := authToken(t, authCfg, userID, "student")

	mock.ExpectQuery(`SELECT count\(\*\) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(r, "GET", "/v1/users/"+userID.String()+"/favorites", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
}
