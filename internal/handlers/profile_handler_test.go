package handlers_test

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "password", "name", "bio", "interests", "language", "role_id"}

func TestGetProfileRequiresAuth(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(r, "GET", "/v1/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfileRequiresName(t *testing.T) {
	r, _, authCfg := newTestServer(t)
	token := authToken(t, authCfg, uuid.New(), "student")

	w := doJSON(r, "PUT", "/v1/profile", `{"bio": "no name given"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileStatusIncompleteWithoutDietaryPreferences(t *testing.T) {
	r, mock, authCfg := newTestServer(t)
	userID := uuid.New()
	roleID := uuid.New()
	token := authToken(t, authCfg, userID, "student")

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			userID.String(), "terrier@bu.edu", "hash", "Rhett",
			"", "basketball", "English", roleID.String(),
		))
	mock.ExpectQuery(`SELECT \* FROM "user_dietary_tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "dietary_tag_id"}))

	w := doJSON(r, "GET", "/v1/profile/status", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"profile_complete":false`)
}

func TestProfileStatusComplete(t *testing.T) {
	r, mock, authCfg := newTestServer(t)
	userID := uuid.New()
	roleID := uuid.New()
	tagID := uuid.New()
	token := authToken(t, authCfg, userID, "student")

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			userID.String(), "terrier@bu.edu", "hash", "Rhett",
			"hungry grad student", "basketball", "English", roleID.String(),
		))
	mock.ExpectQuery(`SELECT \* FROM "user_dietary_tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "dietary_tag_id"}).
			AddRow(userID.String(), tagID.String()))
	mock.ExpectQuery(`SELECT \* FROM "dietary_tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(tagID.String(), "Vegan"))

	w := doJSON(r, "GET", "/v1/profile/status", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"profile_complete":true`)
}
