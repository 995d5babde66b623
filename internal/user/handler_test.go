package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gather/internal/auth"
	"gather/internal/database"
	"gather/pkg/jwt"
)

func newUserRouter(t *testing.T) (*mux.Router, *database.Database, *jwt.JWT) {
	t.Helper()
	db := testDB(t)
	tokens := jwt.NewJWT("test-secret")
	h := NewHandler(NewService(NewRepository(db), testConfig()), zap.NewNop())

	r := mux.NewRouter()
	SetupUserRoutes(r, h, auth.Middleware(tokens, zap.NewNop()))
	return r, db, tokens
}

func doJSON(t *testing.T, r *mux.Router, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestMeEndpoint(t *testing.T) {
	r, db, tokens := newUserRouter(t)
	user := seedUser(t, db, "ash", "ash@example.com")
	token, err := tokens.Generate(user.ID.String(), user.Email, user.Username, false)
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/api/user/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := envelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "ash", data["username"])
}

func TestMeEndpoint_RequiresAuth(t *testing.T) {
	r, _, _ := newUserRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/user/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestByUsernameEndpoint_IsPublic(t *testing.T) {
	r, db, _ := newUserRouter(t)
	seedUser(t, db, "ash", "ash@example.com")

	rec := doJSON(t, r, http.MethodGet, "/api/user/get/ash", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := envelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "ash@example.com", data["email"])

	rec = doJSON(t, r, http.MethodGet, "/api/user/get/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateEndpoint(t *testing.T) {
	r, db, tokens := newUserRouter(t)
	user := seedUser(t, db, "ash", "ash@example.com")
	_, interests := seedCatalog(t, db)
	token, err := tokens.Generate(user.ID.String(), user.Email, user.Username, false)
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodPut, "/api/user/update", token, map[string]any{
		"name":        "Ash Ketchum",
		"dob":         "1999-04-01",
		"gender":      "MALE",
		"isOnboarded": true,
		"interests":   []uint{interests[0].ID},
		"socials": []map[string]string{
			{"type": "INSTAGRAM", "url": "https://instagram.com/ash"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data := envelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Ash Ketchum", data["name"])
	assert.Equal(t, true, data["isOnboarded"])
	assert.Len(t, data["interests"], 1)
	assert.Len(t, data["socials"], 1)
}

func TestUpdateEndpoint_ValidationFailure(t *testing.T) {
	r, db, tokens := newUserRouter(t)
	user := seedUser(t, db, "ash", "ash@example.com")
	token, err := tokens.Generate(user.ID.String(), user.Email, user.Username, false)
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodPut, "/api/user/update", token, map[string]any{
		"dob":    "01-04-1999",
		"gender": "UNKNOWN",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := envelope(t, rec)
	assert.Equal(t, "Validation Failed", body["message"])
	fields := body["error"].(map[string]any)
	assert.Contains(t, fields, "dob")
	assert.Contains(t, fields, "gender")
}

func TestUpdateEndpoint_RequiresAuth(t *testing.T) {
	r, _, _ := newUserRouter(t)

	rec := doJSON(t, r, http.MethodPut, "/api/user/update", "", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
