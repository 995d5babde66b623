package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gather/internal/oauth"
)

func newTestRouter(t *testing.T) (*mux.Router, *fixture) {
	t.Helper()
	f := newFixture(t)
	h := NewHandler(f.useCase, f.cfg, zap.NewNop())
	r := mux.NewRouter()
	SetupAuthRoutes(r, h)
	return r, f
}

func postJSON(t *testing.T, r *mux.Router, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == tokenCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRegisterVerifyFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "ash",
		"name":     "Ash",
		"email":    "ash@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "OTP sent to email", body["message"])

	data := body["data"].(map[string]any)
	code := data["code"].(string)
	assert.Regexp(t, sixDigits, code)

	rec = postJSON(t, r, "/api/auth/verify", map[string]string{
		"email": "ash@example.com",
		"code":  code,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeEnvelope(t, rec)
	assert.Equal(t, "OTP verified", body["message"])

	user := body["data"].(map[string]any)
	assert.Equal(t, true, user["isVerified"])
	assert.NotEmpty(t, user["token"])

	cookie := sessionCookie(t, rec)
	assert.Equal(t, user["token"], cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.False(t, cookie.Secure, "dev config must not mark the cookie secure")
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	// The consumed code must not verify a second time.
	rec = postJSON(t, r, "/api/auth/verify", map[string]string{
		"email": "ash@example.com",
		"code":  code,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body = decodeEnvelope(t, rec)
	assert.Equal(t, "OTP not found, expired or already used", body["message"])
}

func TestRegister_ValidationFailure(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "ab",
		"name":     "Ash",
		"email":    "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Validation Failed", body["message"])
	fields := body["error"].(map[string]any)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
}

func TestVerify_RejectsNonNumericCode(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := postJSON(t, r, "/api/auth/verify", map[string]string{
		"email": "ash@example.com",
		"code":  "12a456",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Validation Failed", body["message"])
}

func TestLoginFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "ash", "name": "Ash", "email": "ash@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, r, "/api/auth/login", map[string]string{"email": "ash@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	code := data["code"].(string)

	rec = postJSON(t, r, "/api/auth/verify-login", map[string]string{
		"email": "ash@example.com",
		"code":  code,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Logged in successfully", body["message"])
	sessionCookie(t, rec)
}

func TestLogin_UnknownUser(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := postJSON(t, r, "/api/auth/login", map[string]string{"email": "nobody@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User not found", decodeEnvelope(t, rec)["message"])
}

func TestResend_Throttled(t *testing.T) {
	r, f := newTestRouter(t)

	rec := postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "ash", "name": "Ash", "email": "ash@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, r, "/api/auth/resend", map[string]string{"email": "ash@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Wait some time to get new code", decodeEnvelope(t, rec)["message"])

	f.backdateOTPs(t, "ash@example.com", 6*time.Minute)

	rec = postJSON(t, r, "/api/auth/resend", map[string]string{"email": "ash@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestCheckUsernameEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check-username?u=ash", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeEnvelope(t, rec)["exists"])

	rec = postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "ash", "name": "Ash", "email": "ash@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/check-username?u=ash", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, true, decodeEnvelope(t, rec)["exists"])

	req = httptest.NewRequest(http.MethodGet, "/api/auth/check-username", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoogleEndpoint(t *testing.T) {
	r, f := newTestRouter(t)
	f.provider.identity = &oauth.Identity{Email: "g@example.com", Name: "G"}

	rec := postJSON(t, r, "/api/auth/google", map[string]string{"credential": "cred"})
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, true, user["isVerified"])
	sessionCookie(t, rec)
}
