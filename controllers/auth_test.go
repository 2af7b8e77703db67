package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"crudclinic/utils"
)

const testJWTSecret = "test-secret"

func newAuthController(t *testing.T) (*AuthController, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	sessions := utils.NewSessionStore("session-secret", 3600)
	return NewAuthController(db, sessions, testJWTSecret, time.Hour), mock
}

func userRows(t *testing.T, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows(
		[]string{"id", "username", "email", "password_hash", "rol", "activo", "created_at"}).
		AddRow(1, "admin", "admin@crudclinic.local", string(hash), "admin", true, sampleTime())
}

func TestLogin(t *testing.T) {
	ctrl, mock := newAuthController(t)

	mock.ExpectQuery("FROM usuarios WHERE username").
		WithArgs("admin").
		WillReturnRows(userRows(t, "admin123"))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"admin","password":"admin123"}`))
	rec := serve(ctrl.Login, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["username"])
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))

	// The issued token must verify against the same secret.
	claims, err := utils.VerifyToken(testJWTSecret, body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, 1, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	ctrl, mock := newAuthController(t)

	mock.ExpectQuery("FROM usuarios WHERE username").
		WithArgs("admin").
		WillReturnRows(userRows(t, "admin123"))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"admin","password":"wrong"}`))
	rec := serve(ctrl.Login, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["message"])
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestLoginUnknownUser(t *testing.T) {
	ctrl, mock := newAuthController(t)

	mock.ExpectQuery("FROM usuarios WHERE username").
		WithArgs("ghost").
		WillReturnError(errNoRows())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"ghost","password":"whatever"}`))
	rec := serve(ctrl.Login, req)

	// Unknown account and wrong password answer identically.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["message"])
}

func TestLoginMissingFields(t *testing.T) {
	ctrl, _ := newAuthController(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"  ","password":""}`))
	rec := serve(ctrl.Login, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username and password are required", decodeBody(t, rec)["message"])
}

func TestVerify(t *testing.T) {
	ctrl, _ := newAuthController(t)

	token, err := utils.GenerateToken(testJWTSecret, time.Hour, 1, "admin", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := serve(ctrl.Verify, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["valid"])
}

func TestVerifyInvalidToken(t *testing.T) {
	ctrl, _ := newAuthController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := serve(ctrl.Verify, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeBody(t, rec)["message"])
}

func TestVerifyMissingToken(t *testing.T) {
	ctrl, _ := newAuthController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	rec := serve(ctrl.Verify, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token not provided", decodeBody(t, rec)["message"])
}

func TestMeWithoutSession(t *testing.T) {
	ctrl, _ := newAuthController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := serve(ctrl.Me, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated", decodeBody(t, rec)["message"])
}
