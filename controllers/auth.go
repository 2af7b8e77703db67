package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"crudclinic/models"
	"crudclinic/utils"
)

type AuthController struct {
	DB        *sql.DB
	Sessions  *utils.SessionStore
	JWTSecret string
	JWTExpiry time.Duration
}

func NewAuthController(db *sql.DB, sessions *utils.SessionStore, jwtSecret string, jwtExpiry time.Duration) *AuthController {
	return &AuthController{DB: db, Sessions: sessions, JWTSecret: jwtSecret, JWTExpiry: jwtExpiry}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials, signs a token and writes the session. A missing
// account and a wrong password are indistinguishable to the caller.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := models.GetActiveUserByUsername(c.DB, req.Username)
	if errors.Is(err, models.ErrNotFound) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(c.JWTSecret, c.JWTExpiry, user.ID, user.Username, user.Role)
	if err != nil {
		serverError(w, r, err)
		return
	}

	sessionUser := utils.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	if err := c.Sessions.SaveUser(w, r, sessionUser); err != nil {
		serverError(w, r, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    sessionUser,
	})
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.Sessions.Destroy(w, r); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not close session")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Session closed successfully",
	})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := c.Sessions.User(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Verify validates a bearer token and echoes its claims.
func (c *AuthController) Verify(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Token not provided")
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := utils.VerifyToken(c.JWTSecret, token)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  claims,
	})
}
