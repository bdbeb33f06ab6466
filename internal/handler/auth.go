package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"larder/internal/store"
	"larder/internal/token"
)

type AuthHandler struct {
	users  *store.UserStore
	tokens *token.Service
	logger *slog.Logger
}

func NewAuthHandler(us *store.UserStore, tokens *token.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: us, tokens: tokens, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMsg(w, http.StatusBadRequest, "Email and password required")
		return
	}

	existing, err := h.users.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("signup lookup", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if existing != nil {
		writeMsg(w, http.StatusConflict, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("signup hash", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user, err := h.users.Create(req.Email, string(hash))
	if err != nil {
		h.logger.Error("signup create", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	accessToken, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("signup token", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"msg":          "User created successfully and logged in",
		"user_id":      user.ID,
		"access_token": accessToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMsg(w, http.StatusBadRequest, "Email and password required")
		return
	}

	// Unknown email and wrong password share one response so the error does
	// not reveal which field was wrong.
	user, err := h.users.GetByEmail(req.Email)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeMsg(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	accessToken, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error("login token", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"msg":          "Login successful",
		"user_id":      user.ID,
		"access_token": accessToken,
	})
}
