package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Oasis-NEU/s26-group-3/internal/auth"
	"github.com/Oasis-NEU/s26-group-3/internal/config"
	"github.com/Oasis-NEU/s26-group-3/internal/models"
	"github.com/Oasis-NEU/s26-group-3/internal/repository"
	"github.com/Oasis-NEU/s26-group-3/internal/services"
)

// forgotPasswordMessage is returned whether or not the email exists, so
// the endpoint can't be used to enumerate accounts.
const forgotPasswordMessage = "If that email exists, a reset link has been sent"

type AuthHandler struct {
	users  repository.UserRepository
	resets repository.PasswordResetRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenCodec
	mailer services.EmailSender
	cfg    *config.Config
	v      *validator.Validate
}

func NewAuthHandler(db *sql.DB, cfg *config.Config, tokens *auth.TokenCodec, mailer services.EmailSender) *AuthHandler {
	return &AuthHandler{
		users:  repository.NewUserRepository(db),
		resets: repository.NewPasswordResetRepository(db, cfg.ResetTokenTTL),
		hasher: auth.NewPasswordHasher(cfg.BcryptCost),
		tokens: tokens,
		mailer: mailer,
		cfg:    cfg,
		v:      validator.New(),
	}
}

// Signup creates an account for a Northeastern email + NUID and returns a
// token pair. Conflicts are reported per field: taking an email or NUID
// is not secret pre-authentication.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if !auth.ValidateNortheasternEmail(req.Email) {
		writeJSONError(w, http.StatusBadRequest, "invalid_email", "Email must be a valid Northeastern email (@northeastern.edu)")
		return
	}
	if !auth.ValidateNUID(req.NUID) {
		writeJSONError(w, http.StatusBadRequest, "invalid_nuid", "NUID must be exactly 9 digits")
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "signup_failed", "Failed to create user")
		return
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        auth.NormalizeEmail(req.Email),
		NUID:         strings.TrimSpace(req.NUID),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.users.Create(r.Context(), u); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			writeJSONError(w, http.StatusBadRequest, "email_taken", "Email already registered")
		case errors.Is(err, repository.ErrNUIDTaken):
			writeJSONError(w, http.StatusBadRequest, "nuid_taken", "NUID already registered")
		default:
			writeJSONError(w, http.StatusInternalServerError, "signup_failed", "Failed to create user")
		}
		return
	}

	h.writeTokenPair(w, http.StatusCreated, u)
}

// Login authenticates by email and password. Unknown email and wrong
// password collapse into one generic failure.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	u, err := h.users.GetByEmail(r.Context(), auth.NormalizeEmail(req.Email))
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		writeJSONError(w, http.StatusInternalServerError, "login_failed", "Failed to log in")
		return
	}
	if err != nil || !h.hasher.Check(req.Password, u.PasswordHash) {
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	h.writeTokenPair(w, http.StatusOK, u)
}

// Refresh exchanges a valid refresh token for a fresh access+refresh
// pair. The old refresh token stays structurally valid until it expires;
// tokens are stateless so there is no revocation list.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	claims, err := h.tokens.Verify(req.RefreshToken)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		writeJSONError(w, http.StatusUnauthorized, "invalid_token", "Invalid or expired refresh token")
		return
	}

	u, err := h.users.GetByID(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeJSONError(w, http.StatusUnauthorized, "user_not_found", "User not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "refresh_failed", "Failed to refresh token")
		return
	}

	h.writeTokenPair(w, http.StatusOK, u)
}

// ForgotPassword mints a single-use reset grant and mails the token. The
// response is identical whether or not the account exists. In
// development the raw token is echoed back so the flow works without a
// mail server.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if !auth.ValidateNortheasternEmail(req.Email) {
		writeJSONError(w, http.StatusBadRequest, "invalid_email", "Email must be a valid Northeastern email")
		return
	}

	resp := map[string]any{"message": forgotPasswordMessage}

	// Only a confirmed miss gets the success-shaped body; a storage
	// outage is a server error, not evidence about the account.
	u, err := h.users.GetByEmail(r.Context(), auth.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeJSON(w, http.StatusOK, resp)
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "forgot_password_failed", "Failed to process request")
		return
	}

	token, err := h.resets.Create(r.Context(), u.ID)
	if err != nil {
		log.Printf("forgot-password: create reset grant: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "forgot_password_failed", "Failed to process request")
		return
	}

	subject := "Reset your PawSwap password"
	body := "Use this token to reset your password:\n\n" + token +
		"\n\nIt expires in " + h.cfg.ResetTokenTTL.String() + " and can be used once."
	if err := h.mailer.Send(u.Email, subject, body); err != nil {
		log.Printf("forgot-password: send mail: %v", err)
	}

	if h.cfg.AuthReturnResetToken {
		resp["reset_token"] = token
	}
	writeJSON(w, http.StatusOK, resp)
}

// ResetPassword spends a reset grant and installs the new password. Any
// grant problem surfaces as one generic failure.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	userID, err := h.resets.Consume(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, repository.ErrResetTokenInvalid) {
			writeJSONError(w, http.StatusBadRequest, "invalid_token", "Invalid or expired reset token")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	hash, err := h.hasher.Hash(req.NewPassword)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	if err := h.users.UpdatePasswordHash(r.Context(), userID, hash); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Password has been reset successfully"})
}

func (h *AuthHandler) writeTokenPair(w http.ResponseWriter, status int, u *models.User) {
	access, err := h.tokens.IssueAccess(u.ID, u.Email)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "token_failed", "Failed to issue tokens")
		return
	}
	refresh, err := h.tokens.IssueRefresh(u.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "token_failed", "Failed to issue tokens")
		return
	}

	writeJSON(w, status, models.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(h.tokens.AccessTTL().Seconds()),
		User:         models.UserResponse{ID: u.ID, Email: u.Email, NUID: u.NUID},
	})
}
