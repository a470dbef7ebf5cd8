package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tmarcinkow/bookmarkd/internal/application/auth"
	domerrors "github.com/tmarcinkow/bookmarkd/internal/domain/errors"
	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	signup   *auth.Signup
	signin   *auth.Signin
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(signup *auth.Signup, signin *auth.Signin, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		signup:   signup,
		signin:   signin,
		validate: validator.New(),
		log:      log,
	}
}

type credentialsBody struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// tokenResponse is the JSON shape for successful signup and signin.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}
	result, err := h.signup.Execute(r.Context(), auth.SignupInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.signup", "", false, err.Error())
		middleware.RecordAuthAttempt("signup", false)
		if errors.Is(err, domerrors.ErrDuplicateEmail) {
			writeErr(w, http.StatusForbidden, ErrCodeDuplicateEmail, err.Error())
			return
		}
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid email or password")
			return
		}
		h.log.Error().Err(err).Msg("signup failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, "user.signup", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("signup", true)
	writeJSON(w, http.StatusCreated, tokenResponse{AccessToken: result.AccessToken})
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}
	result, err := h.signin.Execute(r.Context(), auth.SigninInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.signin", "", false, err.Error())
		middleware.RecordAuthAttempt("signin", false)
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			writeErr(w, http.StatusForbidden, ErrCodeInvalidCredentials, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("signin failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, "user.signin", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("signin", true)
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: result.AccessToken})
}

func (h *AuthHandler) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsBody, bool) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return body, false
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return body, false
	}
	body.Email = SanitizeEmail(body.Email)
	body.Password = SanitizePassword(body.Password)
	if body.Email == "" || body.Password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return body, false
	}
	return body, true
}
