package auth

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/careersync/service/internal/middleware"
	"github.com/careersync/service/internal/response"
	"github.com/careersync/service/internal/user"
)

// emailRegex is a pragmatic email shape check; real validation happened at
// the provider.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validProviders is the set of supported OAuth providers.
var validProviders = map[string]bool{
	"google": true,
	"github": true,
	"kakao":  true,
}

// Handler holds HTTP handlers for auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new auth Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type loginRequest struct {
	Username     string    `json:"username"     example:"jihye"`
	Provider     string    `json:"provider"     example:"google"`
	Email        string    `json:"email"        example:"jihye@example.com"`
	AccessToken  string    `json:"accessToken"  example:"ya29.a0Af..."`
	RefreshToken string    `json:"refreshToken" example:"1//0gXw..."`
	ExpireDate   time.Time `json:"expireDate"   example:"2026-09-30T12:00:00Z"`
}

type loginData struct {
	IsNewUser bool       `json:"isNewUser" example:"false"`
	Token     string     `json:"token"     example:"eyJhbGci..."`
	User      *user.User `json:"user"`
}

// Login godoc
//
//	@Summary		Provider login
//	@Description	Exchange an OAuth provider profile for a session JWT. Registers the user on first login and stores the provider tokens.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Provider profile"
//	@Success		200		{object}	response.Envelope{data=loginData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if !emailRegex.MatchString(req.Email) {
		response.BadRequest(w, "invalid email format")
		return
	}
	if !validProviders[req.Provider] {
		response.BadRequest(w, "provider must be one of: google, github, kakao")
		return
	}
	if req.AccessToken == "" {
		response.BadRequest(w, "accessToken is required")
		return
	}

	result, err := h.svc.Login(r.Context(), ProviderProfile{
		Username:     req.Username,
		Provider:     req.Provider,
		Email:        req.Email,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		ExpireDate:   req.ExpireDate,
	})
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, loginData{
		IsNewUser: result.IsNewUser,
		Token:     result.Token,
		User:      result.User,
	})
}

// Logout godoc
//
//	@Summary		Logout
//	@Description	Remove the stored provider tokens for the current user.
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.svc.Logout(r.Context(), userID); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]bool{"success": true})
}
