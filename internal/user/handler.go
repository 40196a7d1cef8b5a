package user

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/careersync/service/internal/file"
	"github.com/careersync/service/internal/middleware"
	"github.com/careersync/service/internal/response"
)

// maxAvatarBytes caps avatar and resume upload sizes.
const maxAvatarBytes = 10 << 20 // 10 MiB

// Handler holds HTTP handlers for user-related endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new user Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type updateProfileRequest struct {
	Username string `json:"username" example:"jihye.dev"`
}

type avatarData struct {
	AvatarURL string `json:"avatarUrl" example:"http://uploads.localhost:9000/ab12cd34-0photo.png"`
}

type resumeData struct {
	ResumeURL string `json:"resumeUrl" example:"http://uploads.localhost:9000/ab12cd34-0resume.pdf"`
}

// GetMe godoc
//
//	@Summary		Get current user
//	@Description	Returns the profile of the currently authenticated user.
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.Envelope{data=User}
//	@Failure		401	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/users/me [get]
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "unauthorized")
		return
	}

	u, err := h.svc.GetByID(r.Context(), userID)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "user not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, u)
}

// UpdateProfile godoc
//
//	@Summary		Update profile
//	@Description	Update the current user's display name.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		updateProfileRequest	true	"Profile fields"
//	@Success		200		{object}	response.Envelope{data=User}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/users/me [patch]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		response.BadRequest(w, "username is required")
		return
	}

	u, err := h.svc.UpdateUsername(r.Context(), userID, req.Username)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "user not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, u)
}

// UploadAvatar godoc
//
//	@Summary		Upload avatar
//	@Description	Upload a profile image (jpg, jpeg, png, gif). Replaces and deletes any previous avatar.
//	@Tags			users
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file	formData	file	true	"Avatar image"
//	@Success		200		{object}	response.Envelope{data=avatarData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/users/me/avatar [post]
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "unauthorized")
		return
	}

	filename, content, ok := readMultipartFile(w, r)
	if !ok {
		return
	}

	url, err := h.svc.UploadAvatar(r.Context(), userID, filename, content)
	if err != nil {
		writeUploadError(w, h.svc, err)
		return
	}

	response.OK(w, avatarData{AvatarURL: url})
}

// UploadResume godoc
//
//	@Summary		Upload resume
//	@Description	Upload a resume PDF. Replaces and deletes any previous resume.
//	@Tags			users
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file	formData	file	true	"Resume PDF"
//	@Success		200		{object}	response.Envelope{data=resumeData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/users/me/resume [post]
func (h *Handler) UploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "unauthorized")
		return
	}

	filename, content, ok := readMultipartFile(w, r)
	if !ok {
		return
	}

	url, err := h.svc.UploadResume(r.Context(), userID, filename, content)
	if err != nil {
		writeUploadError(w, h.svc, err)
		return
	}

	response.OK(w, resumeData{ResumeURL: url})
}

// readMultipartFile extracts the "file" part from a multipart request. On
// failure it writes the error response and returns ok=false.
func readMultipartFile(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return "", nil, false
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file field is required")
		return "", nil, false
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(w)
		return "", nil, false
	}

	return header.Filename, content, true
}

// writeUploadError maps service errors from avatar/resume uploads to responses.
func writeUploadError(w http.ResponseWriter, svc *Service, err error) {
	switch {
	case svc.IsNotFound(err):
		response.NotFound(w, "user not found")
	case errors.Is(err, ErrResumeNotPDF):
		response.BadRequest(w, "resume must be a PDF file")
	case errors.Is(err, ErrAvatarNotImage):
		response.BadRequest(w, "avatar must be an image (jpg, jpeg, png, gif)")
	case errors.Is(err, file.ErrEmptyFile):
		response.BadRequest(w, "file is empty")
	case errors.Is(err, file.ErrMissingExtension):
		response.BadRequest(w, "filename has no extension")
	case errors.Is(err, file.ErrInvalidExtension):
		response.BadRequest(w, "file type not allowed (jpg, jpeg, png, gif, pdf)")
	default:
		response.InternalError(w)
	}
}
