package file

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/careersync/service/internal/response"
)

// maxUploadBytes caps multipart upload memory and body size.
const maxUploadBytes = 20 << 20 // 20 MiB

// Handler holds HTTP handlers for file endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new file Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type deleteRequest struct {
	URL string `json:"url" example:"http://uploads.localhost:9000/ab12cd34-0report.pdf"`
}

type uploadData struct {
	URL string `json:"url" example:"http://uploads.localhost:9000/ab12cd34-0report.pdf"`
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Upload an image (jpg, jpeg, png, gif) or PDF. Returns the public URL of the stored object.
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file	formData	file	true	"File to upload"
//	@Success		201		{object}	response.Envelope{data=uploadData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/files [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file field is required")
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(w)
		return
	}

	url, err := h.svc.Upload(r.Context(), header.Filename, content)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	response.Created(w, uploadData{URL: url})
}

// Delete godoc
//
//	@Summary		Delete a file
//	@Description	Delete a stored object by its public URL.
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		deleteRequest	true	"Object URL"
//	@Success		200		{object}	response.Envelope
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/files [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.URL == "" {
		response.BadRequest(w, "url is required")
		return
	}

	if err := h.svc.DeleteByURL(r.Context(), req.URL); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]bool{"deleted": true})
}

// Download godoc
//
//	@Summary		Download a file
//	@Description	Stream back the stored object addressed by its public URL.
//	@Tags			files
//	@Produce		octet-stream
//	@Security		BearerAuth
//	@Param			url	query		string	true	"Object URL"
//	@Success		200	{file}		binary
//	@Failure		400	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Router			/files/download [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		response.BadRequest(w, "url query parameter is required")
		return
	}

	df, err := h.svc.DownloadByURL(r.Context(), rawURL)
	if err != nil {
		response.NotFound(w, "file not found")
		return
	}
	defer df.Content.Close()

	w.Header().Set("Content-Type", df.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+df.OriginalName+`"`)
	_, _ = io.Copy(w, df.Content)
}

// writeUploadError maps file validation errors to 400 and store failures to 500.
func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyFile):
		response.BadRequest(w, "file is empty")
	case errors.Is(err, ErrMissingExtension):
		response.BadRequest(w, "filename has no extension")
	case errors.Is(err, ErrInvalidExtension):
		response.BadRequest(w, "file type not allowed (jpg, jpeg, png, gif, pdf)")
	default:
		response.InternalError(w)
	}
}
