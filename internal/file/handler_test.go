package file

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/careersync/service/internal/response"
)

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, mw.FormDataContentType()
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestHandlerUpload(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(NewService(store))

	body, contentType := multipartBody(t, "photo.png", []byte("fake image"))
	req := httptest.NewRequest(http.MethodPost, "/files", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Errorf("expected success envelope, got error %q", env.Error)
	}
	if len(store.objects) != 1 {
		t.Errorf("expected 1 stored object, got %d", len(store.objects))
	}
}

func TestHandlerUpload_InvalidExtension(t *testing.T) {
	h := NewHandler(NewService(newFakeStore()))

	body, contentType := multipartBody(t, "malware.exe", []byte("nope"))
	req := httptest.NewRequest(http.MethodPost, "/files", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerUpload_MissingFilePart(t *testing.T) {
	h := NewHandler(NewService(newFakeStore()))

	req := httptest.NewRequest(http.MethodPost, "/files", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerDelete(t *testing.T) {
	store := newFakeStore()
	store.objects["ab12cd34-0photo.png"] = fakeObject{data: []byte("data"), contentType: "image/png"}
	h := NewHandler(NewService(store))

	req := httptest.NewRequest(http.MethodDelete, "/files",
		strings.NewReader(`{"url":"https://bucket.example.com/ab12cd34-0photo.png"}`))
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := store.objects["ab12cd34-0photo.png"]; ok {
		t.Error("object should be deleted")
	}
}

func TestHandlerDelete_MissingURL(t *testing.T) {
	h := NewHandler(NewService(newFakeStore()))

	req := httptest.NewRequest(http.MethodDelete, "/files", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerDownload(t *testing.T) {
	store := newFakeStore()
	store.objects["ab12cd34-0doc.pdf"] = fakeObject{data: []byte("%PDF-1.4"), contentType: "application/pdf"}
	h := NewHandler(NewService(store))

	req := httptest.NewRequest(http.MethodGet,
		"/files/download?url=https%3A%2F%2Fbucket.example.com%2Fab12cd34-0doc.pdf", nil)
	rec := httptest.NewRecorder()

	h.Download(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected content type application/pdf, got %q", ct)
	}
	data, _ := io.ReadAll(rec.Body)
	if string(data) != "%PDF-1.4" {
		t.Errorf("unexpected body %q", data)
	}
}

func TestHandlerDownload_NotFound(t *testing.T) {
	h := NewHandler(NewService(newFakeStore()))

	req := httptest.NewRequest(http.MethodGet,
		"/files/download?url=https%3A%2F%2Fbucket.example.com%2Fgone.png", nil)
	rec := httptest.NewRecorder()

	h.Download(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
