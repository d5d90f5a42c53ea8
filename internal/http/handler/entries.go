package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"thisday/internal/auth"
	"thisday/internal/calendar"
	"thisday/internal/entry"

	"github.com/go-chi/chi/v5"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// files spill to disk.
const maxUploadMemory = 32 << 20

type EntryHandler struct {
	Svc *entry.Service
}

// Create files a new entry under today. Multipart form: "caption" plus any
// number of "file" parts, stored in upload order.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "bad multipart form", http.StatusBadRequest)
		return
	}
	caption := strings.TrimSpace(r.FormValue("caption"))

	uploads, closeAll, err := formUploads(r)
	if err != nil {
		http.Error(w, "bad file upload", http.StatusBadRequest)
		return
	}
	defer closeAll()

	e, err := h.Svc.Create(r.Context(), uid, caption, uploads)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	d := toEntryDTO(e)
	writeJSON(w, http.StatusCreated, d)
}

// Backfill files a new entry under an explicit past date ("date" form field,
// YYYY-MM-DD).
func (h *EntryHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "bad multipart form", http.StatusBadRequest)
		return
	}

	date, err := parseDateField(r.FormValue("date"))
	if err != nil {
		http.Error(w, "invalid date (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	caption := strings.TrimSpace(r.FormValue("caption"))

	uploads, closeAll, err := formUploads(r)
	if err != nil {
		http.Error(w, "bad file upload", http.StatusBadRequest)
		return
	}
	defer closeAll()

	e, err := h.Svc.CreateBackfill(r.Context(), uid, date, caption, uploads)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidDate), errors.Is(err, entry.ErrFutureDate):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toEntryDTO(e))
}

// Update edits an entry: optional "caption" replacement, new "file" parts
// appended, "removeAssetIds" values dropped.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	entryID := chi.URLParam(r, "entryID")

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "bad multipart form", http.StatusBadRequest)
		return
	}

	in := entry.UpdateInput{}
	if vals, ok := r.MultipartForm.Value["caption"]; ok && len(vals) > 0 {
		caption := vals[0]
		in.Caption = &caption
	}
	for _, id := range r.MultipartForm.Value["removeAssetIds"] {
		for _, part := range strings.Split(id, ",") {
			if part = strings.TrimSpace(part); part != "" {
				in.RemoveAssetIDs = append(in.RemoveAssetIDs, part)
			}
		}
	}

	uploads, closeAll, err := formUploads(r)
	if err != nil {
		http.Error(w, "bad file upload", http.StatusBadRequest)
		return
	}
	defer closeAll()
	in.Uploads = uploads

	e, err := h.Svc.Update(r.Context(), entryID, uid, in)
	if err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toEntryDTO(e))
}

func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	entryID := chi.URLParam(r, "entryID")

	if err := h.Svc.Delete(r.Context(), entryID, uid); err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseDateField(v string) (calendar.Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(v))
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.DateOf(t.Year(), int(t.Month()), t.Day()), nil
}

// formUploads opens every "file" part in form order. The returned closer
// releases all of them.
func formUploads(r *http.Request) ([]entry.Upload, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	var uploads []entry.Upload
	if r.MultipartForm == nil {
		return nil, closeAll, nil
	}
	for _, hdr := range r.MultipartForm.File["file"] {
		f, err := hdr.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		uploads = append(uploads, entry.Upload{
			Filename:    hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Data:        f,
		})
	}
	return uploads, closeAll, nil
}
