package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"magic_villa/internal/app"
	"magic_villa/internal/domain"
)

const (
	villaBasePath  = "/api/VillaAPI"
	timeoutMessage = "request timed out"
	maxBodyBytes  = 1 << 20
)

type Handlers struct {
	Q *app.QueryService
	C *app.CommandService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", h.healthz)
	s.mux.Route(villaBasePath, func(r chi.Router) {
		r.Get("/", h.listVillas)
		r.Post("/", h.createVilla)
		r.Get("/{id}", h.getVilla)
		r.Put("/{id}", h.updateVilla)
		r.Patch("/{id}", h.patchVilla)
		r.Delete("/{id}", h.deleteVilla)
	})
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.Q.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeEnvelope(w, http.StatusOK, "ok", nil)
}

// fail maps a service error onto the envelope. storeStatus is used for store
// failures, which differ per endpoint.
func fail(w http.ResponseWriter, r *http.Request, err error, storeStatus int) {
	var ve *domain.ValidationError
	var se *domain.StoreError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Messages()...)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, timeoutMessage)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, domain.ErrNotFound.Error())
	case errors.As(err, &se):
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("store failure")
		writeError(w, storeStatus, se.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// pathID accepts an optional leading '-' followed by digits only.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || !isInteger(raw) {
		writeError(w, http.StatusBadRequest, "id must be a number")
		return 0, false
	}
	return id, true
}

func isInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// decodeBody decodes a JSON body into dst, a pointer to a pointer so that a missing
// body and a literal null both leave it nil.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (h *Handlers) listVillas(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.List(r.Context())
	if err != nil {
		fail(w, r, err, http.StatusNotFound)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) getVilla(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.Q.Get(r.Context(), id)
	if err != nil {
		fail(w, r, err, http.StatusNotFound)
		return
	}
	writeCacheable(w, r, v)
}

func (h *Handlers) createVilla(w http.ResponseWriter, r *http.Request) {
	var in *app.VillaCreateDTO
	if !decodeBody(w, r, &in) {
		return
	}
	v, err := h.C.Create(r.Context(), in)
	if err != nil {
		fail(w, r, err, http.StatusBadRequest)
		return
	}
	w.Header().Set("Location", villaBasePath+"/"+strconv.FormatInt(v.ID, 10))
	writeEnvelope(w, http.StatusCreated, v, nil)
}

func (h *Handlers) updateVilla(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in *app.VillaUpdateDTO
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.C.Update(r.Context(), id, in); err != nil {
		fail(w, r, err, http.StatusNotAcceptable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) patchVilla(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	ops, err := app.ParsePatch(body)
	if err != nil {
		fail(w, r, err, http.StatusBadRequest)
		return
	}
	if err := h.C.Patch(r.Context(), id, ops); err != nil {
		fail(w, r, err, http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteVilla(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.C.Delete(r.Context(), id); err != nil {
		fail(w, r, err, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
