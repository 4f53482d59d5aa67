// Package server provides the HTTP JSON API of dream meanings.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/at-ishikawa/dreamer/internal/dream"
	"github.com/at-ishikawa/dreamer/internal/meaning"
	"github.com/at-ishikawa/dreamer/internal/translation"
)

// MeaningResolver resolves keywords and dream texts.
type MeaningResolver interface {
	Resolve(ctx context.Context, word, lang string) meaning.Entry
	Interpret(ctx context.Context, title, description, lang string) meaning.DreamMeanings
	Languages() []string
}

// Handler serves the meaning API.
type Handler struct {
	resolver MeaningResolver
	dreams   dream.DreamRepository
	meanings dream.MeaningRepository
	now      func() time.Time
}

// NewHandler creates a Handler. meanings may be nil to skip saving resolved meanings.
func NewHandler(resolver MeaningResolver, dreams dream.DreamRepository, meanings dream.MeaningRepository) *Handler {
	return &Handler{
		resolver: resolver,
		dreams:   dreams,
		meanings: meanings,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

type interpretRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Lang        string `json:"lang"`
}

type meaningsResponse struct {
	Success  bool            `json:"success"`
	DreamID  int64           `json:"dream_id,omitempty"`
	Keywords []string        `json:"keywords"`
	Meanings []meaning.Entry `json:"meanings"`
	Language string          `json:"language"`
}

type languagesResponse struct {
	Success   bool                   `json:"success"`
	Languages []translation.Language `json:"languages"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// GetMeaning handles GET /api/meanings/{word}.
func (h *Handler) GetMeaning(w http.ResponseWriter, r *http.Request) {
	entry := h.resolver.Resolve(r.Context(), mux.Vars(r)["word"], r.URL.Query().Get("lang"))
	if entry.Source == meaning.SourceError {
		writeJSON(w, http.StatusBadRequest, entry)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Interpret handles POST /api/meanings.
func (h *Handler) Interpret(w http.ResponseWriter, r *http.Request) {
	var req interpretRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "title or description is required")
		return
	}

	result := h.resolver.Interpret(r.Context(), req.Title, req.Description, req.Lang)
	writeJSON(w, http.StatusOK, newMeaningsResponse(0, result))
}

// GetDreamMeaning handles GET /api/dream-meaning/{id}. The resolved meanings are saved best-effort.
func (h *Handler) GetDreamMeaning(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid dream id")
		return
	}

	found, err := h.dreams.FindByID(r.Context(), id)
	if errors.Is(err, dream.ErrNotFound) {
		writeError(w, http.StatusNotFound, "dream not found")
		return
	}
	if err != nil {
		slog.Default().Error("failed to find a dream", "dream_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load the dream")
		return
	}

	result := h.resolver.Interpret(r.Context(), found.Title, found.Description, r.URL.Query().Get("lang"))
	if h.meanings != nil {
		records := dream.NewMeaningRecords(id, result.Meanings, h.now())
		if err := h.meanings.BatchUpsert(r.Context(), records); err != nil {
			slog.Default().Warn("failed to save dream meanings", "dream_id", id, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, newMeaningsResponse(id, result))
}

// GetLanguages handles GET /api/languages.
func (h *Handler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	codes := h.resolver.Languages()
	languages := make([]translation.Language, 0, len(codes))
	for _, code := range codes {
		languages = append(languages, translation.Language{Code: code, Name: translation.LanguageName(code)})
	}
	writeJSON(w, http.StatusOK, languagesResponse{Success: true, Languages: languages})
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func newMeaningsResponse(dreamID int64, result meaning.DreamMeanings) meaningsResponse {
	meanings := result.Meanings
	if meanings == nil {
		meanings = []meaning.Entry{}
	}
	keywords := result.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return meaningsResponse{
		Success:  true,
		DreamID:  dreamID,
		Keywords: keywords,
		Meanings: meanings,
		Language: result.Language,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Warn("failed to write a response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}
