// Package server exposes the tutor over HTTP. Handlers translate between the
// JSON request/response contracts and the core's typed results; all domain
// decisions stay in the core.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/w-h-a/tutor"
	"github.com/w-h-a/tutor/corpus"
	"github.com/w-h-a/tutor/generator"
)

type Server struct {
	options Options
	tutor   *tutor.Tutor
	http    *http.Server
}

type documentPayload struct {
	Text     string `json:"text"`
	FileType string `json:"file_type"`
}

type uploadRequest struct {
	Documents []documentPayload `json:"documents"`
}

type queryRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

type quizRequest struct {
	Content      string `json:"content"`
	NumQuestions int    `json:"num_questions"`
	Language     string `json:"language"`
}

// Router builds the full route table. It is exported so tests can drive the
// handlers without a listening socket.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/upload", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/api/query", s.handleQuery).Methods(http.MethodPost)
	r.HandleFunc("/api/generate-questions", s.handleGenerateQuestions).Methods(http.MethodPost)
	r.HandleFunc("/api/clear-data", s.handleClearData).Methods(http.MethodGet)

	return r
}

func (s *Server) Run(ctx context.Context) error {
	var handler http.Handler = s.Router()
	for i := len(s.options.Middleware) - 1; i >= 0; i-- {
		handler = s.options.Middleware[i](handler)
	}

	s.http = &http.Server{
		Addr:    s.options.Address,
		Handler: handler,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("address", s.options.Address).Msg("listening")
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return s.http.Shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "course tutor api"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	docs := make([]corpus.Document, 0, len(req.Documents))
	for _, d := range req.Documents {
		if len(d.Text) == 0 {
			continue
		}
		docs = append(docs, corpus.Document{RawText: d.Text, FileType: d.FileType})
	}

	if len(docs) == 0 {
		writeError(w, http.StatusBadRequest, "no document text provided")
		return
	}

	n, err := s.tutor.Ingest(r.Context(), docs)
	if err != nil {
		log.Error().Err(err).Msg("ingest failed")
		writeError(w, http.StatusInternalServerError, "failed to process course material")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "course material processed",
		"chunks":  n,
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	answer, err := s.tutor.Ask(r.Context(), req.SessionID, req.Question)
	if err != nil {
		status, msg := statusFor(err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ext, err := s.tutor.GenerateQuiz(r.Context(), req.Content, req.NumQuestions, req.Language)
	if err != nil {
		status, msg := statusFor(err)
		writeError(w, status, msg)
		return
	}

	if ext.Len() == 0 {
		// mirror success shape so clients key off "error" presence
		writeJSON(w, http.StatusOK, map[string]string{
			"error": "no questions could be generated, please verify course material is uploaded",
		})
		return
	}

	writeJSON(w, http.StatusOK, ext)
}

func (s *Server) handleClearData(w http.ResponseWriter, r *http.Request) {
	if err := s.tutor.Clear(); err != nil {
		log.Error().Err(err).Msg("clear failed")
		writeError(w, http.StatusInternalServerError, "failed to clear data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "all data cleared"})
}

// statusFor maps core failures onto HTTP codes. Upstream model failures are
// bad-gateway since the fault is past this service.
func statusFor(err error) (int, string) {
	var rateLimited *generator.RateLimited
	var transport *generator.TransportFailure
	var terminal *generator.TerminalAPIError

	switch {
	case errors.Is(err, tutor.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, tutor.ErrMissingCorpus):
		return http.StatusBadRequest, "no course material uploaded yet"
	case errors.As(err, &rateLimited), errors.As(err, &transport), errors.As(err, &terminal):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func New(t *tutor.Tutor, opts ...Option) *Server {
	if t == nil {
		panic("tutor is required")
	}

	return &Server{
		options: NewOptions(opts...),
		tutor:   t,
	}
}
