package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sozercan/npk-predictor/apimodels"
	"github.com/sozercan/npk-predictor/internal/form"
)

const maxBodyBytes = 1 << 16

type pageData struct {
	Title          string
	BannerImageURL string
	Fields         []form.Field
	Values         map[string]string
	Result         *apimodels.PredictionResponse
}

func (s *Server) renderPage(w http.ResponseWriter, req form.Request, result *apimodels.PredictionResponse) {
	data := pageData{
		Title:          s.cfg.UI.Title,
		BannerImageURL: s.cfg.UI.BannerImageURL,
		Fields:         form.Fields,
		Values:         req.Values(),
		Result:         result,
	}

	// Render to a buffer so a template failure never leaves half a page.
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		slog.Error("Page rendering failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, form.Defaults(), nil)
}

func (s *Server) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("Invalid form: %v", err), http.StatusBadRequest)
		return
	}

	req := form.FromValues(r.PostForm)
	result, err := s.predictor.Predict(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.renderPage(w, result.Inputs, result)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var body apimodels.PredictionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(&body)
	switch {
	case err != nil && !errors.Is(err, io.EOF):
	case dec.More():
		err = errors.New("unexpected data after JSON object")
	default:
		err = body.Validate()
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apimodels.ErrorResponse{Error: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	slog.Debug("Received prediction request", "request", body)

	result, err := s.predictor.Predict(r.Context(), body.Form())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apimodels.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apimodels.FieldsResponse{Fields: form.Fields})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apimodels.HealthResponse{
		Status: "ok",
		Model:  s.predictor.ModelName(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
