package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Yates-Labs/grompt/internal/prompt"
	"github.com/Yates-Labs/grompt/internal/provider"
	"github.com/Yates-Labs/grompt/internal/rephrase"
)

type RephraseRequest struct {
	Prompt string `json:"prompt"`

	// Optional overrides of the configured defaults.
	Model       string   `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`

	Canvas *prompt.Canvas `json:"canvas,omitempty"`
}

type RephraseResponse struct {
	Rephrased   string  `json:"rephrased"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type ModelsResponse struct {
	Default string   `json:"default"`
	Models  []string `json:"models"`
}

func (s *Server) handleRephrase(w http.ResponseWriter, r *http.Request) {
	var req RephraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error(), "")
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required", "")
		return
	}

	params := s.client.Resolve(rephrase.Params{Model: req.Model, MaxTokens: req.MaxTokens})
	params.Temperature = s.client.Defaults().Temperature
	if req.Temperature != nil {
		params.Temperature = *req.Temperature
	}
	if err := params.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	s.logger.Debug("rephrase request received",
		"model", params.Model,
		"temperature", params.Temperature,
		"max_tokens", params.MaxTokens,
		"canvas", req.Canvas != nil,
		"prompt_length", len(req.Prompt),
	)

	text, err := s.client.Rephrase(r.Context(), rephrase.Request{
		Prompt: req.Prompt,
		Params: params,
		APIKey: r.Header.Get(APIKeyHeader),
		Canvas: req.Canvas,
	})
	if err != nil {
		kind := rephrase.KindOf(err)
		s.logger.Error("rephrase request failed", "kind", kind.String(), "error", err)

		switch {
		case errors.Is(err, rephrase.ErrCredentialMissing):
			writeError(w, http.StatusUnauthorized, err.Error(), kind.String())
		case errors.Is(err, rephrase.ErrProviderCallFailed):
			writeError(w, http.StatusBadGateway, err.Error(), kind.String())
		default:
			writeError(w, http.StatusInternalServerError, "unexpected error", kind.String())
		}
		return
	}

	writeJSON(w, http.StatusOK, RephraseResponse{
		Rephrased:   text,
		Model:       params.Model,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ModelsResponse{
		Default: s.client.Defaults().Model,
		Models:  provider.KnownModels,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Kind: kind})
}
