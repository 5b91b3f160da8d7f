package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/kapu/marketpulse-go/internal/constants"
	"github.com/kapu/marketpulse-go/internal/domain"
	"github.com/kapu/marketpulse-go/internal/util"
	apperrors "github.com/kapu/marketpulse-go/pkg/errors"
	"go.uber.org/zap"
)

const internalErrorMessage = "internal server error"

type homeResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Mode      string            `json:"mode"`
	Endpoints map[string]string `json:"endpoints"`
}

type healthResponse struct {
	Status           string `json:"status"`
	Service          string `json:"service"`
	Port             int    `json:"port"`
	GeminiConfigured bool   `json:"gemini_configured"`
	OpenAIFallback   bool   `json:"openai_fallback"`
	CacheEnabled     bool   `json:"cache_enabled"`
	Mode             string `json:"mode"`
	CircuitState     string `json:"circuit_state,omitempty"`
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, homeResponse{
		Service: constants.ServiceInfo.Name,
		Version: constants.ServiceInfo.Version,
		Status:  "running",
		Mode:    s.info.mode(),
		Endpoints: map[string]string{
			"health":             "/health (GET)",
			"analyze":            "/api/analyze (POST)",
			"generate_listing":   "/api/generate-listing (POST)",
			"explain_prediction": "/api/explain-prediction (POST)",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:           "healthy",
		Service:          constants.ServiceInfo.Name,
		Port:             s.info.Port,
		GeminiConfigured: s.info.GeminiConfigured,
		OpenAIFallback:   s.info.OpenAIFallback,
		CacheEnabled:     s.info.CacheEnabled,
		Mode:             s.info.mode(),
	}
	if s.info.CircuitState != nil {
		resp.CircuitState = s.info.CircuitState()
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAnalyze handles POST /api/analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req domain.ReviewAnalysisRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	req.ProductReviews = util.NonEmpty(req.ProductReviews)
	req.CompetitorReviews = util.NonEmpty(req.CompetitorReviews)
	if len(req.ProductReviews) == 0 {
		s.respondError(w, r, apperrors.NewMissingFieldsError("productReviews"))
		return
	}

	result, err := s.services.Reviews.Analyze(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGenerateListing handles POST /api/generate-listing
func (s *Server) handleGenerateListing(w http.ResponseWriter, r *http.Request) {
	var req domain.ListingRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	req.ProductName = strings.TrimSpace(req.ProductName)
	req.Features = strings.TrimSpace(req.Features)

	var missing []string
	if req.ProductName == "" {
		missing = append(missing, "productName")
	}
	if req.Features == "" {
		missing = append(missing, "features")
	}
	if len(missing) > 0 {
		s.respondError(w, r, apperrors.NewMissingFieldsError(missing...))
		return
	}

	result, err := s.services.Listings.Generate(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleExplainPrediction handles POST /api/explain-prediction
func (s *Server) handleExplainPrediction(w http.ResponseWriter, r *http.Request) {
	var req domain.PredictionRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	req.ModelOutput = strings.TrimSpace(req.ModelOutput)
	req.InputFeatures = strings.TrimSpace(req.InputFeatures)

	var missing []string
	if req.ModelOutput == "" {
		missing = append(missing, "modelOutput")
	}
	if req.InputFeatures == "" {
		missing = append(missing, "inputFeatures")
	}
	if len(missing) > 0 {
		s.respondError(w, r, apperrors.NewMissingFieldsError(missing...))
		return
	}

	result, err := s.services.Predictions.Explain(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// decodeBody reads a size-limited JSON body into dest. An empty body decodes
// to the zero value so that the field checks report what is missing.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, constants.HTTPConfig.MaxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dest)
	if err == nil || stderrors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}

	s.logger.Debug("Invalid request body",
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusBadRequest, "invalid request body")
	return false
}

// respondError reports client errors verbatim and hides everything else
// behind a generic 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusCode(err)
	if status >= 400 && status < 500 {
		writeError(w, status, clientMessage(err))
		return
	}

	s.logger.Error("Request failed",
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, internalErrorMessage)
}

func clientMessage(err error) string {
	var validationErr *apperrors.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.Message
	}
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
