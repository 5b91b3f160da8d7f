package server

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kapu/marketpulse-go/internal/domain"
	"go.uber.org/zap"
)

type ReviewAnalyzer interface {
	Analyze(ctx context.Context, req domain.ReviewAnalysisRequest) (*domain.ReviewAnalysisResult, error)
}

type ListingGenerator interface {
	Generate(ctx context.Context, req domain.ListingRequest) (*domain.ListingResult, error)
}

type PredictionExplainer interface {
	Explain(ctx context.Context, req domain.PredictionRequest) (*domain.PredictionResult, error)
}

// Services holds the capability services behind the HTTP endpoints.
type Services struct {
	Reviews     ReviewAnalyzer
	Listings    ListingGenerator
	Predictions PredictionExplainer
}

// Info is the static runtime description reported by / and /health.
type Info struct {
	Port             int
	GeminiConfigured bool
	OpenAIFallback   bool
	CacheEnabled     bool
	CORSOrigins      []string
	// CircuitState reports the model circuit breaker state; nil in mock mode.
	CircuitState func() string
}

func (i Info) mode() string {
	if i.GeminiConfigured {
		return "production"
	}
	return "mock"
}

type Server struct {
	services Services
	info     Info
	logger   *zap.Logger
}

func New(services Services, info Info, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		services: services,
		info:     info,
		logger:   logger,
	}
}

// Router builds the HTTP handler with every endpoint and middleware.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.accessLogMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(s.corsMiddleware)

	r.HandleFunc("/", s.handleHome).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	r.HandleFunc("/api/analyze", s.handleAnalyze).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/generate-listing", s.handleGenerateListing).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/explain-prediction", s.handleExplainPrediction).Methods("POST", "OPTIONS")

	// Legacy route names
	r.HandleFunc("/analyze-reviews", s.handleAnalyze).Methods("POST", "OPTIONS")
	r.HandleFunc("/generate-listing", s.handleGenerateListing).Methods("POST", "OPTIONS")
	r.HandleFunc("/predict", s.handleExplainPrediction).Methods("POST", "OPTIONS")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
