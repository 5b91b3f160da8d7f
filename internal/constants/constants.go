package constants

import "time"

var ServiceInfo = struct {
	Name    string
	Version string
}{
	Name:    "MarketPulse AI Backend",
	Version: "1.0.0",
}

var ReviewInputLimits = struct {
	ProductRunes    int
	CompetitorRunes int
	ExcerptRunes    int
}{
	ProductRunes:    5000, // 상품 리뷰 최대 길이
	CompetitorRunes: 3000, // 경쟁사 리뷰 최대 길이
	ExcerptRunes:    100,
}

var ListingShape = struct {
	Variants    int
	MinBullets  int
	MaxBullets  int
	MinKeywords int
	MaxKeywords int
}{
	Variants:    3,
	MinBullets:  5,
	MaxBullets:  7,
	MinKeywords: 5,
	MaxKeywords: 7,
}

var PredictionShape = struct {
	MinActions int
	MaxActions int
}{
	MinActions: 3,
	MaxActions: 5,
}

var HTTPConfig = struct {
	MaxBodyBytes    int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}{
	MaxBodyBytes:    1 << 20,
	ReadTimeout:     15 * time.Second,
	WriteTimeout:    90 * time.Second, // 모델 호출 시간 포함
	IdleTimeout:     60 * time.Second,
	ShutdownTimeout: 10 * time.Second,
}

var RedisConfig = struct {
	ReadyTimeout time.Duration
	KeyPrefix    string
}{
	ReadyTimeout: 5 * time.Second,
	KeyPrefix:    "marketpulse:gen:",
}

var CircuitBreakerConfig = struct {
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}{
	ResetTimeout:        30 * time.Second, // 기본 재시도 대기 시간
	RateLimitTimeout:    10 * time.Minute, // 429 전용 타임아웃
	HealthCheckInterval: 2 * time.Minute,
	HealthCheckTimeout:  10 * time.Second,
}
