package rng

import "go.uber.org/zap"

// LoggedSource wraps a Source and logger so every draw is auditable.
// All draws are logged at debug level with the interval and the drawn value.
type LoggedSource struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedSource creates a LoggedSource that draws from src and logs each
// draw to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) *LoggedSource {
	return &LoggedSource{src: src, logger: logger}
}

// UniformFloat64 delegates to the wrapped Source and logs the result.
//
// Postcondition: exactly one draw from the wrapped Source per call.
func (s *LoggedSource) UniformFloat64(low, high float64) float64 {
	v := s.src.UniformFloat64(low, high)
	s.logger.Debug("randomness draw",
		zap.Float64("low", low),
		zap.Float64("high", high),
		zap.Float64("value", v),
	)
	return v
}
