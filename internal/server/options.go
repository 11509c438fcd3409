package server

import (
	"log"
	"net/http"
	"time"

	"github.com/agbru/pellcalc/internal/logging"
	"github.com/agbru/pellcalc/internal/service"
)

// Option defines a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets a custom logger for the server using the unified logging
// interface. This is useful for testing or integrating with existing
// logging infrastructure.
//
// Parameters:
//   - logger: The logger to use. If nil, the default logger is used.
//
// Returns:
//   - Option: A functional option that configures the server's logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger sets a standard library log.Logger for the server.
// This provides backward compatibility with code using log.Logger.
//
// Parameters:
//   - logger: The standard log.Logger to use. If nil, the default logger is used.
//
// Returns:
//   - Option: A functional option that configures the server's logger.
func WithStdLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewStdLoggerAdapter(logger)
		}
	}
}

// WithService sets a custom service for the server.
// This enables dependency injection for testing with mock services.
//
// Parameters:
//   - svc: The service implementation to use.
//
// Returns:
//   - Option: A functional option that configures the server's service.
func WithService(svc service.Service) Option {
	return func(s *Server) {
		if svc != nil {
			s.service = svc
		}
	}
}

// WithTimeouts sets custom timeout configuration for the server.
// This allows fine-tuning server behavior for different deployment
// scenarios.
//
// Parameters:
//   - timeouts: The timeout configuration.
//
// Returns:
//   - Option: A functional option that configures the server's timeouts.
func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Server) {
		s.timeouts = timeouts
	}
}

// WithRateLimiter sets a custom rate limiter for the server.
//
// Parameters:
//   - rl: The rate limiter to use.
//
// Returns:
//   - Option: A functional option that configures the server's rate limiter.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) {
		s.rateLimiter = rl
	}
}

// WithSecurityConfig sets a custom security configuration for the server.
//
// Parameters:
//   - config: The security configuration.
//
// Returns:
//   - Option: A functional option that configures the server's security settings.
func WithSecurityConfig(config SecurityConfig) Option {
	return func(s *Server) {
		s.securityConfig = config
	}
}

// WithMaxD sets the maximum allowed value for the 'd' parameter.
// This helps prevent resource exhaustion via extremely hard equations.
//
// Parameters:
//   - maxD: The maximum allowed discriminant.
//
// Returns:
//   - Option: A functional option that configures the maximum D value.
func WithMaxD(maxD uint64) Option {
	return func(s *Server) {
		s.securityConfig.MaxDValue = maxD
	}
}

// Timeouts holds timeout configuration for the HTTP server.
// These can be customized via functional options for testing or deployment
// needs.
type Timeouts struct {
	// RequestTimeout is the maximum duration for a single request.
	RequestTimeout time.Duration
	// ShutdownTimeout is the maximum duration allowed for graceful shutdown.
	ShutdownTimeout time.Duration
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
}

func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  5 * time.Minute,
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}

// loggingMiddleware wraps an http.HandlerFunc to log the details of each
// request. It records the HTTP method, URL path, remote address, and the
// duration required to process the request.
//
// Parameters:
//   - next: The next handler in the chain.
//
// Returns:
//   - http.HandlerFunc: A new handler with logging capability.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.logger.Printf("%s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

		next(w, r)

		duration := time.Since(start)
		s.logger.Printf("%s %s completed in %v", r.Method, r.URL.Path, duration)
	}
}
