package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/pellcalc/internal/service"
	"github.com/agbru/pellcalc/pkg/models"
)

// DefaultMethod is used when a solve request does not name a method.
const DefaultMethod = "fastexp"

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is
// healthy.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleMethods returns the list of available solver methods.
// It queries the internal registry and returns the keys as a JSON array.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	methods := s.factory.List()

	response := map[string]any{
		"methods": methods,
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleSolve processes requests to solve a Pell equation at a given index.
// It parses the query parameters 'd' (the discriminant), 'k' (the index,
// defaulting to 1), and 'method', executes the solver, and returns the
// result in JSON format.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Parse and validate parameters using helper
	d, k, method, err := parseSolveParams(r)
	if err != nil {
		if parseErr, ok := err.(ParamParseError); ok {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	// Create a context with timeout for the solve
	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	// Perform the solve
	start := time.Now()
	sol, err := s.service.Solve(ctx, method, d, k)
	duration := time.Since(start)

	// Handle limit exceeded error
	if errors.Is(err, service.ErrMaxDiscriminantExceeded) {
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Value of 'd' exceeds maximum allowed (%d). This limit prevents resource exhaustion.", s.securityConfig.MaxDValue))
		return
	}

	// Build and send response using helper
	resp := buildSolveResponse(d, k, method, sol, duration, err)
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleSolutions processes requests for the first N solutions of a Pell
// equation. It parses the query parameters 'd' (the discriminant) and
// 'count', executes the batch generation, and returns the result in JSON
// format.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleSolutions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	d, count, err := parseSolutionsParams(r)
	if err != nil {
		if parseErr, ok := err.(ParamParseError); ok {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	sols, err := s.service.Solutions(ctx, d, count)
	duration := time.Since(start)

	if errors.Is(err, service.ErrMaxDiscriminantExceeded) {
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Value of 'd' exceeds maximum allowed (%d). This limit prevents resource exhaustion.", s.securityConfig.MaxDValue))
		return
	}
	if errors.Is(err, service.ErrMaxCountExceeded) {
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Value of 'count' exceeds maximum allowed (%d). This limit prevents resource exhaustion.", s.securityConfig.MaxSolutionCount))
		return
	}

	resp := models.SolutionsResponse{
		D:        d,
		Count:    count,
		Duration: duration.String(),
	}
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Solutions = sols
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// parseSolveParams extracts and validates the solve parameters from the
// request.
//
// Parameters:
//   - r: The HTTP request containing query parameters.
//
// Returns:
//   - d: The parsed discriminant.
//   - k: The parsed solution index (defaults to 1).
//   - method: The method name (defaults to DefaultMethod).
//   - err: A ParamParseError if validation fails, nil otherwise.
func parseSolveParams(r *http.Request) (d, k uint64, method string, err error) {
	dStr := r.URL.Query().Get("d")
	if dStr == "" {
		return 0, 0, "", ParamParseError{
			Message:    "Missing 'd' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}

	d, parseErr := strconv.ParseUint(dStr, 10, 64)
	if parseErr != nil {
		// strconv.ParseUint rejects negative signs, enforcing non-negative
		// inputs as required.
		return 0, 0, "", ParamParseError{
			Message:    "Invalid 'd' parameter: must be a positive integer",
			StatusCode: http.StatusBadRequest,
		}
	}

	k = 1
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		k, parseErr = strconv.ParseUint(kStr, 10, 64)
		if parseErr != nil {
			return 0, 0, "", ParamParseError{
				Message:    "Invalid 'k' parameter: must be a positive integer",
				StatusCode: http.StatusBadRequest,
			}
		}
	}

	method = r.URL.Query().Get("method")
	if method == "" {
		method = DefaultMethod
	}

	return d, k, method, nil
}

// parseSolutionsParams extracts and validates the batch parameters from the
// request.
//
// Parameters:
//   - r: The HTTP request containing query parameters.
//
// Returns:
//   - d: The parsed discriminant.
//   - count: The parsed solution count.
//   - err: A ParamParseError if validation fails, nil otherwise.
func parseSolutionsParams(r *http.Request) (d uint64, count int, err error) {
	dStr := r.URL.Query().Get("d")
	if dStr == "" {
		return 0, 0, ParamParseError{
			Message:    "Missing 'd' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}
	d, parseErr := strconv.ParseUint(dStr, 10, 64)
	if parseErr != nil {
		return 0, 0, ParamParseError{
			Message:    "Invalid 'd' parameter: must be a positive integer",
			StatusCode: http.StatusBadRequest,
		}
	}

	countStr := r.URL.Query().Get("count")
	if countStr == "" {
		return 0, 0, ParamParseError{
			Message:    "Missing 'count' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}
	count, atoiErr := strconv.Atoi(countStr)
	if atoiErr != nil || count < 0 {
		return 0, 0, ParamParseError{
			Message:    "Invalid 'count' parameter: must be a non-negative integer",
			StatusCode: http.StatusBadRequest,
		}
	}

	return d, count, nil
}

// buildSolveResponse constructs the response struct for a solve request.
//
// Parameters:
//   - d: The discriminant that was solved.
//   - k: The solution index.
//   - method: The method name used.
//   - sol: The solution (zero value if an error occurred).
//   - duration: The time taken for solving.
//   - err: Any error that occurred during solving.
//
// Returns:
//   - models.SolveResponse: The constructed response struct.
func buildSolveResponse(d, k uint64, method string, sol models.Solution, duration time.Duration, err error) models.SolveResponse {
	resp := models.SolveResponse{
		D:        d,
		K:        k,
		Method:   method,
		Duration: duration.String(),
	}

	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Solution = &sol
		resp.Digits = len(sol.X.String())
	}

	return resp
}

// writeJSONResponse helper function to write a JSON response with the
// correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
