// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	rberrors "github.com/recipebook/recipebook/pkg/errors"
)

// withMiddleware wraps handler with the standard chain. Panic recovery sits
// outside rate limiting so a panicking request has already been counted.
func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.metricsMiddleware(
		s.versionMiddleware(
			s.requestIDMiddleware(
				s.panicRecoveryMiddleware(
					s.rateLimitMiddleware(
						s.loggingMiddleware(handler),
					),
				),
			),
		),
	)
}

// versionMiddleware handles API version negotiation and sets version header
func (s *Server) versionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := negotiateAPIVersion(r)
		SetAPIVersionHeader(w, version)

		ctx := context.WithValue(r.Context(), contextKeyAPIVersion, version)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requestIDMiddleware keeps a valid X-Request-Id from the client and
// generates one otherwise.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		w.Header().Set("X-Request-Id", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// rateLimitMiddleware implements rate limiting
func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow() {
			rateLimitRejects.Inc()
			w.Header().Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, rberrors.ErrCodeRateLimitExceeded,
				"Rate limit exceeded", true, map[string]any{
					"limit": float64(s.config.RateLimit),
					"burst": s.config.RateLimitBurst,
				})
			return
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", int(s.config.RateLimit)))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", int(s.rateLimiter.Tokens())))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(time.Second).Unix()))

		next.ServeHTTP(w, r)
	}
}

// panicRecoveryMiddleware recovers from panics
func (s *Server) panicRecoveryMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				panicRecoveries.Inc()
				slog.Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"requestID", RequestID(r.Context()),
					"path", r.URL.Path,
					"method", r.Method,
				)
				WriteError(w, r, http.StatusInternalServerError, rberrors.ErrCodeInternal,
					"Internal server error", true, nil)
			}
		}()
		next.ServeHTTP(w, r)
	}
}

// loggingMiddleware logs requests
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := RequestID(r.Context())

		rw := newResponseWriter(w)

		slog.Debug("request started",
			"requestID", requestID,
			"method", r.Method,
			"path", r.URL.Path,
		)

		next.ServeHTTP(rw, r)

		slog.Debug("request completed",
			"requestID", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
