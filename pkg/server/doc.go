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

// Package server is the HTTP host for the recipebook preview server.
//
// It owns the lifecycle and cross-cutting concerns. Application routes are
// supplied by the caller through WithHandler, and a built site directory can
// be served at "/" through WithSiteDir.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("recipebookd"),
//	    server.WithVersion(version),
//	    server.WithSiteDir("build"),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/amounts": handleAmounts,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run stops on context cancellation, SIGINT or SIGTERM and shuts down within
// Config.ShutdownTimeout.
//
// # Middleware
//
// Application routes, including "/", pass through, outermost first:
//
//  1. metrics: recipebook_http_requests_total, request duration, in-flight gauge
//  2. version: negotiates application/vnd.recipebook.v1+json, sets X-API-Version
//  3. request ID: keeps a valid X-Request-Id UUID or generates one
//  4. panic recovery: 500 INTERNAL plus recipebook_panic_recoveries_total
//  5. rate limit: token bucket (golang.org/x/time/rate), 429 with Retry-After
//  6. logging: debug-level request start and completion
//
// /health, /ready and /metrics bypass the chain.
//
// # Errors
//
// Every error reply is an ErrorResponse:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "invalid amount",
//	  "details": {"error": "malformed literal: \"2 1/\""},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-15T10:30:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr maps StructuredError codes to HTTP statuses with
// HTTPStatusFromCode.
//
// # Configuration
//
// NewConfig reads PORT and SHUTDOWN_TIMEOUT_SECONDS from the environment.
// Timeouts default to the values in pkg/defaults.
package server
