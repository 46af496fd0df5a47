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
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	rberrors "github.com/recipebook/recipebook/pkg/errors"
	"github.com/recipebook/recipebook/pkg/serializer"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes an error response with the given status and code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code rberrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps err to a response. A StructuredError supplies the
// code, message and context; anything else is reported as INTERNAL with
// fallbackMessage. The cause text is added to details under "error".
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extraDetails map[string]any) {
	var se *rberrors.StructuredError
	if errors.As(err, &se) {
		details := mergeDetails(se.Context, extraDetails)
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), details)
		return
	}

	details := extraDetails
	if err != nil {
		details = mergeDetails(extraDetails, map[string]any{"error": err.Error()})
	}
	WriteError(w, r, http.StatusInternalServerError, rberrors.ErrCodeInternal, fallbackMessage, true, details)
}

// HTTPStatusFromCode returns the HTTP status for an error code.
func HTTPStatusFromCode(code rberrors.ErrorCode) int {
	switch code {
	case rberrors.ErrCodeInvalidRequest, rberrors.ErrCodeValidation:
		return http.StatusBadRequest
	case rberrors.ErrCodeNotFound:
		return http.StatusNotFound
	case rberrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case rberrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case rberrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case rberrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code rberrors.ErrorCode) bool {
	switch code {
	case rberrors.ErrCodeTimeout, rberrors.ErrCodeUnavailable, rberrors.ErrCodeRateLimitExceeded, rberrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
