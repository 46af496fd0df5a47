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

package calc

import (
	"context"
	"log/slog"
	"mime"
	"net/http"

	"github.com/recipebook/recipebook/pkg/defaults"
	rberrors "github.com/recipebook/recipebook/pkg/errors"
	"github.com/recipebook/recipebook/pkg/mixed"
	"github.com/recipebook/recipebook/pkg/serializer"
	"github.com/recipebook/recipebook/pkg/server"
)

// Request is the body of POST /v1/amounts. GET takes the same fields as
// query parameters, except Operations.
type Request struct {
	Value string `json:"value" yaml:"value"`

	// Scale multiplies the value before any other operation.
	Scale *mixed.Number `json:"scale,omitempty" yaml:"scale,omitempty"`

	// Op and Operand apply a single operation after Scale.
	Op      string        `json:"op,omitempty" yaml:"op,omitempty"`
	Operand *mixed.Number `json:"operand,omitempty" yaml:"operand,omitempty"`

	// Operations run last, in order.
	Operations []Step `json:"operations,omitempty" yaml:"operations,omitempty"`
}

// Step is one entry of Request.Operations. Operand is a pointer so a
// missing or null operand is rejected instead of read as zero.
type Step struct {
	Op      string        `json:"op" yaml:"op"`
	Operand *mixed.Number `json:"operand" yaml:"operand"`
}

// Plan returns the operations the request describes, in evaluation order.
func (req *Request) Plan() ([]Operation, error) {
	var ops []Operation
	if req.Scale != nil {
		ops = append(ops, Operation{Op: OpMul, Operand: *req.Scale})
	}

	switch {
	case req.Op != "" && req.Operand == nil:
		return nil, rberrors.New(rberrors.ErrCodeInvalidRequest, "op requires an operand")
	case req.Op == "" && req.Operand != nil:
		return nil, rberrors.New(rberrors.ErrCodeInvalidRequest, "operand requires an op")
	case req.Op != "":
		op, err := ParseOp(req.Op)
		if err != nil {
			return nil, err
		}
		ops = append(ops, Operation{Op: op, Operand: *req.Operand})
	}

	for i, s := range req.Operations {
		op, err := ParseOp(s.Op)
		if err != nil {
			return nil, err
		}
		if s.Operand == nil {
			return nil, rberrors.NewWithContext(rberrors.ErrCodeInvalidRequest,
				"operation requires an operand", map[string]any{"step": i, "op": s.Op})
		}
		ops = append(ops, Operation{Op: op, Operand: *s.Operand})
	}
	return ops, nil
}

// Handler serves the amount calculator.
type Handler struct {
	// Version is stamped into result headers.
	Version string
}

// HandleAmounts evaluates an amount given as query parameters (GET) or a
// JSON/YAML Request body (POST) and responds with a Result.
func (h *Handler) HandleAmounts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.AmountHandlerTimeout)
	defer cancel()

	var req *Request
	var err error

	switch r.Method {
	case http.MethodGet:
		req, err = requestFromQuery(r)
	case http.MethodPost:
		req, err = requestFromBody(r)
	default:
		w.Header().Set("Allow", "GET, POST")
		server.WriteError(w, r, http.StatusMethodNotAllowed, rberrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{"GET", "POST"},
			})
		return
	}
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid amount request", nil)
		return
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		server.WriteErrorFromErr(w, r, rberrors.Wrap(rberrors.ErrCodeTimeout, "request timed out", ctxErr), "", nil)
		return
	}

	ops, err := req.Plan()
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid amount request", nil)
		return
	}

	res, err := Evaluate(req.Value, ops...)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to evaluate amount", nil)
		return
	}

	slog.Debug("amount evaluated",
		"input", res.Input,
		"operations", len(ops),
		"canonical", res.Canonical,
	)

	serializer.RespondJSON(w, http.StatusOK, res.Stamp(h.Version))
}

func requestFromQuery(r *http.Request) (*Request, error) {
	q := r.URL.Query()
	req := &Request{
		Value: q.Get("value"),
		Op:    q.Get("op"),
	}
	if !q.Has("value") {
		return nil, rberrors.New(rberrors.ErrCodeInvalidRequest, "value parameter is required")
	}

	for name, dst := range map[string]**mixed.Number{"scale": &req.Scale, "operand": &req.Operand} {
		if !q.Has(name) {
			continue
		}
		n, err := mixed.Parse(q.Get(name))
		if err != nil {
			return nil, rberrors.WrapWithContext(rberrors.ErrCodeInvalidRequest, "invalid "+name, err,
				map[string]any{name: q.Get(name)})
		}
		*dst = &n
	}
	return req, nil
}

func requestFromBody(r *http.Request) (*Request, error) {
	defer r.Body.Close()

	format := serializer.FormatJSON
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		switch mediaType {
		case "application/yaml", "application/x-yaml", "text/yaml":
			format = serializer.FormatYAML
		}
	}

	reader, err := serializer.NewReader(format, http.MaxBytesReader(nil, r.Body, defaults.MaxRecipeFileSize),
		serializer.WithStrict(true))
	if err != nil {
		return nil, rberrors.Wrap(rberrors.ErrCodeInternal, "failed to create reader", err)
	}

	var req Request
	if err := reader.Deserialize(&req); err != nil {
		return nil, rberrors.Wrap(rberrors.ErrCodeInvalidRequest, "invalid request body", err)
	}
	return &req, nil
}
