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

package serializer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/recipebook/recipebook/pkg/defaults"
)

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}

const (
	HttpReaderUserAgent = "recipebook/1.0"

	// HttpReaderDefaultMaxBytes caps the size of a downloaded document.
	HttpReaderDefaultMaxBytes = 10 * defaults.MaxRecipeFileSize
)

// HttpReaderOption defines a configuration option for HttpReader.
type HttpReaderOption func(*HttpReader)

// HttpReader fetches remote recipe and configuration documents.
type HttpReader struct {
	UserAgent          string
	TotalTimeout       time.Duration
	MaxBytes           int64
	InsecureSkipVerify bool
	Client             *http.Client
}

// WithMaxBytes caps the size of a downloaded document.
func WithMaxBytes(n int64) HttpReaderOption {
	return func(r *HttpReader) {
		r.MaxBytes = n
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(skip bool) HttpReaderOption {
	return func(r *HttpReader) {
		r.InsecureSkipVerify = skip
	}
}

// NewHttpReader creates a new HttpReader with the specified options.
func NewHttpReader(options ...HttpReaderOption) *HttpReader {
	r := &HttpReader{
		UserAgent:    HttpReaderUserAgent,
		TotalTimeout: defaults.HTTPClientTimeout,
		MaxBytes:     HttpReaderDefaultMaxBytes,
	}

	for _, opt := range options {
		opt(r)
	}

	if r.Client == nil {
		r.Client = &http.Client{
			Timeout:   r.TotalTimeout,
			Transport: newDefaultHTTPTransport(r.InsecureSkipVerify),
		}
	}
	return r
}

func newDefaultHTTPTransport(insecure bool) *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,

		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,

		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: insecure, //nolint:gosec // opt-in for local registries
		},
	}
}

// Read fetches data from the specified URL and returns it as a byte slice.
func (r *HttpReader) Read(url string) ([]byte, error) {
	return r.ReadWithContext(context.Background(), url)
}

// ReadWithContext fetches data from the specified URL and returns it as a byte slice.
// The request is bound to the provided context for cancellation and deadlines.
func (r *HttpReader) ReadWithContext(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if r.Client == nil {
		return nil, fmt.Errorf("http client is nil")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed for url %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch data: status %s", resp.Status)
	}

	body := io.Reader(resp.Body)
	if r.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, r.MaxBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if r.MaxBytes > 0 && int64(len(data)) > r.MaxBytes {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, r.MaxBytes)
	}

	return data, nil
}

// Download reads data from the specified URL and writes it to the given file path.
func (r *HttpReader) Download(url, filePath string) error {
	return r.DownloadWithContext(context.Background(), url, filePath)
}

// DownloadWithContext reads data from the specified URL and writes it to the given file path.
// The request is bound to the provided context for cancellation and deadlines.
func (r *HttpReader) DownloadWithContext(ctx context.Context, url, filePath string) error {
	data, err := r.ReadWithContext(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to read from url %s: %w", url, err)
	}

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	return nil
}
