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
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")

		cfg := parseConfig()

		if cfg.Address != "" {
			t.Errorf("expected empty address, got %s", cfg.Address)
		}
		if cfg.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cfg.Port)
		}
		if cfg.RateLimit != 100 {
			t.Errorf("expected rate limit 100, got %v", cfg.RateLimit)
		}
		if cfg.RateLimitBurst != 200 {
			t.Errorf("expected rate limit burst 200, got %d", cfg.RateLimitBurst)
		}
		if cfg.ReadTimeout != 10*time.Second {
			t.Errorf("expected read timeout 10s, got %v", cfg.ReadTimeout)
		}
		if cfg.ReadHeaderTimeout != 5*time.Second {
			t.Errorf("expected read header timeout 5s, got %v", cfg.ReadHeaderTimeout)
		}
		if cfg.WriteTimeout != 30*time.Second {
			t.Errorf("expected write timeout 30s, got %v", cfg.WriteTimeout)
		}
		if cfg.IdleTimeout != 120*time.Second {
			t.Errorf("expected idle timeout 120s, got %v", cfg.IdleTimeout)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
		}
	})

	tests := []struct {
		name         string
		port         string
		shutdown     string
		wantPort     int
		wantShutdown time.Duration
	}{
		{name: "custom port", port: "9090", wantPort: 9090, wantShutdown: 30 * time.Second},
		{name: "invalid port uses default", port: "invalid", wantPort: 8080, wantShutdown: 30 * time.Second},
		{name: "out of range port uses default", port: "70000", wantPort: 8080, wantShutdown: 30 * time.Second},
		{name: "custom shutdown timeout", shutdown: "5", wantPort: 8080, wantShutdown: 5 * time.Second},
		{name: "non-positive shutdown timeout uses default", shutdown: "0", wantPort: 8080, wantShutdown: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", tt.shutdown)

			cfg := parseConfig()

			if cfg.Port != tt.wantPort {
				t.Errorf("expected port %d, got %d", tt.wantPort, cfg.Port)
			}
			if cfg.ShutdownTimeout != tt.wantShutdown {
				t.Errorf("expected shutdown timeout %v, got %v", tt.wantShutdown, cfg.ShutdownTimeout)
			}
		})
	}
}
