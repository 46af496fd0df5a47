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

package checksum

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ChecksumFileName is the standard name for checksum files.
const ChecksumFileName = "checksums.txt"

// GenerateChecksums writes checksums.txt into siteDir covering files, which
// may be absolute or relative to siteDir. It returns the checksum file path.
func GenerateChecksums(ctx context.Context, siteDir string, files []string) (string, error) {
	lines := make([]string, 0, len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		abs := file
		if !filepath.IsAbs(file) {
			abs = filepath.Join(siteDir, file)
		}

		sum, err := fileSum(abs)
		if err != nil {
			return "", fmt.Errorf("failed to read %s for checksum: %w", file, err)
		}

		relPath, err := filepath.Rel(siteDir, abs)
		if err != nil {
			relPath = file
		}

		lines = append(lines, fmt.Sprintf("%s  %s", sum, filepath.ToSlash(relPath)))
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i][sha256.Size*2+2:] < lines[j][sha256.Size*2+2:]
	})

	checksumPath := GetChecksumFilePath(siteDir)
	content := strings.Join(lines, "\n") + "\n"

	if err := os.WriteFile(checksumPath, []byte(content), 0o644); err != nil { //nolint:gosec // published with the site
		return "", fmt.Errorf("failed to write checksums: %w", err)
	}

	slog.Debug("checksums generated",
		"file_count", len(lines),
		"path", checksumPath,
	)

	return checksumPath, nil
}

// Verify recomputes every digest listed in siteDir's checksums.txt and
// reports the first mismatch or unreadable file.
func Verify(ctx context.Context, siteDir string) error {
	f, err := os.Open(GetChecksumFilePath(siteDir))
	if err != nil {
		return fmt.Errorf("failed to open checksums: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled: %w", err)
		}

		text := scanner.Text()
		if text == "" {
			continue
		}
		want, rel, ok := strings.Cut(text, "  ")
		if !ok || len(want) != sha256.Size*2 {
			return fmt.Errorf("malformed checksum line %d: %q", line, text)
		}

		got, err := fileSum(filepath.Join(siteDir, filepath.FromSlash(rel)))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}
		if got != want {
			return fmt.Errorf("checksum mismatch for %s", rel)
		}
	}
	return scanner.Err()
}

// GetChecksumFilePath returns the full path to the checksums.txt file
// in the given site directory.
func GetChecksumFilePath(siteDir string) string {
	return filepath.Join(siteDir, ChecksumFileName)
}

func fileSum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
