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

package recipe

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rberrors "github.com/recipebook/recipebook/pkg/errors"
	"github.com/recipebook/recipebook/pkg/header"
)

// FileResult is the validation outcome of one recipe document.
type FileResult struct {
	File     string   `json:"file" yaml:"file"`
	Recipe   string   `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	Valid    bool     `json:"valid" yaml:"valid"`
	Problems []string `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// ReportSummary counts the documents of a Report.
type ReportSummary struct {
	Total    int           `json:"total" yaml:"total"`
	Valid    int           `json:"valid" yaml:"valid"`
	Invalid  int           `json:"invalid" yaml:"invalid"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Report is the result of validating a set of recipe documents.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Files   []FileResult  `json:"files" yaml:"files"`
	Summary ReportSummary `json:"summary" yaml:"summary"`
}

// Failed reports whether any document was invalid.
func (r *Report) Failed() bool {
	return r.Summary.Invalid > 0
}

// ValidateFiles loads every path and reports the problems of each document.
// A directory contributes the recipe documents it contains. A missing or
// unreadable file is reported as invalid, not returned as an error; only
// cancellation of ctx stops the run early.
func ValidateFiles(ctx context.Context, paths []string, version string) (*Report, error) {
	start := time.Now()
	files := expandPaths(paths)
	report := &Report{Files: make([]FileResult, 0, len(files))}
	report.Init(header.KindValidationReport, header.APIVersion, version)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, rberrors.Wrap(rberrors.ErrCodeTimeout, "validation canceled", err)
		}

		res := FileResult{File: path}
		rec, err := LoadFile(path)
		if err != nil {
			res.Problems = problems(err)
			report.Summary.Invalid++
			recipesRejected.Inc()
			slog.Debug("recipe invalid", "file", path, "problems", len(res.Problems))
		} else {
			res.Recipe = rec.Name
			res.Valid = true
			report.Summary.Valid++
			recipesLoaded.Inc()
		}
		report.Files = append(report.Files, res)
	}

	report.Summary.Total = len(report.Files)
	report.Summary.Duration = time.Since(start)
	return report, nil
}

func expandPaths(paths []string) []string {
	var files []string
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil || !fi.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			files = append(files, path)
			continue
		}
		for _, de := range entries {
			if !de.IsDir() && isRecipeFile(de.Name()) {
				files = append(files, filepath.Join(path, de.Name()))
			}
		}
	}
	return files
}

func problems(err error) []string {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, e := range verrs {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
