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

package result

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/recipebook/recipebook/pkg/header"
)

// Page is one rendered recipe page.
type Page struct {
	// Recipe is the recipe name.
	Recipe string `json:"recipe" yaml:"recipe"`

	// Source is the recipe document the page was rendered from.
	Source string `json:"source" yaml:"source"`

	// File is the page path relative to the output directory.
	File string `json:"file" yaml:"file"`

	// Image is the copied image relative to the output directory, if any.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Skipped is a recipe document left out of the build.
type Skipped struct {
	Source string `json:"source" yaml:"source"`
	Reason string `json:"reason" yaml:"reason"`
}

// Published records where a built site was pushed.
type Published struct {
	// Reference is the pushed image reference, registry/repository:tag.
	Reference string `json:"reference" yaml:"reference"`
	Digest    string `json:"digest" yaml:"digest"`

	// StorePath is the local OCI Image Layout, when one was kept.
	StorePath string `json:"store_path,omitempty" yaml:"store_path,omitempty"`
}

// Output contains the results of a site build.
type Output struct {
	header.Header `json:",inline" yaml:",inline"`

	// Title is the site title.
	Title string `json:"title" yaml:"title"`

	// OutputDir is the directory the site was written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Pages contains one entry per rendered recipe, sorted by file.
	Pages []*Page `json:"pages" yaml:"pages"`

	// Files lists every written file relative to OutputDir, sorted.
	Files []string `json:"files" yaml:"files"`

	// TotalSize is the total size in bytes of all written files.
	TotalSize int64 `json:"total_size_bytes" yaml:"total_size_bytes"`

	// TotalFiles is the total count of written files.
	TotalFiles int `json:"total_files" yaml:"total_files"`

	// TotalDuration is the time taken by the build.
	TotalDuration time.Duration `json:"total_duration" yaml:"total_duration"`

	// Skipped lists recipe documents that were not built.
	Skipped []Skipped `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	// Checksums is the checksum file relative to OutputDir, if written.
	Checksums string `json:"checksums,omitempty" yaml:"checksums,omitempty"`

	// Published is set once the site has been pushed to a registry.
	Published *Published `json:"published,omitempty" yaml:"published,omitempty"`
}

// New returns an empty Output for a build of title into dir.
func New(title, dir, version string) *Output {
	o := &Output{
		Title:     title,
		OutputDir: dir,
		Pages:     make([]*Page, 0),
		Files:     make([]string, 0),
	}
	o.Init(header.KindBuildResult, header.APIVersion, version)
	return o
}

// AddFile records a written file. Paths inside OutputDir are stored
// relative to it; any other path is kept as given. Not safe for concurrent use.
func (o *Output) AddFile(path string, size int64) {
	if rel, ok := o.relative(path); ok {
		path = rel
	}
	o.Files = append(o.Files, filepath.ToSlash(path))
	o.TotalSize += size
	o.TotalFiles++
}

// relative returns path relative to OutputDir when path lies inside it.
func (o *Output) relative(path string) (string, bool) {
	if o.OutputDir == "" || filepath.IsAbs(path) != filepath.IsAbs(o.OutputDir) {
		return "", false
	}
	rel, err := filepath.Rel(o.OutputDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// AddPage records a rendered recipe page. The page file itself is recorded
// separately with AddFile.
func (o *Output) AddPage(p *Page) {
	o.Pages = append(o.Pages, p)
}

// Sort orders Files and Pages so output is stable across parallel builds.
func (o *Output) Sort() {
	sort.Strings(o.Files)
	sort.Slice(o.Pages, func(i, j int) bool {
		return o.Pages[i].File < o.Pages[j].File
	})
}

// HasSkipped returns true if any recipe document was left out.
func (o *Output) HasSkipped() bool {
	return len(o.Skipped) > 0
}

// Summary returns a human-readable summary of the build.
func (o *Output) Summary() string {
	s := fmt.Sprintf(
		"Built %d %s, %d %s (%s) in %v.",
		len(o.Pages), plural(len(o.Pages), "page", "pages"),
		o.TotalFiles, plural(o.TotalFiles, "file", "files"),
		formatBytes(o.TotalSize),
		o.TotalDuration.Round(time.Millisecond),
	)
	if o.HasSkipped() {
		s += fmt.Sprintf(" Skipped %d %s.", len(o.Skipped), plural(len(o.Skipped), "document", "documents"))
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// formatBytes formats bytes into human-readable format.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
