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

package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/recipebook/recipebook/pkg/errors"
	"github.com/recipebook/recipebook/pkg/recipe"
	"github.com/recipebook/recipebook/pkg/site/checksum"
	"github.com/recipebook/recipebook/pkg/site/config"
	"github.com/recipebook/recipebook/pkg/site/result"
)

// StaticDirName is the directory inside the build that receives the static files.
const StaticDirName = "static"

// Builder renders a recipe directory into a static website.
//
// Thread-safety: Build may be called concurrently only with different build
// directories.
type Builder struct {
	// Config provides the build settings.
	Config *config.Config

	templates TemplateFunc
	parsed    map[string]*template.Template
}

// Option defines a functional option for configuring Builder.
type Option func(*Builder)

// WithConfig sets the build configuration.
func WithConfig(cfg *config.Config) Option {
	return func(b *Builder) {
		if cfg != nil {
			b.Config = cfg
		}
	}
}

// WithTemplates replaces the template source. The config's template
// directory, when set, still takes precedence.
func WithTemplates(get TemplateFunc) Option {
	return func(b *Builder) {
		if get != nil {
			b.templates = get
		}
	}
}

// New creates a Builder, validating the configuration and parsing the
// templates up front so template errors surface before anything is removed.
//
// Example:
//
//	b, err := site.New(site.WithConfig(config.NewConfig(
//	    config.WithTitle("Family Recipes"),
//	    config.WithIncludeChecksums(true),
//	)))
func New(opts ...Option) (*Builder, error) {
	b := &Builder{
		Config:    config.NewConfig(),
		templates: EmbeddedTemplates(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.Config.Validate(); err != nil {
		return nil, err
	}

	get := b.templates
	if dir := b.Config.TemplateDir(); dir != "" {
		get = DirTemplates(dir, get)
	}

	parsed, err := parseTemplates(get)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to load templates", err,
			map[string]any{"template_dir": b.Config.TemplateDir()})
	}
	b.parsed = parsed

	return b, nil
}

// IndexEntry is one link on the index page.
type IndexEntry struct {
	Name string
	URL  string
}

type indexData struct {
	Title   string
	Recipes []IndexEntry
}

type pageData struct {
	Title     string
	SiteTitle string
	Recipe    *recipe.Recipe
	Image     string
}

// Build clears the build directory and writes the site into it:
//   - static/: copy of the static directory, when it exists
//   - index.html: links to every recipe, in collation order
//   - <stem>.html: one page per valid recipe document
//   - <stem>.<ext>: the recipe image, when there is one
//   - checksums.txt: SHA256 checksums, when enabled
//
// Invalid recipe documents are logged and reported in Output.Skipped.
func (b *Builder) Build(ctx context.Context) (out *result.Output, err error) {
	start := time.Now()
	defer func() {
		buildDuration.Observe(time.Since(start).Seconds())
		recordBuild(err)
	}()

	cfg := b.Config
	dir := cfg.BuildDir()
	out = result.New(cfg.Title(), dir, cfg.Version())

	slog.Debug("building site",
		"recipes", cfg.RecipeDir(),
		"output_dir", dir,
		"parallelism", cfg.Parallelism(),
	)

	if err := resetDir(dir); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to prepare build directory", err,
			map[string]any{"dir": dir})
	}

	if err := b.copyStatic(ctx, out); err != nil {
		return nil, err
	}

	catalog, err := recipe.LoadDir(ctx, cfg.RecipeDir())
	if err != nil {
		return nil, err
	}
	for _, s := range catalog.Skipped {
		out.Skipped = append(out.Skipped, result.Skipped{Source: s.Source, Reason: s.Reason})
	}

	if err := b.renderIndex(catalog, out); err != nil {
		return nil, err
	}

	if err := b.renderPages(ctx, catalog, out); err != nil {
		return nil, err
	}

	if cfg.IncludeChecksums() {
		path, err := checksum.GenerateChecksums(ctx, dir, out.Files)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to generate checksums", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to stat checksums", err)
		}
		out.AddFile(path, info.Size())
		out.Checksums = checksum.ChecksumFileName
	}

	out.Sort()
	out.TotalDuration = time.Since(start)

	slog.Debug("site build complete",
		"pages", len(out.Pages),
		"files", out.TotalFiles,
		"size_bytes", out.TotalSize,
		"skipped", len(out.Skipped),
		"duration", out.TotalDuration,
	)

	return out, nil
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// copyStatic copies the static directory to <build>/static.
func (b *Builder) copyStatic(ctx context.Context, out *result.Output) error {
	src := b.Config.StaticDir()
	if src == "" {
		return nil
	}

	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		slog.Debug("no static directory, skipping", "dir", src)
		return nil
	}
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to read static directory", err,
			map[string]any{"dir": src})
	}
	if !info.IsDir() {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "static path is not a directory",
			map[string]any{"dir": src})
	}

	dst := filepath.Join(b.Config.BuildDir(), StaticDirName)
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			slog.Debug("skipping non-regular static file", "path", path)
			return nil
		}

		n, err := copyFile(path, target)
		if err != nil {
			return err
		}
		out.AddFile(target, n)
		return nil
	})
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to copy static files", err,
			map[string]any{"dir": src})
	}
	return nil
}

func (b *Builder) renderIndex(catalog *recipe.Catalog, out *result.Output) error {
	data := indexData{
		Title:   b.Config.Title(),
		Recipes: make([]IndexEntry, 0, catalog.Len()),
	}
	for _, e := range catalog.Entries {
		data.Recipes = append(data.Recipes, IndexEntry{Name: e.Recipe.Name, URL: e.Page})
	}

	path := filepath.Join(b.Config.BuildDir(), recipe.IndexPage)
	n, err := b.render(IndexTemplate, data, path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to render index", err)
	}
	out.AddFile(path, n)
	return nil
}

// renderPages renders every recipe page, Parallelism pages at a time.
// The first failure cancels the remaining pages.
func (b *Builder) renderPages(ctx context.Context, catalog *recipe.Catalog, out *result.Output) error {
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Config.Parallelism())

	for _, entry := range catalog.Entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			files, page, err := b.renderPage(entry)
			if err != nil {
				return errors.WrapWithContext(errors.ErrCodeInternal, "failed to render recipe page", err,
					map[string]any{"recipe": entry.Recipe.Name, "file": entry.Source})
			}
			pagesRendered.Inc()

			mu.Lock()
			defer mu.Unlock()
			for _, f := range files {
				out.AddFile(f.path, f.size)
			}
			out.AddPage(page)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Wrap(errors.ErrCodeTimeout, "site build canceled", ctxErr)
		}
		return err
	}
	return nil
}

type writtenFile struct {
	path string
	size int64
}

func (b *Builder) renderPage(entry *recipe.Entry) ([]writtenFile, *result.Page, error) {
	dir := b.Config.BuildDir()
	page := &result.Page{
		Recipe: entry.Recipe.Name,
		Source: entry.Source,
		File:   entry.Page,
	}

	data := pageData{
		Title:     fmt.Sprintf("%s - %s", b.Config.Title(), entry.Recipe.Name),
		SiteTitle: b.Config.Title(),
		Recipe:    entry.Recipe,
	}
	if entry.Image != "" {
		data.Image = filepath.Base(entry.Image)
		page.Image = data.Image
	}

	path := filepath.Join(dir, entry.Page)
	n, err := b.render(RecipeTemplate, data, path)
	if err != nil {
		return nil, nil, err
	}
	files := []writtenFile{{path: path, size: n}}

	if entry.Image != "" {
		target := filepath.Join(dir, data.Image)
		n, err := copyFile(entry.Image, target)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to copy image: %w", err)
		}
		files = append(files, writtenFile{path: target, size: n})
	}

	return files, page, nil
}

// render executes the named template into path and returns the bytes written.
func (b *Builder) render(name string, data any, path string) (int64, error) {
	var buf bytes.Buffer
	if err := b.parsed[name].Execute(&buf, data); err != nil {
		return 0, fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // site output is world readable
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return int64(buf.Len()), nil
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return n, err
}
