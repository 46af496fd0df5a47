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

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/recipebook/recipebook/pkg/defaults"
	"github.com/recipebook/recipebook/pkg/errors"
	"github.com/recipebook/recipebook/pkg/serializer"
)

// Defaults used by NewConfig.
const (
	DefaultTitle     = "My Recipes"
	DefaultRecipeDir = "recipes"
	DefaultStaticDir = "static"
	DefaultBuildDir  = "build"
)

// Config provides the settings of a site build.
type Config struct {
	title            string
	recipeDir        string
	staticDir        string
	templateDir      string
	buildDir         string
	includeChecksums bool
	parallelism      int
	sequential       bool
	version          string
}

// Title returns the site title.
func (c *Config) Title() string {
	return c.title
}

// RecipeDir returns the directory recipe documents are read from.
func (c *Config) RecipeDir() string {
	return c.recipeDir
}

// StaticDir returns the directory copied into the build as static/.
func (c *Config) StaticDir() string {
	return c.staticDir
}

// TemplateDir returns the template override directory, empty for the embedded templates.
func (c *Config) TemplateDir() string {
	return c.templateDir
}

// BuildDir returns the output directory.
func (c *Config) BuildDir() string {
	return c.buildDir
}

// IncludeChecksums returns the include checksums setting.
func (c *Config) IncludeChecksums() bool {
	return c.includeChecksums
}

// Parallelism returns the number of pages rendered at once. Sequential
// builds report 1.
func (c *Config) Parallelism() int {
	if c.sequential {
		return 1
	}
	return c.parallelism
}

// Sequential returns whether pages are rendered one at a time.
func (c *Config) Sequential() bool {
	return c.sequential
}

// Version returns the tool version.
func (c *Config) Version() string {
	return c.version
}

// Validate checks if the Config has valid settings.
//
// The build directory is removed at the start of every build, so it may
// not be the recipe or static directory, nor contain either of them.
func (c *Config) Validate() error {
	if c.buildDir == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "build directory cannot be empty")
	}
	if c.recipeDir == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "recipe directory cannot be empty")
	}
	if c.parallelism < 1 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("parallelism must be at least 1, got %d", c.parallelism),
			map[string]any{"parallelism": c.parallelism})
	}

	for name, dir := range map[string]string{"recipe": c.recipeDir, "static": c.staticDir, "template": c.templateDir} {
		if dir == "" {
			continue
		}
		inside, err := within(c.buildDir, dir)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to resolve directories", err)
		}
		if inside {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("build directory %s would remove the %s directory %s", c.buildDir, name, dir),
				map[string]any{"build_dir": c.buildDir, name + "_dir": dir})
		}
	}

	return nil
}

// within reports whether dir is root or lies below it.
func within(root, dir string) (bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absRoot, absDir)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

type Option func(*Config)

// WithTitle sets the site title.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.title = title
	}
}

// WithRecipeDir sets the directory recipe documents are read from.
func WithRecipeDir(dir string) Option {
	return func(c *Config) {
		c.recipeDir = dir
	}
}

// WithStaticDir sets the directory copied into the build.
func WithStaticDir(dir string) Option {
	return func(c *Config) {
		c.staticDir = dir
	}
}

// WithTemplateDir sets a directory whose index.html and recipe.html replace
// the embedded templates.
func WithTemplateDir(dir string) Option {
	return func(c *Config) {
		c.templateDir = dir
	}
}

// WithBuildDir sets the output directory.
func WithBuildDir(dir string) Option {
	return func(c *Config) {
		c.buildDir = dir
	}
}

// WithIncludeChecksums sets whether a checksums file is written.
func WithIncludeChecksums(enabled bool) Option {
	return func(c *Config) {
		c.includeChecksums = enabled
	}
}

// WithParallelism sets how many pages are rendered at once.
func WithParallelism(n int) Option {
	return func(c *Config) {
		c.parallelism = n
	}
}

// WithSequential renders pages one at a time.
func WithSequential(enabled bool) Option {
	return func(c *Config) {
		c.sequential = enabled
	}
}

// WithVersion sets the tool version.
func WithVersion(version string) Option {
	return func(c *Config) {
		c.version = version
	}
}

// NewConfig returns a Config with default values.
func NewConfig(options ...Option) *Config {
	c := &Config{
		title:       DefaultTitle,
		recipeDir:   DefaultRecipeDir,
		staticDir:   DefaultStaticDir,
		buildDir:    DefaultBuildDir,
		parallelism: defaults.RenderParallelism,
		version:     "dev",
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// File is the on-disk form of the configuration. Unset fields keep their
// defaults.
type File struct {
	Title       *string `json:"title,omitempty" yaml:"title,omitempty"`
	Recipes     *string `json:"recipes,omitempty" yaml:"recipes,omitempty"`
	Static      *string `json:"static,omitempty" yaml:"static,omitempty"`
	Templates   *string `json:"templates,omitempty" yaml:"templates,omitempty"`
	Output      *string `json:"output,omitempty" yaml:"output,omitempty"`
	Checksums   *bool   `json:"checksums,omitempty" yaml:"checksums,omitempty"`
	Parallelism *int    `json:"parallelism,omitempty" yaml:"parallelism,omitempty"`
	Sequential  *bool   `json:"sequential,omitempty" yaml:"sequential,omitempty"`
}

// LoadFile reads a configuration file and returns the options it sets.
// Relative directories in the file are resolved against the file's own
// directory. Unknown keys are rejected. An http(s) path is downloaded with
// httpOpts, capped at MaxRecipeFileSize unless httpOpts say otherwise.
func LoadFile(path string, httpOpts ...serializer.HttpReaderOption) ([]Option, error) {
	httpOpts = append([]serializer.HttpReaderOption{serializer.WithMaxBytes(defaults.MaxRecipeFileSize)}, httpOpts...)
	f, err := serializer.FromFile[File](path, serializer.WithStrict(true), serializer.WithHttpOptions(httpOpts...))
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"failed to load site configuration", err, map[string]any{"file": path})
	}
	return f.Options(filepath.Dir(path)), nil
}

// Options converts the file into options, resolving relative directories
// against base.
func (f *File) Options(base string) []Option {
	var opts []Option

	resolve := func(dir string) string {
		if dir == "" || filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(base, dir)
	}

	if f.Title != nil {
		opts = append(opts, WithTitle(*f.Title))
	}
	if f.Recipes != nil {
		opts = append(opts, WithRecipeDir(resolve(*f.Recipes)))
	}
	if f.Static != nil {
		opts = append(opts, WithStaticDir(resolve(*f.Static)))
	}
	if f.Templates != nil {
		opts = append(opts, WithTemplateDir(resolve(*f.Templates)))
	}
	if f.Output != nil {
		opts = append(opts, WithBuildDir(resolve(*f.Output)))
	}
	if f.Checksums != nil {
		opts = append(opts, WithIncludeChecksums(*f.Checksums))
	}
	if f.Parallelism != nil {
		opts = append(opts, WithParallelism(*f.Parallelism))
	}
	if f.Sequential != nil {
		opts = append(opts, WithSequential(*f.Sequential))
	}
	return opts
}
