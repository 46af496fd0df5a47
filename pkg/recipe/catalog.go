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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	rberrors "github.com/recipebook/recipebook/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// IndexPage is the site index; no recipe page may use its name.
const IndexPage = "index.html"

// ImageExtensions are tried in order when looking for a recipe image.
var ImageExtensions = []string{".jpg", ".png", ".webm"}

// Entry is a loaded recipe together with the files that belong to it.
type Entry struct {
	Recipe *Recipe
	// Source is the path of the recipe document.
	Source string
	// Image is the path of the matching image, or empty.
	Image string
	// Page is the file name of the rendered page, "<stem>.html".
	Page string
}

// Skipped is a document that was not added to the catalog.
type Skipped struct {
	Source string `json:"source" yaml:"source"`
	Reason string `json:"reason" yaml:"reason"`
	err    error
}

// Err returns the error that caused the document to be skipped.
func (s Skipped) Err() error {
	return s.err
}

// Catalog is the set of valid recipes of a recipe directory, ordered by
// recipe name.
type Catalog struct {
	Entries []*Entry
	Skipped []Skipped
}

// Len returns the number of recipes in the catalog.
func (c *Catalog) Len() int {
	return len(c.Entries)
}

// Lookup returns the entry with the given recipe name, or nil.
func (c *Catalog) Lookup(name string) *Entry {
	for _, e := range c.Entries {
		if e.Recipe.Name == name {
			return e
		}
	}
	return nil
}

// LoadDir loads every *.yaml and *.yml document in dir.
//
// Documents that fail to decode or validate are logged and recorded in
// Catalog.Skipped; they do not fail the load, and neither do documents
// whose page name is taken (index.yaml, or pie.yml next to pie.yaml). When
// two documents share a recipe name, the one whose file name sorts later
// wins.
func LoadDir(ctx context.Context, dir string) (*Catalog, error) {
	start := time.Now()
	defer func() {
		catalogLoadDuration.Observe(time.Since(start).Seconds())
	}()

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rberrors.WrapWithContext(rberrors.ErrCodeNotFound, "recipe directory not found", err,
				map[string]any{"dir": dir})
		}
		return nil, rberrors.WrapWithContext(rberrors.ErrCodeInternal, "failed to read recipe directory", err,
			map[string]any{"dir": dir})
	}

	cat := &Catalog{}
	byName := make(map[string]int)
	byPage := map[string]string{IndexPage: ""}

	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, rberrors.Wrap(rberrors.ErrCodeTimeout, "loading recipes canceled", err)
		}
		if de.IsDir() || !isRecipeFile(de.Name()) {
			continue
		}

		path := filepath.Join(dir, de.Name())
		page := PageName(path)
		if owner, taken := byPage[page]; taken {
			reason := fmt.Sprintf("page %s is already produced by %s", page, owner)
			if owner == "" {
				reason = fmt.Sprintf("page %s is reserved for the site index", page)
			}
			slog.Warn("recipe page name conflict", "file", path, "page", page)
			recipesRejected.Inc()
			cat.Skipped = append(cat.Skipped, Skipped{Source: path, Reason: reason,
				err: rberrors.NewWithContext(rberrors.ErrCodeInvalidRequest, reason, map[string]any{"file": path})})
			continue
		}

		rec, err := LoadFile(path)
		if err != nil {
			slog.Error("could not parse recipe", "file", path, "error", err)
			recipesRejected.Inc()
			cat.Skipped = append(cat.Skipped, Skipped{Source: path, Reason: err.Error(), err: err})
			continue
		}
		recipesLoaded.Inc()
		byPage[page] = path

		entry := &Entry{
			Recipe: rec,
			Source: path,
			Image:  FindImage(path),
			Page:   page,
		}

		if i, ok := byName[rec.Name]; ok {
			slog.Warn("duplicate recipe name, later file wins",
				"recipe", rec.Name,
				"replaced", cat.Entries[i].Source,
				"file", path)
			cat.Entries[i] = entry
			continue
		}
		byName[rec.Name] = len(cat.Entries)
		cat.Entries = append(cat.Entries, entry)
	}

	sortEntries(cat.Entries)

	slog.Debug("recipe catalog loaded",
		"dir", dir,
		"recipes", len(cat.Entries),
		"skipped", len(cat.Skipped),
		"duration", time.Since(start).String())

	return cat, nil
}

// sortEntries orders entries by recipe name using English collation, so
// "crème brûlée" sorts next to "creme caramel" and case is ignored.
func sortEntries(entries []*Entry) {
	c := collate.New(language.English, collate.IgnoreCase, collate.IgnoreDiacritics)
	slices.SortStableFunc(entries, func(a, b *Entry) int {
		if n := c.CompareString(a.Recipe.Name, b.Recipe.Name); n != 0 {
			return n
		}
		return strings.Compare(a.Recipe.Name, b.Recipe.Name)
	})
}

func isRecipeFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// FindImage returns the image that sits next to the recipe document at
// path, trying ImageExtensions in order, or "" when there is none.
func FindImage(path string) string {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range ImageExtensions {
		candidate := stem + ext
		if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// PageName returns the rendered page file name for the document at path.
func PageName(path string) string {
	base := filepath.Base(path)
	return fmt.Sprintf("%s.html", strings.TrimSuffix(base, filepath.Ext(base)))
}
