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
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/recipebook/recipebook/pkg/recipe"
)

// Template names looked up in the template directory.
const (
	IndexTemplate  = "index.html"
	RecipeTemplate = "recipe.html"
)

//go:embed templates/index.html
var indexTemplate string

//go:embed templates/recipe.html
var recipeTemplate string

// TemplateFunc returns the source of the named template.
type TemplateFunc func(name string) (string, bool)

// NewTemplateGetter creates a TemplateFunc from a map of template names to content.
func NewTemplateGetter(templates map[string]string) TemplateFunc {
	return func(name string) (string, bool) {
		tmpl, ok := templates[name]
		return tmpl, ok
	}
}

// EmbeddedTemplates returns the built-in templates.
func EmbeddedTemplates() TemplateFunc {
	return NewTemplateGetter(map[string]string{
		IndexTemplate:  indexTemplate,
		RecipeTemplate: recipeTemplate,
	})
}

// DirTemplates returns templates read from dir, falling back to fallback
// for names the directory does not contain.
func DirTemplates(dir string, fallback TemplateFunc) TemplateFunc {
	return func(name string) (string, bool) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return string(data), true
		}
		if fallback == nil {
			return "", false
		}
		return fallback(name)
	}
}

// ingredientRow is the value handed to the "ingredient" template.
type ingredientRow struct {
	Entry      recipe.IngredientEntry
	Substitute bool
}

// templateFuncs are available to every page template.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"amount": func(a recipe.Amount) string {
			return a.String()
		},
		"decimal": func(a recipe.Amount, prec int) string {
			return a.Quantity().Decimal(prec)
		},
		// cases.Caser keeps state, so each call gets its own.
		"title": func(s string) string {
			return cases.Title(language.English).String(s)
		},
		"join": strings.Join,
		"ingredient": func(e recipe.IngredientEntry) ingredientRow {
			return ingredientRow{Entry: e}
		},
		"substitute": func(e recipe.IngredientEntry) ingredientRow {
			return ingredientRow{Entry: e, Substitute: true}
		},
	}
}

// parseTemplates parses the index and recipe templates from get.
func parseTemplates(get TemplateFunc) (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, 2)
	for _, name := range []string{IndexTemplate, RecipeTemplate} {
		src, ok := get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		t, err := template.New(name).Funcs(templateFuncs()).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}
