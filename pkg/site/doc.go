// Package site builds the static recipe website.
//
// A build reads every recipe document in the recipe directory, renders an
// index page and one page per recipe with html/template, copies recipe
// images and the static directory alongside, and optionally writes
// checksums.txt:
//
//	build/
//	├── index.html
//	├── pancakes.html
//	├── pancakes.jpg
//	├── checksums.txt
//	└── static/
//	    └── style.css
//
// # Usage
//
//	b, err := site.New(site.WithConfig(config.NewConfig(
//	    config.WithRecipeDir("recipes"),
//	    config.WithBuildDir("build"),
//	)))
//	if err != nil {
//	    return err
//	}
//	out, err := b.Build(ctx)
//
// # Templates
//
// index.html and recipe.html are embedded. A template directory replaces
// either of them by file name. Templates see these functions:
//
//	amount   canonical text and unit of an amount ("1 1/2 cups")
//	decimal  amount as a rounded decimal ("1.5")
//	title    English title casing
//	join     strings.Join
//
// Recipe pages render in parallel, bounded by the configured parallelism.
// Invalid documents never fail a build; they are logged and listed in the
// result.
package site
