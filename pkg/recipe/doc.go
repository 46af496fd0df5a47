// Package recipe decodes, validates, scales and catalogs recipe documents.
//
// # Documents
//
// A recipe is a YAML document:
//
//	recipe_name: Pancakes
//	yields:
//	  - servings: 4
//	  - servings: 8
//	ingredients:
//	  - flour:
//	      amounts:
//	        - amount: 1 1/2
//	          unit: cups
//	        - amount: 3
//	          unit: cups
//	  - eggs:
//	      amounts:
//	        - amount: 2
//	          unit: ""
//	        - amount: 4
//	          unit: ""
//	steps:
//	  - step: Whisk everything together.
//
// Ingredient and yield lists hold single-key mappings. Every amount text
// is parsed with mixed.Parse, so "1 1/2", "3/4", "1.5" and "2" are all
// exact. When yields are listed, each ingredient carries one amount per
// yield.
//
// # Validation
//
// Decode and LoadFile decode strictly (unknown fields are rejected) and
// collect every problem into ValidationErrors, wrapped in a
// StructuredError with ErrCodeValidation. Field paths name the offending
// value:
//
//	ingredients[0].flour.amounts[1].amount: line 9: invalid amount "1..2": ...
//
// # Catalog
//
// LoadDir loads a recipe directory into a Catalog sorted by recipe name.
// Invalid documents are logged and skipped. Each entry carries its image
// (same stem, .jpg, .png or .webm) and the file name of its page.
package recipe
