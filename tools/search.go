package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"foodpath/catalog"
)

type ProductSearch struct{ products *catalog.Products }

func NewProductSearch(products *catalog.Products) *ProductSearch {
	return &ProductSearch{products: products}
}

func (t *ProductSearch) Name() string  { return "product_search" }
func (t *ProductSearch) Title() string { return "Search Products" }
func (t *ProductSearch) Description() string {
	return "Finds grocery products whose name contains the query, optionally within one category."
}

func (t *ProductSearch) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"query":    {Type: "string"},
		"category": {Type: "string"},
	})
}

func (t *ProductSearch) OutputSchema() *jsonschema.Schema {
	minPrice := 0.0
	return objectSchema(map[string]*jsonschema.Schema{
		"category": {Type: "string"},
		"products": {
			Type: "array",
			Items: objectSchema(map[string]*jsonschema.Schema{
				"id":       {Type: "integer"},
				"name":     {Type: "string"},
				"price":    {Type: "number", Minimum: &minPrice},
				"image":    {Type: "string"},
				"category": {Type: "string"},
			}, "id", "name", "price"),
		},
		"suggested_category": {Type: "string"},
	}, "products")
}

func (t *ProductSearch) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	query := stringArg(input, "query")
	category := stringArg(input, "category")

	out := map[string]any{
		"category": catalog.CategoryName(category),
		"products": t.products.Search(query, category),
	}
	if slug, ok := catalog.SuggestCategory(query); ok {
		out["suggested_category"] = slug
	}
	return out, nil
}

type RecipeSearch struct{ recipes *catalog.Recipes }

func NewRecipeSearch(recipes *catalog.Recipes) *RecipeSearch {
	return &RecipeSearch{recipes: recipes}
}

func (t *RecipeSearch) Name() string  { return "recipe_search" }
func (t *RecipeSearch) Title() string { return "Search Recipes" }
func (t *RecipeSearch) Description() string {
	return "Finds recipes by free text, cuisine or category. Text matches title, description, category, cuisine and ingredients."
}

func (t *RecipeSearch) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"term":     {Type: "string"},
		"cuisine":  {Type: "string"},
		"category": {Type: "string"},
	})
}

func (t *RecipeSearch) OutputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"recipes": {
			Type: "array",
			Items: &jsonschema.Schema{
				Type: "object",
			},
		},
	}, "recipes")
}

// Run narrows by term first, then by cuisine, then by category.
func (t *RecipeSearch) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	term := stringArg(input, "term")
	cuisine := stringArg(input, "cuisine")
	category := stringArg(input, "category")

	var found []catalog.Recipe
	switch {
	case term != "":
		found = t.recipes.Search(term)
	case cuisine != "":
		found = t.recipes.ByCuisine(cuisine)
	default:
		found = t.recipes.ByCategory(category)
	}

	out := make([]catalog.Recipe, 0, len(found))
	for _, r := range found {
		if cuisine != "" && !strings.EqualFold(r.Cuisine, cuisine) {
			continue
		}
		if category != "" && category != "all" && r.Category != category {
			continue
		}
		out = append(out, r)
	}
	return map[string]any{"recipes": out}, nil
}
