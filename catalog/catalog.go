// Package catalog holds the read-only product and recipe catalogs and the
// substring search used by the storefront and the recipe site.
package catalog

import (
	"context"
	_ "embed"
	"strings"

	"foodpath"
	"foodpath/store"
)

var (
	//go:embed data/products.json
	productsJSON []byte

	//go:embed data/recipes.json
	recipesJSON []byte
)

type bytesSource []byte

func (b bytesSource) Load(context.Context) ([]byte, error) { return b, nil }

// EmbeddedProducts is the built-in grocery catalog.
func EmbeddedProducts() foodpath.Source { return bytesSource(productsJSON) }

// EmbeddedRecipes is the built-in recipe catalog.
func EmbeddedRecipes() foodpath.Source { return bytesSource(recipesJSON) }

// StateSource reads a catalog document from a store key, so catalogs can live
// next to user data in a file directory, an S3 bucket or a SQL table.
type StateSource struct {
	State store.State
	Key   string
}

func (s StateSource) Load(ctx context.Context) ([]byte, error) {
	return s.State.Load(ctx, s.Key)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Open loads both catalogs, from state when cfg names a key and from the
// embedded data otherwise.
func Open(ctx context.Context, state store.State, cfg foodpath.CatalogConfig) (*Products, *Recipes, error) {
	var productSrc foodpath.Source = EmbeddedProducts()
	if cfg.ProductsKey != "" {
		productSrc = StateSource{State: state, Key: cfg.ProductsKey}
	}
	var recipeSrc foodpath.Source = EmbeddedRecipes()
	if cfg.RecipesKey != "" {
		recipeSrc = StateSource{State: state, Key: cfg.RecipesKey}
	}

	products, err := LoadProducts(ctx, productSrc)
	if err != nil {
		return nil, nil, err
	}
	recipes, err := LoadRecipes(ctx, recipeSrc)
	if err != nil {
		return nil, nil, err
	}
	return products, recipes, nil
}
