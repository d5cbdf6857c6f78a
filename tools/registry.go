package tools

import (
	"errors"
	"fmt"
	"sort"

	"foodpath"
	"foodpath/catalog"
	"foodpath/grocery"
	"foodpath/recipes"
	"foodpath/store"
)

// Deps are the catalogs and the shared state backing the tools. Each session
// gets its own namespace inside State.
type Deps struct {
	Products *catalog.Products
	Recipes  *catalog.Recipes
	State    store.State
	Pricing  grocery.Pricing
	Activity foodpath.ActivityLogger
}

func (d Deps) storefront(session string) *grocery.Storefront {
	return grocery.NewStorefront(
		store.New(store.Namespaced(d.State, session)),
		d.Pricing,
		grocery.WithSession(session),
		grocery.WithActivityLogger(d.Activity),
	)
}

func (d Deps) recipeBox(session string) *recipes.RecipeBox {
	return recipes.NewRecipeBox(store.New(store.Namespaced(d.State, session)), d.Activity, session)
}

// Registry maps tool names to implementations
type Registry map[string]Tool

func NewRegistry(deps Deps) (*Registry, error) {
	if deps.Products == nil || deps.Recipes == nil {
		return nil, errors.New("tools: product and recipe catalogs are required")
	}
	if deps.State == nil {
		return nil, errors.New("tools: state is required")
	}
	if deps.Pricing.Rate == 0 {
		deps.Pricing = grocery.DefaultPricing()
	}
	if deps.Activity == nil {
		deps.Activity = foodpath.NewNoOpActivityLogger()
	}

	registry := Registry{}
	for _, t := range []Tool{
		NewProductSearch(deps.Products),
		NewRecipeSearch(deps.Recipes),
		NewCartGet(deps),
		NewCartAdd(deps),
		NewCartSetQuantity(deps),
		NewSavedRecipeToggle(deps),
	} {
		registry[t.Name()] = t
	}
	return &registry, nil
}

// GetTools returns all tools sorted by name
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}
