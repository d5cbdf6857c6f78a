package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type SavedRecipeToggle struct{ deps Deps }

func NewSavedRecipeToggle(deps Deps) *SavedRecipeToggle { return &SavedRecipeToggle{deps: deps} }

func (t *SavedRecipeToggle) Name() string  { return "saved_recipe_toggle" }
func (t *SavedRecipeToggle) Title() string { return "Toggle Saved Recipe" }
func (t *SavedRecipeToggle) Description() string {
	return "Saves a recipe for a session, or removes it when it is already saved."
}

func (t *SavedRecipeToggle) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"session":   {Type: "string"},
		"recipe_id": {Type: "string"},
	}, "session", "recipe_id")
}

func (t *SavedRecipeToggle) OutputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"saved": {Type: "boolean"},
		"saved_recipes": {
			Type: "array",
			Items: objectSchema(map[string]*jsonschema.Schema{
				"id":          {Type: "string"},
				"title":       {Type: "string"},
				"description": {Type: "string"},
				"image":       {Type: "string"},
				"category":    {Type: "string"},
				"time":        {Type: "string"},
			}, "id", "title"),
		},
	}, "saved", "saved_recipes")
}

func (t *SavedRecipeToggle) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	session, err := sessionArg(input)
	if err != nil {
		return nil, err
	}
	id := stringArg(input, "recipe_id")
	recipe, ok := t.deps.Recipes.Find(id)
	if !ok {
		return nil, fmt.Errorf("recipe %q not found", id)
	}

	box := t.deps.recipeBox(session)
	saved, err := box.Toggle(ctx, recipe)
	if err != nil {
		return nil, err
	}
	list, err := box.Saved(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"saved": saved, "saved_recipes": list}, nil
}
