// Package recipes holds the recipe site's stateful pieces: the saved recipe
// box, review validation and recipe submission checks.
package recipes

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"foodpath"
	"foodpath/catalog"
	"foodpath/store"
)

// RecipeBox is the set of recipes a visitor saved, keyed by recipe id.
type RecipeBox struct {
	store   *store.Store
	logger  foodpath.ActivityLogger
	session string
}

func NewRecipeBox(st *store.Store, logger foodpath.ActivityLogger, session string) *RecipeBox {
	if logger == nil {
		logger = foodpath.NewNoOpActivityLogger()
	}
	return &RecipeBox{store: st, logger: logger, session: session}
}

func (b *RecipeBox) Saved(ctx context.Context) ([]foodpath.SavedRecipe, error) {
	return b.store.SavedRecipes(ctx)
}

func (b *RecipeBox) IsSaved(ctx context.Context, id string) (bool, error) {
	saved, err := b.store.SavedRecipes(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(saved, id) >= 0, nil
}

// Toggle saves r when it is not in the box and removes it otherwise.
// It reports whether r is saved afterwards.
func (b *RecipeBox) Toggle(ctx context.Context, r catalog.Recipe) (bool, error) {
	saved, err := b.store.SavedRecipes(ctx)
	if err != nil {
		return false, err
	}

	nowSaved := true
	if i := indexOf(saved, r.ID); i >= 0 {
		saved = slices.Delete(saved, i, i+1)
		nowSaved = false
	} else {
		saved = append(saved, r.Saved())
	}

	if err := b.store.SetSavedRecipes(ctx, saved); err != nil {
		return false, err
	}

	b.logActivity("recipe_toggle", map[string]any{"recipe_id": r.ID, "saved": nowSaved})
	return nowSaved, nil
}

// Remove drops id from the box. Removing an unsaved id is not an error.
func (b *RecipeBox) Remove(ctx context.Context, id string) ([]foodpath.SavedRecipe, error) {
	saved, err := b.store.SavedRecipes(ctx)
	if err != nil {
		return nil, err
	}

	saved = slices.DeleteFunc(saved, func(s foodpath.SavedRecipe) bool { return s.ID == id })
	if err := b.store.SetSavedRecipes(ctx, saved); err != nil {
		return nil, err
	}

	b.logActivity("recipe_remove", map[string]any{"recipe_id": id})
	return saved, nil
}

func (b *RecipeBox) logActivity(kind string, detail map[string]any) {
	err := b.logger.LogActivity(foodpath.Activity{
		Kind:      kind,
		Session:   b.session,
		Timestamp: time.Now(),
		Detail:    detail,
	})
	if err != nil {
		slog.Warn("ACTIVITY: Failed to log", "kind", kind, "error", err)
	}
}

func indexOf(saved []foodpath.SavedRecipe, id string) int {
	return slices.IndexFunc(saved, func(s foodpath.SavedRecipe) bool { return s.ID == id })
}
