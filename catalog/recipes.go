package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"foodpath"
)

type Review struct {
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Category     string   `json:"category"`
	Cuisine      string   `json:"cuisine,omitempty"`
	Time         string   `json:"time"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	Reviews      []Review `json:"reviews,omitempty"`
}

// Saved is the snapshot kept in the saved recipes list.
func (r Recipe) Saved() foodpath.SavedRecipe {
	return foodpath.SavedRecipe{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Category:    r.Category,
		Time:        r.Time,
	}
}

type Cuisine struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

var cuisines = []Cuisine{
	{Name: "Indian", Slug: "indian"},
	{Name: "Italian", Slug: "italian"},
	{Name: "Chinese", Slug: "chinese"},
	{Name: "Mexican", Slug: "mexican"},
	{Name: "Thai", Slug: "thai"},
	{Name: "Mediterranean", Slug: "mediterranean"},
}

// Recipe categories shown as tabs on the browse page.
const (
	CategoryDiet    = "diet"
	CategoryHome    = "home"
	CategoryHealthy = "healthy"
	CategoryGym     = "gym"
)

func RecipeCategories() []string {
	return []string{CategoryDiet, CategoryHome, CategoryHealthy, CategoryGym}
}

type Recipes struct {
	items []Recipe
}

func LoadRecipes(ctx context.Context, src foodpath.Source) (*Recipes, error) {
	b, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	var items []Recipe
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("parse recipes: %w", err)
	}
	return NewRecipes(items), nil
}

func NewRecipes(items []Recipe) *Recipes {
	return &Recipes{items: items}
}

func (r *Recipes) All() []Recipe {
	return append([]Recipe(nil), r.items...)
}

// Find looks a recipe up by id. Unknown ids fall back to the first recipe,
// which is what the detail page renders; ok reports whether id matched.
func (r *Recipes) Find(id string) (recipe Recipe, ok bool) {
	for _, it := range r.items {
		if it.ID == id {
			return it, true
		}
	}
	if len(r.items) > 0 {
		return r.items[0], false
	}
	return Recipe{}, false
}

func (r *Recipes) ByCategory(category string) []Recipe {
	if category == "" || category == "all" {
		return r.All()
	}
	out := make([]Recipe, 0)
	for _, it := range r.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

func (r *Recipes) ByCuisine(slug string) []Recipe {
	out := make([]Recipe, 0)
	for _, it := range r.items {
		if it.Cuisine != "" && strings.EqualFold(it.Cuisine, slug) {
			out = append(out, it)
		}
	}
	return out
}

// Search matches a trimmed, case-insensitive term against title, description,
// category, cuisine and ingredients. A blank term matches nothing.
func (r *Recipes) Search(term string) []Recipe {
	out := make([]Recipe, 0)
	term = strings.TrimSpace(term)
	if term == "" {
		return out
	}

	for _, it := range r.items {
		if it.matches(term) {
			out = append(out, it)
		}
	}
	return out
}

func (r Recipe) matches(term string) bool {
	if containsFold(r.Title, term) ||
		containsFold(r.Description, term) ||
		containsFold(r.Category, term) ||
		containsFold(r.Cuisine, term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if containsFold(ing, term) {
			return true
		}
	}
	return false
}

func (r *Recipes) Cuisines() []Cuisine {
	return append([]Cuisine(nil), cuisines...)
}

// CuisineName capitalises a cuisine slug for headings.
func CuisineName(slug string) string {
	if slug == "" {
		return ""
	}
	return strings.ToUpper(slug[:1]) + slug[1:]
}
