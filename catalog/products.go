package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"foodpath"
)

type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"` // USD
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

type Category struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Image string `json:"image"`
}

var categories = []Category{
	{Slug: "snacks", Name: "Snacks", Icon: "🍿", Image: "/colorful-snacks-chips-cookies-crackers.jpg"},
	{Slug: "vegetables", Name: "Vegetables", Icon: "🥕", Image: "/fresh-vegetables-carrots-broccoli-tomatoes.jpg"},
	{Slug: "fruits", Name: "Fruits", Icon: "🍎", Image: "/fresh-fruits-apples-bananas-oranges.jpg"},
	{Slug: "beverages", Name: "Beverages", Icon: "🥤", Image: "/beverages-drinks-juice-soda-water.jpg"},
	{Slug: "dairy-products", Name: "Dairy Products", Icon: "🥛", Image: "/dairy-products-milk-cheese-yogurt.jpg"},
	{Slug: "household-items", Name: "Household Items", Icon: "🧽", Image: "/household-items-cleaning-supplies-detergent.jpg"},
}

// Products is the grocery catalog, in catalog order.
type Products struct {
	items []Product
}

func LoadProducts(ctx context.Context, src foodpath.Source) (*Products, error) {
	b, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	var items []Product
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("parse products: %w", err)
	}
	return NewProducts(items), nil
}

func NewProducts(items []Product) *Products {
	return &Products{items: items}
}

func (p *Products) All() []Product {
	return append([]Product(nil), p.items...)
}

// ByCategory returns the products of a category slug. An empty or unknown
// slug yields the whole catalog.
func (p *Products) ByCategory(slug string) []Product {
	if slug == "" {
		return p.All()
	}
	var out []Product
	for _, it := range p.items {
		if it.Category == slug {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return p.All()
	}
	return out
}

func (p *Products) Find(id int) (Product, bool) {
	for _, it := range p.items {
		if it.ID == id {
			return it, true
		}
	}
	return Product{}, false
}

// Search filters a category (or everything) by a case-insensitive substring of the name.
func (p *Products) Search(query, category string) []Product {
	in := p.ByCategory(category)
	if query == "" {
		return in
	}
	out := make([]Product, 0)
	for _, it := range in {
		if containsFold(it.Name, query) {
			out = append(out, it)
		}
	}
	return out
}

func (p *Products) Categories() []Category {
	return append([]Category(nil), categories...)
}

// CategoryName renders a slug for display, e.g. "dairy-products" -> "Dairy Products".
// An empty slug is the "All Products" listing.
func CategoryName(slug string) string {
	if slug == "" {
		return "All Products"
	}
	words := strings.Fields(strings.ReplaceAll(slug, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// SuggestCategory maps a dashboard search to a category page. Only milk
// searches are routed today.
func SuggestCategory(query string) (string, bool) {
	if strings.Contains(strings.ToLower(query), "milk") {
		return "dairy-products", true
	}
	return "", false
}
