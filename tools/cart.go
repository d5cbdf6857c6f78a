package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"foodpath/grocery"
)

func summaryOutput(s grocery.Summary) map[string]any {
	return map[string]any{
		"items":        s.Items,
		"total_items":  s.TotalItems,
		"subtotal":     s.Subtotal,
		"delivery_fee": s.DeliveryFee,
		"total":        s.Total,
	}
}

func cartOutputSchema() *jsonschema.Schema {
	minQty := 1.0
	return objectSchema(map[string]*jsonschema.Schema{
		"items": {
			Type: "array",
			Items: objectSchema(map[string]*jsonschema.Schema{
				"id":       {Type: "integer"},
				"name":     {Type: "string"},
				"price":    {Type: "number"},
				"image":    {Type: "string"},
				"quantity": {Type: "integer", Minimum: &minQty},
			}, "id", "quantity"),
		},
		"total_items":  {Type: "integer"},
		"subtotal":     {Type: "string"},
		"delivery_fee": {Type: "string"},
		"total":        {Type: "string"},
	}, "items", "total")
}

type CartGet struct{ deps Deps }

func NewCartGet(deps Deps) *CartGet { return &CartGet{deps: deps} }

func (t *CartGet) Name() string        { return "cart_get" }
func (t *CartGet) Title() string       { return "Get Cart" }
func (t *CartGet) Description() string { return "Returns a session's cart with rupee totals." }

func (t *CartGet) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{"session": {Type: "string"}}, "session")
}

func (t *CartGet) OutputSchema() *jsonschema.Schema { return cartOutputSchema() }

func (t *CartGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	session, err := sessionArg(input)
	if err != nil {
		return nil, err
	}
	sum, err := t.deps.storefront(session).Summary(ctx)
	if err != nil {
		return nil, err
	}
	return summaryOutput(sum), nil
}

type CartAdd struct{ deps Deps }

func NewCartAdd(deps Deps) *CartAdd { return &CartAdd{deps: deps} }

func (t *CartAdd) Name() string  { return "cart_add" }
func (t *CartAdd) Title() string { return "Add To Cart" }
func (t *CartAdd) Description() string {
	return "Adds one unit of a product to a session's cart. Adding a product already in the cart increases its quantity."
}

func (t *CartAdd) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"session":    {Type: "string"},
		"product_id": {Type: "integer"},
	}, "session", "product_id")
}

func (t *CartAdd) OutputSchema() *jsonschema.Schema { return cartOutputSchema() }

func (t *CartAdd) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	session, err := sessionArg(input)
	if err != nil {
		return nil, err
	}
	id, err := intArg(input, "product_id")
	if err != nil {
		return nil, err
	}
	product, ok := t.deps.Products.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", grocery.ErrProductNotFound, id)
	}

	sf := t.deps.storefront(session)
	if _, err := sf.AddToCart(ctx, product); err != nil {
		return nil, err
	}
	sum, err := sf.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return summaryOutput(sum), nil
}

type CartSetQuantity struct{ deps Deps }

func NewCartSetQuantity(deps Deps) *CartSetQuantity { return &CartSetQuantity{deps: deps} }

func (t *CartSetQuantity) Name() string  { return "cart_set_quantity" }
func (t *CartSetQuantity) Title() string { return "Set Cart Quantity" }
func (t *CartSetQuantity) Description() string {
	return "Sets the quantity of a product in a session's cart. Zero or less removes it."
}

func (t *CartSetQuantity) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"session":    {Type: "string"},
		"product_id": {Type: "integer"},
		"quantity":   {Type: "integer"},
	}, "session", "product_id", "quantity")
}

func (t *CartSetQuantity) OutputSchema() *jsonschema.Schema { return cartOutputSchema() }

func (t *CartSetQuantity) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	session, err := sessionArg(input)
	if err != nil {
		return nil, err
	}
	id, err := intArg(input, "product_id")
	if err != nil {
		return nil, err
	}
	qty, err := intArg(input, "quantity")
	if err != nil {
		return nil, err
	}

	sf := t.deps.storefront(session)
	if _, err := sf.UpdateQuantity(ctx, id, qty); err != nil {
		return nil, err
	}
	sum, err := sf.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return summaryOutput(sum), nil
}
