// Package server is the JSON HTTP API over the storefront and the recipe site.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"foodpath"
	"foodpath/auth"
	"foodpath/catalog"
	"foodpath/grocery"
	"foodpath/recipes"
	"foodpath/store"
)

// Deps wires the API to its catalogs, state backend and auth client.
type Deps struct {
	Products    *catalog.Products
	Recipes     *catalog.Recipes
	State       store.State
	Pricing     grocery.Pricing
	Auth        *auth.Client
	Activity    foodpath.ActivityLogger
	Telemetry   foodpath.Telemetry
	CORSOrigins []string
}

type Server struct {
	deps Deps
}

// New validates deps and builds the gin engine.
func New(deps Deps) (*gin.Engine, error) {
	if deps.Products == nil || deps.Recipes == nil {
		return nil, errors.New("server: product and recipe catalogs are required")
	}
	if deps.State == nil {
		return nil, errors.New("server: state is required")
	}
	if deps.Auth == nil {
		return nil, errors.New("server: auth client is required")
	}
	if deps.Pricing.Rate == 0 {
		deps.Pricing = grocery.DefaultPricing()
	}
	if deps.Activity == nil {
		deps.Activity = foodpath.NewNoOpActivityLogger()
	}
	if deps.Telemetry.Tracer == nil || deps.Telemetry.Meter == nil {
		deps.Telemetry = foodpath.NoopTelemetry(foodpath.TracerNameServer)
	}

	s := &Server{deps: deps}
	return s.engine(), nil
}

func (s *Server) engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	origins := s.deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", sessionHeader},
		ExposeHeaders:    []string{"Content-Length", sessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(telemetry(s.deps.Telemetry))

	r.GET("/", s.index)

	api := r.Group("/api")
	{
		api.GET("/categories", s.listCategories)
		api.GET("/products", s.listProducts)
		api.GET("/products/export", s.exportProducts)
		api.GET("/products/:id", s.getProduct)
		api.GET("/search/suggest", s.suggestCategory)

		api.GET("/recipes", s.listRecipes)
		api.GET("/recipes/:id", s.getRecipe)
		api.GET("/recipes/cuisine/:cuisine", s.recipesByCuisine)
		api.GET("/cuisines", s.listCuisines)
		api.POST("/recipes/:id/reviews", s.submitReview)
		api.POST("/recipes/submit", s.submitRecipe)

		api.POST("/auth/login", s.login)
		api.POST("/auth/register", s.register)
		api.GET("/auth/status", s.connectionStatus)
		api.POST("/jobs/signup", s.jobSignup)
		api.POST("/jobs/login", s.jobLogin)
	}

	sessioned := api.Group("", session())
	{
		sessioned.GET("/cart", s.getCart)
		sessioned.POST("/cart/items", s.addCartItem)
		sessioned.PUT("/cart/items/:id", s.updateCartItem)
		sessioned.DELETE("/cart/items/:id", s.removeCartItem)
		sessioned.PUT("/cart/address", s.setAddress)
		sessioned.POST("/checkout", s.checkout)
		sessioned.GET("/orders/latest", s.latestOrder)

		sessioned.GET("/profile", s.getProfile)
		sessioned.PUT("/profile/username", s.updateUsername)
		sessioned.POST("/profile/addresses", s.addAddress)
		sessioned.DELETE("/profile/addresses/:index", s.removeAddress)
		sessioned.POST("/profile/password", s.changePassword)

		sessioned.GET("/saved-recipes", s.listSaved)
		sessioned.POST("/saved-recipes/:id/toggle", s.toggleSaved)
		sessioned.DELETE("/saved-recipes/:id", s.removeSaved)
	}

	return r
}

func (s *Server) storeFor(c *gin.Context) *store.Store {
	return store.New(store.Namespaced(s.deps.State, sessionID(c)))
}

func (s *Server) storefront(c *gin.Context) *grocery.Storefront {
	return grocery.NewStorefront(
		s.storeFor(c),
		s.deps.Pricing,
		grocery.WithSession(sessionID(c)),
		grocery.WithActivityLogger(s.deps.Activity),
	)
}

func (s *Server) recipeBox(c *gin.Context) *recipes.RecipeBox {
	return recipes.NewRecipeBox(s.storeFor(c), s.deps.Activity, sessionID(c))
}

func (s *Server) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name": "foodpath",
		"endpoints": []string{
			"GET /api/categories",
			"GET /api/products?category=&q=",
			"GET /api/products/export",
			"GET /api/products/:id",
			"GET /api/search/suggest?q=",
			"GET /api/cart",
			"POST /api/cart/items",
			"PUT /api/cart/items/:id",
			"DELETE /api/cart/items/:id",
			"PUT /api/cart/address",
			"POST /api/checkout",
			"GET /api/orders/latest",
			"GET /api/profile",
			"PUT /api/profile/username",
			"POST /api/profile/addresses",
			"DELETE /api/profile/addresses/:index",
			"POST /api/profile/password",
			"GET /api/recipes?q=&category=",
			"GET /api/recipes/:id",
			"GET /api/recipes/cuisine/:cuisine",
			"GET /api/cuisines",
			"POST /api/recipes/:id/reviews",
			"POST /api/recipes/submit",
			"GET /api/saved-recipes",
			"POST /api/saved-recipes/:id/toggle",
			"DELETE /api/saved-recipes/:id",
			"POST /api/auth/login",
			"POST /api/auth/register",
			"GET /api/auth/status",
			"POST /api/jobs/signup",
			"POST /api/jobs/login",
		},
	})
}
