package server

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodpath/catalog"
	"foodpath/grocery"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) listCategories(c *gin.Context) {
	sendJSONResponse(c, http.StatusOK, gin.H{"categories": s.deps.Products.Categories()})
}

func (s *Server) listProducts(c *gin.Context) {
	category := c.Query("category")
	query := c.Query("q")

	out := gin.H{
		"category": catalog.CategoryName(category),
		"products": s.deps.Products.Search(query, category),
	}
	if slug, ok := catalog.SuggestCategory(query); ok {
		out["suggestedCategory"] = slug
	}
	sendJSONResponse(c, http.StatusOK, out)
}

func (s *Server) getProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	p, ok := s.deps.Products.Find(id)
	if !ok {
		fail(c, grocery.ErrProductNotFound)
		return
	}
	sendJSONResponse(c, http.StatusOK, p)
}

func (s *Server) exportProducts(c *gin.Context) {
	products := s.deps.Products.Search(c.Query("q"), c.Query("category"))

	var buf bytes.Buffer
	if err := catalog.WriteProductsXLSX(&buf, products); err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) suggestCategory(c *gin.Context) {
	slug, ok := catalog.SuggestCategory(c.Query("q"))
	if !ok {
		sendJSONResponse(c, http.StatusOK, gin.H{"found": false})
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{
		"found":    true,
		"category": slug,
		"name":     catalog.CategoryName(slug),
	})
}

func (s *Server) respondCart(c *gin.Context, sf *grocery.Storefront) {
	sum, err := sf.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, sum)
}

func (s *Server) getCart(c *gin.Context) {
	s.respondCart(c, s.storefront(c))
}

type addItemRequest struct {
	ProductID int `json:"productId" binding:"required"`
}

func (s *Server) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	p, ok := s.deps.Products.Find(req.ProductID)
	if !ok {
		fail(c, grocery.ErrProductNotFound)
		return
	}

	sf := s.storefront(c)
	if _, err := sf.AddToCart(c.Request.Context(), p); err != nil {
		fail(c, err)
		return
	}
	s.respondCart(c, sf)
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (s *Server) updateCartItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}

	sf := s.storefront(c)
	if _, err := sf.UpdateQuantity(c.Request.Context(), id, *req.Quantity); err != nil {
		fail(c, err)
		return
	}
	s.respondCart(c, sf)
}

func (s *Server) removeCartItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}

	sf := s.storefront(c)
	if _, err := sf.RemoveItem(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	s.respondCart(c, sf)
}

type addressRequest struct {
	Address string `json:"address"`
}

func (s *Server) setAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err := s.storefront(c).ProceedToPayment(c.Request.Context(), req.Address); err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"message": "Delivery address saved"})
}

func (s *Server) checkout(c *gin.Context) {
	var req grocery.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}

	sf := s.storefront(c)
	order, err := sf.Checkout(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusCreated, grocery.NewConfirmation(order, sf.Pricing()))
}

func (s *Server) latestOrder(c *gin.Context) {
	conf, err := s.storefront(c).LatestOrder(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, conf)
}

func (s *Server) getProfile(c *gin.Context) {
	p, err := s.storefront(c).Profile(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, p)
}

type usernameRequest struct {
	Username string `json:"username"`
}

func (s *Server) updateUsername(c *gin.Context) {
	var req usernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	p, err := s.storefront(c).UpdateUsername(c.Request.Context(), req.Username)
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"message": "Username updated!", "profile": p})
}

func (s *Server) addAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	p, err := s.storefront(c).AddAddress(c.Request.Context(), req.Address)
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, p)
}

func (s *Server) removeAddress(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	p, err := s.storefront(c).RemoveAddress(c.Request.Context(), index)
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, p)
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) changePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err := grocery.ChangePassword(req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"message": "Password changed successfully!"})
}
