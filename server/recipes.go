package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"foodpath/catalog"
	"foodpath/recipes"
	"foodpath/store"
)

func (s *Server) listRecipes(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		sendJSONResponse(c, http.StatusOK, gin.H{"query": q, "recipes": s.deps.Recipes.Search(q)})
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"recipes": s.deps.Recipes.ByCategory(c.Query("category"))})
}

// getRecipe renders the first recipe for an unknown id, flagged as a fallback.
func (s *Server) getRecipe(c *gin.Context) {
	r, ok := s.deps.Recipes.Find(c.Param("id"))
	if !ok && r.ID == "" {
		sendErrorResponse(c, http.StatusNotFound, "Recipe not found")
		return
	}

	out := gin.H{"recipe": r, "fallback": !ok}
	if sessionHeaderSet(c) {
		saved, err := s.recipeBoxFromHeader(c).IsSaved(c.Request.Context(), r.ID)
		if err != nil {
			fail(c, err)
			return
		}
		out["saved"] = saved
	}
	sendJSONResponse(c, http.StatusOK, out)
}

func (s *Server) recipesByCuisine(c *gin.Context) {
	slug := c.Param("cuisine")
	sendJSONResponse(c, http.StatusOK, gin.H{
		"cuisine": catalog.CuisineName(slug),
		"recipes": s.deps.Recipes.ByCuisine(slug),
	})
}

func (s *Server) listCuisines(c *gin.Context) {
	sendJSONResponse(c, http.StatusOK, gin.H{"cuisines": s.deps.Recipes.Cuisines()})
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Server) submitReview(c *gin.Context) {
	r, ok := s.deps.Recipes.Find(c.Param("id"))
	if !ok {
		sendErrorResponse(c, http.StatusNotFound, "Recipe not found")
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}

	review, err := recipes.NewReview(req.Rating, req.Comment, time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusCreated, gin.H{
		"message": "Review submitted successfully!",
		"review":  review,
		"reviews": recipes.Prepend(r.Reviews, review),
	})
}

func (s *Server) submitRecipe(c *gin.Context) {
	var req recipes.Submission
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	sub, err := recipes.ValidateSubmission(req)
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusCreated, gin.H{"message": "Recipe submitted successfully!", "recipe": sub})
}

func (s *Server) listSaved(c *gin.Context) {
	saved, err := s.recipeBox(c).Saved(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"savedRecipes": saved})
}

func (s *Server) toggleSaved(c *gin.Context) {
	r, ok := s.deps.Recipes.Find(c.Param("id"))
	if !ok {
		sendErrorResponse(c, http.StatusNotFound, "Recipe not found")
		return
	}

	box := s.recipeBox(c)
	saved, err := box.Toggle(c.Request.Context(), r)
	if err != nil {
		fail(c, err)
		return
	}

	msg := "Recipe added to your saved recipes"
	if !saved {
		msg = "Recipe removed from your saved recipes"
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"saved": saved, "message": msg})
}

func (s *Server) removeSaved(c *gin.Context) {
	saved, err := s.recipeBox(c).Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, gin.H{"savedRecipes": saved})
}

func sessionHeaderSet(c *gin.Context) bool {
	return store.ValidSession(c.GetHeader(sessionHeader))
}

// recipeBoxFromHeader serves routes outside the session group that still
// personalise their answer when a session is presented.
func (s *Server) recipeBoxFromHeader(c *gin.Context) *recipes.RecipeBox {
	c.Set(sessionKey, c.GetHeader(sessionHeader))
	return s.recipeBox(c)
}
