package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodpath/auth"
)

func (s *Server) login(c *gin.Context) {
	var creds auth.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	res, err := s.deps.Auth.Login(c.Request.Context(), creds)
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, authResponse(res))
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	res, err := s.deps.Auth.Register(c.Request.Context(), auth.SignupForm(req))
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, authResponse(res))
}

func (s *Server) connectionStatus(c *gin.Context) {
	sendJSONResponse(c, http.StatusOK, s.deps.Auth.TestConnection(c.Request.Context()))
}

type jobSignupRequest struct {
	FullName        string `json:"fullname"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) jobSignup(c *gin.Context) {
	var req jobSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	res, err := s.deps.Auth.JobSignup(c.Request.Context(), auth.JobSignupForm(req))
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, authResponse(res))
}

func (s *Server) jobLogin(c *gin.Context) {
	var creds auth.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	res, err := s.deps.Auth.JobLogin(c.Request.Context(), creds)
	if err != nil {
		fail(c, err)
		return
	}
	sendJSONResponse(c, http.StatusOK, authResponse(res))
}
