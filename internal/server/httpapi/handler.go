package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/aiworkbench/internal/api"
	"github.com/dmitrijs2005/aiworkbench/internal/common"
	"github.com/dmitrijs2005/aiworkbench/internal/server/auth"
	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, status int, data any) {
	env := api.Envelope{Success: true}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			fail(c, http.StatusInternalServerError, common.ErrorInternal.Error())
			return
		}
		env.Data = b
	}
	c.JSON(status, env)
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, api.Envelope{Success: false, Message: message})
}

func (s *HTTPServer) Health(c *gin.Context) {
	respond(c, http.StatusOK, nil)
}

func (s *HTTPServer) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(ctx, "Login rejected", "username", req.Username)
			fail(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.logger.Error(ctx, "login failed", "err", err)
		fail(c, http.StatusInternalServerError, common.ErrorInternal.Error())
		return
	}

	token, _, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "err", err)
		fail(c, http.StatusInternalServerError, common.ErrorInternal.Error())
		return
	}

	s.logger.Info(ctx, "Logged in", "username", user.Username, "role", user.Role)
	respond(c, http.StatusOK, api.LoginData{User: *user, Token: token})
}

func (s *HTTPServer) Logout(c *gin.Context) {
	claims := claimsFrom(c)
	s.revoked.Revoke(claims.ID, claims.ExpiresAt.Time)
	s.logger.Info(c.Request.Context(), "Logged out", "user_id", claims.Subject)
	respond(c, http.StatusOK, nil)
}

func (s *HTTPServer) Me(c *gin.Context) {
	claims := claimsFrom(c)
	user, err := s.users.GetByID(c.Request.Context(), claims.Subject)
	if err != nil {
		fail(c, http.StatusUnauthorized, "unknown user")
		return
	}
	respond(c, http.StatusOK, user)
}
