package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	db "github.com/dontcallmebro/BQL-APP/db/sqlc"
	"github.com/dontcallmebro/BQL-APP/util"
)

const keyLifetime = 6 * 30 * 24 * time.Hour

type registerRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// register issues a new API key. Only the bcrypt hash is stored; the key is shown once.
func (server *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	prefix, apiKey, err := util.GenerateAPIKey()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err))
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	key, err := server.store.CreateAPIKey(c, db.CreateAPIKeyParams{
		Prefix:       prefix,
		EmailAddress: req.Email,
		Token:        string(hashed),
		ExpiredAt:    time.Now().Add(keyLifetime),
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":      key.EmailAddress,
		"api_key":    apiKey,
		"expired_at": key.ExpiredAt,
	})
}
