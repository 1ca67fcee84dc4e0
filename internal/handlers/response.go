package handlers

import (
	"net/http"

	"github.com/go-authgate/authbridge/internal/core"

	"github.com/gin-gonic/gin"
)

// respondError writes the standard error body
func respondError(c *gin.Context, status int, kind core.ErrorKind, message string) {
	c.JSON(status, gin.H{
		"error":   kind,
		"message": message,
	})
}

// respondBindError reports a malformed or incomplete request body
func respondBindError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, core.KindValidationFailed, "Invalid request: "+err.Error())
}

// respondAuth writes the session-bearing result of a login modality
func respondAuth(c *gin.Context, result core.AuthResult, failureStatus int, message string) {
	if !result.Success {
		respondError(c, failureStatus, result.ErrorKind, result.ErrorMessage)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          result.User,
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"message":       message,
	})
}
