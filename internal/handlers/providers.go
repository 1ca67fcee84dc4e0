package handlers

import (
	"net/http"

	"github.com/go-authgate/authbridge/internal/core"
	"github.com/go-authgate/authbridge/internal/providers"

	"github.com/gin-gonic/gin"
)

// ListProviders returns the curated provider catalog sorted by display name
func ListProviders(c *gin.Context) {
	c.JSON(http.StatusOK, providers.List())
}

// GetProvider returns one catalog entry, matched case-insensitively
func GetProvider(c *gin.Context) {
	info, ok := providers.Get(c.Param("provider"))
	if !ok {
		respondError(c, http.StatusNotFound, core.KindValidationFailed, "Provider not found")
		return
	}
	c.JSON(http.StatusOK, info)
}
