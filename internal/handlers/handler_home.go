package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func GetHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Envelope Budget API is up"})
}
