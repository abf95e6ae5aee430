package main

import (
	"crb/src/db"
	"crb/src/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

func galleryHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/gallery", func(ctx *gin.Context) {
			var images []models.GalleryImage
			d := db.GetDb()
			q := d.
				Model(&models.GalleryImage{}).
				Where("is_active = ?", true)
			if category := ctx.Query("category"); category != "" {
				q = q.Where("category = ?", category)
			}
			if err := q.
				Order("display_order asc, created_at desc").
				Find(&images).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": images})
		})
	return g
}
