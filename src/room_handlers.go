package main

import (
	"crb/src/common"
	"crb/src/db"
	"crb/src/lib"
	"crb/src/models"
	"crb/src/types"
	"crb/src/utils"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func roomHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/rooms", func(ctx *gin.Context) {
			var rooms []models.Room
			d := db.GetDb()
			q := d.
				Model(&models.Room{}).
				Where("is_available = ?", true)
			if roomType := ctx.Query("type"); roomType != "" {
				q = q.Where("room_type = ?", roomType)
			}
			if view := ctx.Query("view"); view != "" {
				q = q.Where("view = ?", view)
			}
			if err := q.Order("created_at desc").Find(&rooms).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms})
		}).
		GET("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var room models.Room
			d := db.GetDb()
			if err := d.
				Model(&models.Room{}).
				Where(&models.Room{ID: params.ID}).
				First(&room).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": common.ErrRoomNotFound.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": room})
		}).
		GET("/rooms/:id/bookings", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			cacheKey := utils.RoomBookingsKey(params.ID)
			if cached := lib.CacheGet(cacheKey); cached != "" {
				var windows []types.RoomBookingWindow
				if err := json.Unmarshal([]byte(cached), &windows); err == nil {
					ctx.JSON(http.StatusOK, gin.H{"data": windows})
					return
				}
			}
			windows, err := common.BlockingWindows(params.ID)
			if err != nil {
				ctx.JSON(common.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			if raw, err := json.Marshal(windows); err == nil {
				lib.CacheSet(cacheKey, string(raw), 5*time.Minute)
			} else {
				log.Printf("Error serializing booking windows for room [%d]: %s\n", params.ID, err.Error())
			}
			ctx.JSON(http.StatusOK, gin.H{"data": windows})
		}).
		GET("/rooms/:id/calendar", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			from := common.Today()
			if q := ctx.Query("from"); q != "" {
				parsed, err := common.ParseDate(q)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "from must be formatted as YYYY-MM-DD"})
					return
				}
				from = parsed
			}
			windows, err := common.BlockingWindows(params.ID)
			if err != nil {
				ctx.JSON(common.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			days := common.UnavailableDates(windows, from)
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
				"from":        from.Format("2006-01-02"),
				"unavailable": common.FormatDates(days),
			}})
		})
	return g
}
