package main

import (
	"crb/src/common"
	"crb/src/db"
	"crb/src/lib"
	"crb/src/models"
	"crb/src/types"
	"crb/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkIn, err := common.ParseDate(body.CheckIn)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkOut, err := common.ParseDate(body.CheckOut)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			booking, err := common.CreateBooking(userId, &common.BookingInput{
				RoomID:          body.RoomID,
				CheckIn:         checkIn,
				CheckOut:        checkOut,
				Guests:          body.Guests,
				GuestName:       body.GuestName,
				GuestEmail:      body.GuestEmail,
				GuestPhone:      body.GuestPhone,
				SpecialRequests: body.SpecialRequests,
			})
			if err != nil {
				ctx.JSON(common.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			lib.CacheDel(utils.RoomBookingsKey(booking.RoomID))
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var bookings []models.Booking
			d := db.GetDb()
			if err := d.
				Model(&models.Booking{}).
				Preload("Room").
				Where(&models.Booking{UserID: userId}).
				Order("created_at desc").
				Find(&bookings).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			var booking models.Booking
			d := db.GetDb()
			if err := d.
				Model(&models.Booking{}).
				Preload("Room").
				Where(&models.Booking{ID: params.ID, UserID: userId}).
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": common.ErrBookingNotFound.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkIn, err := common.ParseDate(body.CheckIn)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkOut, err := common.ParseDate(body.CheckOut)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			booking, err := common.UpdateBooking(userId, params.ID, &common.BookingInput{
				CheckIn:         checkIn,
				CheckOut:        checkOut,
				Guests:          body.Guests,
				GuestName:       body.GuestName,
				GuestEmail:      body.GuestEmail,
				GuestPhone:      body.GuestPhone,
				SpecialRequests: body.SpecialRequests,
			})
			if err != nil {
				ctx.JSON(common.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			lib.CacheDel(utils.RoomBookingsKey(booking.RoomID))
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			roomId, err := common.CancelOwnBooking(userId, params.ID)
			if err != nil {
				ctx.JSON(common.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			lib.CacheDel(utils.RoomBookingsKey(roomId))
			ctx.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
		}).
		DELETE("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			roomId, err := common.DeleteOwnBooking(userId, params.ID)
			if err != nil {
				ctx.JSON(common.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			lib.CacheDel(utils.RoomBookingsKey(roomId))
			ctx.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
		})
	return g
}
