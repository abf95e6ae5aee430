package main

import (
	"crb/src/common"
	"crb/src/db"
	"crb/src/lib"
	"crb/src/models"
	"crb/src/types"
	"crb/src/utils"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/admin/dashboard", func(ctx *gin.Context) {
			var totalRooms, totalBookings, totalUsers, pendingBookings int64
			var monthRevenue int64
			var recent []models.Booking
			d := db.GetDb()
			err := d.Transaction(func(tx *gorm.DB) error {
				if err := tx.Model(&models.Room{}).Count(&totalRooms).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Booking{}).Count(&totalBookings).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
					return err
				}
				if err := tx.
					Model(&models.Booking{}).
					Where("status = ?", types.BOOKING_PENDING).
					Count(&pendingBookings).
					Error; err != nil {
					return err
				}
				now := time.Now().UTC()
				monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
				row := tx.
					Model(&models.Booking{}).
					Select("coalesce(sum(total_price), 0)").
					Where("status IN ?", []types.BookingStatus{types.BOOKING_CONFIRMED, types.BOOKING_COMPLETED}).
					Where("created_at >= ?", monthStart).
					Row()
				if err := row.Scan(&monthRevenue); err != nil {
					return err
				}
				return tx.
					Model(&models.Booking{}).
					Preload("Room").
					Preload("User").
					Order("created_at desc").
					Limit(5).
					Find(&recent).
					Error
			})
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
				"totalRooms":      totalRooms,
				"totalBookings":   totalBookings,
				"totalUsers":      totalUsers,
				"pendingBookings": pendingBookings,
				"monthRevenue":    monthRevenue,
				"recentBookings":  recent,
			}})
		}).
		GET("/admin/bookings", func(ctx *gin.Context) {
			var bookings []models.Booking
			d := db.GetDb()
			q := d.
				Model(&models.Booking{}).
				Preload("Room").
				Preload("User")
			if status := ctx.Query("status"); status != "" {
				q = q.Where("status = ?", status)
			}
			if roomId := ctx.Query("room"); roomId != "" {
				q = q.Where("room_id = ?", roomId)
			}
			if err := q.
				Order("created_at desc").
				Find(&bookings).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings})
		}).
		GET("/admin/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var booking models.Booking
			d := db.GetDb()
			if err := d.
				Model(&models.Booking{}).
				Preload("Room").
				Preload("User").
				Where(&models.Booking{ID: params.ID}).
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": common.ErrBookingNotFound.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/admin/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.AdminUpdateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var booking models.Booking
			d := db.GetDb()
			err := d.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.Booking{}).
					Where(&models.Booking{ID: params.ID}).
					First(&booking).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return common.ErrBookingNotFound
					}
					return err
				}
				checkIn, checkOut := booking.CheckIn, booking.CheckOut
				if body.CheckIn != "" {
					parsed, err := common.ParseDate(body.CheckIn)
					if err != nil {
						return err
					}
					checkIn = parsed
				}
				if body.CheckOut != "" {
					parsed, err := common.ParseDate(body.CheckOut)
					if err != nil {
						return err
					}
					checkOut = parsed
				}
				if !checkIn.Equal(booking.CheckIn) || !checkOut.Equal(booking.CheckOut) {
					if !common.Day(checkOut).After(common.Day(checkIn)) {
						return common.ErrInvalidRange
					}
					if err := common.CheckRoomConflict(tx, booking.RoomID, checkIn, checkOut, booking.ID); err != nil {
						return err
					}
					var room models.Room
					if err := tx.
						Model(&models.Room{}).
						Where(&models.Room{ID: booking.RoomID}).
						First(&room).
						Error; err != nil {
						return err
					}
					total, err := common.ComputeTotalPrice(room.Price, checkIn, checkOut)
					if err != nil {
						return err
					}
					booking.CheckIn = common.Day(checkIn)
					booking.CheckOut = common.Day(checkOut)
					booking.TotalPrice = total
				}
				if body.Guests > 0 {
					booking.Guests = body.Guests
				}
				if body.GuestName != "" {
					booking.GuestName = body.GuestName
				}
				if body.GuestEmail != "" {
					booking.GuestEmail = body.GuestEmail
				}
				if body.GuestPhone != "" {
					booking.GuestPhone = body.GuestPhone
				}
				if body.SpecialRequests != "" {
					booking.SpecialRequests = body.SpecialRequests
				}
				if err := tx.Save(&booking).Error; err != nil {
					return err
				}
				if body.Status != "" {
					next := types.BookingStatus(body.Status)
					if err := common.TransitionBookingStatus(tx, &booking, next); err != nil {
						return err
					}
					booking.Status = next
				}
				return nil
			}, common.SerializableTxOpts)
			if err != nil {
				ctx.JSON(common.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			lib.CacheDel(utils.RoomBookingsKey(booking.RoomID))
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		DELETE("/admin/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var booking models.Booking
			d := db.GetDb()
			err := d.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.Booking{}).
					Where(&models.Booking{ID: params.ID}).
					First(&booking).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return common.ErrBookingNotFound
					}
					return err
				}
				return tx.Delete(&models.Booking{}, booking.ID).Error
			})
			if err != nil {
				ctx.JSON(common.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			lib.CacheDel(utils.RoomBookingsKey(booking.RoomID))
			ctx.Status(http.StatusNoContent)
		}).
		GET("/admin/rooms", func(ctx *gin.Context) {
			// Unlike the public list this includes unavailable rooms.
			var rooms []models.Room
			d := db.GetDb()
			if err := d.
				Model(&models.Room{}).
				Order("created_at desc").
				Find(&rooms).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms})
		}).
		POST("/admin/rooms", func(ctx *gin.Context) {
			var body types.CreateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			room := models.Room{
				Name:                body.Name,
				Slug:                slug.Make(body.Name),
				Description:         body.Description,
				DetailedDescription: body.DetailedDescription,
				Price:               body.Price,
				Image:               body.Image,
				Images:              toJSONBArray(body.Images),
				Size:                body.Size,
				Capacity:            body.Capacity,
				Amenities:           toJSONBArray(body.Amenities),
				Features:            toJSONBArray(body.Features),
			}
			if body.RoomType != "" {
				room.RoomType = body.RoomType
			}
			if body.View != "" {
				room.View = body.View
			}
			if body.IsAvailable != nil {
				room.IsAvailable = *body.IsAvailable
			} else {
				room.IsAvailable = true
			}
			d := db.GetDb()
			if err := d.Create(&room).Error; err != nil {
				log.Printf("Error creating room: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": room})
		}).
		PUT("/admin/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var room models.Room
			d := db.GetDb()
			err := d.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.Room{}).
					Where(&models.Room{ID: params.ID}).
					First(&room).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return common.ErrRoomNotFound
					}
					return err
				}
				if body.Name != "" && body.Name != room.Name {
					room.Name = body.Name
					room.Slug = slug.Make(body.Name)
				}
				if body.Description != "" {
					room.Description = body.Description
				}
				if body.DetailedDescription != "" {
					room.DetailedDescription = body.DetailedDescription
				}
				if body.Price != nil {
					room.Price = *body.Price
				}
				if body.Image != "" {
					room.Image = body.Image
				}
				if body.Images != nil {
					room.Images = toJSONBArray(body.Images)
				}
				if body.Size != "" {
					room.Size = body.Size
				}
				if body.Capacity > 0 {
					room.Capacity = body.Capacity
				}
				if body.Amenities != nil {
					room.Amenities = toJSONBArray(body.Amenities)
				}
				if body.Features != nil {
					room.Features = toJSONBArray(body.Features)
				}
				if body.RoomType != "" {
					room.RoomType = body.RoomType
				}
				if body.View != "" {
					room.View = body.View
				}
				if body.IsAvailable != nil {
					room.IsAvailable = *body.IsAvailable
				}
				return tx.Save(&room).Error
			})
			if err != nil {
				ctx.JSON(common.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": room})
		}).
		DELETE("/admin/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			d := db.GetDb()
			err := d.Transaction(func(tx *gorm.DB) error {
				var room models.Room
				if err := tx.
					Model(&models.Room{}).
					Select("id").
					Where(&models.Room{ID: params.ID}).
					First(&room).
					Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return common.ErrRoomNotFound
					}
					return err
				}
				// Booking rows survive a room delete on purpose; past stays
				// keep their history.
				return tx.Delete(&models.Room{}, room.ID).Error
			})
			if err != nil {
				ctx.JSON(common.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			lib.CacheDel(utils.RoomBookingsKey(params.ID))
			ctx.Status(http.StatusNoContent)
		}).
		GET("/admin/users", func(ctx *gin.Context) {
			var users []models.User
			d := db.GetDb()
			if err := d.
				Model(&models.User{}).
				Order("created_at desc").
				Find(&users).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": users})
		}).
		GET("/admin/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var user models.User
			d := db.GetDb()
			if err := d.
				Model(&models.User{}).
				Preload("Bookings").
				Where(&models.User{ID: params.ID}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		})
	return g
}

func toJSONBArray(values []string) types.JSONBArray {
	arr := make(types.JSONBArray, 0, len(values))
	for _, v := range values {
		arr = append(arr, v)
	}
	return arr
}
