package controllers

import (
	"context"
	"crb/src/db"
	"crb/src/lib"
	"crb/src/models"
	"crb/src/types"
	"crb/src/utils"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthRegister(ctx *gin.Context) (status int, err error) {
	var body types.RegisterRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))

	d := db.GetDb()
	err = d.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.
			Model(&models.User{}).
			Select("id").
			Where("email = ? OR username = ?", email, body.Username).
			First(&existing).
			Error
		if err == nil {
			return errors.New("a user with that email or username already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			return err
		}
		newUser := models.User{
			Username: body.Username,
			Email:    email,
			Password: hash,
		}
		if err := tx.Create(&newUser).Error; err != nil {
			log.Printf("Error creating user: %s\n", err.Error())
			return fmt.Errorf("error creating user: %s", email)
		}
		return nil
	})
	if err != nil {
		return http.StatusBadRequest, err
	}
	return http.StatusCreated, nil
}

func AuthLogin(ctx *gin.Context) (token *string, user *models.User, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, nil, http.StatusBadRequest, err
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))

	d := db.GetDb()
	var muser models.User
	if err = d.
		Model(&models.User{}).
		Where("email = ?", email).
		First(&muser).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, http.StatusBadRequest, errors.New("user not found")
		}
		return nil, nil, http.StatusBadRequest, err
	}
	if !utils.CheckPassword(muser.Password, body.Password) {
		return nil, nil, http.StatusBadRequest, errors.New("password does not match")
	}

	jwt, err := utils.GenerateJWT(muser.Username, muser.Email, muser.ID, muser.IsAdmin)
	if err != nil {
		log.Printf("Error generating JWT for user [%d]: %s\n", muser.ID, err.Error())
		return nil, nil, http.StatusInternalServerError, errors.New("could not issue token")
	}
	return &jwt, &muser, http.StatusOK, nil
}

func AuthUpdateProfile(ctx *gin.Context) (*models.User, int, error) {
	var body types.UpdateProfileRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	userID := ctx.GetUint("id")

	d := db.GetDb()
	var user models.User
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.User{}).
			Where(&models.User{ID: userID}).
			First(&user).
			Error; err != nil {
			return err
		}
		if body.Email != "" && body.Email != user.Email {
			email := strings.ToLower(strings.TrimSpace(body.Email))
			var count int64
			if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return errors.New("email is already in use")
			}
			user.Email = email
		}
		if body.Username != "" && body.Username != user.Username {
			var count int64
			if err := tx.Model(&models.User{}).Where("username = ?", body.Username).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return errors.New("username is already in use")
			}
			user.Username = body.Username
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &user, http.StatusOK, nil
}

func AuthChangePassword(ctx *gin.Context) (int, error) {
	var body types.ChangePasswordRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	userID := ctx.GetUint("id")

	d := db.GetDb()
	err := d.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.
			Model(&models.User{}).
			Where(&models.User{ID: userID}).
			First(&user).
			Error; err != nil {
			return err
		}
		if !utils.CheckPassword(user.Password, body.CurrentPassword) {
			return errors.New("current password does not match")
		}
		hash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			return err
		}
		return tx.
			Model(&models.User{}).
			Where(&models.User{ID: user.ID}).
			Update("password", hash).
			Error
	})
	if err != nil {
		return http.StatusBadRequest, err
	}
	return http.StatusOK, nil
}

// AuthForgotPassword always reports success so the endpoint cannot be used
// to probe for registered addresses. The reset token lives in redis for an
// hour.
func AuthForgotPassword(ctx *gin.Context) (int, error) {
	var body types.ForgotPasswordRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))

	d := db.GetDb()
	var user models.User
	if err := d.
		Model(&models.User{}).
		Select("id", "email", "username").
		Where("email = ?", email).
		First(&user).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusOK, nil
		}
		return http.StatusBadRequest, err
	}

	rd := lib.GetRedisClient()
	if rd == nil {
		return http.StatusInternalServerError, errors.New("reset service unavailable")
	}
	token := utils.NewResetToken()
	if err := rd.SetEx(context.Background(), utils.ResetTokenKey(token), fmt.Sprintf("%d", user.ID), time.Hour).Err(); err != nil {
		log.Printf("[redis] Error storing reset token for user [%d]: %s\n", user.ID, err.Error())
		return http.StatusInternalServerError, errors.New("reset service unavailable")
	}

	appHost := os.Getenv("APP_HOST")
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", appHost, token)
	go func() {
		err := lib.SendMail(&lib.SendMailInput{
			From:     os.Getenv("MAIL_FROM"),
			FromName: "Cebu Resort",
			To:       []string{user.Email},
			Subject:  "Password reset request",
			Body:     fmt.Sprintf("Hello %s,\n\nUse the link below to reset your password. The link expires in one hour.\n\n%s\n", user.Username, resetURL),
		})
		if err != nil {
			log.Printf("Error sending reset email to %s: %s\n", user.Email, err.Error())
		}
	}()
	return http.StatusOK, nil
}

func AuthResetPassword(ctx *gin.Context) (int, error) {
	var body types.ResetPasswordRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	rd := lib.GetRedisClient()
	if rd == nil {
		return http.StatusInternalServerError, errors.New("reset service unavailable")
	}
	key := utils.ResetTokenKey(body.Token)
	uid, err := rd.Get(context.Background(), key).Result()
	if err != nil {
		return http.StatusBadRequest, errors.New("reset token is invalid or has expired")
	}

	hash, err := utils.HashPassword(body.Password)
	if err != nil {
		return http.StatusBadRequest, err
	}
	d := db.GetDb()
	err = d.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.User{}).
			Where("id = ?", uid).
			Update("password", hash)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("user not found")
		}
		return nil
	})
	if err != nil {
		return http.StatusBadRequest, err
	}
	rd.Del(context.Background(), key)
	return http.StatusOK, nil
}
