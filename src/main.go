package main

import (
	"crb/src/boot"
	"crb/src/config"
	"crb/src/controllers"
	"crb/src/db"
	"crb/src/middlewares"
	"crb/src/models"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"
	"strconv"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

const (
	apiPrefix string = "/api/v1"
)

// bookabledate: a calendar date that is today or later.
var bookableDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	day, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	y, m, d := time.Now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !day.Before(today)
}

// gtdate: the field must parse to a date strictly after the named sibling
// field. Used to keep check-out after check-in before a request reaches the
// pricing and conflict logic.
var gtdate validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	day, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	field := fl.Parent().FieldByName(fl.Param())
	fieldValue, ok := field.Interface().(string)
	if !ok {
		return false
	}
	fieldday, err := time.Parse(config.DATE_PARSE_FORMAT, fieldValue)
	if err != nil {
		return false
	}
	return day.After(fieldday)
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm := os.Getenv("MAINTENANCE_MODE")
		atoi, err := strconv.ParseBool(mm)
		if err == nil && atoi {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func publicRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	roomHandlers(apiv1)
	galleryHandlers(apiv1)
	return apiv1
}

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	guest := apiv1.Group("/auth")
	guest.
		POST("/register", func(ctx *gin.Context) {
			status, err := controllers.AuthRegister(ctx)
			if err != nil {
				log.Printf("[AuthRegister] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"message": "account created"})
		}).
		POST("/login", func(ctx *gin.Context) {
			token, user, status, err := controllers.AuthLogin(ctx)
			if err != nil {
				log.Printf("[AuthLogin] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"token": token,
				"user":  user,
			})
		}).
		POST("/forgot-password", func(ctx *gin.Context) {
			status, err := controllers.AuthForgotPassword(ctx)
			if err != nil {
				log.Printf("[AuthForgotPassword] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"message": "if the address is registered, a reset link has been sent"})
		}).
		POST("/reset-password", func(ctx *gin.Context) {
			status, err := controllers.AuthResetPassword(ctx)
			if err != nil {
				log.Printf("[AuthResetPassword] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"message": "password has been reset"})
		})
	return guest
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	boot.InitDb()
	boot.InitScheduler()
	defer boot.StopScheduler()

	router := setupRouter()

	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
		v.RegisterValidation("gtdate", gtdate)
	}

	router = maintenanceModeMiddleware(router)

	publicRoutes(router)

	guestAuthRoutes(router)

	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware)
	{
		authorized.
			GET("/auth/profile", func(ctx *gin.Context) {
				userId := ctx.GetUint("id")
				var user models.User
				d := db.GetDb()
				if err := d.
					Model(&models.User{}).
					Where(&models.User{ID: userId}).
					First(&user).
					Error; err != nil {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": user})
			}).
			PUT("/auth/profile", func(ctx *gin.Context) {
				user, status, err := controllers.AuthUpdateProfile(ctx)
				if err != nil {
					log.Printf("[AuthUpdateProfile] error: %s\n", err.Error())
					ctx.JSON(status, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(status, gin.H{"data": user})
			}).
			PUT("/auth/password", func(ctx *gin.Context) {
				status, err := controllers.AuthChangePassword(ctx)
				if err != nil {
					log.Printf("[AuthChangePassword] error: %s\n", err.Error())
					ctx.JSON(status, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(status, gin.H{"message": "password updated"})
			})

		bookingHandlers(authorized)
	}

	admin := router.Group(apiPrefix)
	admin.Use(middlewares.AuthMiddleware, middlewares.AdminOnly)
	{
		adminHandlers(admin)
	}

	router.Run(":9090")
}
