package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"
	"github.com/redis/go-redis/v9"

	"github.com/divyesh350/Skill-Swap-Platform/internal/accountstore"
	"github.com/divyesh350/Skill-Swap-Platform/internal/boot"
	"github.com/divyesh350/Skill-Swap-Platform/internal/handlers"
	"github.com/divyesh350/Skill-Swap-Platform/internal/mail"
	"github.com/divyesh350/Skill-Swap-Platform/internal/media"
	"github.com/divyesh350/Skill-Swap-Platform/internal/service/auth"
	"github.com/divyesh350/Skill-Swap-Platform/internal/service/user"
	"github.com/divyesh350/Skill-Swap-Platform/internal/token"
)

type AuthService interface {
	handlers.AuthService
}

type UserService interface {
	handlers.UserService
}

type config struct {
	*boot.Config
	issuer      *token.Issuer
	authService AuthService
	userService UserService
}

// newConfig builds every collaborator client up front and injects them into
// the services. Nothing downstream reaches for a global.
func newConfig(bootConfig *boot.Config) *config {
	store, err := accountstore.New(bootConfig.Database.Path)
	if err != nil {
		log.Fatalf("creating account store: %+v", err)
	}

	mailer, err := mail.New(bootConfig)
	if err != nil {
		log.Fatalf("creating mailer: %+v", err)
	}

	mediaStore, err := media.New(context.Background(), bootConfig)
	if err != nil {
		log.Fatalf("creating media store: %+v", err)
	}

	var cache *redis.Client
	if bootConfig.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     bootConfig.Redis.Addr,
			Password: bootConfig.Redis.Password,
		})
	}

	issuer := token.NewIssuer(bootConfig.JWT.AccessSecret, bootConfig.JWT.RefreshSecret)

	return &config{
		Config:      bootConfig,
		issuer:      issuer,
		authService: auth.New(store, issuer, mailer),
		userService: user.New(store, mediaStore, cache),
	}
}

func main() {
	bootConfig, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	config := newConfig(bootConfig)

	server := echo.New()
	server.Use(middleware.BodyLimit("10M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("skillswap"))
	server.Use(middleware.Recover())

	server.Logger.SetLevel(log.INFO)

	headers := []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization}
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     config.AllowedOrigins(),
		AllowHeaders:     headers,
		AllowCredentials: true,
	}))

	authGroup := server.Group("/api/auth")
	authGroup.POST("/register", handlers.Register(config.authService))
	authGroup.POST("/verify-email", handlers.VerifyEmail(config.authService))
	authGroup.POST("/login", handlers.Login(config.authService))
	authGroup.POST("/forgot-password", handlers.ForgotPassword(config.authService))
	authGroup.POST("/reset-password", handlers.ResetPassword(config.authService))

	authenticated := handlers.Authenticate(config.issuer)

	userGroup := server.Group("/api/users")
	userGroup.GET("/profile", handlers.GetProfile(config.userService), authenticated)
	userGroup.PUT("/profile", handlers.UpdateProfile(config.userService), authenticated)
	userGroup.POST("/profile/photo", handlers.UploadPhoto(config.userService), authenticated)
	userGroup.DELETE("/profile/photo", handlers.DeletePhoto(config.userService), authenticated)
	userGroup.GET("/skills/offered", handlers.GetOfferedSkills(config.userService), authenticated)
	userGroup.POST("/skills/offered", handlers.AddOfferedSkill(config.userService), authenticated)
	userGroup.PUT("/skills/offered/:skillId", handlers.UpdateOfferedSkill(config.userService), authenticated)
	userGroup.DELETE("/skills/offered/:skillId", handlers.DeleteOfferedSkill(config.userService), authenticated)
	userGroup.GET("/skills/wanted", handlers.GetWantedSkills(config.userService), authenticated)
	userGroup.POST("/skills/wanted", handlers.AddWantedSkill(config.userService), authenticated)
	userGroup.PUT("/skills/wanted/:skillId", handlers.UpdateWantedSkill(config.userService), authenticated)
	userGroup.DELETE("/skills/wanted/:skillId", handlers.DeleteWantedSkill(config.userService), authenticated)
	userGroup.GET("/availability", handlers.GetAvailability(config.userService), authenticated)
	userGroup.PUT("/availability", handlers.UpdateAvailability(config.userService), authenticated)
	userGroup.GET("/:id", handlers.GetPublicProfile(config.userService))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(":" + config.Server.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(":" + config.Server.Port); err != nil && err != http.ErrServerClosed {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Logger.Fatal(err)
	}
}
