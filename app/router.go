// Package app wires the endpoints, middleware and collaborators together
package app

import (
	"fmt"
	"strings"
	"time"

	"spongkj/contacts-api/app/contact"
	"spongkj/contacts-api/app/user"
	"spongkj/contacts-api/aws"
	"spongkj/contacts-api/db"
	"spongkj/contacts-api/internal"
	"spongkj/contacts-api/internal/service"
	"spongkj/contacts-api/pkg/middleware"
	"spongkj/contacts-api/pkg/security"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

func NewRouter() (*gin.Engine, error) {
	makeLogger()

	router := gin.New()

	origins := strings.Split(viper.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "TurnstileToken"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("user_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	d := &internal.Deps{
		DB:     database,
		Argon:  security.New(),
		Tokens: security.NewTokenIssuer(viper.GetString("jwt.secret"), time.Duration(viper.GetInt("jwt.ttl_minutes"))*time.Minute),
		Mailer: service.NewSMTPMailer(),
	}

	switch viper.GetString("storage.type") {
	case "s3":
		s3, err := aws.NewS3()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}

		d.Avatars = service.NewS3AvatarStore(s3)
	default:
		dir := viper.GetString("storage.local_path")

		store, err := service.NewLocalAvatarStore(dir)
		if err != nil {
			return nil, err
		}

		d.Avatars = store
		router.Static("/avatars", dir)
	}

	registerRoutes(router, d)

	// Clear stored sessions whose tokens already expired
	service.SessionCleanup(time.Hour, database, d.Tokens)

	return router, nil
}

func registerRoutes(router *gin.Engine, d *internal.Deps) {
	auth := middleware.NewAuthMiddleware(d.DB, d.Tokens)
	turnstile := middleware.NewTurnstileMiddleware()

	api := router.Group("/api")

	users := api.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/users/signup		-> Registers a new, unverified user
		users.POST("/signup", turnstile, func(c *gin.Context) { user.UserSignup(c, d) })

		// POST /api/users/login		-> Logs in a verified user and returns a bearer token
		users.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// GET /api/users/logout		-> Revokes the current session
		users.GET("/logout", auth, func(c *gin.Context) { user.UserLogout(c, d) })

		// GET /api/users/current		-> Returns the profile of the authenticated user
		users.GET("/current", auth, func(c *gin.Context) { user.UserCurrent(c, d) })

		// PATCH /api/users/subscription	-> Changes the subscription tier
		users.PATCH("/subscription", auth, func(c *gin.Context) { user.UserSubscription(c, d) })

		// GET /api/users/verify/:verificationToken -> Consumes a verification token
		users.GET("/verify/:verificationToken", func(c *gin.Context) { user.UserVerify(c, d) })

		// POST /api/users/verify		-> Resends the verification mail
		users.POST("/verify", turnstile, func(c *gin.Context) { user.UserResendVerification(c, d) })

		// POST /api/users/reset-password	-> Resets a forgotten password
		users.POST("/reset-password", turnstile, func(c *gin.Context) { user.UserResetPassword(c, d) })
	}

	// PATCH /api/users/avatars			-> Uploads a new avatar image
	api.PATCH("/users/avatars", auth, middleware.BodySizeLimiter(5<<20), func(c *gin.Context) { user.UserAvatar(c, d) })

	contacts := api.Group("/contacts", auth, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/contacts			-> Lists the requester's contacts
		contacts.GET("", func(c *gin.Context) { contact.ContactList(c, d) })

		// POST /api/contacts			-> Creates a contact owned by the requester
		contacts.POST("", func(c *gin.Context) { contact.ContactCreate(c, d) })

		// GET /api/contacts/:contactId		-> Returns a single owned contact
		contacts.GET("/:contactId", func(c *gin.Context) { contact.ContactFetch(c, d) })

		// PUT /api/contacts/:contactId		-> Updates an owned contact
		contacts.PUT("/:contactId", func(c *gin.Context) { contact.ContactUpdate(c, d) })

		// DELETE /api/contacts/:contactId	-> Deletes an owned contact
		contacts.DELETE("/:contactId", func(c *gin.Context) { contact.ContactDelete(c, d) })

		// PATCH /api/contacts/:contactId/favorite -> Toggles the favorite flag
		contacts.PATCH("/:contactId/favorite", func(c *gin.Context) { contact.ContactFavorite(c, d) })
	}
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
