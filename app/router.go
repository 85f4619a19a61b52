// Package app wires the endpoints to their dependencies
package app

import (
	"context"
	"strings"
	"time"

	"clippie/media-api/app/auth"
	"clippie/media-api/app/media"
	"clippie/media-api/app/root"
	"clippie/media-api/db"
	"clippie/media-api/internal"
	"clippie/media-api/internal/cdn"
	"clippie/media-api/internal/service"
	"clippie/media-api/internal/store"
	"clippie/media-api/pkg/middleware"
	"clippie/media-api/pkg/security"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
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

	manager := db.NewManager(viper.GetString("database.uri"), viper.GetString("database.name"))

	users := store.NewUsers(manager)
	records := store.NewMedia(manager)

	manager.OnConnect(users.EnsureIndexes)
	manager.OnConnect(records.EnsureIndexes)

	sessions := security.NewSessions(viper.GetString("session.secret"))
	argon := security.NewArgon()

	d := &internal.Deps{
		DB:       manager,
		Sessions: sessions,
		Auth:     service.NewAuth(users, argon, sessions),
		Media:    service.NewMedia(users, records, viper.GetBool("media.owner_delete")),
		Signer:   cdn.NewSigner(viper.GetString("cdn.private_key"), viper.GetDuration("cdn.upload_token_ttl")),
	}

	// Warm the connection so misconfiguration surfaces at startup
	// instead of on the first request. Failure is not fatal, the
	// manager retries lazily
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := manager.Ensure(ctx); err != nil {
		zap.L().Warn("Database not reachable yet, deferring connection", zap.Error(err))
	}

	router := gin.New()

	origins := strings.Split(viper.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	session := middleware.NewSessionMiddleware(sessions, users)

	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
	})

	m := router.Group("/api", middleware.BodySizeLimiter(1<<20))
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// HEAD /api/validate		-> Validates a session token
		m.HEAD("/validate", session, root.Validate)
	}

	a := m.Group("/auth", rateLimiter)
	{
		// POST /api/auth/register	-> Registers a new user
		a.POST("/register", func(c *gin.Context) { auth.Register(c, d) })

		// POST /api/auth/login 	-> Logs in a user and sets the session cookie
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// POST /api/auth/logout	-> Clears the session cookie
		a.POST("/logout", func(c *gin.Context) { auth.Logout(c, d) })

		// POST /api/auth/oauth/callback -> Provisions an account from an external profile
		a.POST("/oauth/callback", func(c *gin.Context) { auth.External(c, d) })
	}

	v := m.Group("/video", session)
	{
		// GET /api/video		-> Returns the caller's media records
		v.GET("", func(c *gin.Context) { media.List(c, d) })

		// POST /api/video		-> Saves the metadata of a completed upload
		v.POST("", func(c *gin.Context) { media.Create(c, d) })

		// DELETE /api/video		-> Deletes a media record by id
		v.DELETE("", func(c *gin.Context) { media.Delete(c, d) })
	}

	md := m.Group("/media", session)
	{
		// GET /api/media/upload-auth	-> Signs an upload authorization for the CDN widget
		md.GET("/upload-auth", func(c *gin.Context) { media.UploadAuth(c, d) })
	}

	return router, nil
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

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
