package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/config"
	"inkwell/internal/model"
	"inkwell/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if repo != nil {
		created, err := model.SeedOperator(context.Background(), repo, cfg)
		if err != nil {
			logrus.WithError(err).Warn("failed to seed operator account")
		} else if created {
			logger.WithField("username", cfg.AdminUsername).Info("seeded operator account")
		}
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.GET("/status", httpHandler.AuthStatus)
	authGroup.POST("/register", httpHandler.Register)
	authGroup.POST("/login", httpHandler.Login)
	authGroup.POST("/logout", httpHandler.Logout)
	authGroup.GET("/me", httpHandler.AuthMiddleware(), httpHandler.Me)

	// Public blog surface.
	apiGroup.GET("/posts", httpHandler.ListPublishedPosts)
	apiGroup.GET("/posts/:slug", httpHandler.GetPostBySlug)
	apiGroup.POST("/contact", httpHandler.SubmitContactMessage)

	// Admin dashboard surface.
	admin := apiGroup.Group("/admin")
	admin.Use(httpHandler.AuthMiddleware(), httpHandler.RequireAdmin())

	admin.GET("/posts", httpHandler.ListAllPosts)
	admin.POST("/posts", httpHandler.CreatePost)
	admin.PATCH("/posts/:id", httpHandler.UpdatePost)
	admin.DELETE("/posts/:id", httpHandler.DeletePost)
	admin.POST("/posts/:id/publish", httpHandler.PublishPost)
	admin.POST("/posts/:id/unpublish", httpHandler.UnpublishPost)
	admin.GET("/posts/:id/preview-token", httpHandler.IssuePreviewToken)

	admin.POST("/media", httpHandler.UploadMedia)
	admin.GET("/media", httpHandler.ListMedia)
	admin.DELETE("/media/:id", httpHandler.DeleteMedia)

	admin.GET("/messages", httpHandler.ListContactMessages)
	admin.POST("/messages/:id/read", httpHandler.MarkContactMessageRead)
	admin.DELETE("/messages/:id", httpHandler.DeleteContactMessage)

	admin.PATCH("/profile", httpHandler.UpdateProfile)
	admin.POST("/sessions/revoke", httpHandler.RevokeSessions)

	// Serve locally stored media straight from disk.
	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/files"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("server starting")
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server failed")
	}
}

// CORSMiddleware handles cross-origin requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
