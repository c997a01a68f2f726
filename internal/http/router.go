package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"generative-pets/web"
)

// Los payloads con imagen en base64 pueden ser grandes; 25MB de margen.
const maxBodyBytes = 25 << 20

// NewRouter configura el router de Gin con middlewares y todas las rutas.
func NewRouter(
	logger *zap.Logger,
	chatH *ChatHandler,
	animalH *AnimalHandler,
	uploadsDir string,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery, CORS y límite de body.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), cors.Default(), maxBodyMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	chats := r.Group("/chats")
	chats.POST("", chatH.CreateChat)
	chats.GET("", chatH.ListChats)
	chats.GET("/:id", chatH.GetChat)
	chats.PATCH("/:id", chatH.RenameChat)
	chats.PATCH("/:id/prompt", chatH.UpdatePrompt)
	chats.DELETE("/:id", chatH.DeleteChat)
	chats.POST("/:id/reset", chatH.ResetChat)
	chats.PUT("/:id/preferences", chatH.UpsertPreferences)
	chats.POST("/:id/messages", chatH.PostMessage)
	chats.GET("/:id/suggestions", chatH.Suggestions)

	animals := r.Group("/animals")
	animals.GET("", animalH.ListAnimals)
	animals.POST("", animalH.CreateAnimal)

	// Imágenes subidas y la UI embebida.
	r.Static("/uploads", uploadsDir)
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index)
	})

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// maxBodyMiddleware acota el tamaño del request body.
func maxBodyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	}
}
