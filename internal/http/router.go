package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "coachingfees/internal/config"
	"coachingfees/internal/docstore"
	h "coachingfees/internal/http/handlers"
	"coachingfees/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env, docstore.MySQLStore{})

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)

		// Mark-paid invocation surface; the admin email travels in the body
		// and is checked against the allow-list inside the service.
		api.POST("/functions/mark-paid", h.MarkPaid)

		// Dashboard routes require an admin bearer token.
		admin := api.Group("")
		admin.Use(middleware.RequireAdmin(env))
		{
			students := admin.Group("/students")
			students.GET("", h.GetStudents)
			students.POST("", h.CreateStudent)
			students.PUT("/:id", h.UpdateStudent)
			students.DELETE("/:id", h.DeleteStudent)

			payments := admin.Group("/payments")
			payments.GET("", h.GetPaymentsView)
			payments.GET("/:studentId/:month/receipt", h.GetPaymentReceiptPDF)

			admin.GET("/settings", h.GetSettings)
			admin.PUT("/settings", h.UpdateSettings)

			admin.GET("/sms-logs", h.GetSmsLogs)
		}
	}

	h.SetRouter(r)
	return r
}
