// Package handlers exposes the service layer over HTTP with gin.
package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ukydev/fleet-manager/internal/auth"
	"github.com/ukydev/fleet-manager/internal/middleware"
	"github.com/ukydev/fleet-manager/internal/models"
	"github.com/ukydev/fleet-manager/internal/service"
)

// Options tunes the router's middleware.
type Options struct {
	CORSOrigins        []string
	AuthRequired       bool
	RateLimitRequests  int
	RateLimitWindowSec int
}

// Handler serves every resource route on top of a service.Service.
type Handler struct {
	svc *service.Service
}

// NewHandler creates a Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// NewRouter builds the gin engine with middleware and all routes registered.
func NewRouter(svc *service.Service, authService *auth.Service, opts Options) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = models.MaxDocumentSize
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), corsMiddleware(opts.CORSOrigins))
	if opts.RateLimitRequests > 0 {
		r.Use(middleware.NewRateLimitMiddleware().RateLimit(opts.RateLimitRequests, opts.RateLimitWindowSec))
	}

	authMW := middleware.NewAuthMiddleware(authService, opts.AuthRequired)
	r.Use(authMW.Authenticate())
	perm := authMW.RequirePermission

	h := NewHandler(svc)
	r.GET("/test", h.Health)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/profile", h.GetProfile)
	r.POST("/auth/password", h.ChangePassword)

	r.POST("/users", perm("manage_users"), h.CreateUser)
	r.GET("/users", perm("view_users"), h.ListUsers)
	r.GET("/users/:id", perm("view_users"), h.GetUser)

	r.POST("/vehicles", perm("manage_vehicles"), h.CreateVehicle)
	r.GET("/vehicles", perm("view_vehicles"), h.ListVehicles)
	r.GET("/vehicles/:id", perm("view_vehicles"), h.GetVehicle)
	r.PATCH("/vehicles/:id", perm("manage_vehicles"), h.UpdateVehicle)
	r.DELETE("/vehicles/:id", perm("manage_vehicles"), h.DeleteVehicle)

	r.POST("/loads", perm("manage_loads"), h.CreateLoad)
	r.GET("/loads", perm("view_loads"), h.ListLoads)
	r.GET("/loads/:id", perm("view_loads"), h.GetLoad)
	r.POST("/loads/:id/accept", perm("accept_load"), h.AcceptLoad)

	r.POST("/wallet/transactions", perm("record_transaction"), h.RecordTransaction)
	r.GET("/wallet/transactions", perm("view_transactions"), h.ListTransactions)
	r.GET("/wallet/balance", perm("view_transactions"), h.WalletBalance)

	r.POST("/documents/upload", perm("upload_document"), h.UploadDocument)
	r.GET("/documents", perm("view_documents"), h.ListDocuments)
	r.GET("/documents/:id/content", perm("view_documents"), h.DocumentContent)

	r.GET("/notifications", perm("view_notifications"), h.ListNotifications)
	r.POST("/notifications", perm("manage_notifications"), h.CreateNotification)
	r.PATCH("/notifications/:id/read", perm("view_notifications"), h.MarkNotificationRead)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		// Echo the request origin; "*" cannot be combined with credentials.
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
