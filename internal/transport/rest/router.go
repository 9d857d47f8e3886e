package rest

import (
	"crypto/subtle"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/hmaulana/maintenance-management/internal/alert"
	"github.com/hmaulana/maintenance-management/internal/asset"
	"github.com/hmaulana/maintenance-management/internal/auth"
	"github.com/hmaulana/maintenance-management/internal/core/identity"
	"github.com/hmaulana/maintenance-management/internal/guard"
	"github.com/hmaulana/maintenance-management/internal/transport/middleware"
	"github.com/hmaulana/maintenance-management/internal/transport/swagger"
	"github.com/hmaulana/maintenance-management/internal/user"
	"github.com/hmaulana/maintenance-management/internal/workorder"
)

type RouterDeps struct {
	DB               *sql.DB
	Redis            *redis.Client
	Guard            *guard.Guard
	AuthHandler      *auth.Handler
	UserHandler      *user.Handler
	AssetHandler     *asset.Handler
	WorkOrderHandler *workorder.Handler
	AlertHandler     *alert.Handler
	WebhookHandler   *alert.WebhookHandler
	WebhookToken     string
	Logger           *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB, deps.Redis)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Sensor feed webhook; shared-token auth, outside the session guard.
		if deps.WebhookHandler != nil {
			r.Group(func(wr chi.Router) {
				wr.Use(requireWebhookToken(deps.WebhookToken))
				wr.Post("/webhooks/sensor-alerts", deps.WebhookHandler.HandleSensorAlert)
			})
		}

		if deps.AuthHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", deps.AuthHandler.Login)
				sr.Post("/logout", deps.AuthHandler.Logout)
				sr.Get("/session", deps.AuthHandler.Session)
				sr.Post("/session/clear-error", deps.AuthHandler.ClearError)
			})
		}

		if deps.Guard == nil {
			return
		}

		// Any authenticated role.
		r.Group(func(pr chi.Router) {
			pr.Use(deps.Guard.RequireAuthenticated())

			if deps.UserHandler != nil {
				pr.Get("/users/me", deps.UserHandler.GetCurrentUser)
				pr.Patch("/users/me", deps.UserHandler.UpdateProfile)
				pr.Post("/users/me/onboarding", deps.UserHandler.CompleteOnboarding)
			}

			if deps.AssetHandler != nil {
				pr.Get("/assets", deps.AssetHandler.GetAssets)
				pr.Get("/assets/{id}", deps.AssetHandler.GetAsset)
			}

			if deps.WorkOrderHandler != nil {
				pr.Get("/my-work-orders", deps.WorkOrderHandler.GetMyWorkOrders)
				pr.Get("/work-orders/{id}", deps.WorkOrderHandler.GetWorkOrder)
				// Role restrictions inside: technicians may only move their
				// own assignments.
				pr.Patch("/work-orders/{id}/status", deps.WorkOrderHandler.UpdateWorkOrderStatus)
			}

			if deps.AlertHandler != nil {
				pr.Get("/alerts", deps.AlertHandler.GetAlerts)
				pr.Get("/alerts/{id}", deps.AlertHandler.GetAlert)
			}
		})

		// Admin and engineer.
		r.Group(func(mr chi.Router) {
			mr.Use(deps.Guard.RequireRoles(identity.RoleAdmin, identity.RoleEngineer))

			if deps.AssetHandler != nil {
				mr.Post("/assets", deps.AssetHandler.CreateAsset)
				mr.Patch("/assets/{id}/status", deps.AssetHandler.UpdateAssetStatus)
				mr.Delete("/assets/{id}", deps.AssetHandler.RetireAsset)
			}

			if deps.WorkOrderHandler != nil {
				mr.Post("/work-orders", deps.WorkOrderHandler.CreateWorkOrder)
				mr.Get("/work-orders", deps.WorkOrderHandler.GetWorkOrders)
				mr.Patch("/work-orders/{id}/assign", deps.WorkOrderHandler.AssignWorkOrder)
			}

			if deps.AlertHandler != nil {
				mr.Patch("/alerts/{id}/acknowledge", deps.AlertHandler.AcknowledgeAlert)
				mr.Patch("/alerts/{id}/resolve", deps.AlertHandler.ResolveAlert)
			}
		})
	})
}

func requireWebhookToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				http.Error(w, "webhook ingestion disabled", http.StatusServiceUnavailable)
				return
			}
			provided := r.Header.Get("X-Webhook-Token")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				http.Error(w, "invalid webhook token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
