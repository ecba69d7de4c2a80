package router

import (
	"net/http"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/platform/metrics"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/http/handler"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/http/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Deps struct {
	Accounts  *handler.AccountHandler
	Admin     *handler.AdminHandler
	Catalog   *handler.CatalogHandler
	Estimates *handler.EstimateHandler
	Metrics   *metrics.Manager
	Logger    *zap.Logger
	JWTSecret string
	Service   string
}

// New assembles the full route tree. Public routes first, then the
// authenticated group, then the admin group nested inside it.
func New(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Tracing(d.Service))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.RequestLogger(d.Logger))

	r.Get("/healthz", handler.Healthz)

	// Public
	r.Post("/api/register/{role}", d.Accounts.Register)
	r.Post("/api/login", d.Accounts.Login)
	r.Get("/api/verify-email", d.Accounts.VerifyEmail)
	r.Post("/api/verify-email/resend", d.Accounts.ResendVerification)
	r.Post("/api/password/forgot", d.Accounts.ForgotPassword)
	r.Post("/api/password/reset", d.Accounts.ResetPassword)
	r.Get("/api/materials", d.Catalog.List)
	r.Get("/api/materials/{id}", d.Catalog.Get)
	r.Post("/api/estimate", d.Estimates.Estimate)

	// Authenticated
	r.Group(func(auth chi.Router) {
		auth.Use(middleware.JWTAuth(d.JWTSecret))

		auth.Post("/api/logout", d.Accounts.Logout)
		auth.Get("/api/profile", d.Accounts.Profile)

		auth.Group(func(client chi.Router) {
			client.Use(middleware.RequireRole(entity.RoleClient))
			client.Post("/api/projects", d.Estimates.CreateProject)
			client.Get("/api/projects", d.Estimates.ListProjects)
			client.Get("/api/projects/{id}/estimate", d.Estimates.ProjectEstimate)
		})

		auth.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireRole(entity.RoleAdmin))

			admin.Get("/api/admin/clients", d.Admin.ListClients)
			admin.Get("/api/admin/contractors", d.Admin.ListContractors)
			admin.Post("/api/admin/identity/{role}/{id}/approve", d.Admin.ApproveIdentity)
			admin.Post("/api/admin/identity/{role}/{id}/reject", d.Admin.RejectIdentity)
			admin.Post("/api/admin/contractors/{id}/approve", d.Admin.ApproveContractor)
			admin.Post("/api/admin/contractors/{id}/reject", d.Admin.RejectContractor)

			admin.Post("/api/admin/materials", d.Catalog.Create)
			admin.Put("/api/admin/materials/{id}", d.Catalog.Update)
			admin.Delete("/api/admin/materials/{id}", d.Catalog.Delete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
