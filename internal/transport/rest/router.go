package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/guardhq/workforce-management/internal/auth"
	"github.com/guardhq/workforce-management/internal/checkpoint"
	"github.com/guardhq/workforce-management/internal/client"
	"github.com/guardhq/workforce-management/internal/employee"
	"github.com/guardhq/workforce-management/internal/role"
	"github.com/guardhq/workforce-management/internal/transport/middleware"
	"github.com/guardhq/workforce-management/internal/transport/swagger"
	"github.com/guardhq/workforce-management/internal/user"
)

// Handlers bundles the feature handlers the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Role       *role.Handler
	Employee   *employee.Handler
	Client     *client.Handler
	Checkpoint *checkpoint.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, authService *auth.Service, qrCodeDir string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	rbac := authService.RBACAuthorization()

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Printed QR codes resolve to these static images.
	router.Handle("/qr-codes/*", http.StripPrefix("/qr-codes/", http.FileServer(http.Dir(qrCodeDir))))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Guards in the field scan checkpoints before their account may
		// carry an expired token, so scans stay outside the auth gate.
		r.Post("/checkpoints/scans", h.Checkpoint.RecordScan)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.Use(rbac.RequireManageUsers())
				ur.Post("/", h.User.CreateUser)
				ur.Get("/", h.User.ListUsers)
				ur.Get("/{id}", h.User.GetUser)
				ur.Patch("/{id}", h.User.UpdateUser)
				ur.Delete("/{id}", h.User.DeleteUser)
				ur.Post("/reset-password", h.User.ResetPassword)
			})

			pr.Route("/roles", func(rr chi.Router) {
				rr.Use(rbac.RequireManageRoles())
				rr.Post("/", h.Role.CreateRole)
				rr.Get("/", h.Role.ListRoles)
				rr.Put("/{id}", h.Role.UpdateRole)
				rr.Delete("/{id}", h.Role.DeleteRole)
				rr.Get("/{id}/permissions", h.Role.GetRolePermissions)
			})
			pr.Group(func(gr chi.Router) {
				gr.Use(rbac.RequireManageRoles())
				gr.Get("/permissions", h.Role.ListPermissions)
			})

			pr.Route("/employees", func(er chi.Router) {
				er.Use(rbac.RequireManageEmployees())
				er.Post("/", h.Employee.AddEmployee)
				er.Get("/", h.Employee.ListEmployees)
				er.Get("/{employeeNo}", h.Employee.GetEmployee)
				er.Patch("/{employeeNo}", h.Employee.UpdateEmployee)
			})

			pr.Route("/clients", func(cr chi.Router) {
				cr.Use(rbac.RequireManageClients())
				cr.Post("/", h.Client.AddClient)
				cr.Get("/", h.Client.ListClients)
				cr.Get("/{id}", h.Client.GetClient)
				cr.Put("/{id}", h.Client.UpdateClient)
				cr.Delete("/{id}", h.Client.DeleteClient)
				cr.Get("/{id}/employees", h.Client.GetAssignedEmployees)
				cr.Post("/{id}/employees", h.Client.AssignEmployees)
			})
			pr.Group(func(gr chi.Router) {
				gr.Use(rbac.RequireManageClients())
				gr.Get("/unassigned-employees", h.Client.GetUnassignedEmployees)
				gr.Delete("/assignments/{assignmentID}", h.Client.RemoveAssignment)
			})

			pr.Route("/checkpoints", func(cpr chi.Router) {
				cpr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManageCheckpoints())
					mr.Post("/", h.Checkpoint.AddCheckpoint)
				})
				cpr.Group(func(vr chi.Router) {
					vr.Use(rbac.RequireViewReports())
					vr.Get("/by-client", h.Checkpoint.GetCheckpointsByClient)
					vr.Get("/scans", h.Checkpoint.GetAllScans)
					vr.Get("/scans/by-client", h.Checkpoint.GetScansByClient)
					vr.Get("/scans/by-employee", h.Checkpoint.GetScansByEmployee)
					vr.Get("/{id}", h.Checkpoint.GetCheckpoint)
					vr.Get("/{id}/roster", h.Checkpoint.GetRoster)
				})
			})
		})
	})
}
