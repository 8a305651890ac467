package auth

import (
	"context"
	"log/slog"
	"net/http"
)

// Permission ids match the seeded permissions table.
const (
	PermissionManageUsers       int64 = 1
	PermissionManageRoles       int64 = 2
	PermissionManageEmployees   int64 = 3
	PermissionManageClients     int64 = 4
	PermissionManageCheckpoints int64 = 5
	PermissionViewReports       int64 = 6
)

type permsCtxKey string

const permissionsKey permsCtxKey = "permission_ids"

func ContextWithPermissions(ctx context.Context, permissionIDs []int64) context.Context {
	return context.WithValue(ctx, permissionsKey, permissionIDs)
}

func PermissionsFromContext(ctx context.Context) []int64 {
	if ids, ok := ctx.Value(permissionsKey).([]int64); ok {
		return ids
	}
	return nil
}

// RBACAuthorization gates routes on permission IDs carried in the access
// token claims.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

func (ra *RBACAuthorization) RequireManageUsers() func(http.Handler) http.Handler {
	return ra.RequirePermission(PermissionManageUsers)
}

func (ra *RBACAuthorization) RequireManageRoles() func(http.Handler) http.Handler {
	return ra.RequirePermission(PermissionManageRoles)
}

func (ra *RBACAuthorization) RequireManageEmployees() func(http.Handler) http.Handler {
	return ra.RequirePermission(PermissionManageEmployees)
}

func (ra *RBACAuthorization) RequireManageClients() func(http.Handler) http.Handler {
	return ra.RequirePermission(PermissionManageClients)
}

func (ra *RBACAuthorization) RequireManageCheckpoints() func(http.Handler) http.Handler {
	return ra.RequirePermission(PermissionManageCheckpoints)
}

func (ra *RBACAuthorization) RequireViewReports() func(http.Handler) http.Handler {
	return ra.RequirePermission(PermissionViewReports)
}

func (ra *RBACAuthorization) RequirePermission(permissionID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			permissionIDs := PermissionsFromContext(r.Context())
			if permissionIDs == nil {
				ra.logger.Warn("authorization check failed: no permissions in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, id := range permissionIDs {
				if id == permissionID {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"required_permission", permissionID,
				"user_permissions", permissionIDs)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}
