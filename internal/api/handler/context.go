package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/unimag/portal/internal/core/domain"
	"github.com/unimag/portal/internal/core/ports"
)

// ctxCaller extracts the identity injected by the Auth middleware and
// fast-fails before any service call:
//   - user_id and role must be non-empty (presence proves the middleware ran).
//   - coordinator and student tokens without a faculty are structurally valid
//     but operationally unusable, so they are rejected with 401.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	userID, _ := c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	if userID == "" || roleStr == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role := domain.Role(roleStr)
	facultyID, _ := c.Get("faculty_id").(string)
	if (role == domain.RoleCoordinator || role == domain.RoleStudent) && facultyID == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing faculty identity")
	}

	return ports.Caller{UserID: userID, Role: role, FacultyID: facultyID}, nil
}

// ctxReviewer narrows the caller to the coordinator identity used by review
// endpoints. RBAC has already enforced the role; this recovers the ids.
func ctxReviewer(c echo.Context) (ports.Reviewer, error) {
	caller, err := ctxCaller(c)
	if err != nil {
		return ports.Reviewer{}, err
	}
	return ports.Reviewer{UserID: caller.UserID, FacultyID: caller.FacultyID}, nil
}
