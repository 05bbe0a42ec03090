package domain

// QueryScope is the role-derived restriction applied to every submission
// query. Empty fields mean "no restriction". Scope is enforced by making
// out-of-scope rows invisible, so callers outside the scope observe NotFound
// rather than Forbidden.
type QueryScope struct {
	OwnerUserID string           // student: only own submissions
	FacultyID   string           // coordinator: only own faculty
	Status      SubmissionStatus // manager: only selected
}

// ScopeFor computes the query scope for a role. Pure function; the optional
// faculty/year/search filters compose conjunctively on top of it regardless
// of role.
func ScopeFor(role Role, userID, facultyID string) QueryScope {
	switch role {
	case RoleStudent:
		return QueryScope{OwnerUserID: userID}
	case RoleCoordinator:
		return QueryScope{FacultyID: facultyID}
	case RoleManager:
		return QueryScope{Status: StatusSelected}
	default: // admin: unrestricted
		return QueryScope{}
	}
}
