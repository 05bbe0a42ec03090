package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeRole_CanonicalValues(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleManager, RoleCoordinator, RoleStudent} {
		got, err := NormalizeRole(string(r))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", r, err)
		}
		if got != r {
			t.Errorf("%s: expected %q, got %q", r, r, got)
		}
	}
}

func TestNormalizeRole_LegacyCodes(t *testing.T) {
	cases := []struct {
		in   any
		want Role
	}{
		{"1", RoleAdmin},
		{"adm", RoleAdmin},
		{"2", RoleManager},
		{"mgr", RoleManager},
		{"3", RoleCoordinator},
		{"coord", RoleCoordinator},
		{"4", RoleStudent},
		{"stu", RoleStudent},
		{1, RoleAdmin},
		{int64(2), RoleManager},
		{float64(3), RoleCoordinator}, // JSON numbers arrive as float64
		{"  Student ", RoleStudent},
		{"ADMIN", RoleAdmin},
		{Role("manager"), RoleManager},
	}
	for _, tc := range cases {
		got, err := NormalizeRole(tc.in)
		if err != nil {
			t.Errorf("%v: unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%v: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestNormalizeRole_Unknown(t *testing.T) {
	for _, in := range []any{"superuser", "0", "5", "", nil, true, 99} {
		if _, err := NormalizeRole(in); !errors.Is(err, ErrUnknownRole) {
			t.Errorf("%v: expected ErrUnknownRole, got %v", in, err)
		}
	}
}

func TestScopeFor(t *testing.T) {
	cases := []struct {
		role Role
		want QueryScope
	}{
		{RoleStudent, QueryScope{OwnerUserID: "u1"}},
		{RoleCoordinator, QueryScope{FacultyID: "f1"}},
		{RoleManager, QueryScope{Status: StatusSelected}},
		{RoleAdmin, QueryScope{}},
	}
	for _, tc := range cases {
		got := ScopeFor(tc.role, "u1", "f1")
		if got != tc.want {
			t.Errorf("%s: expected %+v, got %+v", tc.role, tc.want, got)
		}
	}
}

func TestSubmissionOpen_DeadlineIsClosed(t *testing.T) {
	deadline := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	s := &AcademicSettings{SubmissionDeadline: deadline}

	if !s.SubmissionOpen(deadline.Add(-1)) {
		t.Error("one instant before the deadline must be open")
	}
	if s.SubmissionOpen(deadline) {
		t.Error("the deadline instant itself must be closed")
	}
	if s.SubmissionOpen(deadline.Add(1)) {
		t.Error("past the deadline must be closed")
	}
}
