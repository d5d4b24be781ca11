package model

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"user", RoleUser, true},
		{"attendee", RoleAttendee, true},
		{"organizer", RoleOrganizer, true},
		{"admin", RoleAdmin, true},
		{"  Admin  ", RoleAdmin, true},
		{"ORGANIZER", RoleOrganizer, true},
		{"", "", false},
		{"owner", "", false},
		{"superadmin", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRoleCapabilities(t *testing.T) {
	if !RoleAdmin.IsAdmin() {
		t.Error("admin must have admin rights")
	}
	for _, r := range []Role{RoleUser, RoleAttendee, RoleOrganizer} {
		if r.IsAdmin() {
			t.Errorf("%s must not have admin rights", r)
		}
	}
	if !RoleOrganizer.CanOrganize() || !RoleAdmin.CanOrganize() {
		t.Error("organizer and admin must be able to organize")
	}
	if RoleUser.CanOrganize() || RoleAttendee.CanOrganize() {
		t.Error("user and attendee must not be able to organize")
	}
}
