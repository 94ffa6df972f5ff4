package domain

import "testing"

func TestTaskStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to TaskStatus
		want     bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusArchived, true},
		{StatusOpen, StatusDone, false},
		{StatusInProgress, StatusDone, true},
		{StatusInProgress, StatusOpen, false},
		{StatusDone, StatusArchived, true},
		{StatusArchived, StatusOpen, false},
		{StatusDone, StatusInProgress, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestRole_IsValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleManager, RoleEmployee, RoleCustomer} {
		if !r.IsValid() {
			t.Errorf("expected %s to be valid", r)
		}
	}
	if Role("superuser").IsValid() {
		t.Errorf("unexpected valid role")
	}
}

func TestTask_CanMutate(t *testing.T) {
	task := &Task{OwnerID: "u1"}

	if !task.CanMutate("u1", RoleCustomer) {
		t.Errorf("owner should be allowed")
	}
	if !task.CanMutate("u2", RoleAdmin) {
		t.Errorf("admin should be allowed")
	}
	if !task.CanMutate("u2", RoleManager) {
		t.Errorf("manager should be allowed")
	}
	if task.CanMutate("u2", RoleEmployee) {
		t.Errorf("non-owner employee should be denied")
	}
}
