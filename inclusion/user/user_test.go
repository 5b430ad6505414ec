package user_test

import (
	"testing"

	"github.com/incluempleo/vinculo/inclusion/user"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

func TestRoleChecks(t *testing.T) {
	cases := []struct {
		role      auth.Role
		candidate bool
		company   bool
		admin     bool
	}{
		{auth.RoleCandidate, true, false, false},
		{auth.RoleCompany, false, true, false},
		{auth.RoleAdmin, false, false, true},
	}
	for _, c := range cases {
		u := &user.User{Role: c.role}
		if u.IsCandidate() != c.candidate || u.IsCompany() != c.company || u.IsAdmin() != c.admin {
			t.Errorf("role %s checks wrong", c.role)
		}
	}
}

func TestGetFullName(t *testing.T) {
	u := &user.User{
		FirstName: kernel.FirstName("Ana"),
		LastName:  kernel.LastName("Rojas"),
	}
	if got := u.GetFullName(); got != "Ana Rojas" {
		t.Errorf("GetFullName() = %q", got)
	}
}

func TestGetFullName_CompanyFallback(t *testing.T) {
	u := &user.User{
		Role:        auth.RoleCompany,
		CompanyName: "Inclusiva SAS",
	}
	if got := u.GetFullName(); got != "Inclusiva SAS" {
		t.Errorf("GetFullName() = %q, want the company legal name", got)
	}
}

func TestUpdateCompanyInfo_RejectsBadNIT(t *testing.T) {
	u := &user.User{Role: auth.RoleCompany}
	if err := u.UpdateCompanyInfo("Inclusiva SAS", kernel.NIT("xx")); err == nil {
		t.Error("invalid NIT must be rejected")
	}
	if err := u.UpdateCompanyInfo("Inclusiva SAS", kernel.NIT("900123456-7")); err != nil {
		t.Errorf("valid NIT rejected: %v", err)
	}
}

func TestActivateDeactivate(t *testing.T) {
	u := &user.User{Status: user.UserStatusActive}
	if !u.IsActive() {
		t.Fatal("active user reads inactive")
	}
	u.Deactivate()
	if u.IsActive() {
		t.Error("Deactivate did not take")
	}
	u.Activate()
	if !u.IsActive() {
		t.Error("Activate did not take")
	}
}
