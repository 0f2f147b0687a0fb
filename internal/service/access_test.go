package service

import (
	"testing"

	"github.com/studiohub/api/internal/model"
)

func TestAccessService_IsPrivileged(t *testing.T) {
	access := NewAccessService("")

	tests := []struct {
		name string
		user *model.User
		want bool
	}{
		{"nil user", nil, false},
		{"blogger", &model.User{ID: "user:1", Role: model.UserRoleBlogger}, false},
		{"studio admin", &model.User{ID: "user:2", Role: model.UserRoleStudioAdmin}, true},
		{"producer admin", &model.User{ID: "user:3", Role: model.UserRoleProducerAdmin}, true},
		{"tech admin", &model.User{ID: "user:4", Role: model.UserRoleTechAdmin}, true},
		{"empty role", &model.User{ID: "user:5"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := access.IsPrivileged(tt.user); got != tt.want {
				t.Errorf("IsPrivileged() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccessService_CanModify(t *testing.T) {
	access := NewAccessService("")

	owner := &model.User{ID: "user:owner", Role: model.UserRoleBlogger}
	other := &model.User{ID: "user:other", Role: model.UserRoleBlogger}
	admin := &model.User{ID: "user:admin", Role: model.UserRoleStudioAdmin}

	tests := []struct {
		name    string
		user    *model.User
		ownerID string
		want    bool
	}{
		{"nil user", nil, "user:owner", false},
		{"owner modifies own resource", owner, "user:owner", true},
		{"non-owner blogger denied", other, "user:owner", false},
		{"admin modifies anyone's resource", admin, "user:owner", true},
		{"admin modifies own resource", admin, "user:admin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := access.CanModify(tt.user, tt.ownerID); got != tt.want {
				t.Errorf("CanModify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccessService_CanModify_IgnoresVerification(t *testing.T) {
	// Verification is a feature-availability flag; flipping it must not
	// change what a user is allowed to mutate.
	access := NewAccessService("")

	blogger := &model.User{ID: "user:b", Role: model.UserRoleBlogger, IsVerified: false}
	admin := &model.User{ID: "user:a", Role: model.UserRoleStudioAdmin, IsVerified: false}

	beforeOwn := access.CanModify(blogger, "user:b")
	beforeOther := access.CanModify(blogger, "user:x")
	beforeAdmin := access.CanModify(admin, "user:x")

	blogger.IsVerified = true
	admin.IsVerified = true

	if access.CanModify(blogger, "user:b") != beforeOwn {
		t.Error("verifying a blogger changed CanModify on own resource")
	}
	if access.CanModify(blogger, "user:x") != beforeOther {
		t.Error("verifying a blogger changed CanModify on another's resource")
	}
	if access.CanModify(admin, "user:x") != beforeAdmin {
		t.Error("verifying an admin changed CanModify")
	}
}

func TestAccessService_IsSuperAdmin(t *testing.T) {
	access := NewAccessService("root@studio.test")

	super := &model.User{ID: "user:1", Email: "root@studio.test", Role: model.UserRoleStudioAdmin}
	ordinary := &model.User{ID: "user:2", Email: "anna@studio.test", Role: model.UserRoleStudioAdmin}

	if !access.IsSuperAdmin(super) {
		t.Error("expected configured email to be super admin")
	}
	if access.IsSuperAdmin(ordinary) {
		t.Error("expected other admin not to be super admin")
	}
	if access.IsSuperAdmin(nil) {
		t.Error("expected nil user not to be super admin")
	}

	// Unconfigured super admin email matches nobody, including empty email
	unconfigured := NewAccessService("")
	if unconfigured.IsSuperAdmin(&model.User{ID: "user:3", Email: ""}) {
		t.Error("empty config must not match empty email")
	}
}

func TestAccessService_CanChangeRole(t *testing.T) {
	access := NewAccessService("root@studio.test")

	super := &model.User{ID: "user:root", Email: "root@studio.test", Role: model.UserRoleStudioAdmin}
	admin := &model.User{ID: "user:admin", Email: "admin@studio.test", Role: model.UserRoleTechAdmin}
	blogger := &model.User{ID: "user:b", Email: "b@studio.test", Role: model.UserRoleBlogger}

	tests := []struct {
		name   string
		actor  *model.User
		target *model.User
		want   bool
	}{
		{"admin changes blogger role", admin, blogger, true},
		{"admin changes other admin role", admin, super, true},
		{"blogger changes own role", blogger, blogger, false},
		{"blogger changes other role", blogger, admin, false},
		{"admin changes own role", admin, admin, false},
		{"super admin changes own role", super, super, true},
		{"nil actor", nil, blogger, false},
		{"nil target", admin, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := access.CanChangeRole(tt.actor, tt.target); got != tt.want {
				t.Errorf("CanChangeRole() = %v, want %v", got, tt.want)
			}
		})
	}
}
