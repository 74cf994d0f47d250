package repository

import (
	"testing"

	"github.com/shopmate/shopmate-go/internal/model"
)

func TestNewUserRepository(t *testing.T) {
	repo := NewUserRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil UserRepository")
	}
	if repo.db != nil {
		t.Fatal("expected nil db when constructed with nil")
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrUserNotFound.Error() != "user not found" {
		t.Fatalf("unexpected error message: %s", ErrUserNotFound.Error())
	}
	if ErrDuplicateEmail.Error() != "email already exists" {
		t.Fatalf("unexpected error message: %s", ErrDuplicateEmail.Error())
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if isDuplicateEntryError(nil) {
		t.Fatal("nil error should not be a duplicate entry error")
	}
	if isDuplicateEntryError(ErrUserNotFound) {
		t.Fatal("ErrUserNotFound should not be a duplicate entry error")
	}
}

func TestBuildUserUpdateEmpty(t *testing.T) {
	query, args := buildUserUpdate(1, model.UserUpdate{})
	if query != "" {
		t.Errorf("buildUserUpdate() query = %q, want empty", query)
	}
	if args != nil {
		t.Errorf("buildUserUpdate() args = %v, want nil", args)
	}
}

func TestBuildUserUpdateSingleField(t *testing.T) {
	name := "Grace"
	query, args := buildUserUpdate(7, model.UserUpdate{Name: &name})

	want := "UPDATE users SET name = ? WHERE id = ?"
	if query != want {
		t.Errorf("buildUserUpdate() query = %q, want %q", query, want)
	}
	if len(args) != 2 || args[0] != "Grace" || args[1] != int64(7) {
		t.Errorf("buildUserUpdate() args = %v, want [Grace 7]", args)
	}
}

func TestBuildUserUpdateAllFields(t *testing.T) {
	name, phone, address, hash := "Grace", "0798765432", "2 Compiler Court", "$2a$10$x"
	query, args := buildUserUpdate(7, model.UserUpdate{
		Name:         &name,
		Phone:        &phone,
		Address:      &address,
		PasswordHash: &hash,
	})

	want := "UPDATE users SET name = ?, phone = ?, address = ?, password_hash = ? WHERE id = ?"
	if query != want {
		t.Errorf("buildUserUpdate() query = %q, want %q", query, want)
	}
	if len(args) != 5 {
		t.Fatalf("buildUserUpdate() got %d args, want 5", len(args))
	}
	if args[4] != int64(7) {
		t.Errorf("buildUserUpdate() id arg = %v, want 7", args[4])
	}
}
