package services

import (
	"context"
	"testing"

	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
)

func authFixture(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	return NewAuthService(testLogger(t), userRepo), userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := authFixture(t)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:           "Ada@Example.com",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", result.User.Email)
	}
	if result.User.DisplayName != "ada" {
		t.Fatalf("expected display name from email local part, got %q", result.User.DisplayName)
	}
	if result.User.PasswordHash == "correct-horse" || result.User.PasswordHash == "" {
		t.Fatal("expected hashed password")
	}
	if result.Token == "" {
		t.Fatal("expected signed token")
	}

	login, err := svc.Login(context.Background(), LoginInput{Email: "ADA@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Fatal("expected same account")
	}

	userID, err := svc.VerifyToken(login.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != result.User.ID {
		t.Fatalf("expected token subject %s, got %s", result.User.ID, userID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:           "not-an-email",
		Password:        "short",
		ConfirmPassword: "different",
	})
	appErr := assertAppErr(t, err, apperr.CodeInvalidFields, 400)
	if appErr.Fields["email"] != "valid email required" {
		t.Fatalf("expected email message, got %q", appErr.Fields["email"])
	}
	if appErr.Fields["password"] != "minimum 8 characters required" {
		t.Fatalf("expected password message, got %q", appErr.Fields["password"])
	}
	if appErr.Fields["confirmPassword"] != "passwords do not match" {
		t.Fatalf("expected confirm message, got %q", appErr.Fields["confirmPassword"])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := authFixture(t)

	in := RegisterInput{Email: "dup@example.com", Password: "longenough", ConfirmPassword: "longenough"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Register(context.Background(), in)
	assertAppErr(t, err, apperr.CodeEmailExists, 409)
}

func TestRegisterKeepsExplicitDisplayName(t *testing.T) {
	svc, _ := authFixture(t)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:           "g@example.com",
		Password:        "longenough",
		ConfirmPassword: "longenough",
		DisplayName:     "Grace",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.DisplayName != "Grace" {
		t.Fatalf("expected Grace, got %q", result.User.DisplayName)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := authFixture(t)
	svc.Register(context.Background(), RegisterInput{
		Email: "x@example.com", Password: "longenough", ConfirmPassword: "longenough",
	})

	_, err := svc.Login(context.Background(), LoginInput{Email: "x@example.com", Password: "wrongpass1"})
	assertAppErr(t, err, apperr.CodeInvalidCredentials, 401)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := authFixture(t)
	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever1"})
	assertAppErr(t, err, apperr.CodeInvalidCredentials, 401)
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := authFixture(t)
	_, err := svc.Login(context.Background(), LoginInput{Email: "x@example.com"})
	assertAppErr(t, err, apperr.CodeInvalidCredentials, 400)
}

func TestVerifyTokenGarbage(t *testing.T) {
	svc, _ := authFixture(t)
	if _, err := svc.VerifyToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
