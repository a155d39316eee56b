package services

import (
	"testing"

	"github.com/annavoronova/recipebook/internal/apperr"
	"github.com/annavoronova/recipebook/internal/dto"
)

func registerReq(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(registerReq("anna"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}
	if resp.User.Username != "anna" {
		t.Fatalf("unexpected user in response: %+v", resp.User)
	}

	login, err := svc.Login(&dto.LoginRequest{Email: "anna@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if login.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	if _, err := svc.Login(&dto.LoginRequest{Email: "anna@example.com", Password: "wrong"}); !apperr.IsCode(err, apperr.CodeAuthenticationRequired) {
		t.Fatalf("bad password returned %v, want AuthenticationRequired", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db, testConfig())

	cases := []struct {
		name string
		req  *dto.RegisterRequest
		want apperr.Code
	}{
		{
			"reserved username",
			&dto.RegisterRequest{Email: "me@example.com", Username: "me", Password: "password123"},
			apperr.CodeInvalidArgument,
		},
		{
			"invalid characters",
			&dto.RegisterRequest{Email: "x@example.com", Username: "bad name!", Password: "password123"},
			apperr.CodeInvalidArgument,
		},
		{
			"short password",
			&dto.RegisterRequest{Email: "x@example.com", Username: "ok", Password: "short"},
			apperr.CodeInvalidArgument,
		},
		{
			"missing email",
			&dto.RegisterRequest{Username: "ok", Password: "password123"},
			apperr.CodeInvalidArgument,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(tt.req); !apperr.IsCode(err, tt.want) {
				t.Fatalf("Register returned %v, want code %s", err, tt.want)
			}
		})
	}

	if _, err := svc.Register(registerReq("anna")); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Register(registerReq("anna")); !apperr.IsCode(err, apperr.CodeConflict) {
		t.Fatalf("duplicate Register returned %v, want Conflict", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(registerReq("anna"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if refreshed.RefreshToken == reg.RefreshToken {
		t.Fatal("expected the refresh token to rotate")
	}

	// The old token is revoked on use.
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken}); !apperr.IsCode(err, apperr.CodeAuthenticationRequired) {
		t.Fatalf("reused token returned %v, want AuthenticationRequired", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(registerReq("anna"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := svc.Logout(&dto.LogoutRequest{RefreshToken: reg.RefreshToken}); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken}); !apperr.IsCode(err, apperr.CodeAuthenticationRequired) {
		t.Fatalf("Refresh after Logout returned %v, want AuthenticationRequired", err)
	}
}
