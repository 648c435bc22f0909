package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"optifuel/api/internal/apperr"
	"optifuel/api/internal/model"
)

func newAuthFixture() (*AuthService, *memoryUsers, *TokenService) {
	users := &memoryUsers{}
	tokens := NewTokenService("test-secret", "optifuel", "optifuel-clients", time.Hour)
	svc := NewAuthService(users, tokens)
	svc.cost = bcrypt.MinCost
	return svc, users, tokens
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Passw0rd", true},
		{"Sh0rt", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
		{"Longer1Password", true},
	}
	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if tt.ok {
			assert.NoError(t, err, tt.password)
		} else {
			assert.True(t, apperr.Is(err, apperr.Validation), tt.password)
		}
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users, tokens := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, &model.RegisterRequest{Username: "captain", Email: " Captain@Fleet.io ", Password: "Passw0rd"})
	require.NoError(t, err)
	assert.Equal(t, "captain@fleet.io", user.Email)
	assert.NotEqual(t, "Passw0rd", users.users[0].Password)

	resp, err := svc.Login(ctx, &model.LoginRequest{Email: "CAPTAIN@fleet.io", Password: "Passw0rd"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.Expiration.After(time.Now()))

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	owner, err := claims.OwnerID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, owner)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{Username: "a", Email: "dup@fleet.io", Password: "Passw0rd"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &model.RegisterRequest{Username: "b", Email: "DUP@fleet.io", Password: "Passw0rd"})
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	_, err := svc.Register(ctx, &model.RegisterRequest{Username: "a", Email: "a@fleet.io", Password: "Passw0rd"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "a@fleet.io", Password: "wrong"})
	assert.True(t, apperr.Is(err, apperr.Unauthorized))

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "nobody@fleet.io", Password: "Passw0rd"})
	assert.True(t, apperr.Is(err, apperr.Unauthorized))
	assert.Equal(t, "invalid credentials", apperr.MessageOf(err))
}

func TestGetUser(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	user, err := svc.Register(ctx, &model.RegisterRequest{Username: "a", Email: "a@fleet.io", Password: "Passw0rd"})
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Username)

	_, err = svc.GetUser(ctx, 99)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}
