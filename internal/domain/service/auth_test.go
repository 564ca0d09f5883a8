package service

import (
	"context"
	"testing"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/Badsnus/cu-events-portal/internal/domain/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAdminsByEmail map[string]*entity.Admin

func (f fakeAdminsByEmail) GetByEmail(_ context.Context, email string) (*entity.Admin, error) {
	if admin, ok := f[email]; ok {
		return admin, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeManagersByEmail map[string]*entity.EventManager

func (f fakeManagersByEmail) GetByEmail(_ context.Context, email string) (*entity.EventManager, error) {
	if manager, ok := f[email]; ok {
		return manager, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeParticipantsByEmail map[string]*entity.Participant

func (f fakeParticipantsByEmail) GetByEmail(_ context.Context, email string) (*entity.Participant, error) {
	if participant, ok := f[email]; ok {
		return participant, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestAuthenticatePrecedence(t *testing.T) {
	// the same email exists in two tables; the admin row wins
	admins := fakeAdminsByEmail{
		"shared@example.com": {ID: 1, Email: "shared@example.com", PasswordHash: mustHash(t, "adminpass"), IsActive: true},
	}
	participants := fakeParticipantsByEmail{
		"shared@example.com": {ID: 9, Email: "shared@example.com", PasswordHash: mustHash(t, "adminpass"), IsActive: true},
	}
	s := NewAuthService(admins, fakeManagersByEmail{}, participants)

	identity, err := s.Authenticate(context.Background(), "shared@example.com", "adminpass")
	require.NoError(t, err)
	require.Equal(t, entity.RoleAdmin, identity.Role)
	require.Equal(t, uint(1), identity.UserID)
}

func TestAuthenticateFallsThroughOnWrongPassword(t *testing.T) {
	// a wrong password for the admin row still lets the participant row
	// with the same email match its own password
	admins := fakeAdminsByEmail{
		"shared@example.com": {ID: 1, Email: "shared@example.com", PasswordHash: mustHash(t, "adminpass"), IsActive: true},
	}
	participants := fakeParticipantsByEmail{
		"shared@example.com": {ID: 9, Email: "shared@example.com", PasswordHash: mustHash(t, "userpass"), IsActive: true},
	}
	s := NewAuthService(admins, fakeManagersByEmail{}, participants)

	identity, err := s.Authenticate(context.Background(), "shared@example.com", "userpass")
	require.NoError(t, err)
	require.Equal(t, entity.RoleParticipant, identity.Role)
	require.Equal(t, uint(9), identity.UserID)
}

func TestAuthenticateInactive(t *testing.T) {
	managers := fakeManagersByEmail{
		"m@example.com": {ID: 2, Email: "m@example.com", PasswordHash: mustHash(t, "secret"), IsActive: false},
	}
	s := NewAuthService(fakeAdminsByEmail{}, managers, fakeParticipantsByEmail{})

	_, err := s.Authenticate(context.Background(), "m@example.com", "secret")
	require.ErrorIs(t, err, errorz.InvalidCredentials)
}

func TestAuthenticateNormalizesEmail(t *testing.T) {
	participants := fakeParticipantsByEmail{
		"p@example.com": {ID: 3, Email: "p@example.com", PasswordHash: mustHash(t, "secret"), IsActive: true},
	}
	s := NewAuthService(fakeAdminsByEmail{}, fakeManagersByEmail{}, participants)

	identity, err := s.Authenticate(context.Background(), "  P@Example.COM ", "secret")
	require.NoError(t, err)
	require.Equal(t, uint(3), identity.UserID)
}

func TestAuthenticateInvalidStoredHash(t *testing.T) {
	participants := fakeParticipantsByEmail{
		"p@example.com": {ID: 3, Email: "p@example.com", PasswordHash: "plaintext-placeholder", IsActive: true},
	}
	s := NewAuthService(fakeAdminsByEmail{}, fakeManagersByEmail{}, participants)

	_, err := s.Authenticate(context.Background(), "p@example.com", "plaintext-placeholder")
	require.ErrorIs(t, err, errorz.InvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	s := NewAuthService(fakeAdminsByEmail{}, fakeManagersByEmail{}, fakeParticipantsByEmail{})

	_, err := s.Authenticate(context.Background(), "nobody@example.com", "secret")
	require.ErrorIs(t, err, errorz.InvalidCredentials)
}

func TestEmailKnown(t *testing.T) {
	managers := fakeManagersByEmail{
		"m@example.com": {ID: 2, Email: "m@example.com"},
	}
	s := NewAuthService(fakeAdminsByEmail{}, managers, fakeParticipantsByEmail{})

	known, err := s.EmailKnown(context.Background(), "M@example.com")
	require.NoError(t, err)
	require.True(t, known)

	known, err = s.EmailKnown(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	require.False(t, known)
}
