package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/Badsnus/cu-events-portal/internal/domain/utils"
	"gorm.io/gorm"
)

type authAdminStorage interface {
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
}

type authManagerStorage interface {
	GetByEmail(ctx context.Context, email string) (*entity.EventManager, error)
}

type authParticipantStorage interface {
	GetByEmail(ctx context.Context, email string) (*entity.Participant, error)
}

type AuthService struct {
	adminStorage       authAdminStorage
	managerStorage     authManagerStorage
	participantStorage authParticipantStorage
}

func NewAuthService(
	adminStorage authAdminStorage,
	managerStorage authManagerStorage,
	participantStorage authParticipantStorage,
) *AuthService {
	return &AuthService{
		adminStorage:       adminStorage,
		managerStorage:     managerStorage,
		participantStorage: participantStorage,
	}
}

// Authenticate resolves credentials against the three user tables in fixed
// precedence: admin, then event manager, then participant. Only an active
// record with a matching password wins; a wrong password on one table still
// lets a later table match. Returns errorz.InvalidCredentials when nothing
// matches.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (entity.Identity, error) {
	email = NormalizeEmail(email)

	admin, err := s.adminStorage.GetByEmail(ctx, email)
	if err == nil {
		if admin.IsActive && utils.CheckPassword(admin.PasswordHash, password) {
			return admin.Identity(), nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Identity{}, err
	}

	manager, err := s.managerStorage.GetByEmail(ctx, email)
	if err == nil {
		if manager.IsActive && utils.CheckPassword(manager.PasswordHash, password) {
			return manager.Identity(), nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Identity{}, err
	}

	participant, err := s.participantStorage.GetByEmail(ctx, email)
	if err == nil {
		if participant.IsActive && utils.CheckPassword(participant.PasswordHash, password) {
			return participant.Identity(), nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Identity{}, err
	}

	return entity.Identity{}, errorz.InvalidCredentials
}

// EmailKnown reports whether any of the three user tables holds the email.
// The page login uses it to distinguish an unknown email from a wrong
// password; the JSON API deliberately does not.
func (s *AuthService) EmailKnown(ctx context.Context, email string) (bool, error) {
	email = NormalizeEmail(email)

	if _, err := s.adminStorage.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if _, err := s.managerStorage.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if _, err := s.participantStorage.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return false, nil
}

// NormalizeEmail lowercases and trims an email before any lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
