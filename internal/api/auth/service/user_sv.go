package authService

import (
	"SmartBudget/internal/api/auth"
	"SmartBudget/internal/entity"
	contextPkg "SmartBudget/pkg/context"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *userDomainImpl) RegisterUser(ctx context.Context, req auth.CreateUserRequest) (entity.User, error) {
	requestID := contextPkg.GetRequestID(ctx)
	repo, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.User{}, err
	}
	defer repo.Rollback()

	hashedPassword, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return entity.User{}, err
	}

	now := time.Now().UTC()
	ULID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.User{}, err
	}

	user := entity.User{
		ID:        ULID,
		Email:     normalizeEmail(req.Email),
		Username:  strings.TrimSpace(req.Username),
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, auth.ErrEmailAlreadyExists) {
			return entity.User{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create user")
		return entity.User{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit user registration")
		return entity.User{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("User registered")

	return user, nil
}

func (s *userDomainImpl) GetByID(ctx context.Context, id string) (entity.User, error) {
	requestID := contextPkg.GetRequestID(ctx)
	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.User{}, err
	}

	user, err := repo.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    id,
			}).Warn("Token refers to a missing user")
		}
		return entity.User{}, err
	}

	return user, nil
}
