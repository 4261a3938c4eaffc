package categoryService

import (
	"SmartBudget/internal/api/category"
	"SmartBudget/internal/entity"
	contextPkg "SmartBudget/pkg/context"
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func (s *categoryService) CreateCategory(ctx context.Context, req category.CreateCategoryRequest) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" || len([]rune(name)) > entity.MaxCategoryNameLength {
		return entity.Category{}, category.ErrInvalidCategoryName
	}

	color := req.ColorHex
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	if !hexColorPattern.MatchString(color) {
		return entity.Category{}, category.ErrInvalidColor
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Category{}, err
	}

	newCategory := entity.Category{
		ID:          ULID,
		UserID:      req.UserID,
		Name:        name,
		Description: req.Description,
		ColorHex:    color,
		CreatedAt:   time.Now().UTC(),
	}

	repo, err := s.categoryRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Category{}, err
	}
	defer repo.Rollback()

	if err := repo.Category.CreateCategory(ctx, newCategory); err != nil {
		return entity.Category{}, category.ErrCreateCategory
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit category creation")
		return entity.Category{}, category.ErrCreateCategory
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"category_id": newCategory.ID,
	}).Info("Category created")

	return newCategory, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id string, userID string) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Category{}, err
	}

	found, err := repo.Category.GetCategoryByID(ctx, id)
	if err != nil {
		return entity.Category{}, err
	}

	if err := entity.CheckOwner(found, userID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"category_id": id,
			"user_id":     userID,
		}).Warn("Category read by non-owner")
		return entity.Category{}, category.ErrCategoryNotFound
	}

	return found, nil
}

func (s *categoryService) GetCategoriesByUserID(ctx context.Context, userID string) ([]entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	return repo.Category.GetCategoriesByUserID(ctx, userID)
}

func (s *categoryService) UpdateCategory(ctx context.Context, req category.UpdateCategoryRequest) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Category{}, err
	}
	defer repo.Rollback()

	existing, err := s.ownedCategory(ctx, repo.Category.GetCategoryByID, req.ID, req.UserID)
	if err != nil {
		return entity.Category{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len([]rune(name)) > entity.MaxCategoryNameLength {
			return entity.Category{}, category.ErrInvalidCategoryName
		}
		existing.Name = name
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.ColorHex != nil {
		if !hexColorPattern.MatchString(*req.ColorHex) {
			return entity.Category{}, category.ErrInvalidColor
		}
		existing.ColorHex = *req.ColorHex
	}

	now := time.Now().UTC()
	existing.UpdatedAt = &now

	if err := repo.Category.UpdateCategory(ctx, existing); err != nil {
		return entity.Category{}, category.ErrUpdateCategory
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit category update")
		return entity.Category{}, category.ErrUpdateCategory
	}

	return existing, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.categoryRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}
	defer repo.Rollback()

	if _, err := s.ownedCategory(ctx, repo.Category.GetCategoryByID, id, userID); err != nil {
		return err
	}

	if err := repo.Category.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, category.ErrCategoryInUse) {
			return err
		}
		return category.ErrDeleteCategory
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit category deletion")
		return category.ErrDeleteCategory
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"category_id": id,
	}).Info("Category deleted")

	return nil
}

// ownedCategory loads a category for mutation. Absent and foreign categories are both reported as not owned.
func (s *categoryService) ownedCategory(
	ctx context.Context,
	get func(context.Context, string) (entity.Category, error),
	id string,
	userID string,
) (entity.Category, error) {
	existing, err := get(ctx, id)
	if errors.Is(err, category.ErrCategoryNotFound) {
		return entity.Category{}, category.ErrCategoryNotOwned
	} else if err != nil {
		return entity.Category{}, err
	}

	if err := entity.CheckOwner(existing, userID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  contextPkg.GetRequestID(ctx),
			"category_id": id,
			"user_id":     userID,
		}).Warn("Category mutation by non-owner")
		return entity.Category{}, category.ErrCategoryNotOwned
	}

	return existing, nil
}
