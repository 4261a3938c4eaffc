package categoryService

import (
	"SmartBudget/internal/api/category"
	categoryRepository "SmartBudget/internal/api/category/repository"
	"SmartBudget/internal/entity"
	"SmartBudget/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type ICategoryService interface {
	CreateCategory(ctx context.Context, req category.CreateCategoryRequest) (entity.Category, error)
	GetCategoryByID(ctx context.Context, id string, userID string) (entity.Category, error)
	GetCategoriesByUserID(ctx context.Context, userID string) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, req category.UpdateCategoryRequest) (entity.Category, error)
	DeleteCategory(ctx context.Context, id string, userID string) error
}

type categoryService struct {
	log                *logrus.Logger
	categoryRepository categoryRepository.Repository
	utils              utils.IUtils
}

func New(log *logrus.Logger, cr categoryRepository.Repository, utils utils.IUtils) ICategoryService {
	return &categoryService{
		log:                log,
		categoryRepository: cr,
		utils:              utils,
	}
}
