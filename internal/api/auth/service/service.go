package authService

import (
	"SmartBudget/internal/api/auth"
	authRepository "SmartBudget/internal/api/auth/repository"
	"SmartBudget/internal/entity"
	"SmartBudget/pkg/bcrypt"
	"SmartBudget/pkg/redis"
	"SmartBudget/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type AuthService interface {
	User() UserDomain
	Auth() AuthDomain
	GetRepository() authRepository.Repository
}

type UserDomain interface {
	RegisterUser(c context.Context, req auth.CreateUserRequest) (entity.User, error)
	GetByID(c context.Context, id string) (entity.User, error)
}

type AuthDomain interface {
	Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)
	Logout(c context.Context, user entity.UserLoginData) error
}

type authService struct {
	log            *logrus.Logger
	authRepository authRepository.Repository

	userDomain UserDomain
	authDomain AuthDomain
}

func (a *authService) User() UserDomain {
	return a.userDomain
}

func (a *authService) Auth() AuthDomain {
	return a.authDomain
}

func (a *authService) GetRepository() authRepository.Repository {
	return a.authRepository
}

type userDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
}

type authDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	redisServer redis.IRedis
	bcryptUtils bcrypt.IBcrypt
}

// New wires the auth domains. redisServer may be nil, in which case logout is unavailable.
func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	redisServer redis.IRedis,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
) AuthService {
	return &authService{
		log:            log,
		authRepository: authRepo,

		userDomain: &userDomainImpl{log: log, repo: authRepo, bcryptUtils: bcryptUtils, utils: utils},
		authDomain: &authDomainImpl{log: log, repo: authRepo, redisServer: redisServer, bcryptUtils: bcryptUtils},
	}
}
