package usecase

import (
	"context"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

type UserService struct {
	Repo *repository.UserRepo
}

// CreateUser registers a new account. The password is hashed before it
// ever reaches the repository.
func (svc *UserService) CreateUser(ctx context.Context, email, password string) (*model.User, error) {
	existing, err := svc.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &model.ValidationError{Field: "email", Reason: "email already registered"}
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    utils.GenerateUserID(),
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now(),
	}
	if err := svc.Repo.AddUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (svc *UserService) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return svc.Repo.FindUserByEmail(ctx, email)
}

func (svc *UserService) FindUser(ctx context.Context, userID string) (*model.User, error) {
	return svc.Repo.FindUser(ctx, userID)
}
