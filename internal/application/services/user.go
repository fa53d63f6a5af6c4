package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"chart-insight-api/internal/application/ports"
	domain "chart-insight-api/internal/domain/user"
	"chart-insight-api/internal/domain/upload"
	"chart-insight-api/internal/infrastructure/mq"
	userDTO "chart-insight-api/internal/interface/api/rest/dto/user"
)

type UserService struct {
	userRepository   domain.Repository
	uploadRepository upload.Repository
	mq               ports.RabbitMQ
	mCounter         *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	uploadRepository upload.Repository,
	mqc ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository:   userRepository,
		uploadRepository: uploadRepository,
		mq:               mqc,
		mCounter:         mCounter,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindUsers(ctx context.Context, page int) (domain.Users, error) {
	users, err := us.userRepository.FetchUsers(ctx, page)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (us *UserService) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	uRet, err := us.userRepository.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	if uRet != nil {
		us.mq.GetInputChan() <- mq.Event{
			Id:      uuid.New(),
			TS:      time.Now(),
			Kind:    mq.KindUserCreated,
			UserID:  fmt.Sprintf("%d", uRet.ID),
			Payload: userDTO.ToResponseUser(*uRet),
		}
	}

	us.mCounter.WithLabelValues("user_created_total").Inc()

	return uRet, nil
}

func (us *UserService) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	uRet, err := us.userRepository.UpdateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	if uRet != nil {
		us.mq.GetInputChan() <- mq.Event{
			Id:      uuid.New(),
			TS:      time.Now(),
			Kind:    mq.KindUserUpdated,
			UserID:  fmt.Sprintf("%d", uRet.ID),
			Payload: userDTO.ToResponseUser(*uRet),
		}
	}

	us.mCounter.WithLabelValues("user_updated_total").Inc()

	return uRet, nil
}

func (us *UserService) DeleteUser(ctx context.Context, id domain.ID) error {
	// todo: should be run in transaction
	if err := us.uploadRepository.DeleteUploadsByOwner(ctx, id); err != nil {
		return err
	}
	u, err := us.userRepository.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	us.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Kind:    mq.KindUserDeleted,
		UserID:  fmt.Sprintf("%d", u.ID),
		Payload: userDTO.ToResponseUser(*u),
	}

	us.mCounter.WithLabelValues("user_deleted_total").Inc()

	return nil
}
