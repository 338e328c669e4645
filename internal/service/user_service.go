package service

import (
	"PeerChain/internal/api/dto"
	"PeerChain/internal/model"
	"PeerChain/internal/pkg/consts"
	"PeerChain/internal/pkg/redis"
	"PeerChain/internal/pkg/security"
	"PeerChain/internal/repository"
	"context"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, userID string) (*dto.UserDTO, error)
	UpdateUserInfo(ctx context.Context, userID string, updDTO *dto.UpdateUserDTO) error
	GetPointHistory(ctx context.Context, userID string) ([]*dto.PointEventDTO, error)
}

type userServiceImpl struct {
	userRepo   repository.UserRepo
	ledgerRepo repository.PointLedgerRepo
}

func NewUserService(userRepo repository.UserRepo, ledgerRepo repository.PointLedgerRepo) UserService {
	return &userServiceImpl{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	findUser, err := s.userRepo.GetUserByEmail(ctx, regDTO.Email)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserEmailExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	user := &model.User{}
	if err = copier.Copy(user, regDTO); err != nil {
		return err
	}
	user.Password = passwordHash
	user.Institution = consts.DefaultInstitution
	user.TrustRating = consts.DefaultTrustRating
	user.Points = consts.DefaultStartingPoints
	user.Level = LevelForPoints(consts.DefaultStartingPoints)
	user.IsActive = true

	err = s.userRepo.CreateUser(ctx, user)
	if err == repository.ErrDuplicateKey {
		return ErrUserEmailExist
	}
	return err
}

func (s *userServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, credDTO.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	if err = security.CheckPasswordHash(credDTO.Password, user.Password); err != nil {
		return "", ErrPasswordIncorrect
	}

	_ = s.userRepo.SetLastLogin(ctx, user.ID)

	return security.GenerateToken(user.ID.Hex())
}

// Logout 将 Token 签名写入黑名单，剩余有效期内拒绝该 Token
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	if !redis.Available() {
		return nil
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrParamInvalid
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, "1", security.JWTExpirationTime)
}

func (s *userServiceImpl) GetUserInfo(ctx context.Context, userID string) (*dto.UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	userDTO := &dto.UserDTO{}
	if err = copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	userDTO.UserID = user.ID.Hex()
	userDTO.JoinedDate = &user.JoinedDate
	return userDTO, nil
}

func (s *userServiceImpl) UpdateUserInfo(ctx context.Context, userID string, updDTO *dto.UpdateUserDTO) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	upd := &model.User{
		Name:         updDTO.Name,
		Department:   updDTO.Department,
		ResearchArea: updDTO.ResearchArea,
		Bio:          updDTO.Bio,
	}
	return s.userRepo.UpdateUserInfo(ctx, user.ID, upd)
}

func (s *userServiceImpl) GetPointHistory(ctx context.Context, userID string) ([]*dto.PointEventDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := s.ledgerRepo.FindByUser(ctx, user.ID, 100)
	if err != nil {
		return nil, err
	}

	eventDTOs := make([]*dto.PointEventDTO, 0, len(events))
	for _, event := range events {
		eventDTOs = append(eventDTOs, &dto.PointEventDTO{
			Type:      event.Type,
			Points:    event.Points,
			Ref:       event.Ref,
			CreatedAt: event.CreatedAt,
		})
	}
	return eventDTOs, nil
}

func (s *userServiceImpl) findUser(ctx context.Context, userID string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrParamInvalid
	}
	user, err := s.userRepo.GetUserByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
