package service

import (
	"context"
	"fmt"
	"strings"

	"campus-events-api/core/cache"
	"campus-events-api/core/errors"
	"campus-events-api/core/logger"
	"campus-events-api/core/storage"
	"campus-events-api/core/utils"
	"campus-events-api/modules/auth/dto"
	"campus-events-api/modules/auth/entity"
	"campus-events-api/modules/auth/repository"

	"github.com/google/uuid"
)

// AuthService handles registration, login, and profile management.
type AuthService struct {
	repo  repository.AuthRepositoryInterface
	cache cache.ICache
	store *storage.Storage
}

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.AuthResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, *errors.AppError)
	AvatarUploadURL(ctx context.Context, userID uuid.UUID, req *dto.AvatarUploadRequest) (*dto.AvatarUploadResponse, *errors.AppError)
}

func NewAuthService(repo repository.AuthRepositoryInterface, c cache.ICache, store *storage.Storage) *AuthService {
	return &AuthService{repo: repo, cache: c, store: store}
}

// Register creates a new account. Duplicate emails are rejected with
// ErrAlreadyExists so exactly one record exists per email.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Error("AuthService:Register:GetUserByEmail:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check existing user", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "email is already registered", nil)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	user := &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Age:          req.Age,
		University:   req.University,
		Hobby:        req.Hobby,
		MBTI:         req.MBTI,
		Languages:    req.Languages,
	}
	user.ID = uuid.New()

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("AuthService:Register:CreateUser:Error:", err)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create user", err)
	}

	tokens, err := utils.GenerateTokenPair(created.ID, created.Email)
	if err != nil {
		logger.Error("AuthService:Register:GenerateTokenPair:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue tokens", err)
	}

	return &dto.AuthResponse{User: dto.ToUserResponse(created), Tokens: tokens}, nil
}

// Login verifies credentials. Unknown email and wrong password both map to
// ErrInvalidCredentials, leaking nothing about which part failed.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Error("AuthService:Login:GetUserByEmail:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up user", err)
	}
	if user == nil || !utils.ComparePassword(user.PasswordHash, req.Password) {
		return nil, errors.NewAppError(errors.ErrInvalidCredentials, "invalid email or password", nil)
	}

	tokens, err := utils.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		logger.Error("AuthService:Login:GenerateTokenPair:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue tokens", err)
	}

	return &dto.AuthResponse{User: dto.ToUserResponse(user), Tokens: tokens}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh pair.
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.AuthResponse, *errors.AppError) {
	claims, err := utils.ValidateAndParseRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid refresh token", err)
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		logger.Error("AuthService:RefreshToken:GetUserByID:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	tokens, err := utils.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		logger.Error("AuthService:RefreshToken:GenerateTokenPair:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue tokens", err)
	}

	return &dto.AuthResponse{User: dto.ToUserResponse(user), Tokens: tokens}, nil
}

// Logout revokes the presented access token.
func (s *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	if err := s.cache.AddToTokenBlacklist(ctx, token); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}
	return nil
}

func (s *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error("AuthService:GetMe:GetUserByID:Error:", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile shallow-merges the non-nil request fields into the stored user.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error("AuthService:UpdateProfile:GetUserByID:Error:", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.University != nil {
		user.University = *req.University
	}
	if req.Hobby != nil {
		user.Hobby = *req.Hobby
	}
	if req.MBTI != nil {
		user.MBTI = *req.MBTI
	}
	if req.Languages != nil {
		user.Languages = *req.Languages
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		logger.Error("AuthService:UpdateProfile:UpdateUser:Error:", err)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update user", err)
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// AvatarUploadURL presigns an S3 PUT for the user's avatar object.
func (s *AuthService) AvatarUploadURL(ctx context.Context, userID uuid.UUID, req *dto.AvatarUploadRequest) (*dto.AvatarUploadResponse, *errors.AppError) {
	if s.store == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "storage is not configured", nil)
	}

	key := fmt.Sprintf("avatars/%s/%s", userID, utils.GenerateID())
	uploadURL, err := s.store.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		logger.Error("AuthService:AvatarUploadURL:PresignUpload:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to presign upload", err)
	}

	return &dto.AvatarUploadResponse{
		UploadURL: uploadURL,
		PublicURL: s.store.PublicURL(key),
	}, nil
}
