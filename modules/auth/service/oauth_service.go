package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"campus-events-api/core/config"
	"campus-events-api/core/errors"
	"campus-events-api/core/logger"
	"campus-events-api/core/utils"
	"campus-events-api/modules/auth/dto"
	"campus-events-api/modules/auth/entity"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *AuthService) googleOAuthConfig() *oauth2.Config {
	cfg := config.Get()
	return &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// GoogleAuthURL starts the Google login flow and returns the consent URL.
func (s *AuthService) GoogleAuthURL(ctx context.Context) (*dto.GoogleAuthURLResponse, *errors.AppError) {
	state := utils.GenerateRandomString(32)
	if err := s.repo.SaveOAuthState(ctx, state, time.Now().Add(10*time.Minute)); err != nil {
		logger.Error("AuthService:GoogleAuthURL:SaveOAuthState:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save oauth state", err)
	}

	url := s.googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
	return &dto.GoogleAuthURLResponse{URL: url}, nil
}

// GoogleCallback completes the flow: validates state, exchanges the code,
// fetches the Google profile, and signs the user in (creating the account on
// first login).
func (s *AuthService) GoogleCallback(ctx context.Context, state, code string) (*dto.AuthResponse, *errors.AppError) {
	ok, err := s.repo.ConsumeOAuthState(ctx, state)
	if err != nil {
		logger.Error("AuthService:GoogleCallback:ConsumeOAuthState:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to validate oauth state", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired oauth state", nil)
	}

	oauthCfg := s.googleOAuthConfig()
	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:GoogleCallback:Exchange:Error:", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	info, err := fetchGoogleUserInfo(ctx, oauthCfg, token)
	if err != nil {
		logger.Error("AuthService:GoogleCallback:UserInfo:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch user info", err)
	}
	if info.Email == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "google account has no email", nil)
	}

	user, err := s.repo.GetUserByEmail(ctx, info.Email)
	if err != nil {
		logger.Error("AuthService:GoogleCallback:GetUserByEmail:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up user", err)
	}

	if user == nil {
		// First login: provision an account with an unusable random password.
		hash, hashErr := utils.HashPassword(utils.GenerateRandomString(32))
		if hashErr != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to provision account", hashErr)
		}
		newUser := &entity.User{
			Name:         info.Name,
			Email:        info.Email,
			PasswordHash: hash,
			AvatarURL:    info.Picture,
		}
		newUser.ID = uuid.New()
		user, err = s.repo.CreateUser(ctx, newUser)
		if err != nil {
			logger.Error("AuthService:GoogleCallback:CreateUser:Error:", err)
			return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create user", err)
		}
	}

	tokens, err := utils.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		logger.Error("AuthService:GoogleCallback:GenerateTokenPair:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue tokens", err)
	}

	return &dto.AuthResponse{User: dto.ToUserResponse(user), Tokens: tokens}, nil
}

func fetchGoogleUserInfo(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (*googleUserInfo, error) {
	client := cfg.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("AuthService:fetchGoogleUserInfo:Status:", "status", resp.StatusCode, "body", string(body))
		return nil, errors.NewAppError(errors.ErrInternalServer, "userinfo request failed", nil)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
