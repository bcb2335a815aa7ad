package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"automarket/internal/core/errs"
	"automarket/internal/domain"
	"automarket/internal/feature/user"
	"automarket/pkg/utils"
)

const (
	msgEmailTaken    = "An account with this email already exists. Please use a different email or try logging in."
	msgNoAccount     = "No account found with this email address. Please check your email or create a new account."
	msgWrongPassword = "Incorrect password. Please try again."
	msgUserNotFound  = "User not found."
)

// TokenIssuer 由 auth.JWTer 实现
type TokenIssuer interface {
	Issue(uid uint, email string) (string, error)
}

type AuthService struct {
	users  domain.UserRepository
	tokens TokenIssuer
	log    *zap.Logger
}

func NewAuthService(users domain.UserRepository, tokens TokenIssuer, l *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: l}
}

// Session 注册/登录成功后的结果
type Session struct {
	Token string
	User  *domain.User
}

func (s *AuthService) Register(ctx context.Context, in user.RegisterInput) (*Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fail(s.log, msgInternal, err, zap.String("op", "find user by email"))
	}
	if existing != nil {
		return nil, errs.Conflict(msgEmailTaken)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fail(s.log, msgInternal, err, zap.String("op", "hash password"))
	}
	u := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册：唯一索引兜底
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, errs.Conflict(msgEmailTaken)
		}
		return nil, fail(s.log, msgInternal, err, zap.String("op", "create user"))
	}
	return s.session(u)
}

func (s *AuthService) Login(ctx context.Context, in user.LoginInput) (*Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fail(s.log, msgInternal, err, zap.String("op", "find user by email"))
	}
	if u == nil {
		return nil, errs.Unauthenticated(msgNoAccount)
	}
	if !utils.CheckPassword(in.Password, u.PasswordHash) {
		return nil, errs.Unauthenticated(msgWrongPassword)
	}
	return s.session(u)
}

func (s *AuthService) Me(ctx context.Context, uid uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, fail(s.log, msgInternal, err, zap.String("op", "find user"))
	}
	if u == nil {
		return nil, errs.NotFound(msgUserNotFound)
	}
	return u, nil
}

func (s *AuthService) session(u *domain.User) (*Session, error) {
	tok, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, fail(s.log, msgInternal, err, zap.String("op", "issue token"))
	}
	return &Session{Token: tok, User: u}, nil
}
