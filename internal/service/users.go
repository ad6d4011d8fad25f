package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"loja-backend/internal/apperr"
	"loja-backend/internal/auth"
	"loja-backend/internal/models"
	"loja-backend/internal/repository"
)

type RegisterInput struct {
	Nome  string `json:"nome"`
	Idade int    `json:"idade"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type UserService struct {
	users  repository.UserRepository
	secret []byte
	now    func() time.Time
}

func NewUserService(users repository.UserRepository, secret []byte) *UserService {
	return &UserService{users: users, secret: secret, now: time.Now}
}

// Register creates a regular user. Admin accounts are provisioned directly in
// the store.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if strings.TrimSpace(in.Nome) == "" || email == "" || in.Senha == "" {
		return nil, apperr.Validation("nome, email e senha são obrigatórios")
	}
	if in.Idade < 0 {
		return nil, apperr.Validation("idade inválida")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperr.Conflict("email já cadastrado")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeErr("find user by email", err, "")
	}

	hash, err := auth.HashPassword(in.Senha)
	if err != nil {
		return nil, apperr.Internal("erro ao processar senha", err)
	}
	u := &models.User{
		Nome:  strings.TrimSpace(in.Nome),
		Idade: in.Idade,
		Email: email,
		Senha: hash,
		Role:  models.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("email já cadastrado")
		}
		return nil, storeErr("create user", err, "")
	}
	logrus.WithField("user_id", u.ID.Hex()).Info("user registered")
	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, senha string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || senha == "" {
		return nil, apperr.Validation("email e senha são obrigatórios")
	}
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Unauthenticated("email ou senha inválidos")
	}
	if err != nil {
		return nil, storeErr("find user by email", err, "")
	}
	if !auth.CheckPassword(u.Senha, senha) {
		return nil, apperr.Unauthenticated("email ou senha inválidos")
	}

	role := u.Role
	if role == "" {
		role = models.RoleUser
	}
	token, err := auth.IssueToken(u.ID.Hex(), role, s.secret, s.now())
	if err != nil {
		return nil, apperr.Internal("erro ao gerar token", fmt.Errorf("issue token: %w", err))
	}
	return &LoginResult{Token: token, Role: role}, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeErr("list users", err, "")
	}
	return users, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := models.ParseID(id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, oid); err != nil {
		return storeErr("delete user", err, "usuário não encontrado")
	}
	logrus.WithField("user_id", id).Info("user removed")
	return nil
}
