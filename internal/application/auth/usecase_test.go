package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-interno/internal/application/auth"
	"github.com/jhoicas/catalogo-interno/internal/application/dto"
	"github.com/jhoicas/catalogo-interno/internal/domain"
	"github.com/jhoicas/catalogo-interno/internal/domain/entity"
	"github.com/jhoicas/catalogo-interno/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-interno/pkg/jwt"
)

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewStore(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func register(t *testing.T, uc *auth.AuthUseCase, email string) *dto.UserResponse {
	t.Helper()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: email, Password: "clave-segura", CompanyID: "co-1",
	})
	require.NoError(t, err)
	return u
}

func TestRegisterUser_RolPorDefecto(t *testing.T) {
	u := register(t, newAuth(), "ana@example.com")
	assert.Equal(t, entity.RoleSolicitante, u.Role)
	assert.Equal(t, "ana@example.com", u.Name)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuth()
	register(t, uc, "ana@example.com")
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ANA@example.com", Password: "otra-clave", CompanyID: "co-1",
	})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestRegisterUser_PasswordCorto(t *testing.T) {
	_, err := newAuth().RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "a@example.com", Password: "corta", CompanyID: "co-1",
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLogin_GeneraTokenConIdentidad(t *testing.T) {
	uc := newAuth()
	u := register(t, uc, "ana@example.com")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "clave-segura"})
	require.NoError(t, err)

	id, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
	assert.Equal(t, "co-1", id.CompanyID)
	assert.Equal(t, entity.RoleSolicitante, id.Role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newAuth()
	register(t, uc, "ana@example.com")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
