package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcastros/almacen-api/internal/application/auth"
	"github.com/jcastros/almacen-api/internal/application/dto"
	"github.com/jcastros/almacen-api/internal/domain"
	"github.com/jcastros/almacen-api/internal/domain/entity"
	pkgjwt "github.com/jcastros/almacen-api/pkg/jwt"
)

type memUserRepo struct {
	byEmail map[string]*entity.User
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func (r *memUserRepo) GetByID(string) (*entity.User, error) { return nil, nil }

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *memUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }
func (r *memUserRepo) Update(*entity.User) error             { return nil }
func (r *memUserRepo) SetActive(string, bool) error          { return nil }

func newAuthUC(t *testing.T, active bool) *auth.UseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &memUserRepo{byEmail: map[string]*entity.User{
		"ana@almacen.test": {
			ID:           "user-1",
			Name:         "Ana",
			Role:         entity.RoleSalesperson,
			Email:        "ana@almacen.test",
			PasswordHash: string(hash),
			Active:       active,
		},
	}}
	return auth.NewUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "almacen-api-test",
	})
}

func TestLogin_OK(t *testing.T) {
	uc := newAuthUC(t, true)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.test", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "user-1", out.User.ID)
	assert.Empty(t, out.User.DocumentNumber)

	// El token lleva el rol para el RBAC del middleware.
	userID, role, err := pkgjwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, entity.RoleSalesperson, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newAuthUC(t, true)
	_, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.test", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconocido(t *testing.T) {
	uc := newAuthUC(t, true)
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@almacen.test", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioDesactivado(t *testing.T) {
	uc := newAuthUC(t, false)
	_, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.test", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
