package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcastros/almacen-api/internal/application/dto"
	"github.com/jcastros/almacen-api/internal/application/usecase"
	"github.com/jcastros/almacen-api/internal/domain"
	"github.com/jcastros/almacen-api/internal/domain/entity"
)

type memUserRepo struct {
	byID map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }

func (r *memUserRepo) Update(u *entity.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) SetActive(id string, active bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = active
	return nil
}

func validUser() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Name:     "Carlos",
		Role:     entity.RoleWarehouse,
		Email:    "Carlos@Almacen.Test",
		Password: "secreto123",
	}
}

func TestUserCreate_HasheaYNormalizaEmail(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(validUser())
	require.NoError(t, err)
	assert.Equal(t, "carlos@almacen.test", out.Email, "el email se guarda en minúsculas")
	assert.True(t, out.Active)

	stored := repo.byID[out.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash, "nunca texto plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))
}

func TestUserCreate_RolInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(newMemUserRepo())

	in := validUser()
	in.Role = "gerente"
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_PasswordCorto(t *testing.T) {
	uc := usecase.NewUserUseCase(newMemUserRepo())

	in := validUser()
	in.Password = "12345"
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_EmailDuplicado(t *testing.T) {
	uc := usecase.NewUserUseCase(newMemUserRepo())

	_, err := uc.Create(validUser())
	require.NoError(t, err)
	_, err = uc.Create(validUser())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUpdate_PasswordVacioConservaHash(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	created, err := uc.Create(validUser())
	require.NoError(t, err)
	originalHash := repo.byID[created.ID].PasswordHash

	_, err = uc.Update(created.ID, dto.UpdateUserRequest{Name: "Carlos A."})
	require.NoError(t, err)
	assert.Equal(t, originalHash, repo.byID[created.ID].PasswordHash)
	assert.Equal(t, "Carlos A.", repo.byID[created.ID].Name)
}

func TestUserUpdate_PasswordNuevoRehashea(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo)

	created, err := uc.Create(validUser())
	require.NoError(t, err)
	originalHash := repo.byID[created.ID].PasswordHash

	_, err = uc.Update(created.ID, dto.UpdateUserRequest{Password: "nuevosecreto"})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, repo.byID[created.ID].PasswordHash)
}
