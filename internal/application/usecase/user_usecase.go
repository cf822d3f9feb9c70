package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcastros/almacen-api/internal/application/auth"
	"github.com/jcastros/almacen-api/internal/application/dto"
	"github.com/jcastros/almacen-api/internal/domain"
	"github.com/jcastros/almacen-api/internal/domain/entity"
	"github.com/jcastros/almacen-api/internal/domain/repository"
)

// UserUseCase administración de usuarios del sistema (solo administrador).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

func validRole(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleWarehouse, entity.RoleSalesperson:
		return true
	}
	return false
}

// Create hashea el password con bcrypt y persiste el usuario, activo por
// defecto. El email se guarda en minúsculas y debe ser único.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	verr := &domain.ValidationError{}
	if in.Name == "" {
		verr.Add("name", "es requerido")
	}
	if !validRole(in.Role) {
		verr.Add("role", "debe ser administrador, almacenero o vendedor")
	}
	if in.Email == "" {
		verr.Add("email", "es requerido")
	}
	if len(in.Password) < 6 {
		verr.Add("password", "debe tener al menos 6 caracteres")
	}
	if !verr.Empty() {
		return nil, verr
	}
	email := strings.ToLower(in.Email)
	existing, err := uc.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Role:           in.Role,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          email,
		PasswordHash:   string(hash),
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Update actualiza un usuario; si Password viene vacío conserva el hash actual.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Role != "" && !validRole(in.Role) {
		return nil, (&domain.ValidationError{}).Add("role", "debe ser administrador, almacenero o vendedor")
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != "" {
		email := strings.ToLower(in.Email)
		if email != user.Email {
			existing, err := uc.repo.FindByEmail(email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, domain.ErrEmailAlreadyExists
			}
		}
		user.Email = email
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Role != "" {
		user.Role = in.Role
	}
	user.DocumentType = in.DocumentType
	user.DocumentNumber = in.DocumentNumber
	user.Address = in.Address
	user.Phone = in.Phone
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List devuelve usuarios paginados.
func (uc *UserUseCase) List(limit, offset int) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// SetActive activa o desactiva un usuario.
func (uc *UserUseCase) SetActive(id string, active bool) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.SetActive(id, active)
}
