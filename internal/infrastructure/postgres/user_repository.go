package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastros/almacen-api/internal/domain"
	"github.com/jcastros/almacen-api/internal/domain/entity"
	"github.com/jcastros/almacen-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, name, role, document_type, document_number, address, phone, email, password_hash, active, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Role, &u.DocumentType, &u.DocumentNumber,
		&u.Address, &u.Phone, &u.Email, &u.PasswordHash, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un usuario. Devuelve ErrEmailAlreadyExists ante email duplicado.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, name, role, document_type, document_number, address, phone, email, password_hash, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Role, user.DocumentType, user.DocumentNumber,
		user.Address, user.Phone, user.Email, user.PasswordHash, user.Active,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID, o nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// FindByEmail obtiene un usuario por email, o nil si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// List devuelve usuarios paginados, más recientes primero.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza un usuario existente.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, role = $3, document_type = $4, document_number = $5, address = $6,
		    phone = $7, email = $8, password_hash = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Role, user.DocumentType, user.DocumentNumber,
		user.Address, user.Phone, user.Email, user.PasswordHash, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetActive activa o desactiva un usuario.
func (r *UserRepo) SetActive(id string, active bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE users SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
