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

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo implementación de PartyRepository sobre PostgreSQL (usable con pool o tx).
type PartyRepo struct {
	q Querier
}

// NewPartyRepository construye el adaptador de personas. Pasar pool o tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

const partyColumns = `id, kind, document_type, document_number, name, address, phone, email, created_at, updated_at`

func scanParty(row pgx.Row) (*entity.Party, error) {
	var p entity.Party
	err := row.Scan(&p.ID, &p.Kind, &p.DocumentType, &p.DocumentNumber, &p.Name,
		&p.Address, &p.Phone, &p.Email, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste una persona. Devuelve ErrEmailAlreadyExists ante email duplicado.
func (r *PartyRepo) Create(party *entity.Party) error {
	query := `
		INSERT INTO parties (id, kind, document_type, document_number, name, address, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		party.ID, party.Kind, party.DocumentType, party.DocumentNumber, party.Name,
		party.Address, party.Phone, party.Email, party.CreatedAt, party.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

// GetByID obtiene una persona por ID, o nil si no existe.
func (r *PartyRepo) GetByID(id string) (*entity.Party, error) {
	p, err := scanParty(r.q.QueryRow(context.Background(),
		`SELECT `+partyColumns+` FROM parties WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return p, nil
}

// FindByEmail obtiene una persona por email, o nil si no existe.
func (r *PartyRepo) FindByEmail(email string) (*entity.Party, error) {
	p, err := scanParty(r.q.QueryRow(context.Background(),
		`SELECT `+partyColumns+` FROM parties WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find party by email: %w", err)
	}
	return p, nil
}

// List devuelve personas paginadas, más recientes primero.
func (r *PartyRepo) List(limit, offset int) ([]*entity.Party, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+partyColumns+` FROM parties ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()
	return collectParties(rows)
}

// ListByKind filtra por tipo de persona (cliente o proveedor).
func (r *PartyRepo) ListByKind(kind string, limit, offset int) ([]*entity.Party, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+partyColumns+` FROM parties WHERE kind = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parties by kind: %w", err)
	}
	defer rows.Close()
	return collectParties(rows)
}

// Update actualiza una persona existente.
func (r *PartyRepo) Update(party *entity.Party) error {
	query := `
		UPDATE parties
		SET kind = $2, document_type = $3, document_number = $4, name = $5,
		    address = $6, phone = $7, email = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		party.ID, party.Kind, party.DocumentType, party.DocumentNumber, party.Name,
		party.Address, party.Phone, party.Email, party.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update party: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectParties(rows pgx.Rows) ([]*entity.Party, error) {
	var list []*entity.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
