package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jcastros/almacen-api/internal/application/dto"
	"github.com/jcastros/almacen-api/internal/domain"
	"github.com/jcastros/almacen-api/internal/domain/entity"
	"github.com/jcastros/almacen-api/internal/domain/repository"
)

// PartyUseCase directorio de personas (clientes y proveedores).
type PartyUseCase struct {
	repo repository.PartyRepository
}

// NewPartyUseCase construye el caso de uso.
func NewPartyUseCase(repo repository.PartyRepository) *PartyUseCase {
	return &PartyUseCase{repo: repo}
}

func validateParty(in dto.CreatePartyRequest) error {
	verr := &domain.ValidationError{}
	if in.Kind != entity.PartyKindCustomer && in.Kind != entity.PartyKindSupplier {
		verr.Add("kind", "debe ser cliente o proveedor")
	}
	if in.Name == "" {
		verr.Add("name", "es requerido")
	}
	if in.Email == "" {
		verr.Add("email", "es requerido")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// Create valida y persiste una persona. El email se guarda en minúsculas y
// debe ser único en el directorio.
func (uc *PartyUseCase) Create(in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if err := validateParty(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(in.Email)
	existing, err := uc.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	now := time.Now()
	party := &entity.Party{
		ID:             uuid.New().String(),
		Kind:           in.Kind,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		Name:           in.Name,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          email,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(party); err != nil {
		return nil, err
	}
	return toPartyResponse(party), nil
}

// Update valida y actualiza una persona existente.
func (uc *PartyUseCase) Update(id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateParty(in); err != nil {
		return nil, err
	}
	party, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	email := strings.ToLower(in.Email)
	if email != party.Email {
		existing, err := uc.repo.FindByEmail(email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	party.Kind = in.Kind
	party.DocumentType = in.DocumentType
	party.DocumentNumber = in.DocumentNumber
	party.Name = in.Name
	party.Address = in.Address
	party.Phone = in.Phone
	party.Email = email
	party.UpdatedAt = time.Now()
	if err := uc.repo.Update(party); err != nil {
		return nil, err
	}
	return toPartyResponse(party), nil
}

// GetByID devuelve la persona o ErrNotFound.
func (uc *PartyUseCase) GetByID(id string) (*dto.PartyResponse, error) {
	party, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	return toPartyResponse(party), nil
}

// List devuelve todas las personas paginadas.
func (uc *PartyUseCase) List(limit, offset int) ([]dto.PartyResponse, error) {
	parties, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toPartyResponses(parties), nil
}

// ListByKind filtra por tipo (cliente o proveedor).
func (uc *PartyUseCase) ListByKind(kind string, limit, offset int) ([]dto.PartyResponse, error) {
	if kind != entity.PartyKindCustomer && kind != entity.PartyKindSupplier {
		return nil, domain.ErrInvalidInput
	}
	parties, err := uc.repo.ListByKind(kind, limit, offset)
	if err != nil {
		return nil, err
	}
	return toPartyResponses(parties), nil
}

// Select devuelve pares id/nombre del tipo dado, para selects del front.
func (uc *PartyUseCase) Select(kind string) ([]dto.PartySelectResponse, error) {
	parties, err := uc.ListByKind(kind, 1000, 0)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartySelectResponse, 0, len(parties))
	for _, p := range parties {
		out = append(out, dto.PartySelectResponse{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

func toPartyResponse(p *entity.Party) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:             p.ID,
		Kind:           p.Kind,
		DocumentType:   p.DocumentType,
		DocumentNumber: p.DocumentNumber,
		Name:           p.Name,
		Address:        p.Address,
		Phone:          p.Phone,
		Email:          p.Email,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toPartyResponses(parties []*entity.Party) []dto.PartyResponse {
	out := make([]dto.PartyResponse, 0, len(parties))
	for _, p := range parties {
		out = append(out, *toPartyResponse(p))
	}
	return out
}
