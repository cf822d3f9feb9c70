// seed crea el usuario administrador inicial si no existe.
//
// Uso: go run ./cmd/seed <email> <password>
// Lee la conexión a PostgreSQL de la misma configuración que el servidor.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcastros/almacen-api/internal/domain/entity"
	"github.com/jcastros/almacen-api/internal/infrastructure/postgres"
	"github.com/jcastros/almacen-api/pkg/config"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "uso: seed <email> <password>")
		os.Exit(1)
	}
	email, password := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewUserRepository(pool)
	existing, err := repo.FindByEmail(email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "buscar usuario: %v\n", err)
		os.Exit(1)
	}
	if existing != nil {
		fmt.Printf("el usuario %s ya existe, nada que hacer\n", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de password: %v\n", err)
		os.Exit(1)
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(admin); err != nil {
		fmt.Fprintf(os.Stderr, "crear usuario: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("usuario administrador %s creado (id %s)\n", email, admin.ID)
}
