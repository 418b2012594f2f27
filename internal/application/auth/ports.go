package auth

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// TxRunner abre la transacción del registro: empresa y primer ADMIN se crean juntos o ninguno.
type TxRunner interface {
	RunIdentity(ctx context.Context, fn func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error) error
}
