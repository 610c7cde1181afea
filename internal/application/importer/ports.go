package importer

import (
	"context"

	"github.com/logiandes/ms-inventario/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción.
// El TxRunner entrega una instancia por cada scope; nunca se comparte entre filas.
type TxRepos struct {
	Departaments repository.DepartamentRepository
	Cities       repository.CityRepository
	Stores       repository.StoreRepository
	Categories   repository.CategoryRepository
	Suppliers    repository.SupplierRepository
	Products     repository.ProductRepository
	Provisions   repository.ProvisionRepository
	Inventories  repository.InventoryRepository
}

// TxRunner ejecuta fn dentro de un scope transaccional: begin, commit si fn
// retorna nil, rollback en cualquier otro caso, y la conexión siempre vuelve
// al pool al salir.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos *TxRepos) error) error
}

// UserIdentity identidad de un usuario en ms-security.
type UserIdentity struct {
	ID    string
	Email string
	Role  string
}

// CreateUserRequest payload para aprovisionar un usuario en ms-security.
// Los nombres de campo siguen el contrato del servicio de seguridad.
type CreateUserRequest struct {
	Name      string `json:"name"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CellPhone int64  `json:"cellPhone"`
	Landline  int    `json:"landline"`
	IDType    string `json:"IDType"`
	IDNumber  string `json:"IDNumber"`
}

// UserClient puerto hacia ms-security para usuarios.
// FindByEmail retorna domain.ErrUserNotFound cuando el email no existe.
type UserClient interface {
	FindByEmail(ctx context.Context, email, token string) (*UserIdentity, error)
	CreateWithRole(ctx context.Context, roleID string, req CreateUserRequest, token string) (*UserIdentity, error)
}

// RoleClient puerto hacia ms-security para roles. EnsureRole busca el rol por
// nombre y lo crea si no existe, devolviendo siempre su id.
type RoleClient interface {
	EnsureRole(ctx context.Context, name, token string) (string, error)
}
