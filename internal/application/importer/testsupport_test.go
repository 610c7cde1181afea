package importer

import (
	"context"
	"fmt"
	"sync"

	"github.com/logiandes/ms-inventario/internal/domain"
	"github.com/logiandes/ms-inventario/internal/domain/entity"
	"github.com/logiandes/ms-inventario/pkg/logger"
)

// Doble en memoria del TxRunner y los repositorios, con semántica
// transaccional real: cada Run trabaja sobre una copia y solo al retornar nil
// se publica; un error descarta todo lo escrito dentro del scope.

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// memData indexa cada entidad por su clave natural (cities por
// departamentID+"/"+name, inventories por storeID+"/"+productID).
type memData struct {
	departaments map[string]*entity.Departament
	cities       map[string]*entity.City
	stores       map[string]*entity.Store
	categories   map[string]*entity.Category
	suppliers    map[string]*entity.Supplier
	products     map[string]*entity.Product
	provisions   []*entity.Provision
	inventories  map[string]*entity.Inventory
}

func newMemData() *memData {
	return &memData{
		departaments: map[string]*entity.Departament{},
		cities:       map[string]*entity.City{},
		stores:       map[string]*entity.Store{},
		categories:   map[string]*entity.Category{},
		suppliers:    map[string]*entity.Supplier{},
		products:     map[string]*entity.Product{},
		inventories:  map[string]*entity.Inventory{},
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	for k, v := range d.departaments {
		c.departaments[k] = v
	}
	for k, v := range d.cities {
		c.cities[k] = v
	}
	for k, v := range d.stores {
		c.stores[k] = v
	}
	for k, v := range d.categories {
		c.categories[k] = v
	}
	for k, v := range d.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	c.provisions = append(c.provisions, d.provisions...)
	for k, v := range d.inventories {
		c.inventories[k] = v
	}
	return c
}

// memTxRunner serializa los scopes: clona, ejecuta y publica solo en éxito.
type memTxRunner struct {
	mu   sync.Mutex
	data *memData
}

func newMemTxRunner() *memTxRunner {
	return &memTxRunner{data: newMemData()}
}

func (r *memTxRunner) Run(_ context.Context, fn func(repos *TxRepos) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	work := r.data.clone()
	if err := fn(reposFor(work)); err != nil {
		return err
	}
	r.data = work
	return nil
}

// snapshot devuelve el estado publicado para las aserciones.
func (r *memTxRunner) snapshot() *memData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data.clone()
}

func reposFor(d *memData) *TxRepos {
	return &TxRepos{
		Departaments: &memDepartamentRepo{d},
		Cities:       &memCityRepo{d},
		Stores:       &memStoreRepo{d},
		Categories:   &memCategoryRepo{d},
		Suppliers:    &memSupplierRepo{d},
		Products:     &memProductRepo{d},
		Provisions:   &memProvisionRepo{d},
		Inventories:  &memInventoryRepo{d},
	}
}

func cityMapKey(departamentID, name string) string {
	return departamentID + "/" + name
}

type memDepartamentRepo struct{ d *memData }

func (r *memDepartamentRepo) GetByName(_ context.Context, name string) (*entity.Departament, error) {
	return r.d.departaments[name], nil
}

func (r *memDepartamentRepo) ListByNames(_ context.Context, names []string) ([]*entity.Departament, error) {
	var out []*entity.Departament
	for _, n := range names {
		if dep := r.d.departaments[n]; dep != nil {
			out = append(out, dep)
		}
	}
	return out, nil
}

func (r *memDepartamentRepo) Create(_ context.Context, dep *entity.Departament) error {
	if r.d.departaments[dep.Name] != nil {
		return domain.ErrDuplicate
	}
	r.d.departaments[dep.Name] = dep
	return nil
}

func (r *memDepartamentRepo) CreateBatch(ctx context.Context, deps []*entity.Departament) error {
	for _, dep := range deps {
		if err := r.Create(ctx, dep); err != nil {
			return err
		}
	}
	return nil
}

type memCityRepo struct{ d *memData }

func (r *memCityRepo) GetByDepartamentAndName(_ context.Context, departamentID, name string) (*entity.City, error) {
	return r.d.cities[cityMapKey(departamentID, name)], nil
}

func (r *memCityRepo) ListByDepartamentIDs(_ context.Context, departamentIDs []string) ([]*entity.City, error) {
	ids := make(map[string]bool, len(departamentIDs))
	for _, id := range departamentIDs {
		ids[id] = true
	}
	var out []*entity.City
	for _, c := range r.d.cities {
		if ids[c.DepartamentID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCityRepo) Create(_ context.Context, c *entity.City) error {
	key := cityMapKey(c.DepartamentID, c.Name)
	if r.d.cities[key] != nil {
		return domain.ErrDuplicate
	}
	r.d.cities[key] = c
	return nil
}

func (r *memCityRepo) CreateBatch(ctx context.Context, cs []*entity.City) error {
	for _, c := range cs {
		if err := r.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

type memStoreRepo struct{ d *memData }

func (r *memStoreRepo) GetByCode(_ context.Context, code string) (*entity.Store, error) {
	return r.d.stores[code], nil
}

func (r *memStoreRepo) Create(_ context.Context, s *entity.Store) error {
	if r.d.stores[s.Code] != nil {
		return domain.ErrDuplicate
	}
	r.d.stores[s.Code] = s
	return nil
}

type memCategoryRepo struct{ d *memData }

func (r *memCategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	return r.d.categories[name], nil
}

func (r *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	if r.d.categories[c.Name] != nil {
		return domain.ErrDuplicate
	}
	r.d.categories[c.Name] = c
	return nil
}

type memSupplierRepo struct{ d *memData }

func (r *memSupplierRepo) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	return r.d.suppliers[name], nil
}

func (r *memSupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	if r.d.suppliers[s.Name] != nil {
		return domain.ErrDuplicate
	}
	r.d.suppliers[s.Name] = s
	return nil
}

type memProductRepo struct{ d *memData }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	if r.d.products[p.ID] != nil {
		return domain.ErrDuplicate
	}
	r.d.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.d.products[id], nil
}

type memProvisionRepo struct{ d *memData }

func (r *memProvisionRepo) Create(_ context.Context, p *entity.Provision) error {
	r.d.provisions = append(r.d.provisions, p)
	return nil
}

type memInventoryRepo struct{ d *memData }

func (r *memInventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	key := inv.StoreID + "/" + inv.ProductID
	if r.d.inventories[key] != nil {
		return domain.ErrDuplicate
	}
	r.d.inventories[key] = inv
	return nil
}

func (r *memInventoryRepo) CountByStore(_ context.Context, storeID string) (int, error) {
	n := 0
	for _, inv := range r.d.inventories {
		if inv.StoreID == storeID {
			n++
		}
	}
	return n, nil
}

// ── Dobles de ms-security ─────────────────────────────────────────────────────

type fakeUserClient struct {
	mu        sync.Mutex
	users     map[string]*UserIdentity // email → identidad
	created   []CreateUserRequest
	createErr error
}

func newFakeUserClient(existing ...string) *fakeUserClient {
	f := &fakeUserClient{users: map[string]*UserIdentity{}}
	for _, email := range existing {
		f.users[email] = &UserIdentity{ID: "user-" + email, Email: email, Role: "Manager"}
	}
	return f
}

func (f *fakeUserClient) FindByEmail(_ context.Context, email, _ string) (*UserIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u := f.users[email]; u != nil {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserClient) CreateWithRole(_ context.Context, roleID string, req CreateUserRequest, _ string) (*UserIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	u := &UserIdentity{ID: fmt.Sprintf("user-%s", req.Email), Email: req.Email, Role: roleID}
	f.users[req.Email] = u
	return u, nil
}

func (f *fakeUserClient) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeRoleClient struct {
	mu      sync.Mutex
	ensured []string
}

func (f *fakeRoleClient) EnsureRole(_ context.Context, name, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensured = append(f.ensured, name)
	return "role-" + name, nil
}
