package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/logiandes/ms-inventario/internal/domain"
	"github.com/logiandes/ms-inventario/internal/domain/entity"
)

// Find-or-create por clave natural: buscar, insertar solo si falta, nunca
// actualizar una coincidencia existente. Dos grupos concurrentes pueden fallar
// el lookup del mismo nombre a la vez; el constraint único del esquema convierte
// el segundo insert en domain.ErrDuplicate y aquí se re-consulta en lugar de
// duplicar o abortar.

func findOrCreateDepartament(ctx context.Context, repos *TxRepos, name string) (*entity.Departament, error) {
	dep, err := repos.Departaments.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if dep != nil {
		return dep, nil
	}

	dep = &entity.Departament{ID: uuid.NewString(), Name: name, CreatedAt: time.Now()}
	err = repos.Departaments.Create(ctx, dep)
	if errors.Is(err, domain.ErrDuplicate) {
		// otro scope lo acaba de crear; usar el suyo
		return repos.Departaments.GetByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return dep, nil
}

func findOrCreateCity(ctx context.Context, repos *TxRepos, departamentID, name string) (*entity.City, error) {
	city, err := repos.Cities.GetByDepartamentAndName(ctx, departamentID, name)
	if err != nil {
		return nil, err
	}
	if city != nil {
		return city, nil
	}

	city = &entity.City{ID: uuid.NewString(), Name: name, DepartamentID: departamentID, CreatedAt: time.Now()}
	err = repos.Cities.Create(ctx, city)
	if errors.Is(err, domain.ErrDuplicate) {
		return repos.Cities.GetByDepartamentAndName(ctx, departamentID, name)
	}
	if err != nil {
		return nil, err
	}
	return city, nil
}

func findOrCreateCategory(ctx context.Context, repos *TxRepos, name string) (*entity.Category, error) {
	cat, err := repos.Categories.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if cat != nil {
		return cat, nil
	}

	cat = &entity.Category{ID: uuid.NewString(), Name: name, CreatedAt: time.Now()}
	err = repos.Categories.Create(ctx, cat)
	if errors.Is(err, domain.ErrDuplicate) {
		return repos.Categories.GetByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func findOrCreateSupplier(ctx context.Context, repos *TxRepos, name string) (*entity.Supplier, error) {
	sup, err := repos.Suppliers.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if sup != nil {
		return sup, nil
	}

	sup = &entity.Supplier{ID: uuid.NewString(), Name: name, CreatedAt: time.Now()}
	err = repos.Suppliers.Create(ctx, sup)
	if errors.Is(err, domain.ErrDuplicate) {
		return repos.Suppliers.GetByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return sup, nil
}

// resolveCity resuelve (departamento, municipio) por nombre con find-or-create
// encadenado; es la variante de una sola fila del reconciliador de geografía.
func resolveCity(ctx context.Context, repos *TxRepos, departamentName, cityName string) (*entity.City, error) {
	dep, err := findOrCreateDepartament(ctx, repos, departamentName)
	if err != nil {
		return nil, fmt.Errorf("resolver departamento %q: %w", departamentName, err)
	}
	city, err := findOrCreateCity(ctx, repos, dep.ID, cityName)
	if err != nil {
		return nil, fmt.Errorf("resolver municipio %q: %w", cityName, err)
	}
	return city, nil
}
