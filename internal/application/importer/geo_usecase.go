package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/logiandes/ms-inventario/internal/domain/entity"
	"github.com/logiandes/ms-inventario/pkg/csvtext"
	"github.com/logiandes/ms-inventario/pkg/logger"
)

// GeoUseCase reconcilia el grafo departamento/municipio a partir del archivo
// de jerarquía: a lo sumo un insert por nombre distinto, sin importar cuántas
// filas lo repitan, todo dentro de un único scope transaccional.
type GeoUseCase struct {
	tx  TxRunner
	log *logger.Logger
}

// NewGeoUseCase construye el caso de uso de geografía.
func NewGeoUseCase(tx TxRunner, log *logger.Logger) *GeoUseCase {
	return &GeoUseCase{tx: tx, log: log}
}

// ImportDepartamentsAndCities procesa el CSV de jerarquía (columnas
// DEPARTAMENTO, MUNICIPIO; delimitado por coma). Cualquier fallo revierte todos
// los departamentos y municipios insertados durante la corrida.
func (uc *GeoUseCase) ImportDepartamentsAndCities(ctx context.Context, data []byte) error {
	records, err := csvtext.Parse(data, csvtext.Options{})
	if err != nil {
		return fmt.Errorf("parsear CSV de jerarquía: %w", err)
	}

	rows := make([]GeoRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, geoRowFrom(rec))
	}
	uc.log.Info().Int("filas", len(rows)).Msg("iniciando importación de departamentos y municipios")

	return uc.tx.Run(ctx, func(repos *TxRepos) error {
		return reconcileGeo(ctx, repos, rows)
	})
}

// reconcileGeo deduplica nombres, carga coincidencias en bloque y crea solo lo
// faltante. El orden de inserción entre nombres distintos no está especificado.
func reconcileGeo(ctx context.Context, repos *TxRepos, rows []GeoRow) error {
	// 1. Conjunto de nombres de departamento distintos
	var deptNames []string
	seen := make(map[string]bool)
	for _, row := range rows {
		if row.Departamento == "" || seen[row.Departamento] {
			continue
		}
		seen[row.Departamento] = true
		deptNames = append(deptNames, row.Departamento)
	}

	// 2. Cargar existentes en bloque
	existing, err := repos.Departaments.ListByNames(ctx, deptNames)
	if err != nil {
		return err
	}
	deptMap := make(map[string]*entity.Departament, len(deptNames))
	for _, d := range existing {
		deptMap[d.Name] = d
	}

	// 3. Insertar los faltantes en una sola llamada y fusionar al mapa
	var toCreate []*entity.Departament
	for _, name := range deptNames {
		if deptMap[name] != nil {
			continue
		}
		d := &entity.Departament{ID: uuid.NewString(), Name: name, CreatedAt: time.Now()}
		toCreate = append(toCreate, d)
		deptMap[name] = d
	}
	if err := repos.Departaments.CreateBatch(ctx, toCreate); err != nil {
		return err
	}

	// 4. Cargar municipios existentes de esos departamentos
	deptIDs := make([]string, 0, len(deptMap))
	for _, d := range deptMap {
		deptIDs = append(deptIDs, d.ID)
	}
	existingCities, err := repos.Cities.ListByDepartamentIDs(ctx, deptIDs)
	if err != nil {
		return err
	}
	cityMap := make(map[string]*entity.City, len(existingCities))
	for _, c := range existingCities {
		cityMap[cityKey(c.DepartamentID, c.Name)] = c
	}

	// 5. Encolar municipios nuevos por clave compuesta (departamento, nombre)
	var newCities []*entity.City
	for _, row := range rows {
		if row.Departamento == "" || row.Municipio == "" {
			continue
		}
		dep := deptMap[row.Departamento]
		key := cityKey(dep.ID, row.Municipio)
		if cityMap[key] != nil {
			continue
		}
		c := &entity.City{ID: uuid.NewString(), Name: row.Municipio, DepartamentID: dep.ID, CreatedAt: time.Now()}
		newCities = append(newCities, c)
		cityMap[key] = c
	}

	// 6. Insertar todos los municipios encolados en una sola llamada
	return repos.Cities.CreateBatch(ctx, newCities)
}

func cityKey(departamentID, name string) string {
	return departamentID + ":::" + name
}
