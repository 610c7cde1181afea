package importer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/logiandes/ms-inventario/internal/domain"
	"github.com/logiandes/ms-inventario/internal/domain/entity"
	"github.com/logiandes/ms-inventario/pkg/csvtext"
	"github.com/logiandes/ms-inventario/pkg/logger"
)

// Options parámetros de la importación masiva.
type Options struct {
	GroupSize       int    // filas por grupo secuencial
	MaxGroups       int    // grupos concurrentes máximos
	ManagerRole     string // rol para gerentes aprovisionados
	DefaultPassword string // contraseña temporal para usuarios nuevos
}

// errRowSkipped señal interna: la fila se descarta y el scope hace rollback,
// pero no es un fallo del proceso (p. ej. el almacén ya existía).
var errRowSkipped = errors.New("fila omitida")

// fallbackCellPhone se usa cuando el teléfono del CSV no es numérico.
const fallbackCellPhone = int64(3145919465)

// StoreImportUseCase importa el archivo de tiendas: una transacción por fila,
// idempotencia por código de almacén y aprovisionamiento del gerente en
// ms-security cuando el email no existe todavía.
type StoreImportUseCase struct {
	tx    TxRunner
	users UserClient
	roles RoleClient
	opts  Options
	log   *logger.Logger
}

// NewStoreImportUseCase construye el caso de uso de importación de tiendas.
func NewStoreImportUseCase(tx TxRunner, users UserClient, roles RoleClient, opts Options, log *logger.Logger) *StoreImportUseCase {
	return &StoreImportUseCase{tx: tx, users: users, roles: roles, opts: opts, log: log}
}

// ImportStores procesa el CSV de tiendas (delimitado por ';', con BOM) y
// devuelve los totales. Un fallo en una fila nunca aborta a sus hermanas: se
// registra, cuenta como omitida y el recorrido continúa.
func (uc *StoreImportUseCase) ImportStores(ctx context.Context, data []byte, token string) (Summary, error) {
	records, err := csvtext.Parse(data, csvtext.Options{Delimiter: ';', StripBOM: true})
	if err != nil {
		return Summary{}, fmt.Errorf("parsear CSV de tiendas: %w", err)
	}

	rows := make([]StoreRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, storeRowFrom(rec))
	}
	uc.log.Info().Int("filas", len(rows)).Msg("iniciando importación de tiendas")

	summary := runInGroups(uc.log, len(rows), uc.opts.GroupSize, uc.opts.MaxGroups, func(groupNumber, start, end int) Summary {
		var s Summary
		for i := start; i < end; i++ {
			if uc.importStoreRow(ctx, rows[i], token, groupNumber, i-start+1) {
				s.Created++
			} else {
				s.Skipped++
			}
		}
		uc.log.Info().Int("grupo", groupNumber).Int("creados", s.Created).Int("omitidos", s.Skipped).
			Msg("grupo de tiendas completado")
		return s
	})

	uc.log.Info().Int("creados", summary.Created).Int("omitidos", summary.Skipped).
		Msg("importación de tiendas finalizada")
	return summary, nil
}

// importStoreRow aplica la unidad de trabajo de una fila. Devuelve true solo si
// la tienda quedó creada y confirmada; cualquier otro desenlace cuenta como
// omitida. Si la validación falla no se abre scope transaccional.
func (uc *StoreImportUseCase) importStoreRow(ctx context.Context, row StoreRow, token string, groupNumber, rowInGroup int) bool {
	if missing := row.MissingFields(); len(missing) > 0 {
		uc.log.Warn().Int("grupo", groupNumber).Int("fila", rowInGroup).
			Str("id_almacen", row.Code).Strs("faltantes", missing).
			Msg("tienda: faltan campos requeridos, se omite la fila")
		return false
	}

	err := uc.tx.Run(ctx, func(repos *TxRepos) error {
		// Idempotencia por código: reimportar el mismo archivo no duplica tiendas.
		already, err := repos.Stores.GetByCode(ctx, row.Code)
		if err != nil {
			return err
		}
		if already != nil {
			uc.log.Warn().Int("grupo", groupNumber).Int("fila", rowInGroup).
				Str("id_almacen", row.Code).Msg("tienda: ya existe un almacén con este código, se omite")
			return errRowSkipped
		}

		city, err := resolveCity(ctx, repos, row.Departament, row.City)
		if err != nil {
			return err
		}

		userID, err := uc.resolveManager(ctx, row, token)
		if err != nil {
			return err
		}

		longitude, err := strconv.ParseFloat(row.Longitude, 64)
		if err != nil {
			return fmt.Errorf("longitud inválida %q: %w", row.Longitude, err)
		}
		latitude, err := strconv.ParseFloat(row.Latitude, 64)
		if err != nil {
			return fmt.Errorf("latitud inválida %q: %w", row.Latitude, err)
		}
		capacity, err := strconv.Atoi(row.Capacity)
		if err != nil || capacity <= 0 {
			return fmt.Errorf("capacidad inválida %q", row.Capacity)
		}

		return repos.Stores.Create(ctx, &entity.Store{
			ID:         uuid.NewString(),
			Code:       row.Code,
			Name:       row.Name,
			Address:    row.Address,
			PostalCode: row.PostalCode,
			Longitude:  longitude,
			Latitude:   latitude,
			Capacity:   capacity,
			State:      row.State,
			CityID:     city.ID,
			UserID:     userID,
			CreatedAt:  time.Now(),
		})
	})

	switch {
	case err == nil:
		return true
	case errors.Is(err, errRowSkipped):
		return false
	default:
		uc.log.Error().Int("grupo", groupNumber).Int("fila", rowInGroup).
			Str("id_almacen", row.Code).Err(err).Msg("tienda: error procesando la fila, se omite")
		return false
	}
}

// resolveManager busca la identidad del gerente por email y, si no existe, la
// aprovisiona: asegura el rol, crea el usuario con contraseña temporal y
// documento aleatorio, y re-consulta por email para obtener el id canónico.
// Un fallo creando el usuario no se traga: propaga y la fila hace rollback.
func (uc *StoreImportUseCase) resolveManager(ctx context.Context, row StoreRow, token string) (string, error) {
	user, err := uc.users.FindByEmail(ctx, row.Email, token)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	uc.log.Warn().Str("email", row.Email).Msg("tienda: gerente no encontrado en ms-security, creando usuario")

	roleID, err := uc.roles.EnsureRole(ctx, uc.opts.ManagerRole, token)
	if err != nil {
		return "", fmt.Errorf("asegurar rol %q: %w", uc.opts.ManagerRole, err)
	}

	first, rest, _ := strings.Cut(row.Manager, " ")
	cellPhone, err := strconv.ParseInt(row.Phone, 10, 64)
	if err != nil {
		cellPhone = fallbackCellPhone
	}

	created, err := uc.users.CreateWithRole(ctx, roleID, CreateUserRequest{
		Name:      first,
		LastName:  rest,
		Gender:    "Masculino",
		Email:     row.Email,
		Password:  uc.opts.DefaultPassword,
		CellPhone: cellPhone,
		Landline:  0,
		IDType:    "CC",
		IDNumber:  randomIDNumber(),
	}, token)
	if err != nil {
		return "", fmt.Errorf("crear usuario %q: %w", row.Email, err)
	}

	canonical, err := uc.users.FindByEmail(ctx, created.Email, token)
	if err != nil {
		return "", fmt.Errorf("releer usuario creado %q: %w", created.Email, err)
	}
	return canonical.ID, nil
}

// randomIDNumber genera un número de documento provisional de 10 dígitos.
func randomIDNumber() string {
	return strconv.FormatInt(1_000_000_000+rand.Int63n(9_000_000_000), 10)
}
