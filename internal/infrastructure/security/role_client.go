package security

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/logiandes/ms-inventario/internal/application/importer"
	"github.com/logiandes/ms-inventario/internal/domain"
)

// Verificar en tiempo de compilación que RoleClient implementa el puerto.
var _ importer.RoleClient = (*RoleClient)(nil)

// RoleClient adaptador HTTP hacia el endpoint de roles de ms-security.
type RoleClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRoleClient construye el cliente.
func NewRoleClient(baseURL string, timeout time.Duration) *RoleClient {
	return &RoleClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// roleResponse acepta tanto _id (Mongo) como id.
type roleResponse struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
	Name    string `json:"name"`
}

func (r roleResponse) roleID() string {
	if r.MongoID != "" {
		return r.MongoID
	}
	return r.ID
}

// EnsureRole busca el rol por nombre en la lista de ms-security y lo crea si
// no existe; en ambos casos devuelve el id del rol.
func (c *RoleClient) EnsureRole(ctx context.Context, name, token string) (string, error) {
	roles, err := c.listRoles(ctx, token)
	if err != nil {
		return "", err
	}
	for _, r := range roles {
		if r.Name == name {
			return r.roleID(), nil
		}
	}
	return c.createRole(ctx, name, token)
}

func (c *RoleClient) listRoles(ctx context.Context, token string) ([]roleResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/role", nil)
	if err != nil {
		return nil, fmt.Errorf("armar request: %w", err)
	}
	req.Header.Set("Authorization", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: listar roles: %v", domain.ErrSecurityCall, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: listar roles: status %d: %s", domain.ErrSecurityCall, resp.StatusCode, body)
	}

	var roles []roleResponse
	if err := json.NewDecoder(resp.Body).Decode(&roles); err != nil {
		return nil, fmt.Errorf("decodificar roles: %w", err)
	}
	return roles, nil
}

func (c *RoleClient) createRole(ctx context.Context, name, token string) (string, error) {
	payload, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return "", fmt.Errorf("serializar rol: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/role", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("armar request: %w", err)
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: crear rol: %v", domain.ErrSecurityCall, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: crear rol: status %d: %s", domain.ErrSecurityCall, resp.StatusCode, body)
	}

	var created roleResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decodificar rol creado: %w", err)
	}
	if created.roleID() == "" {
		return "", fmt.Errorf("%w: crear rol: respuesta sin id", domain.ErrSecurityCall)
	}
	return created.roleID(), nil
}
