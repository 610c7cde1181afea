package security

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/logiandes/ms-inventario/internal/application/importer"
	"github.com/logiandes/ms-inventario/internal/domain"
)

// Verificar en tiempo de compilación que UserClient implementa el puerto.
var _ importer.UserClient = (*UserClient)(nil)

// UserClient adaptador HTTP hacia el endpoint de usuarios de ms-security.
// El token del llamador se reenvía tal cual en el header Authorization.
type UserClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewUserClient construye el cliente. timeout limita cada llamada saliente.
func NewUserClient(baseURL string, timeout time.Duration) *UserClient {
	return &UserClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Estructuras del contrato de ms-security ───────────────────────────────────

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type createUserResponse struct {
	Message string `json:"message"`
	User    struct {
		ID    string `json:"_id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// FindByEmail consulta la identidad por email. Retorna domain.ErrUserNotFound
// cuando ms-security responde 404.
func (c *UserClient) FindByEmail(ctx context.Context, email, token string) (*importer.UserIdentity, error) {
	endpoint := fmt.Sprintf("%s/user/email/%s", c.baseURL, url.PathEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("armar request: %w", err)
	}
	req.Header.Set("Authorization", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: buscar usuario por email: %v", domain.ErrSecurityCall, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrUserNotFound
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: buscar usuario por email: status %d: %s", domain.ErrSecurityCall, resp.StatusCode, body)
	}

	var out userResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decodificar respuesta de usuario: %w", err)
	}
	if out.ID == "" {
		return nil, domain.ErrUserNotFound
	}
	return &importer.UserIdentity{ID: out.ID, Email: out.Email, Role: out.Role}, nil
}

// CreateWithRole crea un usuario bajo el rol indicado (POST {base}/user/{roleId}).
func (c *UserClient) CreateWithRole(ctx context.Context, roleID string, in importer.CreateUserRequest, token string) (*importer.UserIdentity, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("serializar usuario: %w", err)
	}

	endpoint := fmt.Sprintf("%s/user/%s", c.baseURL, url.PathEscape(roleID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("armar request: %w", err)
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: crear usuario: %v", domain.ErrSecurityCall, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: crear usuario: status %d: %s", domain.ErrSecurityCall, resp.StatusCode, body)
	}

	var out createUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decodificar usuario creado: %w", err)
	}
	return &importer.UserIdentity{ID: out.User.ID, Email: out.User.Email, Role: out.User.Role}, nil
}
