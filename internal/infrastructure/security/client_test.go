package security_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiandes/ms-inventario/internal/application/importer"
	"github.com/logiandes/ms-inventario/internal/domain"
	"github.com/logiandes/ms-inventario/internal/infrastructure/security"
)

const testToken = "Bearer un-token-de-prueba"

func TestUserClient_FindByEmail_Existente(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user/email/laura@logiandes.com", r.URL.Path)
		assert.Equal(t, testToken, r.Header.Get("Authorization"),
			"el header Authorization se reenvía tal cual")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id": "abc123", "email": "laura@logiandes.com", "role": "Manager",
		})
	}))
	defer srv.Close()

	client := security.NewUserClient(srv.URL, 5*time.Second)
	user, err := client.FindByEmail(context.Background(), "laura@logiandes.com", testToken)
	require.NoError(t, err)
	assert.Equal(t, "abc123", user.ID)
	assert.Equal(t, "laura@logiandes.com", user.Email)
	assert.Equal(t, "Manager", user.Role)
}

func TestUserClient_FindByEmail_NoExiste(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := security.NewUserClient(srv.URL, 5*time.Second)
	_, err := client.FindByEmail(context.Background(), "nadie@logiandes.com", testToken)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserClient_FindByEmail_ErrorDelServicio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := security.NewUserClient(srv.URL, 5*time.Second)
	_, err := client.FindByEmail(context.Background(), "laura@logiandes.com", testToken)
	assert.ErrorIs(t, err, domain.ErrSecurityCall)
}

func TestUserClient_CreateWithRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user/role-1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Laura", body["name"])
		assert.Equal(t, "Gómez", body["lastName"])
		assert.Equal(t, "laura@logiandes.com", body["email"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "usuario creado",
			"user":    map[string]string{"_id": "nuevo123", "email": "laura@logiandes.com", "role": "Manager"},
		})
	}))
	defer srv.Close()

	client := security.NewUserClient(srv.URL, 5*time.Second)
	user, err := client.CreateWithRole(context.Background(), "role-1", importer.CreateUserRequest{
		Name:     "Laura",
		LastName: "Gómez",
		Email:    "laura@logiandes.com",
		Password: "DefaultP@ss123",
	}, testToken)
	require.NoError(t, err)
	assert.Equal(t, "nuevo123", user.ID)
}

func TestRoleClient_EnsureRole_YaExiste(t *testing.T) {
	var posted bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			// ms-security expone los roles con _id estilo Mongo
			_ = json.NewEncoder(w).Encode([]map[string]string{
				{"_id": "r1", "name": "Admin"},
				{"_id": "r2", "name": "Manager"},
			})
		case http.MethodPost:
			posted = true
		}
	}))
	defer srv.Close()

	client := security.NewRoleClient(srv.URL, 5*time.Second)
	id, err := client.EnsureRole(context.Background(), "Manager", testToken)
	require.NoError(t, err)
	assert.Equal(t, "r2", id)
	assert.False(t, posted, "un rol existente no debe crearse de nuevo")
}

func TestRoleClient_EnsureRole_CreaCuandoFalta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode([]map[string]string{})
		case http.MethodPost:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Manager", body["name"])
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"_id": "r9", "name": "Manager"})
		}
	}))
	defer srv.Close()

	client := security.NewRoleClient(srv.URL, 5*time.Second)
	id, err := client.EnsureRole(context.Background(), "Manager", testToken)
	require.NoError(t, err)
	assert.Equal(t, "r9", id)
}

func TestRoleClient_EnsureRole_ErrorListando(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := security.NewRoleClient(srv.URL, 5*time.Second)
	_, err := client.EnsureRole(context.Background(), "Manager", testToken)
	assert.ErrorIs(t, err, domain.ErrSecurityCall)
}
