package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

const testAccountID = "00000000-0000-0000-0000-000000000001"

// fakeAuthenticator resuelve tokens fijos: "active", "deactivated", "boom"; el resto es inválido.
type fakeAuthenticator struct{}

func (fakeAuthenticator) Authenticate(_ context.Context, token string) (entity.Identity, error) {
	switch token {
	case "active":
		return entity.Identity{AccountID: testAccountID, Status: entity.AccountActive}, nil
	case "deactivated":
		return entity.Identity{AccountID: testAccountID, Status: entity.AccountDeactivated}, nil
	case "boom":
		return entity.Identity{}, errors.New("db caída")
	default:
		return entity.Identity{}, domain.ErrUnauthorized
	}
}

func buildGateApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"account_id": apphttp.GetIdentity(c).AccountID})
	}
	app.Get("/active", apphttp.AuthMiddleware(fakeAuthenticator{}), ok)
	app.Get("/any", apphttp.AuthMiddlewareAnyStatus(fakeAuthenticator{}), ok)
	return app
}

func doGate(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_CargaIdentidad(t *testing.T) {
	resp := doGate(t, buildGateApp(), "/active", "Bearer active")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testAccountID, body["account_id"])
}

func TestAuthMiddleware_Rechazos401(t *testing.T) {
	app := buildGateApp()
	for _, header := range []string{"", "active", "Basic active", "Bearer ", "Bearer token.invalido.aqui", "Bearer deactivated"} {
		resp := doGate(t, app, "/active", header)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		assert.Contains(t, string(body), "token inválido o expirado", "mensaje genérico para %q", header)
	}
}

func TestAuthMiddlewareAnyStatus_AdmiteDesactivada(t *testing.T) {
	app := buildGateApp()

	resp := doGate(t, app, "/any", "Bearer deactivated")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doGate(t, app, "/any", "Bearer otro")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ErrorInternoEs500(t *testing.T) {
	resp := doGate(t, buildGateApp(), "/active", "Bearer boom")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "db caída", "la causa no se expone al cliente")
}
