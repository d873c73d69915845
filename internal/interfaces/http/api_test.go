package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T, loginLimit int) *apiClient {
	t.Helper()
	s := memory.NewStore()
	authUC := auth.NewAuthUseCase(s.Accounts(), auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "backoffice-test"}, 4)
	app := apphttp.NewApp(apphttp.AppConfig{Name: "backoffice-test", Logger: logger.Nop()}, apphttp.RouterDeps{
		AuthUC:          authUC,
		AccountUC:       usecase.NewAccountUseCase(s.Accounts(), 4),
		ClientUC:        usecase.NewClientUseCase(s.Clients(), s.Accounts()),
		ProductUC:       usecase.NewProductUseCase(s.TxRunner(), s.Products(), s.Accounts()),
		SaleUC:          usecase.NewSaleUseCase(s.TxRunner(), s.Sales(), s.Clients(), s.Accounts()),
		ReceiptUC:       usecase.NewReceiptUseCase(s.Sales(), s.Clients(), s.Products(), s.Accounts(), pdf.NewMarotoReceiptGenerator()),
		LoginRateLimit:  loginLimit,
		LoginRateWindow: time.Minute,
	})
	return &apiClient{t: t, app: app}
}

// do envía la petición y decodifica el cuerpo JSON (si lo hay) en un map genérico.
func (a *apiClient) do(method, path, token string, body any) (int, map[string]any) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(a.t, json.Unmarshal(raw, &out))
	}
	if len(raw) > 0 && raw[0] == '[' {
		var list []any
		require.NoError(a.t, json.Unmarshal(raw, &list))
		out["items"] = list
	}
	return resp.StatusCode, out
}

func (a *apiClient) signup(name, email, cnpj string) (id, token string) {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/users", "", map[string]any{
		"fantasy_name": name, "email": email, "password": "123456", "cnpj": cnpj,
	})
	require.Equal(a.t, http.StatusCreated, status, body)
	id, _ = body["id"].(string)
	require.NotEmpty(a.t, id)

	status, body = a.do(http.MethodPost, "/login", "", map[string]any{"email": email, "password": "123456"})
	require.Equal(a.t, http.StatusOK, status, body)
	token, _ = body["token"].(string)
	require.NotEmpty(a.t, token)
	return id, token
}

func TestEndToEnd_JoanaRegistraYBorraCliente(t *testing.T) {
	api := newAPI(t, 0)
	ownerID, token := api.signup("Joana", "joana@mail.com", "13043000000100")

	status, body := api.do(http.MethodPost, "/clients", token, map[string]any{
		"name": "Jonas", "document": "11122233345", "email": "jonas@mail.com", "number": "00912345678", "user": ownerID,
	})
	require.Equal(t, http.StatusCreated, status, body)
	clientID := body["id"].(string)
	assert.Equal(t, ownerID, body["user"])

	status, body = api.do(http.MethodGet, "/clients", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["clients"], 1)
	assert.NotEmpty(t, body["id"], "el listado lleva el id de la petición")

	status, _ = api.do(http.MethodDelete, "/clients/"+clientID, token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = api.do(http.MethodGet, "/clients", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["clients"], 0)
}

func TestRegister_RespuestaYConflictos(t *testing.T) {
	api := newAPI(t, 0)
	payload := map[string]any{"fantasy_name": "Joana", "email": "joana@mail.com", "password": "123456", "cnpj": "13043000000100"}

	status, body := api.do(http.MethodPost, "/users", "", payload)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["isActive"])
	assert.NotEqual(t, "123456", body["password"], "nunca el texto plano")

	status, body = api.do(http.MethodPost, "/users", "", payload)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", body["code"])

	status, body = api.do(http.MethodPost, "/users", "", map[string]any{"email": "x@mail.com"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["message"])
}

func TestLogin_PasswordIncorrectoEs403(t *testing.T) {
	api := newAPI(t, 0)
	api.signup("Joana", "joana@mail.com", "13043000000100")

	status, body := api.do(http.MethodPost, "/login", "", map[string]any{"email": "joana@mail.com", "password": "errada"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Nil(t, body["token"])

	status, _ = api.do(http.MethodPost, "/login", "", map[string]any{"email": "nadie@mail.com", "password": "123456"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestLogin_RateLimit(t *testing.T) {
	api := newAPI(t, 2)
	creds := map[string]any{"email": "nadie@mail.com", "password": "123456"}

	for i := 0; i < 2; i++ {
		status, _ := api.do(http.MethodPost, "/login", "", creds)
		assert.Equal(t, http.StatusForbidden, status)
	}
	status, body := api.do(http.MethodPost, "/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMITED", body["code"])
}

func TestUsers_ListaSoloPropiaYActualiza(t *testing.T) {
	api := newAPI(t, 0)
	joanaID, joana := api.signup("Joana", "joana@mail.com", "13043000000100")
	jonasID, _ := api.signup("Jonas", "jonas@mail.com", "13043000000200")

	status, body := api.do(http.MethodGet, "/users", joana, nil)
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, joanaID, items[0].(map[string]any)["id"])
	assert.Nil(t, items[0].(map[string]any)["password"])

	status, _ = api.do(http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = api.do(http.MethodPatch, "/users/"+joanaID, joana, map[string]any{"fantasy_name": "Joana Doces"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Joana Doces", body["fantasy_name"])

	status, _ = api.do(http.MethodPatch, "/users/"+jonasID, joana, map[string]any{"fantasy_name": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodPatch, "/users/"+joanaID, joana, map[string]any{"isActive": false})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.do(http.MethodPatch, "/users/"+joanaID, joana, map[string]any{"email": "jonas@mail.com"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = api.do(http.MethodPatch, "/users/no-es-uuid", joana, map[string]any{"fantasy_name": "x"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUsers_DobleBajaLogica(t *testing.T) {
	api := newAPI(t, 0)
	joanaID, joana := api.signup("Joana", "joana@mail.com", "13043000000100")
	jonasID, _ := api.signup("Jonas", "jonas@mail.com", "13043000000200")

	status, _ := api.do(http.MethodDelete, "/users/xyz", joana, nil)
	assert.Equal(t, http.StatusBadRequest, status, "id mal formado")

	status, _ = api.do(http.MethodDelete, "/users/"+jonasID, joana, nil)
	assert.Equal(t, http.StatusForbidden, status, "cuenta ajena")

	status, _ = api.do(http.MethodDelete, "/users/"+joanaID, joana, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, body := api.do(http.MethodDelete, "/users/"+joanaID, joana, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ALREADY_DEACTIVATED", body["code"])

	// La cuenta desactivada no entra por el gate normal ni puede hacer login.
	status, _ = api.do(http.MethodGet, "/users", joana, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = api.do(http.MethodPost, "/login", "", map[string]any{"email": "joana@mail.com", "password": "123456"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestClients_PropiedadYDuplicados(t *testing.T) {
	api := newAPI(t, 0)
	_, joana := api.signup("Joana", "joana@mail.com", "13043000000100")
	jonasID, jonas := api.signup("Jonas", "jonas@mail.com", "13043000000200")

	status, body := api.do(http.MethodPost, "/clients", joana, map[string]any{"name": "Maria", "document": "1"})
	require.Equal(t, http.StatusCreated, status)
	clientID := body["id"].(string)

	status, body = api.do(http.MethodPost, "/clients", jonas, map[string]any{"name": "Maria", "document": "2"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", body["code"])

	status, _ = api.do(http.MethodPost, "/clients", joana, map[string]any{"name": "Pedro", "document": "3", "user": jonasID})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.do(http.MethodPost, "/clients", joana, map[string]any{"name": "Pedro", "document": "3", "user": "00000000-0000-0000-0000-000000000000"})
	assert.Equal(t, http.StatusNotFound, status)

	// Actualización ajena: no 2xx y estado intacto.
	status, _ = api.do(http.MethodPatch, "/clients/"+clientID, jonas, map[string]any{"name": "Hackeado"})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = api.do(http.MethodPatch, "/clients/"+clientID, joana, map[string]any{"user": jonasID})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = api.do(http.MethodGet, "/clients/"+clientID, jonas, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Maria", body["name"])

	for _, id := range []string{"no-es-uuid", "00000000-0000-0000-0000-000000000000"} {
		status, _ = api.do(http.MethodGet, "/clients/"+id, joana, nil)
		assert.Equal(t, http.StatusNotFound, status, id)
		status, _ = api.do(http.MethodDelete, "/clients/"+id, joana, nil)
		assert.Equal(t, http.StatusNotFound, status, id)
	}

	status, _ = api.do(http.MethodGet, "/clients/"+clientID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = api.do(http.MethodDelete, "/clients/"+clientID, jonas, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestProducts_PropiedadYDuplicados(t *testing.T) {
	api := newAPI(t, 0)
	_, joana := api.signup("Joana", "joana@mail.com", "13043000000100")
	jonasID, jonas := api.signup("Jonas", "jonas@mail.com", "13043000000200")

	status, body := api.do(http.MethodPost, "/products", joana, map[string]any{"name": "Bolo", "value": "10", "stock": 5})
	require.Equal(t, http.StatusCreated, status, body)
	productID := body["id"].(string)
	status, body = api.do(http.MethodPost, "/products", joana, map[string]any{"name": "Torta", "value": "30", "stock": 1})
	require.Equal(t, http.StatusCreated, status, body)
	otherID := body["id"].(string)

	status, body = api.do(http.MethodPost, "/products", jonas, map[string]any{"name": "Bolo", "value": "1"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", body["code"])

	// Renombrar al nombre de otro producto: 409 y ambos quedan intactos.
	status, body = api.do(http.MethodPatch, "/products/"+otherID, joana, map[string]any{"name": "Bolo", "value": "99"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", body["code"])
	for id, want := range map[string][2]string{productID: {"Bolo", "10"}, otherID: {"Torta", "30"}} {
		status, body = api.do(http.MethodGet, "/products/"+id, joana, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, want[0], body["name"])
		assert.Equal(t, want[1], body["value"])
	}

	status, body = api.do(http.MethodPost, "/products", joana, map[string]any{"name": "Pão", "value": "10.005"})
	assert.Equal(t, http.StatusBadRequest, status, "más de dos decimales")
	assert.Equal(t, "VALIDATION", body["code"])
	status, _ = api.do(http.MethodPost, "/products", joana, map[string]any{"name": "Pão", "value": "1", "stock": "2147483648"})
	assert.Equal(t, http.StatusBadRequest, status, "stock fuera de INTEGER")

	status, _ = api.do(http.MethodPatch, "/products/"+productID, jonas, map[string]any{"name": "Hackeado"})
	assert.Equal(t, http.StatusForbidden, status)
	status, body = api.do(http.MethodPatch, "/products/"+productID, joana, map[string]any{"user": jonasID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "OWNERSHIP_TAMPER", body["code"])

	status, _ = api.do(http.MethodPatch, "/products/"+productID, "", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = api.do(http.MethodDelete, "/products/"+productID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	for _, id := range []string{"no-es-uuid", "00000000-0000-0000-0000-000000000000"} {
		status, _ = api.do(http.MethodGet, "/products/"+id, joana, nil)
		assert.Equal(t, http.StatusNotFound, status, id)
		status, _ = api.do(http.MethodPatch, "/products/"+id, joana, map[string]any{"name": "x"})
		assert.Equal(t, http.StatusNotFound, status, id)
		status, _ = api.do(http.MethodDelete, "/products/"+id, joana, nil)
		assert.Equal(t, http.StatusNotFound, status, id)
	}

	status, _ = api.do(http.MethodDelete, "/products/"+productID, jonas, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = api.do(http.MethodDelete, "/products/"+productID, joana, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestProductsAndSales_Stock(t *testing.T) {
	api := newAPI(t, 0)
	_, joana := api.signup("Joana", "joana@mail.com", "13043000000100")
	_, jonas := api.signup("Jonas", "jonas@mail.com", "13043000000200")

	status, body := api.do(http.MethodPost, "/products", joana, map[string]any{"name": "Bolo", "value": "10", "stock": "5"})
	require.Equal(t, http.StatusCreated, status, body)
	productID := body["id"].(string)
	assert.Equal(t, float64(5), body["stock"])

	status, _ = api.do(http.MethodPatch, "/products/"+productID, joana, map[string]any{"stock": -1})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = api.do(http.MethodPost, "/clients", joana, map[string]any{"name": "Maria", "document": "1"})
	require.Equal(t, http.StatusCreated, status)
	clientID := body["id"].(string)

	status, body = api.do(http.MethodPost, "/sales", joana, map[string]any{"client": clientID, "product": productID, "amount": 2})
	require.Equal(t, http.StatusCreated, status, body)
	saleID := body["id"].(string)
	assert.Equal(t, "20", body["total"])

	status, body = api.do(http.MethodPost, "/sales", joana, map[string]any{"client": clientID, "product": productID, "amount": 10})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	status, _ = api.do(http.MethodPost, "/sales", jonas, map[string]any{"client": clientID, "product": productID, "amount": 1})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.do(http.MethodDelete, "/products/"+productID, joana, nil)
	assert.Equal(t, http.StatusConflict, status, "producto referenciado por una venta")

	status, body = api.do(http.MethodGet, "/products/"+productID, joana, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), body["stock"])

	status, body = api.do(http.MethodGet, "/sales", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["sales"], 1)

	status, _ = api.do(http.MethodGet, "/sales/"+saleID+"/receipt", jonas, nil)
	assert.Equal(t, http.StatusForbidden, status, "el comprobante es del vendedor")
	assertReceipt(t, api, "/sales/"+saleID+"/receipt", joana)

	status, _ = api.do(http.MethodDelete, "/sales/"+saleID, joana, nil)
	require.Equal(t, http.StatusNoContent, status)
	_, body = api.do(http.MethodGet, "/products/"+productID, joana, nil)
	assert.Equal(t, float64(5), body["stock"])
}

func TestHealth(t *testing.T) {
	api := newAPI(t, 0)
	status, body := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func assertReceipt(t *testing.T, api *apiClient, path, token string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}
