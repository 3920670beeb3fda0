package clients

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"contract-manager/core/middleware/actor"
	"contract-manager/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Use(actor.New())
	feature := NewFeature(db, reconcile.PolicyWarn, zap.NewNop())
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, a reconcile.Actor) (*http.Response, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(actor.HeaderID, a.ID)
	req.Header.Set(actor.HeaderRole, string(a.Role))

	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestHandleCreateAndGet(t *testing.T) {
	app := setupTestApp(t, setupDB(t))

	payload := map[string]any{
		"ragione_sociale": "Acme Srl",
		"partita_iva":     validTaxID,
		"iban":            validIBAN,
		"agente_id":       "agent-b",
		"referenti": []map[string]any{
			{"nome": "Anna", "cognome": "Neri"},
			{"nome": "Bruno", "cognome": "Gialli"},
		},
	}

	resp, body := doJSON(t, app, "POST", "/clients", payload, agentA)
	require.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "succeeded", body["state"])

	saved := body["cliente"].(map[string]any)
	id := saved["id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, "agent-a", saved["agente_id"])

	resp, body = doJSON(t, app, "GET", "/clients/"+id, nil, agentA)
	require.Equal(t, 200, resp.StatusCode)
	assert.Len(t, body["referenti"], 2)

	resp, _ = doJSON(t, app, "GET", "/clients/"+id, nil, agentB)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleUpdate(t *testing.T) {
	app := setupTestApp(t, setupDB(t))

	resp, body := doJSON(t, app, "POST", "/clients", map[string]any{"ragione_sociale": "Acme Srl"}, agentA)
	require.Equal(t, 201, resp.StatusCode)
	id := body["cliente"].(map[string]any)["id"].(string)

	resp, body = doJSON(t, app, "PUT", "/clients/"+id, map[string]any{
		"ragione_sociale": "Acme Group Srl",
		"referenti":       []map[string]any{{"nome": "Carla"}},
	}, agentA)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Acme Group Srl", body["cliente"].(map[string]any)["ragione_sociale"])

	resp, body = doJSON(t, app, "PUT", "/clients/"+id, map[string]any{"ragione_sociale": "Acme Group Srl"}, agentB)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "agent-b", body["cliente"].(map[string]any)["agente_id"])
	assert.NotEqual(t, "0001-01-01T00:00:00Z", body["cliente"].(map[string]any)["created_at"])

	resp, _ = doJSON(t, app, "PUT", "/clients/unknown", map[string]any{"ragione_sociale": "Ghost"}, admin)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleCreate_ValidationFailure(t *testing.T) {
	app := setupTestApp(t, setupDB(t))

	resp, body := doJSON(t, app, "POST", "/clients", map[string]any{
		"ragione_sociale": "Acme Srl",
		"partita_iva":     "12345678904",
	}, agentA)
	require.Equal(t, 422, resp.StatusCode)
	assert.Equal(t, "validation failed", body["error"])
	assert.Contains(t, body["fields"], "partita_iva")
}

func TestHandleCreate_ParentWriteFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(t, db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `clienti`")).WillReturnError(errors.New("gone away"))
	mock.ExpectRollback()

	resp, body := doJSON(t, app, "POST", "/clients", map[string]any{"ragione_sociale": "Acme Srl"}, agentA)
	assert.Equal(t, 502, resp.StatusCode)
	assert.Contains(t, body["error"], "parent write failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleCreate_PartialFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(t, db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `clienti`")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `clienti_referenti`")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `clienti_referenti`")).WillReturnError(errors.New("too many connections"))
	mock.ExpectRollback()

	resp, body := doJSON(t, app, "POST", "/clients", map[string]any{
		"ragione_sociale": "Acme Srl",
		"referenti":       []map[string]any{{"nome": "Anna"}},
	}, agentA)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, true, body["partial"])
	assert.NotEmpty(t, body["id"])
}

func TestHandleListAndSuggest(t *testing.T) {
	app := setupTestApp(t, setupDB(t))

	for _, name := range []string{"Beta Impianti", "Alfa Impianti"} {
		resp, _ := doJSON(t, app, "POST", "/clients", map[string]any{"ragione_sociale": name, "provincia": "to"}, agentA)
		require.Equal(t, 201, resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/clients?provincia=TO&ragione_sociale=alfa", nil)
	req.Header.Set(actor.HeaderID, agentA.ID)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Alfa Impianti", list[0]["ragione_sociale"])

	req = httptest.NewRequest("GET", "/clients/suggest?q=impianti&limit=10", nil)
	req.Header.Set(actor.HeaderID, agentA.ID)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var suggestions []Suggestion
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&suggestions))
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Alfa Impianti", suggestions[0].RagioneSociale)
}

func TestHandleRequiresActor(t *testing.T) {
	app := setupTestApp(t, setupDB(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/clients", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(nil, reconcile.PolicyAbort, zap.NewNop())
	assert.Equal(t, "clients", feature.Name())
	assert.False(t, feature.IsEnabled())
	assert.Equal(t, reconcile.PolicyAbort, feature.Service().Policy())
}
