package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhortiz/bodega-scan-api/internal/application/dto"
	"github.com/jhortiz/bodega-scan-api/internal/domain"
	"github.com/jhortiz/bodega-scan-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Política de mapeo de errores hacia HTTP:
//   - consultas de validación → 400
//   - operaciones mutadoras   → 422 con errores por campo
//   - contención concurrente  → 409 (reintentable por el cliente)
//   - errores desconocidos    → 500 genérico, detalle solo en el log
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// appWith monta una ruta que responde el error dado con el mapeador indicado.
func appWith(err error, respond func(*fiber.Ctx, *logger.Logger, error) error) *fiber.App {
	app := fiber.New()
	log := testLogger()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respond(c, log, err)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	var body dto.ErrorResponse
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	_ = json.Unmarshal(raw, &body)
	return resp, body
}

func TestRespondOperationError_ErroresDeDominio_422ConCampo(t *testing.T) {
	cases := []struct {
		err   error
		code  string
		field string
	}{
		{domain.ErrAlreadyBoundElsewhere, "ALREADY_BOUND_ELSEWHERE", "box_code"},
		{domain.ErrNotInStock, "NOT_IN_STOCK", "box_code"},
		{domain.ErrNotInProcessingArea, "NOT_IN_PROCESSING_AREA", "box_code"},
		{domain.ErrCapacityExceeded, "CAPACITY_EXCEEDED", "slot_code"},
		{domain.ErrAmbiguousContainerCode, "AMBIGUOUS_CONTAINER_CODE", "box_code"},
		{domain.ErrItemNotFound, "ITEM_NOT_FOUND", "item_code"},
	}
	for _, tc := range cases {
		resp, body := doGet(t, appWith(tc.err, respondOperationError))
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, tc.code)
		assert.Equal(t, tc.code, body.Code)
		require.Contains(t, body.Fields, tc.field,
			"%s debe señalar el campo %s", tc.code, tc.field)
	}
}

func TestRespondOperationError_ConflictoDeConcurrencia_409(t *testing.T) {
	resp, body := doGet(t, appWith(domain.ErrConcurrencyConflict, respondOperationError))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode,
		"la contención de bloqueo se reporta como 409 para que el cliente reintente")
	assert.Equal(t, "CONCURRENCY_CONFLICT", body.Code)
}

func TestRespondOperationError_ErrorDesconocido_500Generico(t *testing.T) {
	resp, body := doGet(t, appWith(errors.New("pq: disco lleno"), respondOperationError))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "disco",
		"el detalle interno nunca viaja al cliente")
}

func TestRespondLookupError_ErroresDeDominio_400(t *testing.T) {
	for _, err := range []error{
		domain.ErrSlotNotFound,
		domain.ErrContainerNotFound,
		domain.ErrInvalidInput,
	} {
		resp, body := doGet(t, appWith(err, respondLookupError))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.NotEmpty(t, body.Code)
	}
}

func TestRespondLookupError_ErrorDesconocido_500(t *testing.T) {
	resp, body := doGet(t, appWith(errors.New("timeout"), respondLookupError))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body.Code)
}
