package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/figures-ledger/internal/application/analytics"
	"github.com/jhoicas/figures-ledger/internal/application/catalog"
	"github.com/jhoicas/figures-ledger/internal/application/dto"
	appledger "github.com/jhoicas/figures-ledger/internal/application/ledger"
	"github.com/jhoicas/figures-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/figures-ledger/internal/infrastructure/storage"
	apihttp "github.com/jhoicas/figures-ledger/internal/interfaces/http"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Fixture: app Fiber completa sobre el adaptador en memoria
// ─────────────────────────────────────────────

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)
	figRepo := memory.NewFigureRepository(store)
	movRepo := memory.NewMovementRepository(store)
	analyticsRepo := memory.NewAnalyticsRepository(store)

	aggregator := appledger.NewAggregatorUseCase(figRepo, movRepo)
	recorder := appledger.NewRecordMovementUseCase(txRunner)
	figureUC := catalog.NewFigureUseCase(txRunner, figRepo, aggregator, recorder)
	queryUC := catalog.NewQueryUseCase(figRepo, aggregator)
	summaryUC := analytics.NewSummaryUseCase(analyticsRepo)

	imageStore, err := storage.NewLocalImageStore(t.TempDir(), "/static")
	require.NoError(t, err)

	app := fiber.New()
	apihttp.Router(app, apihttp.RouterDeps{
		FigureUC:    figureUC,
		QueryUC:     queryUC,
		Recorder:    recorder,
		Aggregator:  aggregator,
		AnalyticsUC: summaryUC,
		ImageStore:  imageStore,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *nethttp.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createFigure(t *testing.T, app *fiber.App, manufacturer, character string, qty int64) dto.FigureResponse {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/figures", dto.CreateFigureRequest{
		Manufacturer:    manufacturer,
		Brand:           "Nendoroid",
		Character:       character,
		ModelName:       character + " v1",
		CostPrice:       decimal.RequireFromString("25.00"),
		InitialQuantity: qty,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.FigureResponse](t, resp)
}

func outBody(figureID string, qty int64, price string) dto.RecordMovementRequest {
	p := decimal.RequireFromString(price)
	return dto.RecordMovementRequest{FigureID: figureID, Kind: "OUT", Quantity: qty, SalePrice: &p}
}

// ─────────────────────────────────────────────
// Ciclo alta → venta → rechazo → reposición
// ─────────────────────────────────────────────

func TestAPI_CicloCompleto(t *testing.T) {
	app := newTestApp(t)

	fig := createFigure(t, app, "Good Smile", "Miku", 5)
	assert.NotEmpty(t, fig.ID)
	assert.EqualValues(t, 5, fig.Quantity)
	assert.True(t, fig.TotalSales.IsZero())

	// Venta de 2 unidades a 15.00
	resp := doJSON(t, app, "POST", "/api/movements", outBody(fig.ID, 2, "15.00"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	agg := decode[dto.AggregateResponse](t, resp)
	assert.EqualValues(t, 3, agg.Quantity)
	assert.True(t, agg.TotalSales.Equal(decimal.RequireFromString("30.00")))

	// Salida mayor al stock: 409 y el agregado no cambia
	resp = doJSON(t, app, "POST", "/api/movements", outBody(fig.ID, 10, "15.00"))
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)

	resp = doJSON(t, app, "GET", "/api/figures/"+fig.ID+"/aggregate", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	agg = decode[dto.AggregateResponse](t, resp)
	assert.EqualValues(t, 3, agg.Quantity)

	// Reposición de 4
	resp = doJSON(t, app, "POST", "/api/movements", dto.RecordMovementRequest{
		FigureID: fig.ID, Kind: "IN", Quantity: 4,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	agg = decode[dto.AggregateResponse](t, resp)
	assert.EqualValues(t, 7, agg.Quantity)
	assert.True(t, agg.TotalSales.Equal(decimal.RequireFromString("30.00")))

	// Detalle de ventas: solo la salida admitida
	resp = doJSON(t, app, "GET", "/api/figures/"+fig.ID+"/sales", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	sales := decode[dto.SalesHistoryResponse](t, resp)
	require.Equal(t, 1, sales.Total)
	assert.EqualValues(t, 2, sales.Items[0].Quantity)
	assert.True(t, sales.Items[0].LineTotal.Equal(decimal.RequireFromString("30.00")))
}

func TestAPI_Validacion(t *testing.T) {
	app := newTestApp(t)

	// Falta manufacturer
	resp := doJSON(t, app, "POST", "/api/figures", dto.CreateFigureRequest{
		Brand:           "Nendoroid",
		Character:       "Miku",
		ModelName:       "Miku v1",
		InitialQuantity: 1,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errResp.Code)

	// JSON malformado
	req := httptest.NewRequest("POST", "/api/figures", bytes.NewReader([]byte("{no es json")))
	req.Header.Set("Content-Type", "application/json")
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, raw.StatusCode)

	// kind desconocido
	resp = doJSON(t, app, "POST", "/api/movements", dto.RecordMovementRequest{
		FigureID: "x", Kind: "TRANSFER", Quantity: 1,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAPI_MovimientoFiguraInexistente(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/movements", outBody("no-existe", 1, "10.00"))
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

// ─────────────────────────────────────────────
// Listado, filtros y facetas
// ─────────────────────────────────────────────

func TestAPI_ListarYFiltrar(t *testing.T) {
	app := newTestApp(t)

	createFigure(t, app, "Good Smile", "Miku", 3)
	createFigure(t, app, "Kotobukiya", "Asuka", 2)

	resp := doJSON(t, app, "GET", "/api/figures", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[dto.FigureListResponse](t, resp)
	assert.Equal(t, 2, list.Total)

	resp = doJSON(t, app, "GET", "/api/figures?manufacturer=Kotobukiya", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list = decode[dto.FigureListResponse](t, resp)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Asuka", list.Items[0].Character)

	// Valor ausente: lista vacía, nunca error
	resp = doJSON(t, app, "GET", "/api/figures?manufacturer=Bandai", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list = decode[dto.FigureListResponse](t, resp)
	assert.Equal(t, 0, list.Total)
}

func TestAPI_Facetas(t *testing.T) {
	app := newTestApp(t)

	createFigure(t, app, "Good Smile", "Miku", 1)
	createFigure(t, app, "Kotobukiya", "Asuka", 1)

	resp := doJSON(t, app, "GET", "/api/filters", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	filters := decode[dto.FiltersResponse](t, resp)
	assert.Equal(t, []string{"Good Smile", "Kotobukiya"}, filters.Manufacturer)
	assert.Equal(t, []string{"Nendoroid"}, filters.Brand)

	resp = doJSON(t, app, "GET", "/api/filters/character", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	values := decode[[]string](t, resp)
	assert.Equal(t, []string{"Asuka", "Miku"}, values)

	// Atributo no facetable
	resp = doJSON(t, app, "GET", "/api/filters/cost_price", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errResp.Code)
}

// ─────────────────────────────────────────────
// Edición y borrado
// ─────────────────────────────────────────────

func TestAPI_EditarYEliminar(t *testing.T) {
	app := newTestApp(t)

	fig := createFigure(t, app, "Good Smile", "Miku", 5)

	newBrand := "figma"
	resp := doJSON(t, app, "PUT", "/api/figures/"+fig.ID, dto.UpdateFigureRequest{Brand: &newBrand})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decode[dto.FigureResponse](t, resp)
	assert.Equal(t, "figma", updated.Brand)
	assert.EqualValues(t, 5, updated.Quantity)

	// Ajuste de stock vía objetivo de cantidad (movimiento compensatorio)
	target := int64(2)
	resp = doJSON(t, app, "PUT", "/api/figures/"+fig.ID, dto.UpdateFigureRequest{Quantity: &target})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated = decode[dto.FigureResponse](t, resp)
	assert.EqualValues(t, 2, updated.Quantity)
	assert.True(t, updated.TotalSales.IsZero(), "el ajuste a la baja no genera ventas")

	resp = doJSON(t, app, "DELETE", "/api/figures/"+fig.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/figures/"+fig.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", "/api/figures/"+fig.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ─────────────────────────────────────────────
// Subida multipart y analytics
// ─────────────────────────────────────────────

func TestAPI_SubidaConImagen(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"manufacturer":     "Good Smile",
		"brand":            "Nendoroid",
		"character":        "Miku",
		"model_name":       "Miku v2",
		"cost_price":       "30.00",
		"initial_quantity": "4",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("image", "miku.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/figures/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	fig := decode[dto.FigureResponse](t, resp)
	assert.EqualValues(t, 4, fig.Quantity)
	assert.Regexp(t, `^/static/[0-9a-f-]+\.png$`, fig.ImageURL)
}

func TestAPI_ResumenAnalytics(t *testing.T) {
	app := newTestApp(t)

	fig := createFigure(t, app, "Good Smile", "Miku", 5)
	resp := doJSON(t, app, "POST", "/api/movements", outBody(fig.ID, 2, "15.00"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/analytics/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	summary := decode[dto.CollectionSummaryDTO](t, resp)
	assert.EqualValues(t, 1, summary.FigureCount)
	assert.EqualValues(t, 3, summary.UnitsInStock)
	// 3 × 25.00
	assert.True(t, summary.InventoryCostValue.Equal(decimal.RequireFromString("75.00")))
	assert.True(t, summary.TotalSales.Equal(decimal.RequireFromString("30.00")))
}
