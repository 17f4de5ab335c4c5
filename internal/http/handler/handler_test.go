package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pixiu/internal/model"
	"pixiu/internal/service"
	serviceMocks "pixiu/internal/service/mocks"
	"pixiu/internal/storage"
	storeMocks "pixiu/internal/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInitSchema(t *testing.T) {
	var calls int
	var fail error
	app := fiber.New()
	app.Post("/pixiu/init", InitSchema(func(context.Context) error {
		calls++
		return fail
	}))

	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/pixiu/init", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	fail = errors.New("ddl failed")
	resp, _ = app.Test(httptest.NewRequest(http.MethodPost, "/pixiu/init", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Error.Code)
	assert.Equal(t, 2, calls)
}

func TestListFunds(t *testing.T) {
	mockSvc := new(serviceMocks.MockFundService)
	app := fiber.New()
	app.Get("/pixiu/fund", ListFunds(mockSvc))

	t.Run("success with filters", func(t *testing.T) {
		want := service.FundQuery{
			From: 0, To: 100, Page: 2, Size: 5,
			Sources: []string{"a", "b"},
			Types:   []string{"food"},
		}
		page := &model.Page[model.Fund]{
			Total:    6,
			Data:     []model.Fund{{ID: 6, Name: "lunch", Amount: -12}},
			Sum:      []model.SumInfo{{Name: "food", Value: 12}},
			Income:   0,
			Expenses: -12,
		}
		mockSvc.On("List", mock.Anything, want).Return(page, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/pixiu/fund?from=0&to=100&page=2&size=5&source=a,b&type=food", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got model.Page[model.Fund]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, *page, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("defaults page and size", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, service.FundQuery{From: 1, To: 2, Page: 1, Size: service.DefaultPageSize}).
			Return(&model.Page[model.Fund]{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/fund?from=1&to=2", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing from", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/fund?to=2", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_FROM", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid size", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/fund?from=1&to=2&size=big", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_SIZE", decodeError(t, resp).Error.Code)
	})

	t.Run("inverted range", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidRange).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/fund?from=9&to=1", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_RANGE", decodeError(t, resp).Error.Code)
	})

	t.Run("page out of range", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidPage).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/fund?from=0&to=1&page=1844674407370955161", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_PAGE", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db fail")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/fund?from=0&to=1", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.NotContains(t, body.Error.Message, "db fail")
	})
}

func TestFundLookups(t *testing.T) {
	mockSvc := new(serviceMocks.MockFundService)
	app := fiber.New()
	app.Get("/pixiu/fund/sources", FundSources(mockSvc))
	app.Get("/pixiu/fund/types", FundTypes(mockSvc))

	mockSvc.On("Sources", mock.Anything).Return([]string{"bank", "cash"}, nil).Once()
	mockSvc.On("Types", mock.Anything).Return(nil, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/fund/sources", nil))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["bank","cash"]`, string(body))

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/fund/types", nil))
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	mockSvc.On("Types", mock.Anything).Return(nil, errors.New("db fail")).Once()
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/fund/types", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	mockSvc.AssertExpectations(t)
}

func TestCreateFund(t *testing.T) {
	mockSvc := new(serviceMocks.MockFundService)
	app := fiber.New()
	app.Post("/pixiu/fund", CreateFund(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(f *model.Fund) bool {
			return f.ID == 0 && f.Name == "lunch" && f.Amount == -12.5 && f.Source == "cash"
		})).Return(&model.Fund{ID: 1, Name: "lunch", Amount: -12.5, Class: "food", Timestamp: 1700000000, Source: "cash"}, nil).Once()

		req := jsonRequest(http.MethodPost, "/pixiu/fund",
			`{"id":99,"amount":-12.5,"name":"lunch","class":"food","timestamp":1700000000,"source":"cash"}`)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var got model.Fund
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, int64(1), got.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/pixiu/fund", `{`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidFund).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/pixiu/fund", `{"amount":1}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_FUND", decodeError(t, resp).Error.Code)
	})
}

func TestUpdateFund(t *testing.T) {
	mockSvc := new(serviceMocks.MockFundService)
	app := fiber.New()
	app.Put("/pixiu/fund/:id", UpdateFund(mockSvc))

	body := `{"amount":20,"name":"salary","class":"work","timestamp":1,"source":"bank"}`

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, int64(4), mock.MatchedBy(func(f *model.Fund) bool {
			return f.Name == "salary"
		})).Return(&model.Fund{ID: 4, Name: "salary"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/pixiu/fund/4", body))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got model.Fund
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, int64(4), got.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, int64(5), mock.Anything).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/pixiu/fund/5", body))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/pixiu/fund/abc", body))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})
}

func TestDeleteFund(t *testing.T) {
	mockSvc := new(serviceMocks.MockFundService)
	app := fiber.New()
	app.Delete("/pixiu/fund/:id", DeleteFund(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(42)).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/pixiu/fund/42", nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Empty(t, b)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/pixiu/fund/0", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(7)).Return(errors.New("delete error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/pixiu/fund/7", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestBalanceHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockBalanceService)
	app := fiber.New()
	app.Get("/pixiu/debt", ListDebts(mockSvc))
	app.Get("/pixiu/property", ListProperties(mockSvc))

	debts := []model.Debt{{ID: 1, Name: "car", Amount: 5000, Repayment: 250, LastTimestamp: 1700000000}}
	mockSvc.On("Debts", mock.Anything).Return(debts, nil).Once()
	mockSvc.On("Properties", mock.Anything).Return(nil, errors.New("db fail")).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/debt", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[{"id":1,"name":"car","amount":5000,"repayment":250,"last_timestamp":1700000000}]`, string(body))

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/property", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	mockSvc.AssertExpectations(t)
}

func TestAssetKey(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/pixiu", "pixiu/index.html"},
		{"/pixiu/", "pixiu/index.html"},
		{"/pixiu/assets/app.js", "pixiu/assets/app.js"},
		{"/pixium", "pixium/index.html"},
		{"/pixium/favicon.ico", "pixium/favicon.ico"},
		{"/pixiux/app.js", ""},
		{"/pixiu/../secret", ""},
		{"/other", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, assetKey(tt.path))
		})
	}
}

func TestAssets(t *testing.T) {
	mStore := new(storeMocks.MockAssets)
	app := fiber.New()
	app.Get("/pixiu/*", Assets(mStore))
	app.Get("/pixiu", Assets(mStore))

	t.Run("index", func(t *testing.T) {
		mStore.On("Get", mock.Anything, "pixiu/index.html").
			Return(io.NopCloser(strings.NewReader("<html>")), storage.ObjectInfo{Size: 6, ContentType: "text/html", ETag: "abc"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/html", resp.Header.Get("Content-Type"))
		assert.Equal(t, `"abc"`, resp.Header.Get("ETag"))
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "<html>", string(b))
	})

	t.Run("content type from extension", func(t *testing.T) {
		mStore.On("Get", mock.Anything, "pixiu/assets/site.css").
			Return(io.NopCloser(strings.NewReader("a{}")), storage.ObjectInfo{Size: 3, ContentType: "application/octet-stream"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/assets/site.css", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
	})

	t.Run("missing object", func(t *testing.T) {
		mStore.On("Get", mock.Anything, "pixiu/nope.js").Return(nil, storage.ObjectInfo{}, storage.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/nope.js", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		mStore.On("Get", mock.Anything, "pixiu/app.js").Return(nil, storage.ObjectInfo{}, errors.New("timeout")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/app.js", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	mStore.AssertExpectations(t)

	t.Run("storage disabled", func(t *testing.T) {
		app := fiber.New()
		app.Get("/pixiu/*", Assets(nil))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/app.js", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	fundSvc := new(serviceMocks.MockFundService)
	mStore := new(storeMocks.MockAssets)
	RegisterRoutes(app, Deps{
		Funds:    fundSvc,
		Balances: new(serviceMocks.MockBalanceService),
		Assets:   mStore,
		Migrate:  func(context.Context) error { return nil },
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("api wins over frontend fallback", func(t *testing.T) {
		fundSvc.On("Sources", mock.Anything).Return([]string{"bank"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixiu/fund/sources", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		fundSvc.AssertExpectations(t)
		mStore.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("frontend fallback", func(t *testing.T) {
		mStore.On("Get", mock.Anything, "pixium/index.html").
			Return(io.NopCloser(strings.NewReader("m")), storage.ObjectInfo{Size: 1, ContentType: "text/html"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/pixium/", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mStore.AssertExpectations(t)
	})

	t.Run("init", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/pixiu/init", nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}
