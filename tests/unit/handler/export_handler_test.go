package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taxmitra/internal/csvexport"
	"taxmitra/internal/domain"
	"taxmitra/internal/handler"
	"taxmitra/internal/service"
	"taxmitra/internal/tax"
	"taxmitra/mocks"
)

func sampleCalculation(userID uuid.UUID) domain.TaxCalculation {
	result := tax.Result{
		FinancialYear: "2024-25",
		Regime:        domain.RegimeNew,
		GrossIncome:   decimal.NewFromInt(1500000),
		TotalTax:      decimal.RequireFromString("145600.00"),
	}
	snapshot, _ := json.Marshal(result)
	return domain.TaxCalculation{
		ID:            uuid.New(),
		UserID:        userID,
		FinancialYear: "2024-25",
		Regime:        domain.RegimeNew,
		GrossIncome:   decimal.NewFromInt(1500000),
		IsSalaried:    true,
		Age:           35,
		TotalTax:      decimal.RequireFromString("145600.00"),
		Result:        snapshot,
	}
}

func TestExportHandler_HistoryCSV_Success(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	h := handler.NewExportHandler(service.NewExportService(calcRepo))

	userID := uuid.New()
	calcRepo.On("ListByUser", mock.Anything, userID).
		Return([]domain.TaxCalculation{sampleCalculation(userID)}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/export/history.csv", nil)
	setAuthContext(c, userID, "member")

	h.HistoryCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "tax_history")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, csvexport.BOM))
	assert.Contains(t, string(body), "Financial Year")
	assert.Contains(t, string(body), "2024-25")
	assert.Contains(t, string(body), "145600.00")

	calcRepo.AssertExpectations(t)
}

func TestExportHandler_HistoryCSV_RepositoryFailure(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	h := handler.NewExportHandler(service.NewExportService(calcRepo))

	userID := uuid.New()
	calcRepo.On("ListByUser", mock.Anything, userID).Return(nil, assert.AnError)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/export/history.csv", nil)
	setAuthContext(c, userID, "member")

	h.HistoryCSV(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// The failure must surface as a JSON error, not a partial CSV.
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestExportHandler_ReportXLSX_Success(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	h := handler.NewExportHandler(service.NewExportService(calcRepo))

	userID := uuid.New()
	calc := sampleCalculation(userID)
	calcRepo.On("GetByUserYear", mock.Anything, userID, "2024-25").Return(&calc, nil)
	calcRepo.On("ListByUser", mock.Anything, userID).Return([]domain.TaxCalculation{calc}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/export/report/2024-25", nil)
	c.Params = gin.Params{{Key: "year", Value: "2024-25"}}
	setAuthContext(c, userID, "member")

	h.ReportXLSX(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "tax_report_2024-25")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	// XLSX files are zip archives.
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
	calcRepo.AssertExpectations(t)
}

func TestExportHandler_ReportXLSX_NoSavedCalculation(t *testing.T) {
	calcRepo := new(mocks.MockCalculationRepo)
	h := handler.NewExportHandler(service.NewExportService(calcRepo))

	userID := uuid.New()
	calcRepo.On("GetByUserYear", mock.Anything, userID, "2024-25").Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/export/report/2024-25", nil)
	c.Params = gin.Params{{Key: "year", Value: "2024-25"}}
	setAuthContext(c, userID, "member")

	h.ReportXLSX(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
