package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/coder11a/personal-finance-visualizer/internal/errors"
	"github.com/coder11a/personal-finance-visualizer/internal/models"
	"github.com/coder11a/personal-finance-visualizer/internal/services"
	"github.com/coder11a/personal-finance-visualizer/internal/validator"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn func(amount float64, description, date string, txType models.TransactionType, category string) (*models.Transaction, error)
	listTransactionsFn  func(limit int) ([]models.Transaction, error)
	updateTransactionFn func(id string, amount float64, description, date string, txType models.TransactionType, category string) error
	deleteTransactionFn func(id string) error
	categoryBreakdownFn func(txType models.TransactionType) ([]services.CategoryShare, error)
	monthlySummaryFn    func() ([]services.MonthlyTotals, error)
}

func (m *mockTransactionService) CreateTransaction(amount float64, description, date string, txType models.TransactionType, category string) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(amount, description, date, txType, category)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) ListTransactions(limit int) ([]models.Transaction, error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(limit)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(id string, amount float64, description, date string, txType models.TransactionType, category string) error {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(id, amount, description, date, txType, category)
	}
	return nil
}

func (m *mockTransactionService) DeleteTransaction(id string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(id)
	}
	return nil
}

func (m *mockTransactionService) CategoryBreakdown(txType models.TransactionType) ([]services.CategoryShare, error) {
	if m.categoryBreakdownFn != nil {
		return m.categoryBreakdownFn(txType)
	}
	return []services.CategoryShare{}, nil
}

func (m *mockTransactionService) MonthlySummary() ([]services.MonthlyTotals, error) {
	if m.monthlySummaryFn != nil {
		return m.monthlySummaryFn()
	}
	return []services.MonthlyTotals{}, nil
}

// verify interface compliance
var _ services.TransactionServicer = (*mockTransactionService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.GET("/transactions", handler.ListTransactions)
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions/categories", handler.GetCategoryBreakdown)
	r.GET("/transactions/monthly", handler.GetMonthlySummary)
	r.PUT("/transactions/:id", handler.UpdateTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONList(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("returns 200 with transactions", func(t *testing.T) {
		txSvc := &mockTransactionService{
			listTransactionsFn: func(limit int) ([]models.Transaction, error) {
				return []models.Transaction{
					{Base: models.Base{ID: "tx-1"}, Amount: 25.50, Description: "Groceries", Date: "2024-02-10", Type: models.TransactionTypeExpense, Category: "Food"},
					{Base: models.Base{ID: "tx-2"}, Amount: 1200, Description: "Salary", Date: "2024-02-01", Type: models.TransactionTypeIncome},
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSONList(t, rec)
		if len(result) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(result))
		}
		first := result[0].(map[string]interface{})
		if first["description"] != "Groceries" {
			t.Errorf("unexpected first row: %v", first)
		}
	})

	t.Run("forwards limit to the service", func(t *testing.T) {
		var gotLimit int
		txSvc := &mockTransactionService{
			listTransactionsFn: func(limit int) ([]models.Transaction, error) {
				gotLimit = limit
				return []models.Transaction{}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions?limit=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotLimit != 5 {
			t.Errorf("expected limit 5, got %d", gotLimit)
		}
	})

	t.Run("returns 400 on non-numeric limit", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?limit=abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), apperrors.ErrInvalidInput.Code)
	})

	t.Run("returns 400 on negative limit", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?limit=-1", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(amount float64, description, date string, txType models.TransactionType, category string) (*models.Transaction, error) {
				return &models.Transaction{
					Base:        models.Base{ID: "tx-1"},
					Amount:      amount,
					Description: description,
					Date:        date,
					Type:        txType,
					Category:    category,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":25.50,"description":"Groceries","date":"2024-02-10","type":"expense","category":"Food"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["id"] != "tx-1" {
			t.Errorf("expected transaction id in response, got: %v", result)
		}
		if result["amount"] != 25.50 {
			t.Errorf("expected amount 25.50, got %v", result["amount"])
		}
	})

	t.Run("category is optional", func(t *testing.T) {
		var gotCategory string
		txSvc := &mockTransactionService{
			createTransactionFn: func(amount float64, description, date string, txType models.TransactionType, category string) (*models.Transaction, error) {
				gotCategory = category
				return &models.Transaction{Base: models.Base{ID: "tx-1"}}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":10,"description":"Misc","date":"2024-02-10","type":"expense"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotCategory != "" {
			t.Errorf("expected empty category, got %q", gotCategory)
		}
	})

	t.Run("returns 400 on missing required fields", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions", `{"amount":10}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), apperrors.ErrInvalidInput.Code)
	})

	t.Run("returns 400 on non-positive amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":-5,"description":"Refund","date":"2024-02-10","type":"expense"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":10,"description":"Misc","date":"2024-02-10","type":"transfer"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"amount":10,"description":"Misc","date":"Feb 10 2024","type":"expense"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("returns 200 with success flag", func(t *testing.T) {
		var gotID string
		txSvc := &mockTransactionService{
			updateTransactionFn: func(id string, amount float64, description, date string, txType models.TransactionType, category string) error {
				gotID = id
				return nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "PUT", "/transactions/tx-1",
			`{"amount":30,"description":"Groceries","date":"2024-02-11","type":"expense","category":"Food"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["success"] != true {
			t.Errorf("expected success true, got: %v", result)
		}
		if gotID != "tx-1" {
			t.Errorf("expected id tx-1, got %q", gotID)
		}
	})

	t.Run("returns 404 on unknown transaction", func(t *testing.T) {
		txSvc := &mockTransactionService{
			updateTransactionFn: func(string, float64, string, string, models.TransactionType, string) error {
				return apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "PUT", "/transactions/missing",
			`{"amount":30,"description":"Groceries","date":"2024-02-11","type":"expense"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), apperrors.ErrTransactionNotFound.Code)
	})

	t.Run("returns 400 on invalid payload", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "PUT", "/transactions/tx-1", `{"amount":30}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 200 with success flag", func(t *testing.T) {
		txSvc := &mockTransactionService{
			deleteTransactionFn: func(id string) error {
				if id != "tx-1" {
					t.Errorf("expected id tx-1, got %q", id)
				}
				return nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "DELETE", "/transactions/tx-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["success"] != true {
			t.Errorf("expected success true, got: %v", result)
		}
	})

	t.Run("returns 404 on unknown transaction", func(t *testing.T) {
		txSvc := &mockTransactionService{
			deleteTransactionFn: func(string) error {
				return apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "DELETE", "/transactions/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), apperrors.ErrTransactionNotFound.Code)
	})
}

func TestTransactionHandler_GetCategoryBreakdown(t *testing.T) {
	t.Run("defaults to expense", func(t *testing.T) {
		var gotType models.TransactionType
		txSvc := &mockTransactionService{
			categoryBreakdownFn: func(txType models.TransactionType) ([]services.CategoryShare, error) {
				gotType = txType
				return []services.CategoryShare{
					{Category: "Food", Amount: 150, Percentage: 100, Count: 2, Color: "#3B82F6"},
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotType != models.TransactionTypeExpense {
			t.Errorf("expected default type expense, got %q", gotType)
		}
		result := parseJSONList(t, rec)
		row := result[0].(map[string]interface{})
		if row["category"] != "Food" || row["percentage"] != float64(100) {
			t.Errorf("unexpected breakdown row: %v", row)
		}
	})

	t.Run("accepts income type", func(t *testing.T) {
		var gotType models.TransactionType
		txSvc := &mockTransactionService{
			categoryBreakdownFn: func(txType models.TransactionType) ([]services.CategoryShare, error) {
				gotType = txType
				return []services.CategoryShare{}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions/categories?type=income", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotType != models.TransactionTypeIncome {
			t.Errorf("expected type income, got %q", gotType)
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions/categories?type=transfer", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), apperrors.ErrInvalidTransactionType.Code)
	})
}

func TestTransactionHandler_GetMonthlySummary(t *testing.T) {
	t.Run("returns 200 with monthly rows", func(t *testing.T) {
		txSvc := &mockTransactionService{
			monthlySummaryFn: func() ([]services.MonthlyTotals, error) {
				return []services.MonthlyTotals{
					{Month: "Jan 2024", Income: 200, Expenses: 150},
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions/monthly", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSONList(t, rec)
		row := result[0].(map[string]interface{})
		if row["month"] != "Jan 2024" || row["expenses"] != float64(150) {
			t.Errorf("unexpected monthly row: %v", row)
		}
	})

	t.Run("returns 500 on service failure", func(t *testing.T) {
		txSvc := &mockTransactionService{
			monthlySummaryFn: func() ([]services.MonthlyTotals, error) {
				return nil, apperrors.ErrInternalServer
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions/monthly", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), apperrors.ErrInternalServer.Code)
	})
}
