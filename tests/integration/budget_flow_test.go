package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestBudgetFlow_SpentTracksTransactions(t *testing.T) {
	app := setupApp(t)
	token := mintToken(t, "budget-user", nil)

	// Step 1: Create a category and a budget against it
	rec := app.request("POST", "/api/v1/categories", `{"name":"Eating out"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	catID := parseJSON(t, rec)["category"].(map[string]interface{})["id"].(string)

	rec = app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"name":"Restaurants","amount":200,"category_id":%q}`, catID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	budgetID := budget["id"].(string)
	if budget["currency"] != "EUR" {
		t.Errorf("expected default currency EUR, got %v", budget["currency"])
	}

	// Step 2: Fresh budget has zero spent
	rec = app.request("GET", "/api/v1/budgets/"+budgetID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := parseJSON(t, rec)["budget"].(map[string]interface{})
	if fmt.Sprint(got["spent"]) != "0" {
		t.Errorf("expected spent 0, got %v", got["spent"])
	}

	// Step 3: Spend against the category
	rec = app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"type":"expense","amount":50,"date":"2026-03-01","category_id":%q}`, catID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 4: Progress reflects the spend
	rec = app.request("GET", "/api/v1/budgets/"+budgetID+"/progress", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	progress := parseJSON(t, rec)["progress"].(map[string]interface{})
	if fmt.Sprint(progress["spent"]) != "50" {
		t.Errorf("expected spent 50, got %v", progress["spent"])
	}
	if fmt.Sprint(progress["remaining"]) != "150" {
		t.Errorf("expected remaining 150, got %v", progress["remaining"])
	}
	if progress["percentage"].(float64) != 25 {
		t.Errorf("expected 25%%, got %v", progress["percentage"])
	}

	// Step 5: Budgets cannot point at a category the owner does not have
	rec = app.request("POST", "/api/v1/budgets",
		`{"name":"Ghost","amount":10,"category_id":"00000000-0000-0000-0000-000000000000"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
