package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCategoryFlow_NestingAndCascade(t *testing.T) {
	app := setupApp(t)
	token := mintToken(t, "cat-user", nil)

	// Step 1: Create a parent category
	rec := app.request("POST", "/api/v1/categories",
		`{"name":"Food","type":"expense","colour":"#FF8800"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	parent := result["category"].(map[string]interface{})
	parentID := parent["id"].(string)
	if parent["status"] != "active" {
		t.Errorf("expected status active, got %v", parent["status"])
	}

	// Step 2: Duplicate name differing only in case is rejected
	rec = app.request("POST", "/api/v1/categories", `{"name":"food"}`, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 3: Nest a child under the parent
	rec = app.request("POST", "/api/v1/categories",
		fmt.Sprintf(`{"name":"Snacks","parent_id":%q}`, parentID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	childID := parseJSON(t, rec)["category"].(map[string]interface{})["id"].(string)

	// Step 4: Tree shows the child nested under the parent
	rec = app.request("GET", "/api/v1/categories/tree", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	roots := parseJSON(t, rec)["categories"].([]interface{})
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	children := roots[0].(map[string]interface{})["children"].([]interface{})
	if len(children) != 1 || children[0].(map[string]interface{})["id"] != childID {
		t.Errorf("expected child %s under root, got %v", childID, children)
	}

	// Step 5: Deleting the parent without cascade conflicts
	rec = app.request("DELETE", "/api/v1/categories/"+parentID, "", token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 6: Cascade removes parent and child together
	rec = app.request("DELETE", "/api/v1/categories/"+parentID+"?cascade=true", "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/categories/"+childID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for cascaded child, got %d", rec.Code)
	}
}

func TestCategoryFlow_OwnerIsolation(t *testing.T) {
	app := setupApp(t)
	aliceToken := mintToken(t, "alice", nil)
	bobToken := mintToken(t, "bob", nil)

	rec := app.request("POST", "/api/v1/categories", `{"name":"Private"}`, aliceToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	catID := parseJSON(t, rec)["category"].(map[string]interface{})["id"].(string)

	// Bob cannot see, update, or delete Alice's category.
	rec = app.request("GET", "/api/v1/categories/"+catID, "", bobToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for cross-owner read, got %d", rec.Code)
	}
	rec = app.request("PUT", "/api/v1/categories/"+catID, `{"name":"Stolen"}`, bobToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for cross-owner update, got %d", rec.Code)
	}
	rec = app.request("DELETE", "/api/v1/categories/"+catID, "", bobToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for cross-owner delete, got %d", rec.Code)
	}

	// Bob can reuse the name in his own space.
	rec = app.request("POST", "/api/v1/categories", `{"name":"Private"}`, bobToken)
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201 for same name under other owner, got %d: %s", rec.Code, rec.Body.String())
	}
}
