package gem

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newGemApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	RegisterRoutes(app.Group("/gems"), DefaultCatalog())
	return app
}

func TestGemHandlersList(t *testing.T) {
	app := newGemApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gems/", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	var gems []Gem
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &gems); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(gems) != 10 {
		t.Fatalf("expected 10 gems, got %d", len(gems))
	}
}

func TestGemHandlersCategoryFilter(t *testing.T) {
	app := newGemApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gems/?category=nature,food", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("filter status: %v", err)
	}
	var gems []Gem
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &gems)
	if len(gems) != 5 {
		t.Fatalf("expected 5 gems, got %d", len(gems))
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/gems/?category=shopping", nil))
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for unknown category")
	}
}

func TestGemHandlersCategories(t *testing.T) {
	app := newGemApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gems/categories", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("categories status: %v", err)
	}
	var entries []map[string]string
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != len(Categories) {
		t.Fatalf("expected %d categories, got %d", len(Categories), len(entries))
	}
	if entries[0]["color"] == "" || entries[0]["icon"] == "" {
		t.Fatalf("expected color and icon set")
	}
}

func TestGemHandlersGet(t *testing.T) {
	app := newGemApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gems/3", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %v", err)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/gems/999", nil))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}

func TestGemHandlersSearch(t *testing.T) {
	app := newGemApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gems/search?q=beach&lat=-33.9508&lng=18.3773", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("search status: %v", err)
	}
	var gems []Gem
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &gems)
	if len(gems) != 2 || gems[0].ID != "8" {
		t.Fatalf("unexpected search result: %+v", gems)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/gems/search?q=beach&lat=abc&lng=18.4", nil))
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for invalid lat")
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/gems/search?q=zzz-no-match", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("empty search status: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	if string(body) != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestGemHandlersNearest(t *testing.T) {
	app := newGemApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gems/nearest?lat=-34.1286&lng=18.4456&limit=2", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("nearest status: %v", err)
	}
	var gems []Gem
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &gems)
	if len(gems) != 2 || gems[0].ID != "3" {
		t.Fatalf("unexpected nearest result: %+v", gems)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/gems/nearest", nil))
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request without origin")
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/gems/nearest?lat=-34.0&lng=oops", nil))
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for invalid lng")
	}
}
