package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchNormalization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search_terms"); got != "cola" {
			t.Errorf("search_terms = %q, want %q", got, "cola")
		}
		w.Write([]byte(`{
			"products": [
				{
					"code": "5449000000996",
					"nutriments": {"energy-kcal_100g": 42},
					"product_name_en": "Coca-Cola",
					"product_name": "Coca Cola",
					"generic_name": "Soda",
					"brands_tags": ["coca-cola"],
					"image_thumb_url": "https://img.example/cola.jpg",
					"ingredients_text": "Water, sugar",
					"allergens_tags": [],
					"serving_size": "330 ml"
				},
				{
					"code": "0000000000001",
					"product_name": "Store Cola"
				}
			]
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	products, err := c.Search(context.Background(), "cola")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}

	first := products[0]
	if first.ProductName == nil || *first.ProductName != "Coca-Cola" {
		t.Errorf("product_name = %v, want Coca-Cola (en preferred)", first.ProductName)
	}
	if first.GenericName == nil || *first.GenericName != "Soda" {
		t.Errorf("generic_name = %v, want Soda (fallback applied)", first.GenericName)
	}
	if first.IngredientsText == nil || *first.IngredientsText != "Water, sugar" {
		t.Errorf("ingredients_text = %v, want fallback text", first.IngredientsText)
	}
	if first.Nutriments["energy-kcal_100g"] != float64(42) {
		t.Errorf("nutriments = %v, want energy-kcal_100g 42", first.Nutriments)
	}

	// Sparse upstream record still yields the full normalized shape.
	second := products[1]
	if second.ProductName == nil || *second.ProductName != "Store Cola" {
		t.Errorf("product_name = %v, want Store Cola", second.ProductName)
	}
	if second.GenericName != nil {
		t.Errorf("generic_name = %v, want nil", second.GenericName)
	}
	if second.BrandsTags == nil || len(second.BrandsTags) != 0 {
		t.Errorf("brands_tags = %v, want empty list", second.BrandsTags)
	}
	if second.Nutriments == nil {
		t.Error("nutriments = nil, want empty map")
	}
}

func TestSearchUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(server.URL)

	_, err := c.Search(context.Background(), "cola")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusTooManyRequests {
		t.Errorf("code = %d, want %d", statusErr.Code, http.StatusTooManyRequests)
	}
}

func TestSearchUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")

	_, err := c.Search(context.Background(), "cola")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestSearchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	c := NewClient(server.URL)

	_, err := c.Search(context.Background(), "cola")
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if errors.Is(err, ErrUnavailable) {
		t.Error("decode failure should not map to ErrUnavailable")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Error("decode failure should not map to *StatusError")
	}
}
