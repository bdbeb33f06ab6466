// Package catalog queries the Open Food Facts product database and
// normalizes its records. Every search is a live request: no caching, no
// retries.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

// ErrUnavailable marks network-level failures (connection refused, timeout)
// talking to the catalog.
var ErrUnavailable = errors.New("catalog unavailable")

// StatusError is a non-2xx response from the catalog; the status code is
// propagated to the API caller.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog returned status %d", e.Code)
}

// Product is the normalized record shape returned to clients. English
// variants are preferred, falling back to the generic field; tags absent
// upstream stay null, except brands_tags which defaults to an empty list.
type Product struct {
	Code            string         `json:"code"`
	Nutriments      map[string]any `json:"nutriments"`
	ProductName     *string        `json:"product_name"`
	GenericName     *string        `json:"generic_name"`
	BrandsTags      []string       `json:"brands_tags"`
	ImageThumbURL   *string        `json:"image_thumb_url"`
	IngredientsText *string        `json:"ingredients_text"`
	AllergensTags   []string       `json:"allergens_tags"`
	LabelsTags      []string       `json:"labels_tags"`
	CategoriesTags  []string       `json:"categories_tags"`
	ServingSize     *string        `json:"serving_size"`
}

type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient builds a catalog client. An empty baseURL selects the public
// Open Food Facts endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

type apiResponse struct {
	Products []apiProduct `json:"products"`
}

type apiProduct struct {
	Code              string         `json:"code"`
	Nutriments        map[string]any `json:"nutriments"`
	ProductNameEn     string         `json:"product_name_en"`
	ProductName       string         `json:"product_name"`
	GenericNameEn     string         `json:"generic_name_en"`
	GenericName       string         `json:"generic_name"`
	BrandsTags        []string       `json:"brands_tags"`
	ImageThumbURL     string         `json:"image_thumb_url"`
	IngredientsTextEn string         `json:"ingredients_text_en"`
	IngredientsText   string         `json:"ingredients_text"`
	AllergensTags     []string       `json:"allergens_tags"`
	LabelsTags        []string       `json:"labels_tags"`
	CategoriesTags    []string       `json:"categories_tags"`
	ServingSize       string         `json:"serving_size"`
}

// Search runs a product search against the catalog and returns the
// normalized records. Non-2xx responses come back as *StatusError; network
// failures wrap ErrUnavailable.
func (c *Client) Search(ctx context.Context, term string) ([]Product, error) {
	searchURL := fmt.Sprintf(
		"%s/cgi/search.pl?action=process&search_terms=%s&json=1",
		c.baseURL, url.QueryEscape(term),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	products := make([]Product, 0, len(apiResp.Products))
	for _, p := range apiResp.Products {
		products = append(products, normalize(p))
	}
	return products, nil
}

func normalize(p apiProduct) Product {
	nutriments := p.Nutriments
	if nutriments == nil {
		nutriments = map[string]any{}
	}
	brands := p.BrandsTags
	if brands == nil {
		brands = []string{}
	}
	return Product{
		Code:            p.Code,
		Nutriments:      nutriments,
		ProductName:     firstNonEmpty(p.ProductNameEn, p.ProductName),
		GenericName:     firstNonEmpty(p.GenericNameEn, p.GenericName),
		BrandsTags:      brands,
		ImageThumbURL:   firstNonEmpty(p.ImageThumbURL),
		IngredientsText: firstNonEmpty(p.IngredientsTextEn, p.IngredientsText),
		AllergensTags:   p.AllergensTags,
		LabelsTags:      p.LabelsTags,
		CategoriesTags:  p.CategoriesTags,
		ServingSize:     firstNonEmpty(p.ServingSize),
	}
}

// firstNonEmpty returns a pointer to the first non-empty value, or nil so
// the field serializes as null.
func firstNonEmpty(values ...string) *string {
	for _, v := range values {
		if v != "" {
			return &v
		}
	}
	return nil
}
