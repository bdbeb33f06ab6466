package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"larder/internal/auth"
	"larder/internal/model"
	"larder/internal/store"
)

type GroceryHandler struct {
	items  *store.GroceryStore
	logger *slog.Logger
}

func NewGroceryHandler(gs *store.GroceryStore, logger *slog.Logger) *GroceryHandler {
	return &GroceryHandler{items: gs, logger: logger}
}

type addItemRequest struct {
	ProductName string `json:"product_name"`
	Quantity    any    `json:"quantity"`

	Brands        *string `json:"brands"`
	ThumbURL      *string `json:"thumb_url"`
	Ingredients   *string `json:"ingredients"`
	Allergens     *string `json:"allergens"`
	Labels        *string `json:"labels"`
	ServingSize   *string `json:"serving_size"`
	Categories    *string `json:"categories"`
	Calories      *string `json:"calories"`
	Fat           *string `json:"fat"`
	SaturatedFat  *string `json:"saturated_fat"`
	Carbohydrates *string `json:"carbohydrates"`
	Sugars        *string `json:"sugars"`
	Protein       *string `json:"protein"`
	Salt          *string `json:"salt"`
}

// Create adds an item to the caller's list, folding it into an existing row
// when one matches the trimmed product name. A merge answers 200, a fresh
// insert 201; both return the resulting item.
func (h *GroceryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.ProductName)
	if name == "" {
		writeMsg(w, http.StatusBadRequest, "Missing product name")
		return
	}

	item, created, err := h.items.AddOrMerge(userID, model.ItemFields{
		ProductName:   name,
		Quantity:      coerceQuantity(req.Quantity),
		Brands:        req.Brands,
		ThumbURL:      req.ThumbURL,
		Ingredients:   req.Ingredients,
		Allergens:     req.Allergens,
		Labels:        req.Labels,
		ServingSize:   req.ServingSize,
		Categories:    req.Categories,
		Calories:      req.Calories,
		Fat:           req.Fat,
		SaturatedFat:  req.SaturatedFat,
		Carbohydrates: req.Carbohydrates,
		Sugars:        req.Sugars,
		Protein:       req.Protein,
		Salt:          req.Salt,
	})
	if err != nil {
		h.logger.Error("add item", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Could not add item")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, item)
}

func (h *GroceryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	items, err := h.items.ListByUser(userID)
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Failed to retrieve list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *GroceryHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Authorization required.")
		return
	}

	itemID, err := parseIDParam(r)
	if err != nil {
		writeMsg(w, http.StatusNotFound, "Item not found or access denied")
		return
	}

	var req struct {
		Quantity any `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Quantity == nil {
		writeMsg(w, http.StatusBadRequest, "Missing new quantity")
		return
	}
	quantity, ok := strictQuantity(req.Quantity)
	if !ok {
		writeMsg(w, http.StatusBadRequest, "Quantity must be a valid integer")
		return
	}

	found, err := h.items.UpdateQuantity(userID, itemID, quantity)
	if err != nil {
		h.logger.Error("update quantity", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Database error during update")
		return
	}
	if !found {
		writeMsg(w, http.StatusNotFound, "Item not found or access denied")
		return
	}
	writeMsg(w, http.StatusOK, "Item updated successfully")
}

func (h *GroceryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "Authorization token is missing or invalid.")
		return
	}

	itemID, err := parseIDParam(r)
	if err != nil {
		writeMsg(w, http.StatusNotFound, "Item not found or access denied")
		return
	}

	found, err := h.items.Delete(userID, itemID)
	if err != nil {
		h.logger.Error("delete item", "error", err)
		writeMsg(w, http.StatusInternalServerError, "Database error during deletion")
		return
	}
	if !found {
		writeMsg(w, http.StatusNotFound, "Item not found or access denied")
		return
	}
	writeMsg(w, http.StatusOK, "Item deleted successfully")
}
