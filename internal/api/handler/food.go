package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/nutriguide/nutriguide/internal/api/models"
	"github.com/nutriguide/nutriguide/internal/api/response"
	"github.com/nutriguide/nutriguide/internal/catalog"
)

// FoodHandler handles food catalog endpoints.
type FoodHandler struct {
	catalog *catalog.Service
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(catalogService *catalog.Service) *FoodHandler {
	return &FoodHandler{catalog: catalogService}
}

// AddFood handles POST /v1/foods - add a food to the catalog.
func (h *FoodHandler) AddFood(w http.ResponseWriter, r *http.Request) {
	var input models.FoodInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	id, err := h.catalog.Add(r.Context(), catalog.FromInput(&input))
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Created(w, r, "", models.FoodCreated{ID: id})
}

// SearchFoods handles GET /v1/foods - search the catalog by name.
func (h *FoodHandler) SearchFoods(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, r, "invalid query parameters", []models.FieldError{
				{Field: "limit", Message: "must be an integer"},
			})
			return
		}
		limit = parsed
	}

	items, err := h.catalog.Search(r.Context(), query.Get("q"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	foods := make([]models.Food, 0, len(items))
	for _, f := range items {
		foods = append(foods, f.ToAPI())
	}
	response.JSON(w, r, http.StatusOK, foods)
}
