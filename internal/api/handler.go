package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kochbuch/internal/importer"
	"kochbuch/internal/recipe"
)

// RecipeImporter defines the interface for the URL import pipeline.
type RecipeImporter interface {
	ImportFromURL(ctx context.Context, rawURL string) (*recipe.Recipe, error)
}

// RecipeStore defines the interface for recipe data operations.
type RecipeStore interface {
	SaveRecipe(ctx context.Context, rec *recipe.Recipe) error
	GetRecipeByID(ctx context.Context, id int64) (*recipe.Recipe, error)
	ListRecipes(ctx context.Context) ([]*recipe.Recipe, error)
}

// Handler handles HTTP requests.
type Handler struct {
	Importer RecipeImporter
	Store    RecipeStore
}

// NewHandler creates a new Handler.
func NewHandler(imp RecipeImporter, store RecipeStore) *Handler {
	return &Handler{Importer: imp, Store: store}
}

// ImportRequest is the body of an import request.
type ImportRequest struct {
	URL string `json:"url" binding:"required"`
}

// Import runs the import pipeline for the posted URL and stores the result.
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "a url is required")
		return
	}

	// The pipeline fetches the page plus up to five images sequentially.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 90*time.Second)
	defer cancel()

	rec, err := h.Importer.ImportFromURL(ctx, req.URL)
	if err != nil {
		var invalidURLErr *importer.InvalidURLError
		var fetchErr *importer.FetchError
		var notFoundErr *importer.NoRecipeFoundError
		switch {
		case errors.As(err, &invalidURLErr):
			c.String(http.StatusBadRequest, "invalid recipe url")
		case errors.As(err, &fetchErr):
			if fetchErr.Status != 0 {
				c.String(http.StatusBadRequest, fmt.Sprintf("could not fetch page: status %d", fetchErr.Status))
			} else {
				c.String(http.StatusBadRequest, "could not fetch page")
			}
		case errors.As(err, &notFoundErr):
			c.String(http.StatusBadRequest, "no recipe found on that page")
		default:
			log.Printf("import failed for %s: %v", req.URL, err)
			c.String(http.StatusInternalServerError, "import failed")
		}
		return
	}

	if err := h.Store.SaveRecipe(ctx, rec); err != nil {
		log.Printf("failed to save imported recipe: %v", err)
		c.String(http.StatusInternalServerError, "failed to save recipe")
		return
	}

	c.JSON(http.StatusOK, rec)
}

// GetRecipes handles requests to list all stored recipes.
func (h *Handler) GetRecipes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.Store.ListRecipes(ctx)
	if err != nil {
		log.Printf("failed to list recipes: %v", err)
		c.String(http.StatusInternalServerError, "database error")
		return
	}
	if recipes == nil {
		recipes = []*recipe.Recipe{}
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles requests to retrieve a single recipe by ID.
func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid recipe id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Store.GetRecipeByID(ctx, id)
	if err != nil {
		log.Printf("failed to get recipe %d: %v", id, err)
		c.String(http.StatusInternalServerError, "database error")
		return
	}
	if rec == nil {
		c.String(http.StatusNotFound, "recipe not found")
		return
	}

	c.JSON(http.StatusOK, rec)
}
