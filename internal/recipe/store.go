package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store defines the persistence operations for imported recipes.
type Store interface {
	SaveRecipe(ctx context.Context, rec *Recipe) error
	GetRecipeByID(ctx context.Context, id int64) (*Recipe, error)
	ListRecipes(ctx context.Context) ([]*Recipe, error)
}

// PostgresStore implements Store for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS recipes (
		id SERIAL PRIMARY KEY,
		title TEXT,
		images JSONB,
		ingredients JSONB,
		instructions TEXT,
		prep_time INTEGER,
		rest_time INTEGER,
		cook_time INTEGER,
		total_time INTEGER,
		servings INTEGER,
		calories_per_unit INTEGER,
		weight_unit TEXT,
		categories JSONB,
		source_url TEXT
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create recipes table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// SaveRecipe inserts the recipe and sets its generated ID.
func (s *PostgresStore) SaveRecipe(ctx context.Context, rec *Recipe) error {
	imagesJSON, err := json.Marshal(rec.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}
	ingredientsJSON, err := json.Marshal(rec.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	categoriesJSON, err := json.Marshal(rec.Categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO recipes (title, images, ingredients, instructions, prep_time, rest_time, cook_time, total_time, servings, calories_per_unit, weight_unit, categories, source_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`,
		rec.Title,
		imagesJSON,
		ingredientsJSON,
		rec.Instructions,
		rec.PrepTime,
		rec.RestTime,
		rec.CookTime,
		rec.TotalTime,
		rec.Servings,
		rec.CaloriesPerUnit,
		rec.WeightUnit,
		categoriesJSON,
		rec.SourceURL,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// GetRecipeByID retrieves one recipe, or nil when it does not exist.
func (s *PostgresStore) GetRecipeByID(ctx context.Context, id int64) (*Recipe, error) {
	row := s.db.QueryRowxContext(ctx,
		`SELECT id, title, images, ingredients, instructions, prep_time, rest_time, cook_time, total_time, servings, calories_per_unit, weight_unit, categories, source_url
		 FROM recipes WHERE id = $1`, id)

	rec, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %d: %w", id, err)
	}
	return rec, nil
}

// ListRecipes returns all stored recipes in insertion order.
func (s *PostgresStore) ListRecipes(ctx context.Context) ([]*Recipe, error) {
	rows, err := s.db.QueryxContext(ctx,
		`SELECT id, title, images, ingredients, instructions, prep_time, rest_time, cook_time, total_time, servings, calories_per_unit, weight_unit, categories, source_url
		 FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return recipes, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(row rowScanner) (*Recipe, error) {
	var rec Recipe
	var imagesJSON, ingredientsJSON, categoriesJSON []byte

	err := row.Scan(
		&rec.ID,
		&rec.Title,
		&imagesJSON,
		&ingredientsJSON,
		&rec.Instructions,
		&rec.PrepTime,
		&rec.RestTime,
		&rec.CookTime,
		&rec.TotalTime,
		&rec.Servings,
		&rec.CaloriesPerUnit,
		&rec.WeightUnit,
		&categoriesJSON,
		&rec.SourceURL,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(imagesJSON, &rec.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}
	if err := json.Unmarshal(ingredientsJSON, &rec.Ingredients); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ingredients: %w", err)
	}
	if err := json.Unmarshal(categoriesJSON, &rec.Categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}
	return &rec, nil
}
