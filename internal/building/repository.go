package building

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Design is a named, saved configuration.
type Design struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Config    *Config   `json:"config,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DesignSummary is the listing form of a saved design.
type DesignSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Width      float64   `json:"width"`
	Length     float64   `json:"length"`
	EaveHeight float64   `json:"eave_height"`
	RoofStyle  RoofStyle `json:"roof_style"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Repository persists saved designs.
type Repository interface {
	// Get retrieves a design by ID.
	// Returns ErrDesignNotFound if it does not exist.
	Get(ctx context.Context, id string) (*Design, error)

	// List returns summaries of all saved designs ordered by name.
	List(ctx context.Context) ([]DesignSummary, error)

	// Save inserts a new design, or updates it when the ID already exists.
	// An empty ID is replaced with a generated one.
	Save(ctx context.Context, d *Design) error

	// Delete removes a design by ID.
	// Returns ErrDesignNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get retrieves a design by ID.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Design, error) {
	query := `
		SELECT id, name, config, created_at, updated_at
		FROM designs
		WHERE id = ?`

	var (
		d                    Design
		configJSON           string
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &configJSON, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("querying design by id: %w", err)
	}

	d.Config = &Config{}
	if err := json.Unmarshal([]byte(configJSON), d.Config); err != nil {
		return nil, fmt.Errorf("unmarshalling design config: %w", err)
	}
	d.Config = normalise(d.Config)
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)
	return &d, nil
}

// List returns summaries of all saved designs ordered by name.
func (r *SQLiteRepository) List(ctx context.Context) ([]DesignSummary, error) {
	query := `
		SELECT id, name, width, length, eave_height, roof_style, updated_at
		FROM designs
		ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying designs: %w", err)
	}
	defer rows.Close()

	summaries := []DesignSummary{}
	for rows.Next() {
		var (
			s         DesignSummary
			style     string
			updatedAt string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Width, &s.Length, &s.EaveHeight, &style, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning design: %w", err)
		}
		s.RoofStyle = RoofStyle(style)
		s.UpdatedAt = parseTime(updatedAt)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating designs: %w", err)
	}
	return summaries, nil
}

// Save inserts or updates a design.
func (r *SQLiteRepository) Save(ctx context.Context, d *Design) error {
	if d == nil || d.Config == nil || strings.TrimSpace(d.Name) == "" {
		return ErrInvalidDesign
	}
	if err := d.Config.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDesign, err)
	}

	// A drag in progress is session state, not part of the design.
	stored := d.Config.DeepCopy()
	stored.Interaction.Dragging = false
	configJSON, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshalling design config: %w", err)
	}

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	query := `
		INSERT INTO designs (id, name, width, length, eave_height, roof_style, config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			width = excluded.width,
			length = excluded.length,
			eave_height = excluded.eave_height,
			roof_style = excluded.roof_style,
			config = excluded.config,
			updated_at = excluded.updated_at`

	dims := d.Config.Dimensions
	_, err = r.db.ExecContext(ctx, query,
		d.ID, d.Name, dims.Width, dims.Length, dims.EaveHeight, string(d.Config.Roof.Style),
		string(configJSON),
		d.CreatedAt.Format(time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving design: %w", err)
	}
	return nil
}

// Delete removes a design by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM designs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting design: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrDesignNotFound
	}
	return nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
