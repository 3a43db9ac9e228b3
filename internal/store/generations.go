package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iammorganparry/logoflow/internal/models"
)

// Limits applied by List.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

// GenerationStore records name and logo generations.
type GenerationStore struct {
	db  *DB
	now func() time.Time
}

func NewGenerationStore(db *DB) *GenerationStore {
	return &GenerationStore{db: db, now: time.Now}
}

// RecordNames stores a name generation. Names are joined with ", ".
func (s *GenerationStore) RecordNames(description, model string, names []string) (*models.Generation, error) {
	return s.insert(&models.Generation{
		Kind:        models.GenerationKindNames,
		Description: description,
		Model:       model,
		Result:      strings.Join(names, ", "),
	})
}

// RecordLogo stores a logo generation. Only the image size is kept, not the
// image itself.
func (s *GenerationStore) RecordLogo(name, description, model string, imageBytes int) (*models.Generation, error) {
	return s.insert(&models.Generation{
		Kind:        models.GenerationKindLogo,
		Name:        name,
		Description: description,
		Model:       model,
		Result:      fmt.Sprintf("%d bytes", imageBytes),
	})
}

func (s *GenerationStore) insert(g *models.Generation) (*models.Generation, error) {
	g.ID = uuid.New().String()
	g.CreatedAt = s.now().UnixMilli()

	_, err := s.db.Exec(`
		INSERT INTO generations (id, kind, name, description, model, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, string(g.Kind), g.Name, g.Description, g.Model, g.Result, g.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert generation: %w", err)
	}
	return g, nil
}

// List returns the most recent generations, newest first. kind filters by
// generation kind when non-empty.
func (s *GenerationStore) List(kind models.GenerationKind, limit int) ([]models.Generation, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	query := `SELECT id, kind, name, description, model, result, created_at FROM generations`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	generations := make([]models.Generation, 0)
	for rows.Next() {
		var g models.Generation
		var k string
		if err := rows.Scan(&g.ID, &k, &g.Name, &g.Description, &g.Model, &g.Result, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		g.Kind = models.GenerationKind(k)
		generations = append(generations, g)
	}
	return generations, rows.Err()
}
