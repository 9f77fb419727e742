package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/news-api/internal/database"
	"github.com/news-api/internal/models"
)

// topicRepo is the concrete implementation of TopicRepository
type topicRepo struct {
	db *database.DB
}

// NewTopicRepo creates a new topic repository
func NewTopicRepo(db *database.DB) TopicRepository {
	return &topicRepo{db: db}
}

// List returns every topic ordered by slug
func (r *topicRepo) List(ctx context.Context) ([]*models.Topic, error) {
	topics := []*models.Topic{}
	if err := r.db.SelectContext(ctx, &topics, `SELECT slug, description FROM topics ORDER BY slug`); err != nil {
		return nil, mapStoreError(err)
	}
	return topics, nil
}

// GetBySlug retrieves a topic, or nil when it does not exist
func (r *topicRepo) GetBySlug(ctx context.Context, slug string) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.GetContext(ctx, &topic, `SELECT slug, description FROM topics WHERE slug = $1`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &topic, nil
}

// Create inserts a topic and returns the stored row
func (r *topicRepo) Create(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	query := `
		INSERT INTO topics (slug, description)
		VALUES ($1, $2)
		RETURNING slug, description
	`
	var created models.Topic
	if err := r.db.QueryRowxContext(ctx, query, topic.Slug, topic.Description).StructScan(&created); err != nil {
		return nil, mapStoreError(err)
	}
	return &created, nil
}

// Exists checks if a topic with the given slug exists
func (r *topicRepo) Exists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM topics WHERE slug = $1)", slug)
	return exists, mapStoreError(err)
}

// BatchInsert inserts topics using PostgreSQL COPY
func (r *topicRepo) BatchInsert(ctx context.Context, topics []*models.Topic) (int, error) {
	if len(topics) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("topics", "slug", "description"))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, topic := range topics {
		if _, err := stmt.ExecContext(ctx, topic.Slug, topic.Description); err != nil {
			continue
		}
		inserted++
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, mapStoreError(err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// Count returns the total number of topics
func (r *topicRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM topics")
	return count, mapStoreError(err)
}
