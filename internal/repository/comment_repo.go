package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/news-api/internal/database"
	"github.com/news-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

const commentColumns = `comment_id, author, article_id, votes, created_at, body`

// ListByArticle returns one page of an article's comments
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int, opts ListOptions) ([]*models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.comment_id, c.author, c.article_id, c.votes, c.created_at, c.body
		FROM comments c
		WHERE c.article_id = $1
		%s
		LIMIT $2 OFFSET $3
	`, opts.orderBy(CommentColumns, "c.comment_id"))

	comments := []*models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, articleID, opts.Limit, opts.Offset()); err != nil {
		return nil, mapStoreError(err)
	}
	return comments, nil
}

// GetByID retrieves a comment, or nil when absent
func (r *commentRepo) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, `SELECT `+commentColumns+` FROM comments WHERE comment_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &comment, nil
}

// Create inserts a comment; a missing parent article surfaces as Unprocessable
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (author, article_id, body)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns

	var created models.Comment
	err := r.db.QueryRowxContext(ctx, query, comment.Author, comment.ArticleID, comment.Body).StructScan(&created)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &created, nil
}

// UpdateVotes applies a relative vote delta, returning nil when the comment is absent
func (r *commentRepo) UpdateVotes(ctx context.Context, id int, delta int) (*models.Comment, error) {
	query := `
		UPDATE comments SET votes = votes + $1
		WHERE comment_id = $2
		RETURNING ` + commentColumns

	var comment models.Comment
	err := r.db.QueryRowxContext(ctx, query, delta, id).StructScan(&comment)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &comment, nil
}

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	if err != nil {
		return false, mapStoreError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BatchInsert inserts comments using PostgreSQL COPY
func (r *commentRepo) BatchInsert(ctx context.Context, comments []*models.Comment) (int, error) {
	if len(comments) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("comments",
		"author", "article_id", "votes", "created_at", "body",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, comment := range comments {
		_, err := stmt.ExecContext(ctx,
			comment.Author, comment.ArticleID, comment.Votes, comment.CreatedAt, comment.Body,
		)
		if err != nil {
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

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM comments")
	return count, mapStoreError(err)
}
