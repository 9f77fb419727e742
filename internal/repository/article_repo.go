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

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleCommentCount = `(SELECT COUNT(*) FROM comments c WHERE c.article_id = articles.article_id) AS comment_count`

// List returns one page of articles without bodies, plus the total match count
func (r *articleRepo) List(ctx context.Context, filter ArticleFilter) ([]*models.Article, int, error) {
	where, args := filter.where()

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM articles a %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, mapStoreError(err)
	}

	query := fmt.Sprintf(`
		SELECT a.article_id, a.title, a.votes, a.topic, a.author, a.created_at,
			COUNT(c.comment_id) AS comment_count
		FROM articles a
		LEFT JOIN comments c ON c.article_id = a.article_id
		%s
		GROUP BY a.article_id
		%s
		LIMIT $%d OFFSET $%d
	`, where, filter.orderBy(ArticleColumns, "a.article_id"), len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	articles := []*models.Article{}
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, 0, mapStoreError(err)
	}
	return articles, total, nil
}

// GetByID retrieves an article with its body and comment count, or nil when absent
func (r *articleRepo) GetByID(ctx context.Context, id int) (*models.Article, error) {
	query := `
		SELECT a.article_id, a.title, a.body, a.votes, a.topic, a.author, a.created_at,
			COUNT(c.comment_id) AS comment_count
		FROM articles a
		LEFT JOIN comments c ON c.article_id = a.article_id
		WHERE a.article_id = $1
		GROUP BY a.article_id
	`
	var article models.Article
	err := r.db.GetContext(ctx, &article, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &article, nil
}

// Create inserts an article; votes start at zero and created_at defaults to now
func (r *articleRepo) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	query := `
		INSERT INTO articles (title, body, topic, author)
		VALUES ($1, $2, $3, $4)
		RETURNING article_id, title, body, votes, topic, author, created_at
	`
	var created models.Article
	err := r.db.QueryRowxContext(ctx, query, article.Title, article.Body, article.Topic, article.Author).StructScan(&created)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &created, nil
}

// UpdateVotes applies a relative vote delta, returning nil when the article is absent
func (r *articleRepo) UpdateVotes(ctx context.Context, id int, delta int) (*models.Article, error) {
	query := `
		UPDATE articles SET votes = votes + $1
		WHERE article_id = $2
		RETURNING article_id, title, body, votes, topic, author, created_at, ` + articleCommentCount

	var article models.Article
	err := r.db.QueryRowxContext(ctx, query, delta, id).StructScan(&article)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &article, nil
}

// Delete removes an article and, by cascade, its comments
func (r *articleRepo) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE article_id = $1`, id)
	if err != nil {
		return false, mapStoreError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Exists checks if an article with the given id exists
func (r *articleRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = $1)", id)
	return exists, mapStoreError(err)
}

// BatchInsert inserts articles using PostgreSQL COPY. Ids are generated.
func (r *articleRepo) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("articles",
		"title", "body", "votes", "topic", "author", "created_at",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, article := range articles {
		_, err := stmt.ExecContext(ctx,
			article.Title, article.Body, article.Votes, article.Topic, article.Author, article.CreatedAt,
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

// TitleIndex maps every article title to its id
func (r *articleRepo) TitleIndex(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx, "SELECT title, article_id FROM articles")
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var title string
		var id int
		if err := rows.Scan(&title, &id); err != nil {
			return nil, err
		}
		index[title] = id
	}
	return index, rows.Err()
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles")
	return count, mapStoreError(err)
}
