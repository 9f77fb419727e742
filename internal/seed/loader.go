// Package seed loads fixture data from NDJSON files into the repositories.
package seed

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/news-api/internal/auth"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/news-api/internal/validation"
	"github.com/rs/zerolog"
)

// Fixture file names, loaded in this order
const (
	TopicsFile   = "topics.ndjson"
	UsersFile    = "users.ndjson"
	ArticlesFile = "articles.ndjson"
	CommentsFile = "comments.ndjson"
)

// Loader reads fixture files, validates each record and batch-inserts the rest
type Loader struct {
	repos     *repository.Repositories
	hasher    auth.Hasher
	batchSize int
	log       zerolog.Logger
	now       func() time.Time
}

// NewLoader creates a loader
func NewLoader(repos *repository.Repositories, hasher auth.Hasher, batchSize int, log zerolog.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Loader{
		repos:     repos,
		hasher:    hasher,
		batchSize: batchSize,
		log:       log.With().Str("component", "seed").Logger(),
		now:       time.Now,
	}
}

// Run loads topics, users, articles and comments from dir. Invalid lines
// are skipped and reported; I/O and context errors abort the run.
func (l *Loader) Run(ctx context.Context, dir string) ([]*models.SeedReport, error) {
	validator := validation.NewValidator()
	steps := []struct {
		file string
		load func(context.Context, string, *validation.Validator, *models.SeedReport) error
	}{
		{TopicsFile, l.loadTopics},
		{UsersFile, l.loadUsers},
		{ArticlesFile, l.loadArticles},
		{CommentsFile, l.loadComments},
	}

	reports := make([]*models.SeedReport, 0, len(steps))
	for _, step := range steps {
		report := &models.SeedReport{
			Resource:  strings.TrimSuffix(step.file, ".ndjson"),
			StartedAt: l.now(),
		}
		path := filepath.Join(dir, step.file)

		if err := step.load(ctx, path, validator, report); err != nil {
			return reports, fmt.Errorf("seed %s: %w", report.Resource, err)
		}

		duration := time.Since(report.StartedAt)
		report.DurationMs = duration.Milliseconds()
		if report.Inserted > 0 && duration.Seconds() > 0 {
			report.RowsPerSec = float64(report.Inserted) / duration.Seconds()
		}
		reports = append(reports, report)

		l.log.Info().
			Str("resource", report.Resource).
			Int("total", report.Total).
			Int("inserted", report.Inserted).
			Int("failed", report.Failed).
			Int64("duration_ms", report.DurationMs).
			Msg("Seed step completed")
	}

	l.logCounts(ctx)
	return reports, nil
}

func (l *Loader) logCounts(ctx context.Context) {
	counters := map[string]func(context.Context) (int, error){
		"topics":   l.repos.Topic.Count,
		"users":    l.repos.User.Count,
		"articles": l.repos.Article.Count,
		"comments": l.repos.Comment.Count,
	}
	event := l.log.Info()
	for name, count := range counters {
		n, err := count(ctx)
		if err != nil {
			l.log.Warn().Err(err).Str("resource", name).Msg("Failed to count rows")
			continue
		}
		event = event.Int(name, n)
	}
	event.Msg("Seed finished")
}

func (l *Loader) loadTopics(ctx context.Context, path string, v *validation.Validator, report *models.SeedReport) error {
	b := newBatcher(l.batchSize, l.repos.Topic.BatchInsert, report, l.log)
	err := scanNDJSON(ctx, path, report, func(lineNum int, rec *models.TopicRecord) {
		if errs := v.ValidateTopic(rec, lineNum); len(errs) > 0 {
			report.Reject(errs...)
			return
		}
		v.AddTopic(rec.Slug)
		b.add(ctx, FormatTopic(rec))
	})
	if err != nil {
		return err
	}
	b.flush(ctx)
	return nil
}

func (l *Loader) loadUsers(ctx context.Context, path string, v *validation.Validator, report *models.SeedReport) error {
	b := newBatcher(l.batchSize, l.repos.User.BatchInsert, report, l.log)
	err := scanNDJSON(ctx, path, report, func(lineNum int, rec *models.UserRecord) {
		if errs := v.ValidateUser(rec, lineNum); len(errs) > 0 {
			report.Reject(errs...)
			return
		}

		user := &models.User{Username: rec.Username, Name: rec.Name, AvatarURL: rec.AvatarURL}
		if rec.Password != "" {
			hash, err := l.hasher.Hash(rec.Password)
			if err != nil {
				report.Reject(models.ValidationError{Line: lineNum, Field: "password", Message: "password could not be hashed"})
				return
			}
			user.Password = &hash
		}

		v.AddUser(rec.Username)
		b.add(ctx, user)
	})
	if err != nil {
		return err
	}
	b.flush(ctx)
	return nil
}

func (l *Loader) loadArticles(ctx context.Context, path string, v *validation.Validator, report *models.SeedReport) error {
	b := newBatcher(l.batchSize, l.repos.Article.BatchInsert, report, l.log)
	err := scanNDJSON(ctx, path, report, func(lineNum int, rec *models.ArticleRecord) {
		if errs := v.ValidateArticle(rec, lineNum); len(errs) > 0 {
			report.Reject(errs...)
			return
		}

		article := FormatArticle(rec)
		if article.CreatedAt.IsZero() {
			article.CreatedAt = l.now()
		}
		v.AddArticleTitle(rec.Title)
		b.add(ctx, article)
	})
	if err != nil {
		return err
	}
	b.flush(ctx)
	return nil
}

func (l *Loader) loadComments(ctx context.Context, path string, v *validation.Validator, report *models.SeedReport) error {
	titleIndex, err := l.repos.Article.TitleIndex(ctx)
	if err != nil {
		return fmt.Errorf("build article index: %w", err)
	}

	b := newBatcher(l.batchSize, l.repos.Comment.BatchInsert, report, l.log)
	err = scanNDJSON(ctx, path, report, func(lineNum int, rec *models.CommentRecord) {
		if errs := v.ValidateComment(rec, lineNum); len(errs) > 0 {
			report.Reject(errs...)
			return
		}

		comment, ok := FormatComment(rec, titleIndex)
		if !ok {
			report.Reject(models.ValidationError{Line: lineNum, Field: "belongs_to", Message: "article was not stored", Value: rec.BelongsTo})
			return
		}
		if comment.CreatedAt.IsZero() {
			comment.CreatedAt = l.now()
		}
		b.add(ctx, comment)
	})
	if err != nil {
		return err
	}
	b.flush(ctx)
	return nil
}

// scanNDJSON decodes one record per non-blank line and hands it to fn.
// Lines that are not valid JSON are rejected on the report.
func scanNDJSON[T any](ctx context.Context, path string, report *models.SeedReport, fn func(lineNum int, rec *T)) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		report.Total++

		if lineNum%1000 == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		var rec T
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			report.Reject(models.ValidationError{
				Line:    lineNum,
				Field:   "json",
				Message: fmt.Sprintf("invalid JSON: %v", err),
			})
			continue
		}
		fn(lineNum, &rec)
	}
	return scanner.Err()
}

// batcher accumulates rows and inserts them in fixed-size batches
type batcher[T any] struct {
	size   int
	items  []*T
	insert func(context.Context, []*T) (int, error)
	report *models.SeedReport
	log    zerolog.Logger
}

func newBatcher[T any](size int, insert func(context.Context, []*T) (int, error), report *models.SeedReport, log zerolog.Logger) *batcher[T] {
	return &batcher[T]{
		size:   size,
		items:  make([]*T, 0, size),
		insert: insert,
		report: report,
		log:    log,
	}
}

func (b *batcher[T]) add(ctx context.Context, item *T) {
	b.items = append(b.items, item)
	if len(b.items) >= b.size {
		b.flush(ctx)
	}
}

func (b *batcher[T]) flush(ctx context.Context) {
	if len(b.items) == 0 {
		return
	}

	inserted, err := b.insert(ctx, b.items)
	if err != nil {
		b.log.Error().Err(err).
			Str("resource", b.report.Resource).
			Int("batch_size", len(b.items)).
			Msg("Batch insert failed")
	}
	b.report.Inserted += inserted
	b.report.Failed += len(b.items) - inserted

	b.log.Debug().
		Str("resource", b.report.Resource).
		Int("inserted", b.report.Inserted).
		Msg("Batch processed")

	b.items = make([]*T, 0, b.size)
}
