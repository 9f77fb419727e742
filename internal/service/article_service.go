package service

import (
	"context"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/rs/zerolog"
)

type articleService struct {
	articles repository.ArticleRepository
	log      zerolog.Logger
}

func newArticleService(articles repository.ArticleRepository, log zerolog.Logger) *articleService {
	return &articleService{
		articles: articles,
		log:      log.With().Str("service", "articles").Logger(),
	}
}

// List returns one page of articles. Unknown authors or topics simply match nothing.
func (s *articleService) List(ctx context.Context, filter repository.ArticleFilter) ([]*models.Article, int, error) {
	return s.articles.List(ctx, filter)
}

func (s *articleService) Get(ctx context.Context, id int) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperror.NewNotFound(apperror.MsgArticleNotFound)
	}
	return article, nil
}

func (s *articleService) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	created, err := s.articles.Create(ctx, article)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int("article_id", created.ID).
		Str("author", created.Author).
		Str("topic", created.Topic).
		Msg("Article created")
	return created, nil
}

func (s *articleService) Vote(ctx context.Context, id int, delta int) (*models.Article, error) {
	article, err := s.articles.UpdateVotes(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperror.NewNotFound(apperror.MsgArticleNotFound)
	}
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, id int) error {
	deleted, err := s.articles.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFound(apperror.MsgArticleNotFound)
	}
	s.log.Info().Int("article_id", id).Msg("Article deleted")
	return nil
}
