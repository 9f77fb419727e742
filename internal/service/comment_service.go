package service

import (
	"context"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/news-api/internal/validation"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	log      zerolog.Logger
}

func newCommentService(comments repository.CommentRepository, articles repository.ArticleRepository, log zerolog.Logger) *commentService {
	return &commentService{
		comments: comments,
		articles: articles,
		log:      log.With().Str("service", "comments").Logger(),
	}
}

// ListForArticle returns a page of an article's comments, or NotFound when
// the article does not exist. Both lookups run concurrently.
func (s *commentService) ListForArticle(ctx context.Context, articleID int, opts repository.ListOptions) ([]*models.Comment, error) {
	var (
		exists   bool
		comments []*models.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		exists, err = s.articles.Exists(gctx, articleID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.ListByArticle(gctx, articleID, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !exists {
		return nil, apperror.NewNotFound(apperror.MsgArticleNotFound)
	}
	return comments, nil
}

func (s *commentService) Get(ctx context.Context, id int) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperror.NewNotFound(apperror.MsgCommentNotFound)
	}
	return comment, nil
}

// Create adds a comment; a missing article surfaces from the store as Unprocessable
func (s *commentService) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if msg := validation.CheckCommentBody(comment.Body); msg != "" {
		return nil, apperror.NewBadRequest(msg)
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int("comment_id", created.ID).
		Int("article_id", created.ArticleID).
		Msg("Comment created")
	return created, nil
}

func (s *commentService) Vote(ctx context.Context, id int, delta int) (*models.Comment, error) {
	comment, err := s.comments.UpdateVotes(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperror.NewNotFound(apperror.MsgCommentNotFound)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, id int) error {
	deleted, err := s.comments.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFound(apperror.MsgCommentNotFound)
	}
	s.log.Info().Int("comment_id", id).Msg("Comment deleted")
	return nil
}
