package service

import (
	"context"

	"github.com/news-api/internal/auth"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/rs/zerolog"
)

// TopicService defines the topic operations exposed over HTTP
type TopicService interface {
	List(ctx context.Context) ([]*models.Topic, error)
	Get(ctx context.Context, slug string) (*models.Topic, error)
	Create(ctx context.Context, topic *models.Topic) (*models.Topic, error)
}

// UserService defines the user operations exposed over HTTP
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, input NewUser) (*models.User, error)
}

// ArticleService defines the article operations exposed over HTTP
type ArticleService interface {
	List(ctx context.Context, filter repository.ArticleFilter) ([]*models.Article, int, error)
	Get(ctx context.Context, id int) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) (*models.Article, error)
	Vote(ctx context.Context, id int, delta int) (*models.Article, error)
	Delete(ctx context.Context, id int) error
}

// CommentService defines the comment operations exposed over HTTP
type CommentService interface {
	ListForArticle(ctx context.Context, articleID int, opts repository.ListOptions) ([]*models.Comment, error)
	Get(ctx context.Context, id int) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Vote(ctx context.Context, id int, delta int) (*models.Comment, error)
	Delete(ctx context.Context, id int) error
}

// AuthService defines login and token checks
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(token string) (*auth.Claims, error)
}

// Services holds all service interfaces
type Services struct {
	Topics   TopicService
	Users    UserService
	Articles ArticleService
	Comments CommentService
	Auth     AuthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, hasher auth.Hasher, tokens auth.Tokens, log zerolog.Logger) *Services {
	return &Services{
		Topics:   newTopicService(repos.Topic, log),
		Users:    newUserService(repos.User, hasher, log),
		Articles: newArticleService(repos.Article, log),
		Comments: newCommentService(repos.Comment, repos.Article, log),
		Auth:     newAuthService(repos.User, hasher, tokens, log),
	}
}
