package repository

import (
	"context"

	"github.com/news-api/internal/database"
	"github.com/news-api/internal/models"
)

// TopicRepository defines the interface for topic data operations
type TopicRepository interface {
	List(ctx context.Context) ([]*models.Topic, error)
	GetBySlug(ctx context.Context, slug string) (*models.Topic, error)
	Create(ctx context.Context, topic *models.Topic) (*models.Topic, error)
	Exists(ctx context.Context, slug string) (bool, error)
	BatchInsert(ctx context.Context, topics []*models.Topic) (int, error)
	Count(ctx context.Context) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	BatchInsert(ctx context.Context, users []*models.User) (int, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	// List returns one page of articles plus the unpaginated match count
	List(ctx context.Context, filter ArticleFilter) ([]*models.Article, int, error)
	GetByID(ctx context.Context, id int) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) (*models.Article, error)
	UpdateVotes(ctx context.Context, id int, delta int) (*models.Article, error)
	Delete(ctx context.Context, id int) (bool, error)
	Exists(ctx context.Context, id int) (bool, error)
	BatchInsert(ctx context.Context, articles []*models.Article) (int, error)
	// TitleIndex maps article titles to ids (used to resolve seed comments)
	TitleIndex(ctx context.Context) (map[string]int, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID int, opts ListOptions) ([]*models.Comment, error)
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	UpdateVotes(ctx context.Context, id int, delta int) (*models.Comment, error)
	Delete(ctx context.Context, id int) (bool, error)
	BatchInsert(ctx context.Context, comments []*models.Comment) (int, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Topic   TopicRepository
	User    UserRepository
	Article ArticleRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Topic:   NewTopicRepo(db),
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
	}
}
