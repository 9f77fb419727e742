package service

import (
	"context"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/rs/zerolog"
)

type topicService struct {
	topics repository.TopicRepository
	log    zerolog.Logger
}

func newTopicService(topics repository.TopicRepository, log zerolog.Logger) *topicService {
	return &topicService{
		topics: topics,
		log:    log.With().Str("service", "topics").Logger(),
	}
}

func (s *topicService) List(ctx context.Context) ([]*models.Topic, error) {
	return s.topics.List(ctx)
}

func (s *topicService) Get(ctx context.Context, slug string) (*models.Topic, error) {
	topic, err := s.topics.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, apperror.NewNotFound(apperror.MsgTopicNotFound)
	}
	return topic, nil
}

func (s *topicService) Create(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	created, err := s.topics.Create(ctx, topic)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("slug", created.Slug).Msg("Topic created")
	return created, nil
}
