package mocks

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
)

// Store is the shared in-memory state behind the mock repositories. It
// enforces the same keys, foreign keys and cascades as the SQL schema.
type Store struct {
	mu            sync.RWMutex
	topics        map[string]*models.Topic
	users         map[string]*models.User
	articles      map[int]*models.Article
	comments      map[int]*models.Comment
	nextArticleID int
	nextCommentID int

	// Now stamps created_at on rows created without one
	Now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		topics:        make(map[string]*models.Topic),
		users:         make(map[string]*models.User),
		articles:      make(map[int]*models.Article),
		comments:      make(map[int]*models.Comment),
		nextArticleID: 1,
		nextCommentID: 1,
		Now:           time.Now,
	}
}

// Repositories returns mock repositories sharing this store
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Topic:   NewMockTopicRepository(s),
		User:    NewMockUserRepository(s),
		Article: NewMockArticleRepository(s),
		Comment: NewMockCommentRepository(s),
	}
}

func (s *Store) commentCount(articleID int) int {
	n := 0
	for _, c := range s.comments {
		if c.ArticleID == articleID {
			n++
		}
	}
	return n
}

func (s *Store) articleView(a *models.Article) *models.Article {
	out := *a
	out.CommentCount = s.commentCount(a.ID)
	return &out
}

func (s *Store) insertArticle(a *models.Article) (*models.Article, error) {
	if _, ok := s.topics[a.Topic]; !ok {
		return nil, apperror.NewUnprocessable(apperror.MsgRelationMissing)
	}
	if _, ok := s.users[a.Author]; !ok {
		return nil, apperror.NewUnprocessable(apperror.MsgRelationMissing)
	}
	stored := *a
	stored.ID = s.nextArticleID
	stored.CommentCount = 0
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.Now()
	}
	s.nextArticleID++
	s.articles[stored.ID] = &stored
	return s.articleView(&stored), nil
}

func (s *Store) insertComment(c *models.Comment) (*models.Comment, error) {
	if _, ok := s.articles[c.ArticleID]; !ok {
		return nil, apperror.NewUnprocessable(apperror.MsgArticleNotFound)
	}
	if _, ok := s.users[c.Author]; !ok {
		return nil, apperror.NewUnprocessable(apperror.MsgRelationMissing)
	}
	stored := *c
	stored.ID = s.nextCommentID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.Now()
	}
	s.nextCommentID++
	s.comments[stored.ID] = &stored
	out := stored
	return &out, nil
}

// paginate returns the page of rows selected by opts
func paginate[T any](rows []T, opts repository.ListOptions) []T {
	start := opts.Offset()
	if start < 0 || start >= len(rows) {
		return []T{}
	}
	end := len(rows)
	if opts.Limit < end-start {
		end = start + opts.Limit
	}
	return rows[start:end]
}

// sortRows orders rows by key, breaking ties by id in the same direction
func sortRows[T any](rows []T, order repository.SortOrder, key func(a, b T) int, id func(T) int) {
	slices.SortStableFunc(rows, func(a, b T) int {
		c := key(a, b)
		if c == 0 {
			c = cmp.Compare(id(a), id(b))
		}
		if order == repository.OrderAsc {
			return c
		}
		return -c
	})
}

func compareArticles(sortBy string) func(a, b *models.Article) int {
	switch sortBy {
	case "article_id":
		return func(a, b *models.Article) int { return cmp.Compare(a.ID, b.ID) }
	case "title":
		return func(a, b *models.Article) int { return strings.Compare(a.Title, b.Title) }
	case "votes":
		return func(a, b *models.Article) int { return cmp.Compare(a.Votes, b.Votes) }
	case "topic":
		return func(a, b *models.Article) int { return strings.Compare(a.Topic, b.Topic) }
	case "author":
		return func(a, b *models.Article) int { return strings.Compare(a.Author, b.Author) }
	case "comment_count":
		return func(a, b *models.Article) int { return cmp.Compare(a.CommentCount, b.CommentCount) }
	default:
		return func(a, b *models.Article) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}

func compareComments(sortBy string) func(a, b *models.Comment) int {
	switch sortBy {
	case "comment_id":
		return func(a, b *models.Comment) int { return cmp.Compare(a.ID, b.ID) }
	case "author":
		return func(a, b *models.Comment) int { return strings.Compare(a.Author, b.Author) }
	case "votes":
		return func(a, b *models.Comment) int { return cmp.Compare(a.Votes, b.Votes) }
	default:
		return func(a, b *models.Comment) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	store            *Store
	InsertError      error
	BatchInsertFunc  func(ctx context.Context, topics []*models.Topic) (int, error)
	BatchInsertCalls int
}

var _ repository.TopicRepository = (*MockTopicRepository)(nil)

func NewMockTopicRepository(store *Store) *MockTopicRepository {
	return &MockTopicRepository{store: store}
}

func (m *MockTopicRepository) List(ctx context.Context) ([]*models.Topic, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	topics := make([]*models.Topic, 0, len(m.store.topics))
	for _, t := range m.store.topics {
		out := *t
		topics = append(topics, &out)
	}
	slices.SortFunc(topics, func(a, b *models.Topic) int { return strings.Compare(a.Slug, b.Slug) })
	return topics, nil
}

func (m *MockTopicRepository) GetBySlug(ctx context.Context, slug string) (*models.Topic, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	t, ok := m.store.topics[slug]
	if !ok {
		return nil, nil
	}
	out := *t
	return &out, nil
}

func (m *MockTopicRepository) Create(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	if m.InsertError != nil {
		return nil, m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.topics[topic.Slug]; ok {
		return nil, apperror.New(apperror.Conflict, apperror.MsgAlreadyExists)
	}
	stored := *topic
	m.store.topics[topic.Slug] = &stored
	out := stored
	return &out, nil
}

func (m *MockTopicRepository) Exists(ctx context.Context, slug string) (bool, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	_, ok := m.store.topics[slug]
	return ok, nil
}

func (m *MockTopicRepository) BatchInsert(ctx context.Context, topics []*models.Topic) (int, error) {
	m.BatchInsertCalls++
	if m.BatchInsertFunc != nil {
		return m.BatchInsertFunc(ctx, topics)
	}
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, t := range topics {
		if _, ok := m.store.topics[t.Slug]; ok {
			return 0, apperror.New(apperror.Conflict, apperror.MsgAlreadyExists)
		}
	}
	for _, t := range topics {
		stored := *t
		m.store.topics[t.Slug] = &stored
	}
	return len(topics), nil
}

func (m *MockTopicRepository) Count(ctx context.Context) (int, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return len(m.store.topics), nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	store            *Store
	InsertError      error
	BatchInsertFunc  func(ctx context.Context, users []*models.User) (int, error)
	BatchInsertCalls int
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository(store *Store) *MockUserRepository {
	return &MockUserRepository{store: store}
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	users := make([]*models.User, 0, len(m.store.users))
	for _, u := range m.store.users {
		out := *u
		users = append(users, &out)
	}
	slices.SortFunc(users, func(a, b *models.User) int { return strings.Compare(a.Username, b.Username) })
	return users, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	u, ok := m.store.users[username]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.InsertError != nil {
		return nil, m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.users[user.Username]; ok {
		return nil, apperror.New(apperror.Conflict, apperror.MsgAlreadyExists)
	}
	stored := *user
	m.store.users[user.Username] = &stored
	out := stored
	return &out, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	_, ok := m.store.users[username]
	return ok, nil
}

func (m *MockUserRepository) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	m.BatchInsertCalls++
	if m.BatchInsertFunc != nil {
		return m.BatchInsertFunc(ctx, users)
	}
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, u := range users {
		if _, ok := m.store.users[u.Username]; ok {
			return 0, apperror.New(apperror.Conflict, apperror.MsgAlreadyExists)
		}
	}
	for _, u := range users {
		stored := *u
		m.store.users[u.Username] = &stored
	}
	return len(users), nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return len(m.store.users), nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	store            *Store
	InsertError      error
	BatchInsertFunc  func(ctx context.Context, articles []*models.Article) (int, error)
	BatchInsertCalls int
}

var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository(store *Store) *MockArticleRepository {
	return &MockArticleRepository{store: store}
}

func (m *MockArticleRepository) List(ctx context.Context, filter repository.ArticleFilter) ([]*models.Article, int, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	matched := make([]*models.Article, 0)
	for _, a := range m.store.articles {
		if !filter.Matches(a.Author, a.Topic) {
			continue
		}
		view := m.store.articleView(a)
		view.Body = ""
		matched = append(matched, view)
	}

	sortRows(matched, filter.Order, compareArticles(filter.SortBy), func(a *models.Article) int { return a.ID })
	return paginate(matched, filter.ListOptions), len(matched), nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int) (*models.Article, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	a, ok := m.store.articles[id]
	if !ok {
		return nil, nil
	}
	return m.store.articleView(a), nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	if m.InsertError != nil {
		return nil, m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	created := *article
	created.Votes = 0
	created.CreatedAt = time.Time{}
	return m.store.insertArticle(&created)
}

func (m *MockArticleRepository) UpdateVotes(ctx context.Context, id int, delta int) (*models.Article, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	a, ok := m.store.articles[id]
	if !ok {
		return nil, nil
	}
	a.Votes += delta
	return m.store.articleView(a), nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.articles[id]; !ok {
		return false, nil
	}
	delete(m.store.articles, id)
	for cid, c := range m.store.comments {
		if c.ArticleID == id {
			delete(m.store.comments, cid)
		}
	}
	return true, nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id int) (bool, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	_, ok := m.store.articles[id]
	return ok, nil
}

func (m *MockArticleRepository) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	m.BatchInsertCalls++
	if m.BatchInsertFunc != nil {
		return m.BatchInsertFunc(ctx, articles)
	}
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	inserted := 0
	for _, a := range articles {
		if _, err := m.store.insertArticle(a); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (m *MockArticleRepository) TitleIndex(ctx context.Context) (map[string]int, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	index := make(map[string]int, len(m.store.articles))
	for id, a := range m.store.articles {
		index[a.Title] = id
	}
	return index, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return len(m.store.articles), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	store            *Store
	InsertError      error
	BatchInsertFunc  func(ctx context.Context, comments []*models.Comment) (int, error)
	BatchInsertCalls int
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func NewMockCommentRepository(store *Store) *MockCommentRepository {
	return &MockCommentRepository{store: store}
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int, opts repository.ListOptions) ([]*models.Comment, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	matched := make([]*models.Comment, 0)
	for _, c := range m.store.comments {
		if c.ArticleID != articleID {
			continue
		}
		out := *c
		matched = append(matched, &out)
	}

	sortRows(matched, opts.Order, compareComments(opts.SortBy), func(c *models.Comment) int { return c.ID })
	return paginate(matched, opts), nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	c, ok := m.store.comments[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if m.InsertError != nil {
		return nil, m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	created := *comment
	created.Votes = 0
	created.CreatedAt = time.Time{}
	return m.store.insertComment(&created)
}

func (m *MockCommentRepository) UpdateVotes(ctx context.Context, id int, delta int) (*models.Comment, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	c, ok := m.store.comments[id]
	if !ok {
		return nil, nil
	}
	c.Votes += delta
	out := *c
	return &out, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.comments[id]; !ok {
		return false, nil
	}
	delete(m.store.comments, id)
	return true, nil
}

func (m *MockCommentRepository) BatchInsert(ctx context.Context, comments []*models.Comment) (int, error) {
	m.BatchInsertCalls++
	if m.BatchInsertFunc != nil {
		return m.BatchInsertFunc(ctx, comments)
	}
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	inserted := 0
	for _, c := range comments {
		if _, err := m.store.insertComment(c); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return len(m.store.comments), nil
}
