package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/news-api/internal/models"
)

var (
	slugRegex     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)
)

// Validator checks seed records. It remembers accepted keys so later
// records can be checked for duplicates and dangling references.
type Validator struct {
	topicCache   map[string]bool
	userCache    map[string]bool
	articleCache map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		topicCache:   make(map[string]bool),
		userCache:    make(map[string]bool),
		articleCache: make(map[string]bool),
	}
}

// AddTopic records an accepted topic slug
func (v *Validator) AddTopic(slug string) {
	v.topicCache[slug] = true
}

// AddUser records an accepted username
func (v *Validator) AddUser(username string) {
	v.userCache[username] = true
}

// AddArticleTitle records an accepted article title
func (v *Validator) AddArticleTitle(title string) {
	v.articleCache[title] = true
}

// ValidateTopic validates a topic record
func (v *Validator) ValidateTopic(topic *models.TopicRecord, lineNum int) []models.ValidationError {
	var errors []models.ValidationError

	if topic.Slug == "" {
		errors = append(errors, fieldError(lineNum, "slug", "slug is required", nil))
	} else if !slugRegex.MatchString(topic.Slug) {
		errors = append(errors, fieldError(lineNum, "slug", "slug must be kebab-case (lowercase letters, numbers, hyphens)", topic.Slug))
	} else if v.topicCache[topic.Slug] {
		errors = append(errors, fieldError(lineNum, "slug", "duplicate slug", topic.Slug))
	}

	if strings.TrimSpace(topic.Description) == "" {
		errors = append(errors, fieldError(lineNum, "description", "description is required", nil))
	}

	return errors
}

// ValidateUser validates a user record
func (v *Validator) ValidateUser(user *models.UserRecord, lineNum int) []models.ValidationError {
	var errors []models.ValidationError

	if user.Username == "" {
		errors = append(errors, fieldError(lineNum, "username", "username is required", nil))
	} else if !usernameRegex.MatchString(user.Username) {
		errors = append(errors, fieldError(lineNum, "username", "username may only contain letters, numbers, '_', '.' and '-'", user.Username))
	} else if v.userCache[user.Username] {
		errors = append(errors, fieldError(lineNum, "username", "duplicate username", user.Username))
	}

	if strings.TrimSpace(user.Name) == "" {
		errors = append(errors, fieldError(lineNum, "name", "name is required", nil))
	}

	if user.AvatarURL == "" {
		errors = append(errors, fieldError(lineNum, "avatar_url", "avatar_url is required", nil))
	} else if !isHTTPURL(user.AvatarURL) {
		errors = append(errors, fieldError(lineNum, "avatar_url", "avatar_url must be an http(s) URL", user.AvatarURL))
	}

	return errors
}

// ValidateArticle validates an article record; author and topic must have been accepted earlier
func (v *Validator) ValidateArticle(article *models.ArticleRecord, lineNum int) []models.ValidationError {
	var errors []models.ValidationError

	if strings.TrimSpace(article.Title) == "" {
		errors = append(errors, fieldError(lineNum, "title", "title is required", nil))
	} else if v.articleCache[article.Title] {
		errors = append(errors, fieldError(lineNum, "title", "duplicate title", article.Title))
	}

	if article.Body == "" {
		errors = append(errors, fieldError(lineNum, "body", "body is required", nil))
	}

	if article.Topic == "" {
		errors = append(errors, fieldError(lineNum, "topic", "topic is required", nil))
	} else if len(v.topicCache) > 0 && !v.topicCache[article.Topic] {
		errors = append(errors, fieldError(lineNum, "topic", "referenced topic does not exist", article.Topic))
	}

	if article.Author == "" {
		errors = append(errors, fieldError(lineNum, "author", "author is required", nil))
	} else if len(v.userCache) > 0 && !v.userCache[article.Author] {
		errors = append(errors, fieldError(lineNum, "author", "referenced user does not exist", article.Author))
	}

	if article.CreatedAt < 0 {
		errors = append(errors, fieldError(lineNum, "created_at", "created_at must be epoch milliseconds", article.CreatedAt))
	}

	return errors
}

// ValidateComment validates a comment record; the parent article is named by title
func (v *Validator) ValidateComment(comment *models.CommentRecord, lineNum int) []models.ValidationError {
	var errors []models.ValidationError

	if comment.BelongsTo == "" {
		errors = append(errors, fieldError(lineNum, "belongs_to", "belongs_to is required", nil))
	} else if len(v.articleCache) > 0 && !v.articleCache[comment.BelongsTo] {
		errors = append(errors, fieldError(lineNum, "belongs_to", "referenced article does not exist", comment.BelongsTo))
	}

	if comment.CreatedBy == "" {
		errors = append(errors, fieldError(lineNum, "created_by", "created_by is required", nil))
	} else if len(v.userCache) > 0 && !v.userCache[comment.CreatedBy] {
		errors = append(errors, fieldError(lineNum, "created_by", "referenced user does not exist", comment.CreatedBy))
	}

	if msg := CheckCommentBody(comment.Body); msg != "" {
		errors = append(errors, fieldError(lineNum, "body", msg, nil))
	}

	if comment.CreatedAt < 0 {
		errors = append(errors, fieldError(lineNum, "created_at", "created_at must be epoch milliseconds", comment.CreatedAt))
	}

	return errors
}

// CheckCommentBody returns a message describing why body is unacceptable, or ""
func CheckCommentBody(body string) string {
	if strings.TrimSpace(body) == "" {
		return "body is required"
	}
	if wordCount := len(strings.Fields(body)); wordCount > models.MaxCommentWords {
		return fmt.Sprintf("body exceeds maximum of %d words (has %d)", models.MaxCommentWords, wordCount)
	}
	return ""
}

func fieldError(line int, field, msg string, value interface{}) models.ValidationError {
	return models.ValidationError{Line: line, Field: field, Message: msg, Value: value}
}

func isHTTPURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
