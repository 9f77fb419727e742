package validation

import (
	"strings"
	"testing"

	"github.com/news-api/internal/models"
)

func fields(errs []models.ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateTopic(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		topic      *models.TopicRecord
		wantFields []string
	}{
		{"valid topic", &models.TopicRecord{Slug: "mitch", Description: "The man, the Mitch, the legend"}, nil},
		{"kebab-case slug", &models.TopicRecord{Slug: "coding-tips", Description: "Code"}, nil},
		{"missing slug", &models.TopicRecord{Description: "d"}, []string{"slug"}},
		{"uppercase slug", &models.TopicRecord{Slug: "Cats", Description: "d"}, []string{"slug"}},
		{"missing description", &models.TopicRecord{Slug: "paper", Description: "   "}, []string{"description"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validator.ValidateTopic(tt.topic, 1)
			got := fields(errs)
			if len(got) != len(tt.wantFields) {
				t.Fatalf("Expected fields %v, got %v", tt.wantFields, got)
			}
			for i := range got {
				if got[i] != tt.wantFields[i] {
					t.Errorf("Expected field %s, got %s", tt.wantFields[i], got[i])
				}
			}
		})
	}
}

func TestValidateUser(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		user       *models.UserRecord
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid user",
			user:       &models.UserRecord{Username: "butter_bridge", Name: "jonny", AvatarURL: "https://www.healthytherapies.com/wp-content/uploads/2016/06/Lime3.jpg"},
			wantErrors: 0,
		},
		{
			name:       "missing username",
			user:       &models.UserRecord{Name: "jonny", AvatarURL: "https://example.com/a.png"},
			wantErrors: 1,
			wantFields: []string{"username"},
		},
		{
			name:       "username with spaces",
			user:       &models.UserRecord{Username: "butter bridge", Name: "jonny", AvatarURL: "https://example.com/a.png"},
			wantErrors: 1,
			wantFields: []string{"username"},
		},
		{
			name:       "avatar not a url",
			user:       &models.UserRecord{Username: "rogersop", Name: "paul", AvatarURL: "avatar.png"},
			wantErrors: 1,
			wantFields: []string{"avatar_url"},
		},
		{
			name:       "everything missing",
			user:       &models.UserRecord{},
			wantErrors: 3,
			wantFields: []string{"username", "name", "avatar_url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validator.ValidateUser(tt.user, 3)
			if len(errs) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %v", tt.wantErrors, len(errs), errs)
			}
			for i, f := range tt.wantFields {
				if i < len(errs) && errs[i].Field != f {
					t.Errorf("Expected error on field %s, got %s", f, errs[i].Field)
				}
			}
			for _, e := range errs {
				if e.Line != 3 {
					t.Errorf("Expected line 3, got %d", e.Line)
				}
			}
		})
	}
}

func TestDuplicateDetection(t *testing.T) {
	validator := NewValidator()

	user := &models.UserRecord{Username: "rogersop", Name: "paul", AvatarURL: "https://example.com/p.jpg"}
	if errs := validator.ValidateUser(user, 1); len(errs) != 0 {
		t.Fatalf("First user should be valid, got %v", errs)
	}
	validator.AddUser(user.Username)

	errs := validator.ValidateUser(user, 2)
	if len(errs) != 1 || errs[0].Message != "duplicate username" {
		t.Errorf("Expected duplicate username error, got %v", errs)
	}

	validator.AddTopic("cats")
	errs = validator.ValidateTopic(&models.TopicRecord{Slug: "cats", Description: "again"}, 3)
	if len(errs) != 1 || errs[0].Message != "duplicate slug" {
		t.Errorf("Expected duplicate slug error, got %v", errs)
	}
}

func TestValidateArticle_ForeignKeyValidation(t *testing.T) {
	validator := NewValidator()
	validator.AddTopic("mitch")
	validator.AddUser("butter_bridge")

	valid := &models.ArticleRecord{
		Title:     "Living in the shadow of a great man",
		Topic:     "mitch",
		Author:    "butter_bridge",
		Body:      "I find this existence challenging",
		CreatedAt: 1594329060000,
		Votes:     100,
	}
	if errs := validator.ValidateArticle(valid, 1); len(errs) != 0 {
		t.Errorf("Expected valid article, got %v", errs)
	}

	dangling := *valid
	dangling.Topic = "dogs"
	dangling.Author = "ghost"
	errs := validator.ValidateArticle(&dangling, 2)
	got := fields(errs)
	if len(got) != 2 || got[0] != "topic" || got[1] != "author" {
		t.Errorf("Expected topic and author errors, got %v", errs)
	}

	validator.AddArticleTitle(valid.Title)
	errs = validator.ValidateArticle(valid, 3)
	if len(errs) != 1 || errs[0].Message != "duplicate title" {
		t.Errorf("Expected duplicate title error, got %v", errs)
	}
}

func TestValidateComment(t *testing.T) {
	validator := NewValidator()
	validator.AddUser("butter_bridge")
	validator.AddArticleTitle("They're not exactly dogs, are they?")

	tests := []struct {
		name       string
		comment    *models.CommentRecord
		wantFields []string
	}{
		{
			name: "valid comment",
			comment: &models.CommentRecord{
				Body:      "Oh, I've got compassion running out of my nose, pal!",
				BelongsTo: "They're not exactly dogs, are they?",
				CreatedBy: "butter_bridge",
				Votes:     16,
				CreatedAt: 1586179020000,
			},
		},
		{
			name:       "unknown article",
			comment:    &models.CommentRecord{Body: "hi", BelongsTo: "Nope", CreatedBy: "butter_bridge"},
			wantFields: []string{"belongs_to"},
		},
		{
			name:       "unknown author and empty body",
			comment:    &models.CommentRecord{BelongsTo: "They're not exactly dogs, are they?", CreatedBy: "ghost"},
			wantFields: []string{"created_by", "body"},
		},
		{
			name:       "negative timestamp",
			comment:    &models.CommentRecord{Body: "hi", BelongsTo: "They're not exactly dogs, are they?", CreatedBy: "butter_bridge", CreatedAt: -5},
			wantFields: []string{"created_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields(validator.ValidateComment(tt.comment, 1))
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("Expected fields %v, got %v", tt.wantFields, got)
			}
		})
	}
}

func TestCommentBodyWordBoundary(t *testing.T) {
	// Exactly 500 words - should pass
	if msg := CheckCommentBody(strings.TrimSpace(strings.Repeat("word ", 500))); msg != "" {
		t.Errorf("500 words should be valid, got %q", msg)
	}

	// 501 words - should fail
	msg := CheckCommentBody(strings.TrimSpace(strings.Repeat("word ", 501)))
	if !strings.Contains(msg, "maximum of 500 words") {
		t.Errorf("501 words should fail validation, got %q", msg)
	}

	if CheckCommentBody(" \n\t") == "" {
		t.Error("Blank body should fail validation")
	}
}
