package repository

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/news-api/internal/apperror"
)

// Listing defaults
const (
	DefaultSortBy = "created_at"
	DefaultLimit  = 10
	DefaultPage   = 1
)

// SortOrder is the direction of a listing sort
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseOrder accepts "asc" or "desc" in any case; anything else is desc
func ParseOrder(raw string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(raw), string(OrderAsc)) {
		return OrderAsc
	}
	return OrderDesc
}

// Columns maps a public sort key to its SQL expression
type Columns map[string]string

// ArticleColumns are the sort keys accepted by the article listing
var ArticleColumns = Columns{
	"article_id":    "a.article_id",
	"title":         "a.title",
	"votes":         "a.votes",
	"topic":         "a.topic",
	"author":        "a.author",
	"created_at":    "a.created_at",
	"comment_count": "comment_count",
}

// CommentColumns are the sort keys accepted by the comment listing
var CommentColumns = Columns{
	"comment_id": "c.comment_id",
	"author":     "c.author",
	"votes":      "c.votes",
	"created_at": "c.created_at",
}

// ListParams carries raw query-string values before validation
type ListParams struct {
	SortBy string
	Order  string
	Limit  string
	Page   string
}

// ListOptions is a validated sort and page request
type ListOptions struct {
	SortBy string
	Order  SortOrder
	Limit  int
	Page   int
}

// DefaultListOptions returns the options used when nothing is requested
func DefaultListOptions() ListOptions {
	return ListOptions{SortBy: DefaultSortBy, Order: OrderDesc, Limit: DefaultLimit, Page: DefaultPage}
}

// ParseListOptions validates raw listing params against the allowed columns.
// Unknown sort keys, non-positive or non-numeric limit/page and pages whose
// offset would overflow are rejected; an unrecognised order falls back to desc.
func ParseListOptions(p ListParams, cols Columns) (ListOptions, error) {
	opts := DefaultListOptions()

	if p.SortBy != "" {
		if _, ok := cols[p.SortBy]; !ok {
			return opts, apperror.NewBadRequest(fmt.Sprintf("Invalid sort_by: %s", p.SortBy))
		}
		opts.SortBy = p.SortBy
	}
	opts.Order = ParseOrder(p.Order)

	if p.Limit != "" {
		limit, err := strconv.Atoi(p.Limit)
		if err != nil || limit < 1 {
			return opts, apperror.NewBadRequest("Invalid limit")
		}
		opts.Limit = limit
	}

	if p.Page != "" {
		page, err := strconv.Atoi(p.Page)
		if err != nil || page < 1 {
			return opts, apperror.NewBadRequest("Invalid page")
		}
		opts.Page = page
	}

	if opts.Page-1 > math.MaxInt/opts.Limit {
		return opts, apperror.NewBadRequest("Invalid page")
	}

	return opts, nil
}

// Offset is the number of rows skipped before the requested page
func (o ListOptions) Offset() int {
	return o.Limit * (o.Page - 1)
}

// orderBy renders an ORDER BY clause with the primary key as tie-breaker so
// pages never overlap. Unknown keys fall back to the default column.
func (o ListOptions) orderBy(cols Columns, pk string) string {
	col, ok := cols[o.SortBy]
	if !ok {
		col = cols[DefaultSortBy]
	}
	dir := "DESC"
	if o.Order == OrderAsc {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, %s %s", col, dir, pk, dir)
}

// ArticleFilter narrows an article listing; empty fields are not applied
type ArticleFilter struct {
	Author string
	Topic  string
	ListOptions
}

// where renders the filter as a WHERE clause with positional args starting at $1
func (f ArticleFilter) where() (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Author != "" {
		args = append(args, f.Author)
		conds = append(conds, fmt.Sprintf("a.author = $%d", len(args)))
	}
	if f.Topic != "" {
		args = append(args, f.Topic)
		conds = append(conds, fmt.Sprintf("a.topic = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// Matches reports whether an article with the given author and topic passes the filter
func (f ArticleFilter) Matches(author, topic string) bool {
	return (f.Author == "" || f.Author == author) && (f.Topic == "" || f.Topic == topic)
}
