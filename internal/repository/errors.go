package repository

import (
	"errors"

	"github.com/lib/pq"
	"github.com/news-api/internal/apperror"
)

// Postgres SQLSTATE codes the API distinguishes
const (
	codeStringDataTruncation      = "22001"
	codeNumericOutOfRange         = "22003"
	codeInvalidTextRepresentation = "22P02"
	codeUndefinedColumn           = "42703"
	codeNotNullViolation          = "23502"
	codeForeignKeyViolation       = "23503"
	codeUniqueViolation           = "23505"
)

// commentArticleFK is the constraint guarding comments.article_id
const commentArticleFK = "comments_article_id_fkey"

// mapStoreError translates driver errors into tagged API errors.
// Errors that are already tagged pass through unchanged.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return apperror.NewInternal(err)
	}

	switch pqErr.Code {
	case codeInvalidTextRepresentation, codeNumericOutOfRange, codeStringDataTruncation:
		return apperror.Wrap(apperror.BadRequest, apperror.MsgBadRequest, err)
	case codeUndefinedColumn:
		return apperror.Wrap(apperror.NotFound, apperror.MsgColumnNotFound, err)
	case codeNotNullViolation:
		return apperror.Wrap(apperror.BadRequest, apperror.MsgMissingData, err)
	case codeForeignKeyViolation:
		if pqErr.Constraint == commentArticleFK {
			return apperror.Wrap(apperror.Unprocessable, apperror.MsgArticleNotFound, err)
		}
		return apperror.Wrap(apperror.Unprocessable, apperror.MsgRelationMissing, err)
	case codeUniqueViolation:
		return apperror.Wrap(apperror.Conflict, apperror.MsgAlreadyExists, err)
	default:
		return apperror.NewInternal(err)
	}
}
