package api

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/repository"
	"github.com/rs/zerolog"
)

// respondError renders err as {"msg": ...}. Server errors are logged with their cause.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	status, msg := apperror.Describe(err)
	if status >= 500 {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(ctxRequestID)).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"msg": msg})
}

// idParam parses a numeric path parameter. Ids are Postgres INTEGERs, so
// anything outside int32 is malformed.
func idParam(c *gin.Context, name string) (int, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperror.NewBadRequest(apperror.MsgBadRequest)
	}
	return int(id), nil
}

// bindJSON decodes the request body, mapping any decode failure to BadRequest
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.Wrap(apperror.BadRequest, apperror.MsgBadRequest, err)
	}
	return nil
}

// requireFields fails with BadRequest when any value is empty
func requireFields(values ...string) error {
	for _, v := range values {
		if v == "" {
			return apperror.NewBadRequest(apperror.MsgMissingData)
		}
	}
	return nil
}

// voteDelta reads a body that must be exactly {"inc_votes": <int32>}
func voteDelta(c *gin.Context) (int, error) {
	bad := apperror.NewBadRequest(apperror.MsgBadRequest)

	raw, err := c.GetRawData()
	if err != nil {
		return 0, bad
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) != 1 {
		return 0, bad
	}
	value, ok := fields["inc_votes"]
	if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return 0, bad
	}

	var delta int32
	if err := json.Unmarshal(value, &delta); err != nil {
		return 0, bad
	}
	return int(delta), nil
}

// listParams collects the shared sort and page query parameters
func listParams(c *gin.Context) repository.ListParams {
	return repository.ListParams{
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
		Limit:  c.Query("limit"),
		Page:   c.Query("p"),
	}
}
