package helpers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/quizapi/internal/pkg/apperrors"
)

// Defaults for the limit_start/limit_end query pair on the random question endpoints
const (
	DefaultLimitStart = 10
	DefaultLimitEnd   = 15
)

// SampleWindow is the offset/count pair applied after random ordering.
// limit_start is the row offset and limit_end the number of rows returned.
type SampleWindow struct {
	Offset int
	Count  int
}

// ParseSampleWindow reads limit_start and limit_end from the query string.
// Missing values use the defaults; negative offsets, non-positive counts,
// non-numeric values and counts above maxCount are rejected.
func ParseSampleWindow(c *gin.Context, maxCount int) (SampleWindow, error) {
	offset, err := queryInt(c, "limit_start", DefaultLimitStart)
	if err != nil {
		return SampleWindow{}, err
	}

	count, err := queryInt(c, "limit_end", DefaultLimitEnd)
	if err != nil {
		return SampleWindow{}, err
	}

	return NewSampleWindow(offset, count, maxCount)
}

// NewSampleWindow validates an offset/count pair
func NewSampleWindow(offset, count, maxCount int) (SampleWindow, error) {
	if offset < 0 {
		return SampleWindow{}, apperrors.NewValidationError("limit_start must be zero or greater")
	}
	if count <= 0 {
		return SampleWindow{}, apperrors.NewValidationError("limit_end must be greater than zero")
	}
	if maxCount > 0 && count > maxCount {
		return SampleWindow{}, apperrors.NewValidationError(fmt.Sprintf("limit_end must not exceed %d", maxCount))
	}
	return SampleWindow{Offset: offset, Count: count}, nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(key + " must be an integer")
	}
	return v, nil
}

// ParseIDParam parses a positive integer path parameter
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name + " must be a positive integer")
	}
	return id, nil
}
