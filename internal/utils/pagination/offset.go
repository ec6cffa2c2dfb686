package pagination

import (
	"errors"
	"math"
)

// ErrInvalidPage is returned for a negative page, a size outside 1..maxSize, or an
// offset that does not fit in 32 bits.
var ErrInvalidPage = errors.New("invalid page request")

// Offset converts a zero-based page and page size into a LIMIT/OFFSET pair.
func Offset(page, size, maxSize int) (limit, offset int, err error) {
	if page < 0 || size <= 0 || size > maxSize {
		return 0, 0, ErrInvalidPage
	}
	if page > math.MaxInt32/size {
		return 0, 0, ErrInvalidPage
	}
	return size, page * size, nil
}
