package utils

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidID = errors.New("id must be a 32-bit integer")

// ParseID parse path param thành int32 (base 10, có dấu).
// "abc", "3.5", "" và giá trị ngoài phạm vi int32 đều bị từ chối.
func ParseID(s string) (int32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidID
	}

	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, ErrInvalidID
	}
	return int32(id), nil
}
