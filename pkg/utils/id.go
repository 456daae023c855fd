package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 32 位十六进制 id（去掉连字符的 uuid v4）
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
