package shortid

import (
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
)

const Length = 22

func New() string {
	return encode(uuid.New())
}

func encode(id uuid.UUID) string {
	return shortuuid.DefaultEncoder.Encode(id)
}

// SplitKey ключ респондента: идентификатор рабочего пространства + идентификатор респондента
func SplitKey(key string) (workspaceUUID, respondentID string, ok bool) {
	if len(key) <= Length {
		return "", "", false
	}
	return key[:Length], key[Length:], true
}
