package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/models"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/repository"
	apperrors "github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/errors"
)

// EncodeCursor renders a message position as "<RFC3339Nano>_<id>".
func EncodeCursor(m *models.Message) string {
	return m.CreatedAt.UTC().Format(time.RFC3339Nano) + "_" + strconv.FormatUint(uint64(m.ID), 10)
}

// ParseCursor accepts an encoded position or a bare RFC3339 timestamp.
// An empty string means "start from the newest message".
func ParseCursor(s string) (*repository.MessageCursor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	ts, idPart, hasID := strings.Cut(s, "_")
	at, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, apperrors.ErrInvalidCursor
	}
	cursor := &repository.MessageCursor{CreatedAt: at.UTC()}
	if hasID {
		id, err := strconv.ParseUint(idPart, 10, 64)
		if err != nil || id == 0 {
			return nil, apperrors.ErrInvalidCursor
		}
		cursor.ID = uint(id)
	}
	return cursor, nil
}
