package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

const UnreadCountTTL = 1 * time.Minute

// generationTTL outlives any unread entry, so an expired generation can only
// drop entries that have already expired themselves.
const generationTTL = 24 * time.Hour

// ConversationCache keeps each user's unread counts keyed by conversation.
// Every entry carries the user's invalidation generation at the time its
// counts were read; an entry from an older generation is a miss.
// A nil cache, or one without Redis, is a valid no-op.
type ConversationCache struct {
	redis *RedisCache
	ttl   time.Duration
}

type unreadEntry struct {
	Generation int64            `msgpack:"g"`
	Counts     map[string]int64 `msgpack:"c"`
}

func NewConversationCache(redis *RedisCache) *ConversationCache {
	return &ConversationCache{redis: redis, ttl: UnreadCountTTL}
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("unread:%d", userID)
}

func generationKey(userID uint) string {
	return fmt.Sprintf("unread:gen:%d", userID)
}

func parseGeneration(raw []byte) (int64, error) {
	if raw == nil {
		return 0, nil
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

// UnreadGeneration returns the user's current invalidation generation. Read it
// before loading counts from the store and hand it to SetUnread.
func (cc *ConversationCache) UnreadGeneration(ctx context.Context, userID uint) (int64, error) {
	if cc == nil || cc.redis == nil {
		return 0, nil
	}
	raw, err := cc.redis.Get(ctx, generationKey(userID))
	if err != nil {
		return 0, err
	}
	return parseGeneration(raw)
}

// GetUnread returns the cached counts for the user, if present and not
// invalidated since they were read.
func (cc *ConversationCache) GetUnread(ctx context.Context, userID uint) (map[uuid.UUID]int64, bool) {
	if cc == nil || cc.redis == nil {
		return nil, false
	}
	vals, err := cc.redis.MGet(ctx, unreadKey(userID), generationKey(userID))
	if err != nil || len(vals) != 2 || vals[0] == nil {
		return nil, false
	}
	current, err := parseGeneration(vals[1])
	if err != nil {
		return nil, false
	}

	var entry unreadEntry
	if err := msgpack.Unmarshal(vals[0], &entry); err != nil {
		return nil, false
	}
	if entry.Generation != current {
		return nil, false
	}
	counts := make(map[uuid.UUID]int64, len(entry.Counts))
	for k, v := range entry.Counts {
		id, err := uuid.Parse(k)
		if err != nil {
			return nil, false
		}
		counts[id] = v
	}
	return counts, true
}

// SetUnread caches the full unread map for the user, tagged with the
// generation observed before the counts were read.
func (cc *ConversationCache) SetUnread(ctx context.Context, userID uint, generation int64, counts map[uuid.UUID]int64) error {
	if cc == nil || cc.redis == nil {
		return nil
	}
	entry := unreadEntry{Generation: generation, Counts: make(map[string]int64, len(counts))}
	for id, n := range counts {
		entry.Counts[id.String()] = n
	}
	data, err := msgpack.Marshal(entry)
	if err != nil {
		return err
	}
	return cc.redis.Set(ctx, unreadKey(userID), data, cc.ttl)
}

// InvalidateUnread drops the cached counts of every given user and bumps
// their generation, so a fill racing with this call cannot be served later.
func (cc *ConversationCache) InvalidateUnread(ctx context.Context, userIDs ...uint) error {
	if cc == nil || cc.redis == nil || len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(userIDs))
	counters := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, unreadKey(id))
		counters = append(counters, generationKey(id))
	}
	return cc.redis.BumpAndDelete(ctx, counters, generationTTL, keys)
}
