package throttle

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces the two hashes holding the keyspaces.
const DefaultRedisPrefix = "totpgate:throttle"

// attemptScript applies one transition and sweeps both keyspaces.
// Records are stored as "<count>:<last unix ms>".
//
// KEYS[1] target hash, KEYS[2] identity hash, KEYS[3] origin hash
// ARGV[1] key, ARGV[2] now ms, ARGV[3] window ms, ARGV[4] max tries
var attemptScript = redis.NewScript(`
local now = tonumber(ARGV[2])
local window = tonumber(ARGV[3])
local max = tonumber(ARGV[4])

local function decode(v)
	local sep = string.find(v, ":", 1, true)
	return tonumber(string.sub(v, 1, sep - 1)), tonumber(string.sub(v, sep + 1))
end

local allowed = 1
local count = 1
local current = redis.call("HGET", KEYS[1], ARGV[1])
if current then
	local c, last = decode(current)
	if c < max then
		count = c + 1
	elseif now - last >= window then
		count = 1
	else
		count = max + 1
		allowed = 0
	end
end
redis.call("HSET", KEYS[1], ARGV[1], count .. ":" .. ARGV[2])

for i = 2, 3 do
	local entries = redis.call("HGETALL", KEYS[i])
	for j = 1, #entries, 2 do
		local _, last = decode(entries[j + 1])
		if last + window < now then
			redis.call("HDEL", KEYS[i], entries[j])
		end
	end
end

return {allowed, redis.call("HLEN", KEYS[2]), redis.call("HLEN", KEYS[3])}
`)

// RedisStore shares throttle state between gateway instances. Each keyspace
// is one Redis hash; every Attempt runs as a single Lua script.
type RedisStore struct {
	client      redis.UniversalClient
	identityKey string
	originKey   string

	// Sizes as of the latest script or clear result.
	identityCount atomic.Int64
	originCount   atomic.Int64
}

// NewRedisStore creates a store on client. An empty prefix selects
// DefaultRedisPrefix. Both hashes share a hash tag so they land in the same
// cluster slot.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	tag := "{" + prefix + "}"
	return &RedisStore{
		client:      client,
		identityKey: tag + ":" + string(KeyspaceIdentity),
		originKey:   tag + ":" + string(KeyspaceOrigin),
	}
}

func (rs *RedisStore) Attempt(ctx context.Context, keyspace Keyspace, key string, now time.Time, cfg Config) (bool, error) {
	target, err := rs.hash(keyspace)
	if err != nil {
		return false, err
	}

	res, err := attemptScript.Run(ctx, rs.client,
		[]string{target, rs.identityKey, rs.originKey},
		key, now.UnixMilli(), cfg.Window.Milliseconds(), cfg.MaxTries,
	).Int64Slice()
	if err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}
	if len(res) != 3 {
		return false, ErrCorruptRecord
	}

	rs.identityCount.Store(res[1])
	rs.originCount.Store(res[2])
	return res[0] == 1, nil
}

func (rs *RedisStore) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	var identities, origins *redis.IntCmd
	_, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, rs.identityKey, keys...)
		pipe.HDel(ctx, rs.originKey, keys...)
		identities = pipe.HLen(ctx, rs.identityKey)
		origins = pipe.HLen(ctx, rs.originKey)
		return nil
	})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	rs.identityCount.Store(identities.Val())
	rs.originCount.Store(origins.Val())
	return nil
}

func (rs *RedisStore) Size(keyspace Keyspace) int {
	switch keyspace {
	case KeyspaceIdentity:
		return int(rs.identityCount.Load())
	case KeyspaceOrigin:
		return int(rs.originCount.Load())
	default:
		return 0
	}
}

// Lookup returns the record tracked for key in keyspace.
func (rs *RedisStore) Lookup(ctx context.Context, keyspace Keyspace, key string) (Record, bool, error) {
	target, err := rs.hash(keyspace)
	if err != nil {
		return Record{}, false, err
	}

	raw, err := rs.client.HGet(ctx, target, key).Result()
	if errors.Is(err, redis.Nil) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, errors.Join(ErrStoreUnavailable, err)
	}

	rec, err := decodeRecord(raw)
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

func (rs *RedisStore) hash(keyspace Keyspace) (string, error) {
	switch keyspace {
	case KeyspaceIdentity:
		return rs.identityKey, nil
	case KeyspaceOrigin:
		return rs.originKey, nil
	default:
		return "", ErrUnknownKeyspace
	}
}

func decodeRecord(raw string) (Record, error) {
	countText, lastText, ok := strings.Cut(raw, ":")
	if !ok {
		return Record{}, ErrCorruptRecord
	}
	count, err := strconv.Atoi(countText)
	if err != nil {
		return Record{}, errors.Join(ErrCorruptRecord, err)
	}
	last, err := strconv.ParseInt(lastText, 10, 64)
	if err != nil {
		return Record{}, errors.Join(ErrCorruptRecord, err)
	}
	return Record{Count: count, Last: time.UnixMilli(last)}, nil
}
