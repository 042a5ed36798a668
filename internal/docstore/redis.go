package docstore

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Redis keeps one hash per collection; the hash field is the document id.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: strings.Trim(strings.TrimSpace(prefix), ":")}
}

func (r *Redis) key(collection string) string {
	if r.prefix == "" {
		return collection
	}
	return r.prefix + ":" + collection
}

func (r *Redis) Get(ctx context.Context, collection, id string) ([]byte, bool, error) {
	if err := validateKey(collection, id); err != nil {
		return nil, false, err
	}
	b, err := r.client.HGet(ctx, r.key(collection), id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (r *Redis) Set(ctx context.Context, collection, id string, value any) error {
	if err := validateKey(collection, id); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, r.key(collection), id, b).Err()
}

func (r *Redis) List(ctx context.Context, collection string) ([]Document, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	m, err := r.client.HGetAll(ctx, r.key(collection)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(m))
	for id, v := range m {
		out = append(out, Document{ID: id, Data: []byte(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
