package routecache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/1DS22AIOO3adarsh/Clear-sky-challenge/internal/domain/routing"
)

// ValkeyStore caches route selections in a Valkey-compatible database so
// repeated trips between the same endpoints skip the provider call.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "clearsky"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get implements routing.Cache.
func (s *ValkeyStore) Get(ctx context.Context, key string) (routing.Selection, bool, error) {
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return routing.Selection{}, false, nil
		}
		return routing.Selection{}, false, err
	}
	var sel routing.Selection
	if err := json.Unmarshal([]byte(payload), &sel); err != nil {
		return routing.Selection{}, false, err
	}
	return sel, true, nil
}

// Save stores the selection with optional TTL.
func (s *ValkeyStore) Save(ctx context.Context, key string, sel routing.Selection, ttl time.Duration) error {
	payload, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return s.prefix + ":" + key
}

var _ routing.Cache = (*ValkeyStore)(nil)
