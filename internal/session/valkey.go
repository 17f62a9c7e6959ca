package session

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStore keeps sessions in Valkey. Read-modify-write cycles are
// serialized per session id within this process only.
type ValkeyStore struct {
	client valkey.Client
	locks  *keyedMutex
}

func NewValkeyClient(uri string) (valkey.Client, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}

	username := ""
	password := ""
	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
	}

	options := valkey.ClientOption{
		InitAddress: []string{u.Host},
		Username:    username,
		Password:    password,
	}
	if u.Scheme == "rediss" || u.Scheme == "valkeys" {
		options.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return valkey.NewClient(options)
}

func NewValkeyStore(client valkey.Client) *ValkeyStore {
	return &ValkeyStore{client: client, locks: newKeyedMutex()}
}

func (v *ValkeyStore) Create(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", s.ID)
	}
	secs := int64(math.Ceil(ttl.Seconds()))

	cmd := v.client.B().Set().Key(keyPrefix + s.ID).Value(string(data)).ExSeconds(secs).Build()
	return v.client.Do(ctx, cmd).Error()
}

func (v *ValkeyStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := v.client.Do(ctx, v.client.B().Get().Key(keyPrefix+id).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decode([]byte(raw))
}

func (v *ValkeyStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	unlock := v.locks.Lock(id)
	defer unlock()

	s, err := v.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	// XX: do not resurrect a session that expired or was deleted meanwhile.
	cmd := v.client.B().Set().Key(keyPrefix + id).Value(string(data)).Xx().Keepttl().Build()
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (v *ValkeyStore) Delete(ctx context.Context, id string) error {
	return v.client.Do(ctx, v.client.B().Del().Key(keyPrefix+id).Build()).Error()
}
