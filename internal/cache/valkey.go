package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

const valkeyKeyPrefix = "gns3-inventory:"

// ValkeyCache stores payloads in a valkey/redis server, the moral
// equivalent of Ansible's redis cache plugin. Expiration is enforced
// server-side.
type ValkeyCache struct {
	client valkey.Client
	ttl    time.Duration
}

func NewValkeyCache(ctx context.Context, url, password string, ttl time.Duration) (*ValkeyCache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{url},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	ping := client.B().Ping().Build()
	if err := client.Do(ctx, ping).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping valkey: %w", err)
	}

	return &ValkeyCache{client: client, ttl: ttl}, nil
}

func (c *ValkeyCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	command := c.client.B().Get().Key(valkeyKey(key)).Build()

	resp := c.client.Do(ctx, command)
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	data, err := resp.AsBytes()
	if err != nil {
		return nil, false, fmt.Errorf("unexpected cache entry type: %w", err)
	}
	return data, true, nil
}

func (c *ValkeyCache) Set(ctx context.Context, key string, payload []byte) error {
	command := c.client.B().Set().Key(valkeyKey(key)).Value(string(payload)).Build()
	if err := c.client.Do(ctx, command).Error(); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}

	if c.ttl > 0 {
		expire := c.client.B().Expire().Key(valkeyKey(key)).Seconds(int64(c.ttl.Seconds())).Build()
		if err := c.client.Do(ctx, expire).Error(); err != nil {
			return fmt.Errorf("failed to set cache expiration: %w", err)
		}
	}
	return nil
}

func (c *ValkeyCache) Delete(ctx context.Context, key string) error {
	command := c.client.B().Del().Key(valkeyKey(key)).Build()
	if err := c.client.Do(ctx, command).Error(); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

func (c *ValkeyCache) Close() {
	c.client.Close()
}

func valkeyKey(key string) string {
	return valkeyKeyPrefix + hashKey(key)
}
