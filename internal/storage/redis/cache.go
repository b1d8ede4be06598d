package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/knotworthy/knotworthy/internal/core"
)

type Client struct {
	*redis.Client
}

func NewClient(redisURL string) *Client {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	client := redis.NewClient(opt)

	return &Client{client}
}

func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, data, expiration).Err()
}

func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := c.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

// CacheSiteByHost stores the host→site resolution so repeated requests to a
// wedding site skip the database lookup.
func (c *Client) CacheSiteByHost(ctx context.Context, host string, site *core.Site, ttl time.Duration) error {
	return c.SetJSON(ctx, siteHostKey(host), site, ttl)
}

func (c *Client) GetCachedSiteByHost(ctx context.Context, host string) (*core.Site, error) {
	var site core.Site
	if err := c.GetJSON(ctx, siteHostKey(host), &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// InvalidateSiteHosts drops cached resolutions, e.g. after a site update or
// a custom-domain change.
func (c *Client) InvalidateSiteHosts(ctx context.Context, hosts ...string) error {
	keys := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h != "" {
			keys = append(keys, siteHostKey(h))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Del(ctx, keys...).Err()
}

func siteHostKey(host string) string {
	return fmt.Sprintf("site:host:%s", host)
}
