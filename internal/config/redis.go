package config

import (
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisOptions returns ok == false when REDIS_ADDR is not set.
func NewRedisOptions() (opts *redis.Options, ok bool, err error) {
	addr, ok := os.LookupEnv("REDIS_ADDR")
	if !ok || addr == "" {
		return nil, false, nil
	}
	db, err := intOr("REDIS_DB", 0)
	if err != nil {
		return nil, false, err
	}
	opts = &redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}
	return opts, true, nil
}

type RateLimit struct {
	Max    int
	Window time.Duration
	// TrustedProxies are the peers whose X-Forwarded-For header is believed.
	TrustedProxies []netip.Prefix
}

// parseTrustedProxies reads the comma separated TRUSTED_PROXIES. Entries are
// CIDR prefixes or single addresses.
func parseTrustedProxies() ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, entry := range strings.Split(os.Getenv("TRUSTED_PROXIES"), ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

func NewRateLimit() (RateLimit, error) {
	max, err := intOr("RATE_LIMIT", 120)
	if err != nil {
		return RateLimit{}, err
	}
	window, err := durationOr("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return RateLimit{}, err
	}
	proxies, err := parseTrustedProxies()
	if err != nil {
		return RateLimit{}, err
	}
	return RateLimit{Max: max, Window: window, TrustedProxies: proxies}, nil
}
