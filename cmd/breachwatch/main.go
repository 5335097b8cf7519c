// cmd/breachwatch/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/breachwatch/cache"
	"github.com/briangreenhill/breachwatch/hibp"
	"github.com/briangreenhill/breachwatch/internal/config"
)

func main() {
	var (
		account    = flag.String("account", "", "look up breaches for an account")
		domain     = flag.String("domain", "", "search breached aliases of a domain")
		password   = flag.String("password", "", "check a password against the pwned corpus")
		forceFresh = flag.Bool("fresh", false, "bypass the cache for domain searches")
		clear      = flag.Bool("clear-cache", false, "remove all cached responses and exit")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Cache store: Redis when configured, platform cache directory otherwise
	storeOpts := []cache.StoreOption{cache.WithLogger(logger)}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		storeOpts = append(storeOpts, cache.WithStorage(cache.NewRedisStorage(rdb)))
	}
	store, err := cache.NewStore(cache.Config{
		Enabled: cfg.CacheEnabled(),
		Dir:     cfg.CacheDir,
		TTL:     cfg.CacheTTL,
	}, storeOpts...)
	if err != nil {
		log.Fatalf("cache error: %v", err)
	}

	if *clear {
		if err := store.Clear(); err != nil {
			log.Fatalf("clear cache: %v", err)
		}
		logger.Info().Msg("cache cleared")
		return
	}

	clientOpts := []hibp.Option{
		hibp.WithCache(store),
		hibp.WithLogger(logger),
		hibp.WithUserAgent(cfg.UserAgent),
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, hibp.WithBaseURL(cfg.BaseURL))
	}
	client, err := hibp.New(cfg.APIKey, clientOpts...)
	if err != nil {
		log.Fatalf("client error: %v", err)
	}

	ctx := context.Background()
	switch {
	case *account != "":
		breaches, err := client.BreachedAccount(ctx, *account, hibp.BreachedAccountOptions{TruncateResponse: true})
		if err != nil {
			log.Fatalf("breached account: %v", err)
		}
		if len(breaches) == 0 {
			fmt.Println("no breaches found")
			return
		}
		for _, b := range breaches {
			fmt.Println(b.Name)
		}
	case *domain != "":
		result, err := client.BreachedDomain(ctx, *domain, *forceFresh)
		if err != nil {
			log.Fatalf("breached domain: %v", err)
		}
		if len(result) == 0 {
			fmt.Println("no breached accounts found")
			return
		}
		for alias, names := range result {
			fmt.Printf("%s: %v\n", alias, names)
		}
	case *password != "":
		count, err := client.PwnedPasswordCount(ctx, *password)
		if err != nil {
			log.Fatalf("pwned passwords: %v", err)
		}
		fmt.Printf("seen %d times\n", count)
	default:
		flag.Usage()
		os.Exit(2)
	}
}
