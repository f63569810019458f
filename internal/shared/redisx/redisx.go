package redisx

import (
	"github.com/redis/go-redis/v9"

	"github.com/kimanithuo1/backendCapstoneProject/configs"
)

func Open(cfg *configs.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})
}
