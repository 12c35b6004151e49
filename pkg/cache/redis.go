package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/limaJavier/coursetable/pkg/config"
	"github.com/limaJavier/coursetable/pkg/model"
)

// GenerationKeyPrefix namespaces cached search results.
const GenerationKeyPrefix = "timetable:generate:"

// NewRedis returns a configured Redis client.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:       addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: "coursetable",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// GenerationKey identifies a search by its planning input and the number of solutions asked for.
// Slots and constraints are hashed in input order, which is also the order ties are ranked in.
func GenerationKey(input model.ModelInput, maxSolutions int) (string, error) {
	payload, err := json.Marshal(struct {
		Input        model.ModelInput
		MaxSolutions int
	}{input, maxSolutions})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return GenerationKeyPrefix + hex.EncodeToString(sum[:]), nil
}
