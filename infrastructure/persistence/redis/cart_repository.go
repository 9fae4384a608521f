/*
Package redis stores carts as JSON documents, one key per customer.

Carts are short-lived, so every write refreshes the key TTL. Optimistic
locking uses WATCH on the cart key plus the version kept in the document.
*/
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"restaurant/config"
	"restaurant/domain/cart"
	"restaurant/domain/menu"
	"restaurant/domain/shared"
	"restaurant/pkg/logger"
)

const keyPrefix = "cart:"

type cartLine struct {
	MealID string `json:"meal_id"`
	Count  int    `json:"count"`
}

type cartDocument struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	Created    time.Time  `json:"created"`
	Lines      []cartLine `json:"lines"`
	Version    int        `json:"version"`
}

func encodeCart(c *cart.Cart) ([]byte, error) {
	lines := c.Lines()
	doc := cartDocument{
		ID:         string(c.ID()),
		CustomerID: string(c.CustomerID()),
		Created:    c.Created(),
		Lines:      make([]cartLine, len(lines)),
		Version:    c.Version() + 1,
	}
	for i, line := range lines {
		doc.Lines[i] = cartLine{MealID: string(line.MealID), Count: line.Count.Value()}
	}
	return json.Marshal(doc)
}

func decodeCart(raw []byte) (*cart.Cart, error) {
	var doc cartDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("corrupt cart document: %w", err)
	}
	lines := make([]cart.Line, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		count, err := shared.NewCount(line.Count)
		if err != nil {
			return nil, fmt.Errorf("corrupt cart document: %w", err)
		}
		lines = append(lines, cart.Line{MealID: menu.MealID(line.MealID), Count: count})
	}
	return cart.RebuildFromDTO(cart.ReconstructionDTO{
		ID:         cart.ID(doc.ID),
		CustomerID: cart.CustomerID(doc.CustomerID),
		Created:    doc.Created,
		Lines:      lines,
		Version:    doc.Version,
	}), nil
}

func cartKey(customerID cart.CustomerID) string {
	return keyPrefix + string(customerID)
}

type CartRepository struct {
	client    goredis.UniversalClient
	publisher shared.DomainEventPublisher
	ttl       time.Duration
}

var (
	_ cart.Repository = (*CartRepository)(nil)
	_ cart.Remover    = (*CartRepository)(nil)
)

// NewCartRepository uses client for storage. A zero ttl keeps carts forever.
func NewCartRepository(client goredis.UniversalClient, publisher shared.DomainEventPublisher, ttl time.Duration) *CartRepository {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &CartRepository{client: client, publisher: publisher, ttl: ttl}
}

// NewClient opens and pings a client for the configured server.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info("Redis connected", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return client, nil
}

func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	key := cartKey(c.CustomerID())
	payload, err := encodeCart(c)
	if err != nil {
		return err
	}

	err = r.client.Watch(ctx, func(tx *goredis.Tx) error {
		stored, err := storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if stored != c.Version() {
			return cart.NewConcurrentModificationError(c.CustomerID())
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, goredis.TxFailedErr) {
		return cart.NewConcurrentModificationError(c.CustomerID())
	}
	if err != nil {
		return err
	}

	c.IncrementVersion()
	return r.publisher.Publish(ctx, c.PullEvents())
}

// storedVersion is 0 when the key does not exist.
func storedVersion(ctx context.Context, tx *goredis.Tx, key string) (int, error) {
	raw, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var doc cartDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, fmt.Errorf("corrupt cart document: %w", err)
	}
	return doc.Version, nil
}

func (r *CartRepository) FindByCustomerID(ctx context.Context, customerID cart.CustomerID) (*cart.Cart, error) {
	raw, err := r.client.Get(ctx, cartKey(customerID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, cart.NewCartNotFoundError(customerID)
	}
	if err != nil {
		return nil, err
	}
	return decodeCart(raw)
}

// Delete is idempotent.
func (r *CartRepository) Delete(ctx context.Context, customerID cart.CustomerID) error {
	return r.client.Del(ctx, cartKey(customerID)).Err()
}
