package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	ErrTooManyRequests = errors.New("too many verification requests")
	ErrCodeMismatch    = errors.New("verification code is invalid or expired")
)

// Store keeps one-time verification codes and request counters in redis,
// so rate limits hold across processes.
type Store struct {
	rdb        *redis.Client
	ttl        time.Duration
	maxPerHour int
}

func NewStore(rdb *redis.Client, ttl time.Duration, maxPerHour int) *Store {
	return &Store{rdb: rdb, ttl: ttl, maxPerHour: maxPerHour}
}

func codeKey(email string) string  { return "otp:code:" + email }
func countKey(email string) string { return "otp:count:" + email }

// Issue generates a 6-digit code for the email, enforcing the hourly
// request cap before storing it.
func (s *Store) Issue(ctx context.Context, email string) (string, error) {
	count, err := s.rdb.Incr(ctx, countKey(email)).Result()
	if err != nil {
		return "", fmt.Errorf("otp counter: %w", err)
	}
	if count == 1 {
		s.rdb.Expire(ctx, countKey(email), time.Hour)
	}
	if count > int64(s.maxPerHour) {
		return "", ErrTooManyRequests
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, codeKey(email), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("otp store: %w", err)
	}
	return code, nil
}

// Verify checks the code and consumes it on success.
func (s *Store) Verify(ctx context.Context, email, code string) error {
	stored, err := s.rdb.Get(ctx, codeKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeMismatch
	}
	if err != nil {
		return fmt.Errorf("otp lookup: %w", err)
	}
	if stored != code {
		return ErrCodeMismatch
	}
	return s.rdb.Del(ctx, codeKey(email)).Err()
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("otp generate: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
