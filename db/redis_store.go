package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"roster-lookup-go/models"
	"roster-lookup-go/roster"
)

const sessionKeyPrefix = "session:" // Hash prefix: session:{id} -> stores one page session

// Hash fields of a session key.
const (
	fieldRecords = "records"
	fieldDay     = "day"
	fieldClass   = "class"
	fieldClassNo = "classNo"
	fieldDisplay = "display"
	fieldVisible = "visible"
)

// RedisStore keeps sessions in Redis hashes that expire after the TTL.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisStore creates a RedisStore instance
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, TTL: ttl}
}

// Helper to generate session key
func getSessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Create implements SessionStore.
func (s *RedisStore) Create(ctx context.Context) (*roster.Session, error) {
	sess := roster.NewSession(newSessionID())
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get implements SessionStore.
func (s *RedisStore) Get(ctx context.Context, id string) (*roster.Session, error) {
	data, err := s.Client.HGetAll(ctx, getSessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		log.Printf("Error getting session %s: %v", id, err)
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrSessionNotFound
	}

	st, err := decodeState(data)
	if err != nil {
		log.Printf("Error decoding session %s: %v", id, err)
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return roster.Restore(id, st), nil
}

// Save implements SessionStore. The state and the expiry are written in one
// transaction.
func (s *RedisStore) Save(ctx context.Context, sess *roster.Session) error {
	fields, err := encodeState(sess.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", sess.ID, err)
	}

	key := getSessionKey(sess.ID)
	pipe := s.Client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	if s.TTL > 0 {
		pipe.Expire(ctx, key, s.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error saving session %s: %v", sess.ID, err)
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}
	return nil
}

// Delete implements SessionStore.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.Client.Del(ctx, getSessionKey(id)).Err(); err != nil {
		log.Printf("Error deleting session %s: %v", id, err)
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}

func encodeState(st roster.State) (map[string]interface{}, error) {
	records := st.Records
	if records == nil {
		records = []models.StudentRecord{}
	}
	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	displayJSON, err := json.Marshal(st.Display)
	if err != nil {
		return nil, err
	}
	visible := "0"
	if st.Visible {
		visible = "1"
	}
	return map[string]interface{}{
		fieldRecords: string(recordsJSON),
		fieldDay:     st.Selection.Day,
		fieldClass:   st.Selection.Class,
		fieldClassNo: st.Selection.ClassNo,
		fieldDisplay: string(displayJSON),
		fieldVisible: visible,
	}, nil
}

func decodeState(data map[string]string) (roster.State, error) {
	var st roster.State
	if raw := data[fieldRecords]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &st.Records); err != nil {
			return st, fmt.Errorf("records: %w", err)
		}
	}
	if raw := data[fieldDisplay]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &st.Display); err != nil {
			return st, fmt.Errorf("display: %w", err)
		}
	}
	st.Selection = models.Selection{
		Day:     data[fieldDay],
		Class:   data[fieldClass],
		ClassNo: data[fieldClassNo],
	}
	st.Visible = data[fieldVisible] == "1"
	return st, nil
}

// InitializeRedisClient creates and tests a Redis client connection
func InitializeRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", addr, err)
	}

	log.Printf("Successfully connected to Redis at %s (DB %d)", addr, db)
	return rdb, nil
}
