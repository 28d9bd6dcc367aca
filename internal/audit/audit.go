package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Entry describes one draft generation attempt. The issue text itself is not stored.
type Entry struct {
	UserID        uint      `bson:"userId" json:"userId"`
	Type          string    `bson:"type" json:"type"`
	Language      string    `bson:"language" json:"language"`
	Department    string    `bson:"department,omitempty" json:"department,omitempty"`
	IssueLength   int       `bson:"issueLength" json:"issueLength"`
	ContentLength int       `bson:"contentLength" json:"contentLength"`
	Status        string    `bson:"status" json:"status"`
	Error         string    `bson:"error,omitempty" json:"error,omitempty"`
	DurationMs    int64     `bson:"durationMs" json:"durationMs"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// Recorder persists generation entries.
type Recorder interface {
	Record(ctx context.Context, e *Entry) error
}

// History reads back a user's most recent entries, newest first.
type History interface {
	RecentByUser(ctx context.Context, userID uint, limit int64) ([]Entry, error)
}

// Noop discards entries; used when MongoDB is not configured.
type Noop struct{}

func (Noop) Record(context.Context, *Entry) error { return nil }

// MemoryRecorder keeps entries in memory (tests, CLI).
type MemoryRecorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (m *MemoryRecorder) Record(_ context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return nil
}

// Entries returns a copy of the recorded entries.
func (m *MemoryRecorder) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MemoryRecorder) RecentByUser(_ context.Context, userID uint, limit int64) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if m.entries[i].UserID == userID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

// MongoRecorder writes entries to a MongoDB collection.
type MongoRecorder struct {
	col *mongo.Collection
}

func NewMongoRecorder(col *mongo.Collection) *MongoRecorder {
	return &MongoRecorder{col: col}
}

// EnsureIndexes creates the per-user lookup index. Safe to call repeatedly.
func (r *MongoRecorder) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("user_created"),
	})
	if err != nil {
		return fmt.Errorf("create generations index: %w", err)
	}
	return nil
}

func (r *MongoRecorder) Record(ctx context.Context, e *Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("record generation: %w", err)
	}
	return nil
}

// RecentByUser returns the newest entries for userID, newest first.
func (r *MongoRecorder) RecentByUser(ctx context.Context, userID uint, limit int64) ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find generations: %w", err)
	}
	defer cur.Close(ctx)
	var out []Entry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
