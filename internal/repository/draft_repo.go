package repository

import (
	"context"
	"errors"
	"settings-console/internal/domain"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDraftNotFound = errors.New("draft not found")

// DraftRepository 保存通知設定表單的未儲存草稿 (每位管理者一份)
type DraftRepository interface {
	GetDraft(ctx context.Context, owner string) (*domain.NotificationDraft, error)
	SaveDraft(ctx context.Context, draft domain.NotificationDraft) error
	DeleteDraft(ctx context.Context, owner string) error
}

type mongoDraftRepo struct {
	collection *mongo.Collection
}

func NewMongoDraftRepo(db *mongo.Database) DraftRepository {
	return &mongoDraftRepo{
		collection: db.Collection("notification_drafts"),
	}
}

func (r *mongoDraftRepo) GetDraft(ctx context.Context, owner string) (*domain.NotificationDraft, error) {
	var draft domain.NotificationDraft
	err := r.collection.FindOne(ctx, bson.M{"owner": owner}).Decode(&draft)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// SaveDraft 依 owner upsert
func (r *mongoDraftRepo) SaveDraft(ctx context.Context, draft domain.NotificationDraft) error {
	if draft.UpdatedAt.IsZero() {
		draft.UpdatedAt = time.Now()
	}
	draft.Form.WebhookSecret = ""

	filter := bson.M{"owner": draft.Owner}
	update := bson.M{"$set": draft}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *mongoDraftRepo) DeleteDraft(ctx context.Context, owner string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"owner": owner})
	return err
}

// memoryDraftRepo 未設定 MongoDB 時使用
type memoryDraftRepo struct {
	mu     sync.RWMutex
	drafts map[string]domain.NotificationDraft
}

func NewMemoryDraftRepo() DraftRepository {
	return &memoryDraftRepo{drafts: make(map[string]domain.NotificationDraft)}
}

func (r *memoryDraftRepo) GetDraft(ctx context.Context, owner string) (*domain.NotificationDraft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	draft, ok := r.drafts[owner]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return &draft, nil
}

func (r *memoryDraftRepo) SaveDraft(ctx context.Context, draft domain.NotificationDraft) error {
	if draft.UpdatedAt.IsZero() {
		draft.UpdatedAt = time.Now()
	}
	draft.Form.WebhookSecret = ""

	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[draft.Owner] = draft
	return nil
}

func (r *memoryDraftRepo) DeleteDraft(ctx context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, owner)
	return nil
}
