package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/companyhq/company-api/internal/core/domain"
)

const auditCollection = "auth_audit"

// MongoAuditRepository persists auth events for the audit trail.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuthEvent struct {
	Type      string `bson:"type"`
	Subject   string `bson:"subject"`
	UserID    string `bson:"user_id,omitempty"`
	RemoteIP  string `bson:"remote_ip,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		Type:      string(event.Type),
		Subject:   event.Subject,
		UserID:    event.UserID,
		RemoteIP:  event.RemoteIP,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
