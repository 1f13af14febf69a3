package service

import (
	"context"

	"github.com/ukydev/fleet-manager/internal/db"
	"github.com/ukydev/fleet-manager/internal/events"
	"github.com/ukydev/fleet-manager/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateNotification stores a notification.
func (s *Service) CreateNotification(ctx context.Context, n models.Notification) (string, error) {
	n.ApplyDefaults()
	if err := s.validateStruct(n); err != nil {
		return "", err
	}
	doc, err := models.ToBSON(n)
	if err != nil {
		return "", err
	}
	id, err := s.store.Create(ctx, s.collections.Notification, doc)
	if err != nil {
		return "", err
	}
	s.publish(ctx, events.NotificationCreated, bson.M{
		"id":      id,
		"user_id": n.UserID,
		"title":   n.Title,
		"type":    n.Type,
	})
	return id, nil
}

// ListNotifications returns up to 200 notifications, newest first.
func (s *Service) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]bson.M, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}
	if unreadOnly {
		filter["read"] = false
	}
	return s.store.List(ctx, s.collections.Notification, db.ListOptions{
		Filter: filter,
		Sort:   []db.SortField{db.Desc("created_at")},
		Limit:  broadListLimit,
	})
}

// MarkNotificationRead sets read=true and reports whether the notification was found.
func (s *Service) MarkNotificationRead(ctx context.Context, id string) (bool, error) {
	return s.store.Update(ctx, s.collections.Notification, id, bson.M{"read": true})
}
