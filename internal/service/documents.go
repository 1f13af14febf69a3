package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-manager/internal/db"
	"github.com/ukydev/fleet-manager/internal/events"
	"github.com/ukydev/fleet-manager/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentContent is a stored file as downloaded.
type DocumentContent struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadDocument stores metadata and content inline as one document. When a mirror
// is configured the file is copied there first and its URL recorded; a mirror
// failure is logged and the upload proceeds without a URL.
func (s *Service) UploadDocument(ctx context.Context, meta models.Document, content []byte) (string, error) {
	if err := s.validateStruct(meta); err != nil {
		return "", err
	}
	if len(content) > models.MaxDocumentSize {
		return "", invalidField("file", fmt.Sprintf("max=%d bytes", models.MaxDocumentSize))
	}

	meta.URL = nil
	if s.mirror != nil {
		url, err := s.mirror.Upload(ctx, meta.Name, content)
		if err != nil {
			log.WithError(err).WithField("name", meta.Name).Warn("Document mirror upload failed")
		} else {
			meta.URL = &url
		}
	}

	doc, err := models.ToBSON(meta)
	if err != nil {
		return "", err
	}
	id, err := s.store.StoreBlob(ctx, s.collections.Document, doc, content)
	if err != nil {
		return "", err
	}
	s.publish(ctx, events.DocumentUploaded, bson.M{
		"id":         id,
		"name":       meta.Name,
		"vehicle_id": meta.VehicleID,
		"user_id":    meta.UserID,
		"size":       len(content),
	})
	return id, nil
}

// ListDocuments returns document metadata, newest first, without content.
func (s *Service) ListDocuments(ctx context.Context, vehicleID, userID string) ([]bson.M, error) {
	filter := bson.M{}
	if vehicleID != "" {
		filter["vehicle_id"] = vehicleID
	}
	if userID != "" {
		filter["user_id"] = userID
	}
	return s.store.List(ctx, s.collections.Document, db.ListOptions{
		Filter:     filter,
		Sort:       []db.SortField{db.Desc("created_at")},
		Limit:      broadListLimit,
		Projection: bson.M{"content": 0},
	})
}

// DocumentContent returns the stored bytes of a document.
func (s *Service) DocumentContent(ctx context.Context, id string) (*DocumentContent, error) {
	doc, err := s.store.Get(ctx, s.collections.Document, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	out := &DocumentContent{
		Name:        asString(doc["name"]),
		ContentType: asString(doc["content_type"]),
	}
	switch blob := doc["content"].(type) {
	case primitive.Binary:
		out.Data = blob.Data
	case []byte:
		out.Data = blob
	default:
		return nil, fmt.Errorf("document %s has no content: %w", id, ErrNotFound)
	}
	if out.ContentType == "" {
		out.ContentType = "application/octet-stream"
	}
	return out, nil
}
