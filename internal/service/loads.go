package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-manager/internal/db"
	"github.com/ukydev/fleet-manager/internal/events"
	"github.com/ukydev/fleet-manager/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateLoad stores a new load; status defaults to open.
func (s *Service) CreateLoad(ctx context.Context, load models.Load) (string, error) {
	load.ApplyDefaults()
	if err := s.validateStruct(load); err != nil {
		return "", err
	}
	doc, err := models.ToBSON(load)
	if err != nil {
		return "", err
	}
	return s.store.Create(ctx, s.collections.Load, doc)
}

// ListLoads returns up to 500 loads, optionally only those in status.
func (s *Service) ListLoads(ctx context.Context, status string) ([]bson.M, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.store.List(ctx, s.collections.Load, db.ListOptions{Filter: filter, Limit: listLimit})
}

// GetLoad returns one load or ErrNotFound.
func (s *Service) GetLoad(ctx context.Context, id string) (bson.M, error) {
	doc, err := s.store.Get(ctx, s.collections.Load, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("load %s: %w", id, ErrNotFound)
	}
	return doc, nil
}

// AcceptLoad moves an open or already accepted load to accepted and binds vehicleID.
//
// The status check and the write are separate store calls, so two concurrent
// accepts of the same load can both succeed; the last write wins.
func (s *Service) AcceptLoad(ctx context.Context, loadID, vehicleID string) error {
	if vehicleID == "" {
		return invalidField("vehicle_id", "required")
	}
	load, err := s.store.Get(ctx, s.collections.Load, loadID)
	if err != nil {
		return err
	}
	if load == nil {
		return fmt.Errorf("load %s: %w", loadID, ErrNotFound)
	}

	status, _ := load["status"].(string)
	if !models.LoadStatus(status).CanAccept() {
		return fmt.Errorf("load %s is %q: %w", loadID, status, ErrInvalidState)
	}

	if _, err := s.store.Update(ctx, s.collections.Load, loadID, bson.M{
		"status":     string(models.LoadAccepted),
		"vehicle_id": vehicleID,
	}); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"load_id":         loadID,
		"vehicle_id":      vehicleID,
		"previous_status": status,
	}).Info("Load accepted")
	s.publish(ctx, events.LoadAccepted, map[string]string{
		"load_id":    loadID,
		"vehicle_id": vehicleID,
	})
	return nil
}
