package service

import (
	"context"
	"fmt"

	"github.com/ukydev/fleet-manager/internal/db"
	"github.com/ukydev/fleet-manager/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateVehicle stores a new vehicle with schema defaults applied.
func (s *Service) CreateVehicle(ctx context.Context, vehicle models.Vehicle) (string, error) {
	vehicle.ApplyDefaults()
	if err := s.validateStruct(vehicle); err != nil {
		return "", err
	}
	doc, err := models.ToBSON(vehicle)
	if err != nil {
		return "", err
	}
	return s.store.Create(ctx, s.collections.Vehicle, doc)
}

// ListVehicles returns up to 500 vehicles, optionally only those of vehicleType.
func (s *Service) ListVehicles(ctx context.Context, vehicleType string) ([]bson.M, error) {
	filter := bson.M{}
	if vehicleType != "" {
		filter["type"] = vehicleType
	}
	return s.store.List(ctx, s.collections.Vehicle, db.ListOptions{Filter: filter, Limit: listLimit})
}

// GetVehicle returns one vehicle or ErrNotFound.
func (s *Service) GetVehicle(ctx context.Context, id string) (bson.M, error) {
	doc, err := s.store.Get(ctx, s.collections.Vehicle, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	return doc, nil
}

// UpdateVehicle writes only the supplied fields and reports whether anything changed.
func (s *Service) UpdateVehicle(ctx context.Context, id string, update models.VehicleUpdate) (bool, error) {
	if err := s.validateStruct(update); err != nil {
		return false, err
	}
	doc, err := models.ToBSON(update)
	if err != nil {
		return false, err
	}
	return s.store.Update(ctx, s.collections.Vehicle, id, doc)
}

// DeleteVehicle removes a vehicle. Its loads and documents are left in place.
func (s *Service) DeleteVehicle(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, s.collections.Vehicle, id)
}
