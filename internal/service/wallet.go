package service

import (
	"context"

	"github.com/ukydev/fleet-manager/internal/db"
	"github.com/ukydev/fleet-manager/internal/events"
	"github.com/ukydev/fleet-manager/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RecordTransaction stores a wallet transaction. It never touches a vehicle's
// wallet_balance; balances are derived by WalletBalance.
func (s *Service) RecordTransaction(ctx context.Context, tx models.WalletTransaction) (string, error) {
	tx.ApplyDefaults()
	if err := s.validateStruct(tx); err != nil {
		return "", err
	}
	doc, err := models.ToBSON(tx)
	if err != nil {
		return "", err
	}
	id, err := s.store.Create(ctx, s.collections.WalletTransaction, doc)
	if err != nil {
		return "", err
	}
	s.publish(ctx, events.TransactionRecorded, bson.M{
		"id":         id,
		"type":       tx.Type,
		"amount":     *tx.Amount,
		"vehicle_id": tx.VehicleID,
		"user_id":    tx.UserID,
	})
	return id, nil
}

func walletFilter(vehicleID, userID string) bson.M {
	filter := bson.M{}
	if vehicleID != "" {
		filter["vehicle_id"] = vehicleID
	}
	if userID != "" {
		filter["user_id"] = userID
	}
	return filter
}

// ListTransactions returns up to 500 transactions, newest first.
func (s *Service) ListTransactions(ctx context.Context, vehicleID, userID string) ([]bson.M, error) {
	return s.store.List(ctx, s.collections.WalletTransaction, db.ListOptions{
		Filter: walletFilter(vehicleID, userID),
		Sort:   []db.SortField{db.Desc("created_at")},
		Limit:  listLimit,
	})
}

// WalletBalance sums credits minus debits for a vehicle and/or user.
func (s *Service) WalletBalance(ctx context.Context, vehicleID, userID string) (*models.WalletBalance, error) {
	if vehicleID == "" && userID == "" {
		return nil, invalidField("vehicle_id", "vehicle_id or user_id required")
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: walletFilter(vehicleID, userID)}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$type",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	groups, err := s.store.Aggregate(ctx, s.collections.WalletTransaction, pipeline)
	if err != nil {
		return nil, err
	}

	balance := &models.WalletBalance{VehicleID: vehicleID, UserID: userID}
	for _, g := range groups {
		total := toFloat(g["total"])
		balance.Transactions += toInt(g["count"])
		switch models.TransactionType(asString(g["_id"])) {
		case models.TransactionCredit:
			balance.Credits += total
		case models.TransactionDebit:
			balance.Debits += total
		}
	}
	balance.Balance = balance.Credits - balance.Debits
	return balance, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func toInt(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
