package models

// LoadStatus is a position in the load lifecycle:
// open -> accepted -> assigned -> in_transit -> delivered, or cancelled.
type LoadStatus string

const (
	LoadOpen      LoadStatus = "open"
	LoadAccepted  LoadStatus = "accepted"
	LoadAssigned  LoadStatus = "assigned"
	LoadInTransit LoadStatus = "in_transit"
	LoadDelivered LoadStatus = "delivered"
	LoadCancelled LoadStatus = "cancelled"
)

// CanAccept reports whether a load in this status may be (re-)accepted.
func (s LoadStatus) CanAccept() bool {
	return s == LoadOpen || s == LoadAccepted
}

// Load is a shippable job.
type Load struct {
	VehicleID        *string      `bson:"vehicle_id" json:"vehicle_id"`
	ProductName      string       `bson:"product_name" json:"product_name" validate:"required"`
	Weight           *float64     `bson:"weight" json:"weight" validate:"omitempty,gte=0"`
	Dimensions       *string      `bson:"dimensions" json:"dimensions"`
	Amount           *float64     `bson:"amount" json:"amount" validate:"required"`
	LoadingAddress   string       `bson:"loading_address" json:"loading_address" validate:"required"`
	UnloadingAddress string       `bson:"unloading_address" json:"unloading_address" validate:"required"`
	DistanceKM       *float64     `bson:"distance_km" json:"distance_km" validate:"omitempty,gte=0"`
	Rating           *float64     `bson:"rating" json:"rating"`
	Status           LoadStatus   `bson:"status" json:"status" validate:"omitempty,oneof=open accepted assigned in_transit delivered cancelled"`
	VehicleType      *VehicleType `bson:"vehicle_type" json:"vehicle_type" validate:"omitempty,oneof=truck trailer container tanker van"`
}

// ApplyDefaults fills the fields that have a schema default.
func (l *Load) ApplyDefaults() {
	if l.Status == "" {
		l.Status = LoadOpen
	}
}
