package models

// VehicleType is the body type of a vehicle.
type VehicleType string

const (
	VehicleTruck     VehicleType = "truck"
	VehicleTrailer   VehicleType = "trailer"
	VehicleContainer VehicleType = "container"
	VehicleTanker    VehicleType = "tanker"
	VehicleVan       VehicleType = "van"
)

// VehicleStatus is the operational status of a vehicle.
type VehicleStatus string

const (
	VehicleIdle        VehicleStatus = "idle"
	VehicleEnroute     VehicleStatus = "enroute"
	VehicleLoaded      VehicleStatus = "loaded"
	VehicleUnloaded    VehicleStatus = "unloaded"
	VehicleMaintenance VehicleStatus = "maintenance"
)

// Vehicle represents a fleet vehicle as submitted on creation.
type Vehicle struct {
	Plate         string        `bson:"plate" json:"plate" validate:"required"` // registration number
	Type          VehicleType   `bson:"type" json:"type" validate:"omitempty,oneof=truck trailer container tanker van"`
	Make          *string       `bson:"make" json:"make"`
	Model         *string       `bson:"model" json:"model"`
	Year          *int          `bson:"year" json:"year" validate:"omitempty,gte=1900,lte=2100"`
	EngineOn      bool          `bson:"engine_on" json:"engine_on"`
	GPSActive     *bool         `bson:"gps_active" json:"gps_active"`
	FuelLevel     *float64      `bson:"fuel_level" json:"fuel_level" validate:"omitempty,gte=0"`
	Speed         *float64      `bson:"speed" json:"speed" validate:"omitempty,gte=0"`
	Status        VehicleStatus `bson:"status" json:"status" validate:"omitempty,oneof=idle enroute loaded unloaded maintenance"`
	Location      *Location     `bson:"location" json:"location"`
	WalletBalance float64       `bson:"wallet_balance" json:"wallet_balance"`
}

// ApplyDefaults fills the fields that have a schema default.
func (v *Vehicle) ApplyDefaults() {
	if v.Type == "" {
		v.Type = VehicleTruck
	}
	if v.Status == "" {
		v.Status = VehicleIdle
	}
	if v.GPSActive == nil {
		active := true
		v.GPSActive = &active
	}
}

// VehicleUpdate is a partial vehicle update: only non-nil fields are written.
// It has no wallet_balance field.
type VehicleUpdate struct {
	Plate     *string        `bson:"plate,omitempty" json:"plate" validate:"omitempty,min=1"`
	Type      *VehicleType   `bson:"type,omitempty" json:"type" validate:"omitempty,oneof=truck trailer container tanker van"`
	Make      *string        `bson:"make,omitempty" json:"make"`
	Model     *string        `bson:"model,omitempty" json:"model"`
	Year      *int           `bson:"year,omitempty" json:"year" validate:"omitempty,gte=1900,lte=2100"`
	EngineOn  *bool          `bson:"engine_on,omitempty" json:"engine_on"`
	GPSActive *bool          `bson:"gps_active,omitempty" json:"gps_active"`
	FuelLevel *float64       `bson:"fuel_level,omitempty" json:"fuel_level" validate:"omitempty,gte=0"`
	Speed     *float64       `bson:"speed,omitempty" json:"speed" validate:"omitempty,gte=0"`
	Status    *VehicleStatus `bson:"status,omitempty" json:"status" validate:"omitempty,oneof=idle enroute loaded unloaded maintenance"`
	Location  *Location      `bson:"location,omitempty" json:"location"`
}
