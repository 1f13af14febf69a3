package models

// NotificationType classifies a notification.
type NotificationType string

const (
	NotifyVehicleVerification NotificationType = "vehicle_verification"
	NotifyDocumentUploaded    NotificationType = "document_uploaded"
	NotifyVehicleApproved     NotificationType = "vehicle_approved"
	NotifyFuelTheft           NotificationType = "fuel_theft"
	NotifyVehicleLoaded       NotificationType = "vehicle_loaded"
	NotifyVehicleUnloaded     NotificationType = "vehicle_unloaded"
	NotifyWalletDebited       NotificationType = "wallet_debited"
	NotifyWalletCreated       NotificationType = "wallet_created"
	NotifyLoadConfirmed       NotificationType = "load_confirmed"
)

// Notification is a stored message for a user. There is no delivery channel.
type Notification struct {
	UserID *string          `bson:"user_id" json:"user_id"`
	Title  string           `bson:"title" json:"title" validate:"required"`
	Body   string           `bson:"body" json:"body" validate:"required"`
	Type   NotificationType `bson:"type" json:"type" validate:"omitempty,oneof=vehicle_verification document_uploaded vehicle_approved fuel_theft vehicle_loaded vehicle_unloaded wallet_debited wallet_created load_confirmed"`
	Read   bool             `bson:"read" json:"read"`
}

// ApplyDefaults fills the fields that have a schema default.
func (n *Notification) ApplyDefaults() {
	if n.Type == "" {
		n.Type = NotifyLoadConfirmed
	}
}
