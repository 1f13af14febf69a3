package models

// MaxDocumentSize keeps uploads well below MongoDB's 16MB document limit.
const MaxDocumentSize = 10 << 20

// Document is the metadata stored alongside an uploaded file.
type Document struct {
	VehicleID   *string `bson:"vehicle_id" json:"vehicle_id" form:"vehicle_id"`
	UserID      *string `bson:"user_id" json:"user_id" form:"user_id"`
	Name        string  `bson:"name" json:"name" form:"name" validate:"required"`
	ContentType string  `bson:"content_type" json:"content_type" form:"content_type" validate:"required"`
	URL         *string `bson:"url" json:"url" form:"-"`
}
