package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToBSON converts a tagged struct into a schema-less document.
func ToBSON(v interface{}) (bson.M, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal %T: %w", v, err)
	}
	return doc, nil
}
