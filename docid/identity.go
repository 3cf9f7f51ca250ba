package docid

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field is the name of the document identifier field.
const Field = "_id"

// Filter returns a Mongo filter object matching the document with the specified identifier.
func Filter(id interface{}) bson.M {
	return bson.M{Field: id}
}

// Parse converts a command line identifier into the value stored in the database.
// Hex strings that are valid ObjectIDs become primitive.ObjectID, anything else stays a string.
func Parse(text string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(text); err == nil {
		return oid
	}
	return text
}

// String renders an identifier returned from an insert.
func String(id interface{}) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Of returns the identifier embedded in a document, if any.
func Of(document bson.M) (interface{}, bool) {
	id, found := document[Field]
	return id, found
}
