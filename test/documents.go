package test

import (
	"github.com/brianvoe/gofakeit/v6"
	"go.mongodb.org/mongo-driver/bson"
)

// SimpleDocument matches the basic insert/read example.
// Values are int32 so that they compare equal after a round trip through the server.
func SimpleDocument() bson.M {
	return bson.M{
		"name":  "a",
		"value": int32(1),
	}
}

// NestedDocument exercises nested documents, arrays and booleans.
func NestedDocument() bson.M {
	return bson.M{
		"name":   "nested",
		"active": true,
		"tags":   bson.A{"alpha", "bravo"},
		"owner": bson.M{
			"first": "Charlie",
			"age":   int32(23),
		},
	}
}

// FakeDocuments generates count documents sharing the same kind field.
// Generation is seeded so repeated calls return the same data.
func FakeDocuments(kind string, count int) []bson.M {
	faker := gofakeit.New(23)
	documents := make([]bson.M, count)
	for i := range documents {
		documents[i] = bson.M{
			"kind":   kind,
			"user":   faker.Username(),
			"city":   faker.City(),
			"score":  int32(faker.Number(1, 1000)),
			"active": faker.Bool(),
		}
	}
	return documents
}
