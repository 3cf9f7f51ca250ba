package docstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Document is a schema-less record: string keys mapped to dynamically typed values.
type Document = bson.M

// Query maps field names to match conditions and is passed to the driver as is.
type Query = bson.M

// InsertDocument inserts exactly one document into the bound collection
// and returns the identifier assigned to it.
func (c *Client) InsertDocument(document Document) (interface{}, error) {
	if !c.Connected() {
		return nil, ErrNotConnected
	}

	// No existence check is performed.
	c.logger.Info().Msg("Checking for existing documents")

	ctx, cancel := c.operationContext()
	defer cancel()
	result, err := c.collection.InsertOne(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	c.logger.Debug().
		Str("namespace", c.namespace()).
		Interface("id", result.InsertedID).
		Msg("Inserted document")

	return result.InsertedID, nil
}

// UpdateDocument applies newValues to at most one document matching query.
// The update document is passed to the driver unchanged so it must use update operators such as $set.
// Returns the number of modified documents, zero if nothing matched.
func (c *Client) UpdateDocument(query Query, newValues Document) (int64, error) {
	if !c.Connected() {
		return 0, ErrNotConnected
	}

	ctx, cancel := c.operationContext()
	defer cancel()
	result, err := c.collection.UpdateOne(ctx, query, newValues)
	if err != nil {
		return 0, fmt.Errorf("update document: %w", err)
	}

	c.logger.Debug().
		Str("namespace", c.namespace()).
		Interface("query", query).
		Interface("update", newValues).
		Int64("modified", result.ModifiedCount).
		Msg("Updated document")

	return result.ModifiedCount, nil
}

// DeleteDocuments deletes all documents matching query and returns how many were deleted.
func (c *Client) DeleteDocuments(query Query) (int64, error) {
	if !c.Connected() {
		return 0, ErrNotConnected
	}

	ctx, cancel := c.operationContext()
	defer cancel()
	result, err := c.collection.DeleteMany(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete documents: %w", err)
	}

	c.logger.Debug().
		Str("namespace", c.namespace()).
		Interface("query", query).
		Int64("deleted", result.DeletedCount).
		Msg("Deleted documents")

	return result.DeletedCount, nil
}

// ListCollections returns the names of all collections in the bound database.
func (c *Client) ListCollections() ([]string, error) {
	if !c.Connected() {
		return nil, ErrNotConnected
	}

	ctx, cancel := c.operationContext()
	defer cancel()
	names, err := c.database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list collection names: %w", err)
	}

	c.logger.Debug().
		Str("database", c.databaseName).
		Strs("collections", names).
		Msg("Listed collections")

	return names, nil
}

// ListDatabases returns the names of all databases visible on the server.
func (c *Client) ListDatabases() ([]string, error) {
	if !c.Connected() {
		return nil, ErrNotConnected
	}

	ctx, cancel := c.operationContext()
	defer cancel()
	names, err := c.client.ListDatabaseNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list database names: %w", err)
	}

	c.logger.Debug().Strs("databases", names).Msg("Listed databases")

	return names, nil
}

// UnsafeGetAllDocuments reads every document in the bound collection into memory.
// There is no limit, projection or paging so this is only suitable for small collections.
// Use GetDocumentsPage() or IterateDocuments() for anything else.
func (c *Client) UnsafeGetAllDocuments() ([]Document, error) {
	if !c.Connected() {
		return nil, ErrNotConnected
	}

	ctx, cancel := c.operationContext()
	defer cancel()
	cursor, err := c.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}

	documents := make([]Document, 0)
	if err = cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	c.logger.Debug().
		Str("namespace", c.namespace()).
		Int("count", len(documents)).
		Msg("Retrieved all documents")

	return documents, nil
}

// GetDocumentsPage returns at most limit documents after skipping skip documents, ordered by _id.
func (c *Client) GetDocumentsPage(skip, limit int64) ([]Document, error) {
	if !c.Connected() {
		return nil, ErrNotConnected
	}
	if limit <= 0 || skip < 0 {
		return nil, fmt.Errorf("skip %d limit %d: %w", skip, limit, ErrInvalidPage)
	}

	ctx, cancel := c.operationContext()
	defer cancel()
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := c.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}

	documents := make([]Document, 0)
	if err = cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	c.logger.Debug().
		Str("namespace", c.namespace()).
		Int64("skip", skip).
		Int("count", len(documents)).
		Msg("Retrieved page of documents")

	return documents, nil
}

// IterateDocuments applies fn to each document matching query, one at a time.
// Iteration stops at the first error returned by fn.
// A nil query matches all documents.
func (c *Client) IterateDocuments(query Query, fn func(document Document) error) error {
	if !c.Connected() {
		return ErrNotConnected
	}
	if query == nil {
		query = Query{}
	}

	ctx := c.Context()
	cursor, err := c.collection.Find(ctx, query)
	if err != nil {
		return fmt.Errorf("find documents: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var count int
	for cursor.Next(ctx) {
		document := make(Document)
		if err := cursor.Decode(&document); err != nil {
			return fmt.Errorf("decode document: %w", err)
		} else if err := fn(document); err != nil {
			return fmt.Errorf("apply function: %w", err)
		}
		count++
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("iterate documents: %w", err)
	}

	c.logger.Debug().
		Str("namespace", c.namespace()).
		Int("count", count).
		Msg("Iterated documents")

	return nil
}

func (c *Client) operationContext() (context.Context, context.CancelFunc) {
	return c.ContextWithTimeout(c.config.Timeout.Operation)
}

func (c *Client) namespace() string {
	return c.databaseName + "." + c.collectionName
}
