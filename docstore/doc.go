// Package docstore provides a small client for a single MongoDB collection.
// This package uses the zerolog logging package.
//
// The Client struct holds the Mongo client plus the database and collection
// selected when it was created with New(), which also attempts to connect.
// A failed connect is logged rather than returned so a Client is always usable,
// Connect() may be called again later and reports an unreachable server as false.
// Every other driver error is returned to the caller, wrapped but otherwise unchanged.
// Operations invoked before a successful connect return ErrNotConnected.
// Visible variables can be used to change default timeouts.
// The Client object provides a Disconnect() method suitable for use with defer.
//
// UnsafeGetAllDocuments() reads an entire collection into memory,
// GetDocumentsPage() and IterateDocuments() are the bounded alternatives.
//
// The ClientTestSuite struct is provided to wrap database connect/disconnect
// for use in tests that actually hit the database.
// The use of '+build database' separates these so that they are only run
// when using 'go test -tags database', without this tag only unit tests are run.
package docstore
