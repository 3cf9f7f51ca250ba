// Package docjson converts documents to and from MongoDB Extended JSON.
// Relaxed Extended JSON is produced and both relaxed and canonical forms are accepted,
// so values such as ObjectIDs and dates survive a trip through the command line.
package docjson
