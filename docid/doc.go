// Package docid supports document identifiers: building _id filters
// and converting identifiers to and from their command line form.
package docid
