// Package app implements the docstore command line tool.
package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/madkins23/go-docstore/config"
	"github.com/madkins23/go-docstore/docstore"
)

// Placeholders used by commands that do not touch a collection.
const (
	serverDatabase   = "admin"
	serverCollection = "docstore"
)

// Store is the part of docstore.Client used by the commands.
type Store interface {
	DatabaseName() string
	CollectionName() string
	InsertDocument(document docstore.Document) (interface{}, error)
	UpdateDocument(query docstore.Query, newValues docstore.Document) (int64, error)
	DeleteDocuments(query docstore.Query) (int64, error)
	ListCollections() ([]string, error)
	ListDatabases() ([]string, error)
	UnsafeGetAllDocuments() ([]docstore.Document, error)
	GetDocumentsPage(skip, limit int64) ([]docstore.Document, error)
	Disconnect() error
}

// Opener returns a connected Store for the configuration.
type Opener func(cfg config.StoreConfig, logger zerolog.Logger) (Store, error)

// OpenClient is the Opener backed by a docstore.Client.
func OpenClient(cfg config.StoreConfig, logger zerolog.Logger) (Store, error) {
	client := docstore.New(cfg.URI, cfg.Database, cfg.Collection, &docstore.Config{
		Logger:  &logger,
		Timeout: docstore.Timeout{Operation: cfg.Timeout},
	})
	if !client.Connected() {
		connected, err := client.Connect()
		if err != nil {
			return nil, fmt.Errorf("connect to %s: %w", cfg.RedactedURI(), err)
		}
		if !connected {
			return nil, fmt.Errorf("unable to reach %s", cfg.RedactedURI())
		}
	}
	return client, nil
}

type Options struct {
	cfg    *config.Config
	open   Opener
	logger zerolog.Logger
}

func New(cfg *config.Config, open Opener) *cobra.Command {
	opts := &Options{
		cfg:  cfg,
		open: open,
	}

	maincmd := &cobra.Command{
		Use:   "docstore <options> <cmd> <args>",
		Short: "manipulate documents in a single MongoDB collection",
		Long: `
This command wraps the operations of a document store client
bound to one database and collection. Documents and queries
are given and printed as MongoDB Extended JSON.
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.cfg.Log.Logger(os.Stderr)
			if err != nil {
				return err
			}
			opts.logger = logger.With().Str("module", "docstore").Logger()
			return nil
		},
	}

	flags := maincmd.PersistentFlags()
	flags.StringVarP(&cfg.Store.URI, "uri", "u", cfg.Store.URI, "connection string")
	flags.StringVarP(&cfg.Store.Database, "database", "d", cfg.Store.Database, "database name")
	flags.StringVarP(&cfg.Store.Collection, "collection", "c", cfg.Store.Collection, "collection name")
	flags.DurationVar(&cfg.Store.Timeout, "timeout", cfg.Store.Timeout, "timeout for each operation")
	flags.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	flags.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log format (console or json)")

	maincmd.AddCommand(NewPing(opts))
	maincmd.AddCommand(NewInsert(opts))
	maincmd.AddCommand(NewUpdate(opts))
	maincmd.AddCommand(NewDelete(opts))
	maincmd.AddCommand(NewCollections(opts))
	maincmd.AddCommand(NewDatabases(opts))
	maincmd.AddCommand(NewDump(opts))
	return maincmd
}

// withStore opens a store bound to the configured collection, runs fn and disconnects.
func (o *Options) withStore(fn func(store Store) error) error {
	if o.cfg.Store.Database == "" || o.cfg.Store.Collection == "" {
		return fmt.Errorf("database and collection are required")
	}
	return o.run(o.cfg.Store, fn)
}

// withServer opens a store for server level commands,
// using placeholder names if no database or collection is configured.
func (o *Options) withServer(fn func(store Store) error) error {
	cfg := o.cfg.Store
	if cfg.Database == "" {
		cfg.Database = serverDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = serverCollection
	}
	return o.run(cfg, fn)
}

func (o *Options) run(cfg config.StoreConfig, fn func(store Store) error) (err error) {
	store, err := o.open(cfg, o.logger)
	if err != nil {
		return err
	}
	defer func() {
		if dErr := store.Disconnect(); dErr != nil && err == nil {
			err = dErr
		}
	}()
	return fn(store)
}
