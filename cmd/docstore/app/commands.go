package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madkins23/go-docstore/docid"
	"github.com/madkins23/go-docstore/docjson"
	"github.com/madkins23/go-docstore/docstore"
)

func NewPing(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServer(func(store Store) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s\n", opts.cfg.Store.RedactedURI())
				return err
			})
		},
	}
}

func NewInsert(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <document>",
		Short: "insert one document and print its identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := docjson.ParseDocument(args[0])
			if err != nil {
				return fmt.Errorf("document: %w", err)
			}
			return opts.withStore(func(store Store) error {
				id, err := store.InsertDocument(document)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), docid.String(id))
				return err
			})
		},
	}
}

type Update struct {
	cmd *cobra.Command

	mainopts *Options
	id       string
}

func NewUpdate(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update {<query>|--id <id>} <update>",
		Short: "update at most one matching document and print the modified count",
		Args:  cobra.RangeArgs(1, 2),
	}

	c := &Update{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	cmd.Flags().StringVar(&c.id, "id", "", "identifier of the document to update")
	return cmd
}

func (c *Update) Run(args []string) error {
	query, rest, err := queryFrom(c.id, args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("exactly one update document required")
	}
	update, err := docjson.ParseDocument(rest[0])
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	return c.mainopts.withStore(func(store Store) error {
		modified, err := store.UpdateDocument(query, update)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.cmd.OutOrStdout(), modified)
		return err
	})
}

type Delete struct {
	cmd *cobra.Command

	mainopts *Options
	id       string
	all      bool
}

func NewDelete(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete {<query>|--id <id>|--all}",
		Short: "delete all matching documents and print the deleted count",
		Args:  cobra.MaximumNArgs(1),
	}

	c := &Delete{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVar(&c.id, "id", "", "identifier of the document to delete")
	flags.BoolVarP(&c.all, "all", "A", false, "delete every document in the collection")
	return cmd
}

func (c *Delete) Run(args []string) error {
	var query docstore.Query
	if c.all {
		if c.id != "" || len(args) > 0 {
			return fmt.Errorf("--all can't be combined with a query")
		}
		query = docstore.Query{}
	} else {
		var rest []string
		var err error
		if query, rest, err = queryFrom(c.id, args); err != nil {
			return err
		} else if len(rest) > 0 {
			return fmt.Errorf("unexpected arguments %v", rest)
		} else if len(query) == 0 {
			// An empty query matches everything so require it to be explicit.
			return fmt.Errorf("empty query, use --all to delete every document")
		}
	}

	return c.mainopts.withStore(func(store Store) error {
		deleted, err := store.DeleteDocuments(query)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.cmd.OutOrStdout(), deleted)
		return err
	})
}

func NewCollections(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "list collections in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.Store.Database == "" {
				return fmt.Errorf("database is required")
			}
			return opts.withServer(func(store Store) error {
				names, err := store.ListCollections()
				if err != nil {
					return err
				}
				return printNames(cmd, names)
			})
		},
	}
}

func NewDatabases(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "databases",
		Short: "list databases on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServer(func(store Store) error {
				names, err := store.ListDatabases()
				if err != nil {
					return err
				}
				return printNames(cmd, names)
			})
		},
	}
}

type Dump struct {
	cmd *cobra.Command

	mainopts *Options
	skip     int64
	limit    int64
	all      bool
}

func NewDump(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "print documents in the collection",
		Args:  cobra.NoArgs,
	}

	c := &Dump{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run() }
	flags := cmd.Flags()
	flags.Int64Var(&c.skip, "skip", 0, "documents to skip")
	flags.Int64Var(&c.limit, "limit", 100, "maximum documents to print")
	flags.BoolVarP(&c.all, "all", "A", false, "read the whole collection into memory, ignoring --skip and --limit")
	return cmd
}

func (c *Dump) Run() error {
	return c.mainopts.withStore(func(store Store) error {
		var documents []docstore.Document
		var err error
		if c.all {
			documents, err = store.UnsafeGetAllDocuments()
		} else {
			documents, err = store.GetDocumentsPage(c.skip, c.limit)
		}
		if err != nil {
			return err
		}
		return docjson.FormatLines(c.cmd.OutOrStdout(), documents)
	})
}

// queryFrom builds a query from the --id flag or, if that is empty, the first argument.
// The remaining arguments are returned.
func queryFrom(id string, args []string) (docstore.Query, []string, error) {
	if id != "" {
		return docid.Filter(docid.Parse(id)), args, nil
	}
	if len(args) < 1 {
		return nil, nil, fmt.Errorf("query or --id required")
	}
	query, err := docjson.ParseDocument(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	return query, args[1:], nil
}

func printNames(cmd *cobra.Command, names []string) error {
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return err
		}
	}
	return nil
}
