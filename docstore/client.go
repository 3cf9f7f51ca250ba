package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// Client encapsulates a database connection bound to a single database and collection.
type Client struct {
	uri            string
	databaseName   string
	collectionName string
	config         Config
	logger         zerolog.Logger

	client     *mongo.Client
	database   *mongo.Database
	collection *mongo.Collection
}

var (
	// DefaultConnectTimeout is the default timeout for the initial connect.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultDisconnectTimeout is the default timeout for the disconnect.
	DefaultDisconnectTimeout = 10 * time.Second

	// DefaultPingTimeout is the default timeout for the ping to make sure the connection is up.
	DefaultPingTimeout = 2 * time.Second

	// DefaultOperationTimeout is the default timeout for a single document or listing operation.
	DefaultOperationTimeout = 30 * time.Second
)

// Config items for the document store connection.
type Config struct {
	// Base context for use in calls to Mongo.
	Ctx context.Context

	// Mongo options.
	// The connection string passed to New is applied on top of these.
	Options *options.ClientOptions

	// Logger for connection and operation messages.
	// If nil the global zerolog logger is used, tagged with the module name.
	Logger *zerolog.Logger
	// Errors should bubble up and be handled by client code.

	Timeout
}

// Timeout settings for document store access.
type Timeout struct {
	// Timeout for the initial connect.
	Connect time.Duration

	// Timeout for the disconnect.
	Disconnect time.Duration

	// Timeout for the ping to make sure the connection is up.
	Ping time.Duration

	// Timeout for each document or listing operation.
	Operation time.Duration
}

// New creates a client for the specified connection string, database and collection
// and immediately attempts to connect.
// A failed connect does not fail construction, it is logged and may be retried with Connect().
// Operations on a client that has never connected return ErrNotConnected.
// If config is nil the defaults are used.
func New(uri, databaseName, collectionName string, config *Config) *Client {
	config = fixConfig(config)
	c := &Client{
		uri:            uri,
		databaseName:   databaseName,
		collectionName: collectionName,
		config:         *config,
		logger:         *config.Logger,
	}

	if _, err := c.Connect(); err != nil {
		c.logger.Debug().Err(err).Msg("Connection failed")
	}

	return c
}

// Connect to the server using the stored connection string and ping it to confirm reachability.
// Returns true when the database and collection are bound.
// A server that can't be selected in time is reported as false with a nil error.
// Any other failure is returned as an error.
func (c *Client) Connect() (bool, error) {
	ctx, cancel := c.ContextWithTimeout(c.config.Timeout.Connect)
	defer cancel()

	client, err := mongo.Connect(ctx, c.config.Options, options.Client().ApplyURI(c.uri))
	if err != nil {
		if IsUnreachable(err) {
			c.logger.Debug().Err(err).Msg("Connection failed")
			return false, nil
		}
		return false, fmt.Errorf("unable to connect mongo server: %w", err)
	}

	if err = c.ping(client); err != nil {
		c.discard(client)
		if IsUnreachable(err) {
			c.logger.Debug().Err(err).Msg("Connection failed")
			return false, nil
		}
		return false, err
	}

	if c.client != nil && c.client != client {
		c.discard(c.client)
	}
	c.attach(client)
	c.logger.Debug().
		Str("database", c.databaseName).
		Str("collection", c.collectionName).
		Msg("Connection to MongoDB successful")

	return true, nil
}

// Connected returns true if the client has successfully connected and not been disconnected.
func (c *Client) Connected() bool {
	return c.collection != nil
}

// Disconnect the Mongo client.
// Provided for use in defer statements.
// Disconnecting a client that never connected is not an error.
func (c *Client) Disconnect() error {
	if c.client == nil {
		return nil
	}

	ctx, cancel := c.ContextWithTimeout(c.config.Timeout.Disconnect)
	defer cancel()
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("unable to disconnect mongo server: %w", err)
	}

	c.client, c.database, c.collection = nil, nil, nil
	c.logger.Debug().Msg("Disconnected from MongoDB")

	return nil
}

// DatabaseName returns the name of the bound database.
func (c *Client) DatabaseName() string {
	return c.databaseName
}

// CollectionName returns the name of the bound collection.
func (c *Client) CollectionName() string {
	return c.collectionName
}

// Context returns the base context for the object.
func (c *Client) Context() context.Context {
	return c.config.Ctx
}

// ContextWithTimeout returns the base context for the object with the specified timeout.
func (c *Client) ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.config.Ctx, timeout)
}

func (c *Client) ping(client *mongo.Client) error {
	ctx, cancel := c.ContextWithTimeout(c.config.Timeout.Ping)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("unable to ping mongo server: %w", err)
	}

	return nil
}

// attach binds the database and collection references from a connected Mongo client.
func (c *Client) attach(client *mongo.Client) {
	c.client = client
	c.database = client.Database(c.databaseName)
	c.collection = c.database.Collection(c.collectionName)
}

func (c *Client) discard(client *mongo.Client) {
	ctx, cancel := c.ContextWithTimeout(c.config.Timeout.Disconnect)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		c.logger.Debug().Err(err).Msg("Discarding unused connection")
	}
}

func fixConfig(config *Config) *Config {
	if config == nil {
		config = &Config{}
	}

	if config.Ctx == nil {
		config.Ctx = context.Background()
	}

	if config.Options == nil {
		config.Options = options.Client()
	}

	if config.Logger == nil {
		logger := log.Logger.With().Str("module", "docstore").Logger()
		config.Logger = &logger
	}

	if config.Timeout.Connect == 0 {
		config.Timeout.Connect = DefaultConnectTimeout
	}

	if config.Timeout.Disconnect == 0 {
		config.Timeout.Disconnect = DefaultDisconnectTimeout
	}

	if config.Timeout.Ping == 0 {
		config.Timeout.Ping = DefaultPingTimeout
	}

	if config.Timeout.Operation == 0 {
		config.Timeout.Operation = DefaultOperationTimeout
	}

	return config
}

////////////////////////////////////////////////////////////////////////////////
// Functions to check for specific, known errors.

var (
	// ErrNotConnected is returned by operations invoked before a successful Connect().
	ErrNotConnected = errors.New("not connected")

	// ErrInvalidPage is returned by GetDocumentsPage() for a non-positive limit or negative skip.
	ErrInvalidPage = errors.New("invalid page")
)

// IsDuplicate checks to see if the specified error is for attempting to create a duplicate document.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}

	return mongo.IsDuplicateKeyError(err)
}

// IsUnreachable checks to see if the specified error means that no server could be selected in time.
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}

	var sse topology.ServerSelectionError
	return mongo.IsTimeout(err) || errors.As(err, &sse)
}
