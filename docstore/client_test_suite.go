package docstore

// Would prefer to name this file ending in _test.go
//  so that it won't be included in generated code,
//  but then it can't be referenced from other packages for some reason,
//  so it couldn't be used (as designed) in tests in other packages.

import (
	"os"

	"github.com/stretchr/testify/suite"
)

const (
	ClientTestDBname         = "docstore-test"
	ClientTestCollectionName = "docstore-test-collection"
)

// ClientTestURI returns the server used by database tests,
// taken from DOCSTORE_TEST_URI and defaulting to a local server.
func ClientTestURI() string {
	if uri := os.Getenv("DOCSTORE_TEST_URI"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

type ClientTestSuite struct {
	suite.Suite
	client *Client
}

func (suite *ClientTestSuite) Client() *Client {
	return suite.client
}

func (suite *ClientTestSuite) SetupSuite() {
	suite.SetupSuiteConfig(nil)
}

func (suite *ClientTestSuite) SetupSuiteConfig(config *Config) {
	suite.client = New(ClientTestURI(), ClientTestDBname, ClientTestCollectionName, config)
	suite.Require().True(suite.client.Connected(), "connect to mongo")
}

func (suite *ClientTestSuite) TearDownSuite() {
	suite.NoError(suite.client.database.Drop(suite.client.Context()), "drop test database")
	suite.NoError(suite.client.Disconnect(), "disconnect from mongo")
}

// SetupTest empties the bound collection before each test.
func (suite *ClientTestSuite) SetupTest() {
	_, err := suite.client.DeleteDocuments(Query{})
	suite.Require().NoError(err)
}

// Sibling returns a connected client bound to another collection in the test database.
func (suite *ClientTestSuite) Sibling(collectionName string) *Client {
	sibling := New(ClientTestURI(), ClientTestDBname, collectionName, &suite.client.config)
	suite.Require().True(sibling.Connected(), "connect sibling to mongo")
	return sibling
}
