//go:build database
// +build database

package docstore

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/madkins23/go-docstore/docid"
	"github.com/madkins23/go-docstore/test"
)

type clientTestSuite struct {
	ClientTestSuite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(clientTestSuite))
}

func (suite *clientTestSuite) TestConnect() {
	connected, err := suite.client.Connect()
	suite.Require().NoError(err)
	suite.True(connected)
	suite.True(suite.client.Connected())
}

func (suite *clientTestSuite) TestContext() {
	suite.Require().NotNil(suite.client.Context())
}

func (suite *clientTestSuite) TestInsertGetAll() {
	id, err := suite.client.InsertDocument(test.SimpleDocument())
	suite.Require().NoError(err)
	suite.Require().NotNil(id)
	documents, err := suite.client.UnsafeGetAllDocuments()
	suite.Require().NoError(err)
	suite.Require().Len(documents, 1)
	stored, found := docid.Of(documents[0])
	suite.Require().True(found)
	suite.Equal(id, stored)
	expected := test.SimpleDocument()
	expected[docid.Field] = id
	suite.Equal(expected, documents[0])
}

func (suite *clientTestSuite) TestInsertNested() {
	_, err := suite.client.InsertDocument(test.NestedDocument())
	suite.Require().NoError(err)
	documents, err := suite.client.UnsafeGetAllDocuments()
	suite.Require().NoError(err)
	suite.Require().Len(documents, 1)
	delete(documents[0], "_id")
	suite.Equal(test.NestedDocument(), documents[0])
}

func (suite *clientTestSuite) TestInsertDuplicate() {
	_, err := suite.client.InsertDocument(Document{"_id": "fixed"})
	suite.Require().NoError(err)
	_, err = suite.client.InsertDocument(Document{"_id": "fixed"})
	suite.Require().Error(err)
	suite.True(IsDuplicate(err))
}

func (suite *clientTestSuite) TestUpdateNoMatch() {
	_, err := suite.client.InsertDocument(test.SimpleDocument())
	suite.Require().NoError(err)
	modified, err := suite.client.UpdateDocument(
		Query{"_id": primitive.NewObjectID()}, Document{"$set": Document{"value": int32(2)}})
	suite.Require().NoError(err)
	suite.Zero(modified)
	documents, err := suite.client.UnsafeGetAllDocuments()
	suite.Require().NoError(err)
	suite.Require().Len(documents, 1)
	suite.Equal(int32(1), documents[0]["value"])
}

func (suite *clientTestSuite) TestUpdateOne() {
	id, err := suite.client.InsertDocument(test.SimpleDocument())
	suite.Require().NoError(err)
	modified, err := suite.client.UpdateDocument(Query{"_id": id}, Document{"$set": Document{"value": int32(2)}})
	suite.Require().NoError(err)
	suite.Equal(int64(1), modified)
	documents, err := suite.client.UnsafeGetAllDocuments()
	suite.Require().NoError(err)
	suite.Require().Len(documents, 1)
	suite.Equal(int32(2), documents[0]["value"])
	suite.Equal("a", documents[0]["name"])
}

func (suite *clientTestSuite) TestUpdateOnlyOne() {
	for _, document := range test.FakeDocuments("same", 3) {
		_, err := suite.client.InsertDocument(document)
		suite.Require().NoError(err)
	}
	modified, err := suite.client.UpdateDocument(Query{"kind": "same"}, Document{"$set": Document{"marked": true}})
	suite.Require().NoError(err)
	suite.Equal(int64(1), modified)
}

func (suite *clientTestSuite) TestDeleteMany() {
	for _, document := range test.FakeDocuments("doomed", 4) {
		_, err := suite.client.InsertDocument(document)
		suite.Require().NoError(err)
	}
	_, err := suite.client.InsertDocument(test.SimpleDocument())
	suite.Require().NoError(err)

	deleted, err := suite.client.DeleteDocuments(Query{"kind": "doomed"})
	suite.Require().NoError(err)
	suite.Equal(int64(4), deleted)
	deleted, err = suite.client.DeleteDocuments(Query{"kind": "doomed"})
	suite.Require().NoError(err)
	suite.Zero(deleted)

	documents, err := suite.client.UnsafeGetAllDocuments()
	suite.Require().NoError(err)
	suite.Len(documents, 1)
}

func (suite *clientTestSuite) TestListCollections() {
	sibling := suite.Sibling("docstore-test-sibling")
	defer func() {
		suite.NoError(sibling.Disconnect())
	}()
	_, err := suite.client.InsertDocument(test.SimpleDocument())
	suite.Require().NoError(err)
	_, err = sibling.InsertDocument(test.SimpleDocument())
	suite.Require().NoError(err)

	names, err := suite.client.ListCollections()
	suite.Require().NoError(err)
	suite.Equal(1, count(names, ClientTestCollectionName))
	suite.Equal(1, count(names, "docstore-test-sibling"))
}

func (suite *clientTestSuite) TestListDatabases() {
	_, err := suite.client.InsertDocument(test.SimpleDocument())
	suite.Require().NoError(err)
	names, err := suite.client.ListDatabases()
	suite.Require().NoError(err)
	suite.Equal(1, count(names, ClientTestDBname))
}

func (suite *clientTestSuite) TestPages() {
	for _, document := range test.FakeDocuments("paged", 5) {
		_, err := suite.client.InsertDocument(document)
		suite.Require().NoError(err)
	}
	all, err := suite.client.UnsafeGetAllDocuments()
	suite.Require().NoError(err)
	suite.Require().Len(all, 5)

	first, err := suite.client.GetDocumentsPage(0, 3)
	suite.Require().NoError(err)
	suite.Len(first, 3)
	second, err := suite.client.GetDocumentsPage(3, 3)
	suite.Require().NoError(err)
	suite.Len(second, 2)
	suite.NotEqual(first[2]["_id"], second[0]["_id"])
}

func (suite *clientTestSuite) TestIterate() {
	for _, document := range test.FakeDocuments("iterated", 3) {
		_, err := suite.client.InsertDocument(document)
		suite.Require().NoError(err)
	}
	var seen int
	suite.Require().NoError(suite.client.IterateDocuments(Query{"kind": "iterated"}, func(document Document) error {
		suite.Equal("iterated", document["kind"])
		seen++
		return nil
	}))
	suite.Equal(3, seen)
}

func count(names []string, name string) int {
	var found int
	for _, n := range names {
		if n == name {
			found++
		}
	}
	return found
}
