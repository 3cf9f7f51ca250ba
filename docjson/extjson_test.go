package docjson

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/madkins23/go-docstore/test"
)

type ExtJSONTestSuite struct {
	suite.Suite
}

func TestExtJSONSuite(t *testing.T) {
	suite.Run(t, new(ExtJSONTestSuite))
}

//////////////////////////////////////////////////////////////////////////

func (suite *ExtJSONTestSuite) TestParseEmpty() {
	for _, text := range []string{"", "   ", "{}"} {
		document, err := ParseDocument(text)
		suite.Require().NoError(err)
		suite.Empty(document)
		suite.NotNil(document)
	}
}

func (suite *ExtJSONTestSuite) TestParseRelaxed() {
	document, err := ParseDocument(`{"name": "a", "value": 1, "ok": true, "tags": ["x", "y"]}`)
	suite.Require().NoError(err)
	suite.Equal("a", document["name"])
	suite.Equal(int32(1), document["value"])
	suite.Equal(true, document["ok"])
	suite.Equal(bson.A{"x", "y"}, document["tags"])
}

func (suite *ExtJSONTestSuite) TestParseObjectID() {
	oid := primitive.NewObjectID()
	document, err := ParseDocument(`{"_id": {"$oid": "` + oid.Hex() + `"}}`)
	suite.Require().NoError(err)
	suite.Equal(oid, document["_id"])
}

func (suite *ExtJSONTestSuite) TestParseOperator() {
	document, err := ParseDocument(`{"$set": {"value": 2}}`)
	suite.Require().NoError(err)
	suite.Equal(bson.M{"value": int32(2)}, document["$set"])
}

func (suite *ExtJSONTestSuite) TestParseErrors() {
	_, err := ParseDocument(`[1, 2]`)
	suite.ErrorIs(err, ErrNotDocument)
	_, err = ParseDocument(`{"name": `)
	suite.Error(err)
	_, err = ParseDocument(`{"` + strings.Repeat("x", 100) + `": `)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "...")
}

func (suite *ExtJSONTestSuite) TestAbbreviate() {
	suite.Equal("short", abbreviate("short"))
	long := strings.Repeat("é", 50)
	short := abbreviate(long)
	suite.True(utf8.ValidString(short))
	suite.Equal(strings.Repeat("é", 40)+"...", short)
}

func (suite *ExtJSONTestSuite) TestFormatRoundTrip() {
	original := test.NestedDocument()
	original["_id"] = primitive.NewObjectID()
	text, err := Format(original)
	suite.Require().NoError(err)
	suite.NotContains(text, "\n")
	parsed, err := ParseDocument(text)
	suite.Require().NoError(err)
	suite.Equal(original, parsed)
}

func (suite *ExtJSONTestSuite) TestFormatNil() {
	text, err := Format(nil)
	suite.Require().NoError(err)
	suite.Equal("{}", text)
}

func (suite *ExtJSONTestSuite) TestFormatLines() {
	documents := test.FakeDocuments("line", 3)
	var buffer bytes.Buffer
	suite.Require().NoError(FormatLines(&buffer, documents))
	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	suite.Require().Len(lines, 3)
	for i, line := range lines {
		parsed, err := ParseDocument(line)
		suite.Require().NoError(err)
		suite.Equal(documents[i], parsed)
	}
}
