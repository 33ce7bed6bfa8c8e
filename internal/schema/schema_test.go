package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukejenkins/ap-gnss-stats/internal/parser"
)

func TestValidateParsedRecord(t *testing.T) {
	p := parser.New()

	// an empty transcript must still produce a schema-valid record
	rec := p.Parse("", parser.Options{})
	assert.NoError(t, ValidateRecord(rec))

	rec = p.Parse("ap-1#show gnss info\nGnssState: Enabled\nLatitude: 41.19\n", parser.Options{})
	assert.NoError(t, ValidateRecord(rec))
}

func TestValidateRecordWithRecoveredHostname(t *testing.T) {
	// truncation recovery against a long source hostname must not push
	// ap_name past the schema's length cap
	content := "site-outdoor-building-west-ap-a#show gnss info\nGnssState: Enabled\n"
	rec := parser.New().Parse(content, parser.Options{
		SourceAddress: "site-outdoor-building-west-ap-unit-17.mgmt.example.edu",
	})

	assert.NoError(t, ValidateRecord(rec))
}

func TestValidateRejectsOverlongAPName(t *testing.T) {
	rec := parser.New().Parse("", parser.Options{})
	rec.Main.APName = "this-name-is-far-longer-than-thirty-two-characters"

	err := ValidateRecord(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestValidateRejectsWrongType(t *testing.T) {
	rec := parser.New().Parse("", parser.Options{})
	rec.Main.APName = 12345

	assert.Error(t, ValidateRecord(rec))
}
