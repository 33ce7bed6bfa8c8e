// Package schema validates parsed device records against the embedded JSON
// schema, catching records that would break downstream consumers before they
// are written out.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/lukejenkins/ap-gnss-stats/internal/models"
)

//go:embed schema.json
var recordSchema []byte

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compile() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var schemaValue any
		if err := json.Unmarshal(recordSchema, &schemaValue); err != nil {
			compileErr = fmt.Errorf("parsing embedded schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("record.json", schemaValue); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("record.json")
	})
	return compiled, compileErr
}

// ValidateRecord checks a record against the embedded schema. A nil return
// means the record conforms.
func ValidateRecord(rec *models.DeviceRecord) error {
	schema, err := compile()
	if err != nil {
		return err
	}
	value, err := rec.ToMap()
	if err != nil {
		return fmt.Errorf("serializing record: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("record failed schema validation: %w", err)
	}
	return nil
}
