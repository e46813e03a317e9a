package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed provision.cue
var provisionSchema string

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
)

// compiledSchema compiles the embedded provision schema once.
func compiledSchema() cue.Value {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		schemaValue = ctx.CompileString(provisionSchema, cue.Filename("provision.cue"))
	})
	return schemaValue
}

// Validate checks a raw provision JSON document against the provision
// schema before it is decoded. A record that names no citation path,
// has a malformed date, or nests a malformed child is rejected here
// with a position-annotated error.
func Validate(data []byte) error {
	schema := compiledSchema()
	if err := schema.Err(); err != nil {
		return fmt.Errorf("provision schema is invalid: %w", err)
	}
	if err := cuejson.Validate(data, schema); err != nil {
		return fmt.Errorf("provision record does not match schema: %w", err)
	}
	return nil
}
