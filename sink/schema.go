package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/broady/opschema/ir"
)

// EncodeSchema returns the indented JSON encoding of schema with a trailing
// newline.
func EncodeSchema(schema *ir.Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(schema); err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteSchema encodes schema and writes it to path in out.
func WriteSchema(ctx context.Context, out OutputSink, path string, schema *ir.Schema) error {
	content, err := EncodeSchema(schema)
	if err != nil {
		return err
	}
	if err := out.WriteFile(ctx, path, content); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	return nil
}
