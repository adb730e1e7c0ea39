// Package importer loads candidate and opportunity records from JSON files.
// Documents are checked against an embedded JSON schema before decoding.
package importer

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Kind names a record type that can be imported.
type Kind string

// Importable record kinds.
const (
	KindCandidates    Kind = "candidates"
	KindOpportunities Kind = "opportunities"
)

// ErrSchemaViolation is returned when a document does not match its schema.
var ErrSchemaViolation = errors.New("document does not match schema")

// ErrUnknownKind is returned for record kinds without a schema.
var ErrUnknownKind = errors.New("unknown record kind")

// Store receives imported records.
type Store interface {
	SaveCandidates(ctx context.Context, candidates []model.Candidate) error
	SaveOpportunities(ctx context.Context, opportunities []model.Opportunity) error
}

var (
	schemas   = map[Kind]*gojsonschema.Schema{}
	schemasMu sync.Mutex
)

func schemaFor(kind Kind) (*gojsonschema.Schema, error) {
	schemasMu.Lock()
	defer schemasMu.Unlock()

	if s, ok := schemas[kind]; ok {
		return s, nil
	}
	if kind != KindCandidates && kind != KindOpportunities {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	raw, err := schemaFS.ReadFile("schemas/" + string(kind) + ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to read %s schema: %w", kind, err)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s schema: %w", kind, err)
	}
	schemas[kind] = s
	return s, nil
}

// Validate checks data against the schema of kind.
func Validate(kind Kind, data []byte) error {
	schema, err := schemaFor(kind)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(errs, "; "))
	}
	return nil
}

// ReadCandidates decodes a schema-checked candidate array.
func ReadCandidates(r io.Reader) ([]model.Candidate, error) {
	var candidates []model.Candidate
	if err := decode(r, KindCandidates, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// ReadOpportunities decodes a schema-checked opportunity array.
func ReadOpportunities(r io.Reader) ([]model.Opportunity, error) {
	var opportunities []model.Opportunity
	if err := decode(r, KindOpportunities, &opportunities); err != nil {
		return nil, err
	}
	return opportunities, nil
}

func decode(r io.Reader, kind Kind, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", kind, err)
	}
	if err := Validate(kind, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", kind, err)
	}
	return nil
}

// ImportFile reads path as kind and upserts its records into store. It
// returns the number of records written.
func ImportFile(ctx context.Context, store Store, kind Kind, path string) (int, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch kind {
	case KindCandidates:
		candidates, err := ReadCandidates(f)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		if err := model.ValidateSnapshot(candidates, nil); err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		if len(candidates) == 0 {
			return 0, nil
		}
		if err := store.SaveCandidates(ctx, candidates); err != nil {
			return 0, fmt.Errorf("failed to save candidates: %w", err)
		}
		return len(candidates), nil
	case KindOpportunities:
		opportunities, err := ReadOpportunities(f)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		if err := model.ValidateSnapshot(nil, opportunities); err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		if len(opportunities) == 0 {
			return 0, nil
		}
		if err := store.SaveOpportunities(ctx, opportunities); err != nil {
			return 0, fmt.Errorf("failed to save opportunities: %w", err)
		}
		return len(opportunities), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
