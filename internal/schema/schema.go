// Package schema validates webhook envelopes and publishes the JSON schemas
// of the canonical entity shapes.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"basegraph.app/hubsync/internal/domain"
	"basegraph.app/hubsync/internal/mapper"
	"basegraph.app/hubsync/internal/model"
	"github.com/invopop/jsonschema"
	jsv "github.com/santhosh-tekuri/jsonschema/v6"
)

var ErrInvalidEnvelope = errors.New("invalid webhook envelope")

const envelopeURL = "https://schemas.hubsync.dev/envelope.json"

type Validator struct {
	envelope    *jsv.Schema
	envelopeDoc []byte
	canonical   map[model.EntityType][]byte
}

// New reflects the envelope and canonical shapes and compiles the envelope
// schema.
func New() (*Validator, error) {
	envelopeDoc, err := reflectSchema(&mapper.Envelope{})
	if err != nil {
		return nil, fmt.Errorf("reflecting envelope schema: %w", err)
	}

	parsed, err := jsv.UnmarshalJSON(bytes.NewReader(envelopeDoc))
	if err != nil {
		return nil, fmt.Errorf("parsing envelope schema: %w", err)
	}
	compiler := jsv.NewCompiler()
	if err := compiler.AddResource(envelopeURL, parsed); err != nil {
		return nil, fmt.Errorf("adding envelope schema: %w", err)
	}
	compiled, err := compiler.Compile(envelopeURL)
	if err != nil {
		return nil, fmt.Errorf("compiling envelope schema: %w", err)
	}

	shapes := map[model.EntityType]any{
		model.EntityIssue:      &domain.Issue{},
		model.EntityComment:    &domain.Comment{},
		model.EntityProject:    &domain.Project{},
		model.EntityInitiative: &domain.Initiative{},
		model.EntityTeam:       &domain.Team{},
	}
	canonical := make(map[model.EntityType][]byte, len(shapes))
	for entityType, shape := range shapes {
		doc, err := reflectSchema(shape)
		if err != nil {
			return nil, fmt.Errorf("reflecting %s schema: %w", entityType, err)
		}
		canonical[entityType] = doc
	}

	return &Validator{
		envelope:    compiled,
		envelopeDoc: envelopeDoc,
		canonical:   canonical,
	}, nil
}

func reflectSchema(v any) ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	return json.Marshal(reflector.Reflect(v))
}

// DecodeEnvelope validates raw against the envelope schema and decodes it.
func (v *Validator) DecodeEnvelope(raw []byte) (*mapper.Envelope, error) {
	inst, err := jsv.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	if err := v.envelope.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}

	var envelope mapper.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	return &envelope, nil
}

func (v *Validator) EnvelopeSchema() []byte {
	return v.envelopeDoc
}

// CanonicalSchema returns the JSON schema of the shape served for entityType.
func (v *Validator) CanonicalSchema(entityType model.EntityType) ([]byte, bool) {
	doc, ok := v.canonical[entityType]
	return doc, ok
}
