package erp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Action names used for payload validation.
const (
	ActionNavigate        = "navigate"
	ActionQuickActions    = "shell.quick_actions"
	ActionInventoryQuery  = "inventory.query"
	ActionInventoryAdjust = "inventory.adjust"
	ActionTeamQuery       = "hr.query"
	ActionSettingsUpdate  = "settings.update"
)

// Bounds of a single quantity adjustment accepted from transports.
const (
	MinAdjustDelta = math.MinInt32
	MaxAdjustDelta = math.MaxInt32
)

// PayloadValidator validates transport payloads for an action.
type PayloadValidator interface {
	Validate(action string, payload map[string]any) error
}

// JSONSchemaValidator compiles action schemas and validates payload maps.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	schemas  map[string]map[string]any
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator preloaded with the action schemas.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		schemas:  ActionSchemas(),
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// ActionSchemas returns the JSON schema of every action payload.
func ActionSchemas() map[string]map[string]any {
	currencies := make([]any, 0, len(Currencies()))
	for _, c := range Currencies() {
		currencies = append(currencies, string(c))
	}
	query := map[string]any{
		"type":     "object",
		"required": []any{"q"},
		"properties": map[string]any{
			"q": map[string]any{"type": "string"},
		},
	}
	return map[string]map[string]any{
		ActionNavigate: {
			"type":     "object",
			"required": []any{"path"},
			"properties": map[string]any{
				"path": map[string]any{"type": "string", "minLength": 1},
			},
		},
		ActionQuickActions: {
			"type":     "object",
			"required": []any{"open"},
			"properties": map[string]any{
				"open": map[string]any{"type": "boolean"},
			},
		},
		ActionInventoryQuery: query,
		ActionTeamQuery:      query,
		ActionInventoryAdjust: {
			"type":     "object",
			"required": []any{"id", "delta"},
			"properties": map[string]any{
				"id":    map[string]any{"type": "string", "minLength": 1},
				"delta": map[string]any{"type": "integer", "minimum": MinAdjustDelta, "maximum": MaxAdjustDelta},
			},
		},
		ActionSettingsUpdate: {
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"name":     map[string]any{"type": "string"},
				"currency": map[string]any{"type": "string", "enum": currencies},
			},
		},
	}
}

// Validate checks the payload against the action schema. Actions without a schema pass.
func (v *JSONSchemaValidator) Validate(action string, payload map[string]any) error {
	schema, err := v.schemaFor(action)
	if err != nil || schema == nil {
		return err
	}
	normalized := map[string]any{}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("erp: marshal payload for %s: %w", action, err)
		}
		if err := json.Unmarshal(data, &normalized); err != nil {
			return fmt.Errorf("erp: normalize payload for %s: %w", action, err)
		}
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("erp: payload for %s failed validation: %w", action, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(action string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[action]
	raw, known := v.schemas[action]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	if !known {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("erp: marshal schema %s: %w", action, err)
	}
	compiler := jsonschema.NewCompiler()
	name := action + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("erp: load schema %s: %w", action, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("erp: compile schema %s: %w", action, err)
	}
	v.mu.Lock()
	v.compiled[action] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopPayloadValidator struct{}

func (noopPayloadValidator) Validate(string, map[string]any) error { return nil }

// NormalizeValidator returns a no-op validator for nil.
func NormalizeValidator(v PayloadValidator) PayloadValidator {
	if v == nil {
		return noopPayloadValidator{}
	}
	return v
}
