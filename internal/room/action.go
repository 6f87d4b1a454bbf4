package room

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/unicode/norm"
)

// ActionType is the tag of a client-submitted mutation request.
type ActionType string

const (
	ActionAdd            ActionType = "add"
	ActionRemove         ActionType = "remove"
	ActionClear          ActionType = "clear"
	ActionUpdatePosition ActionType = "update_position"
)

func (t ActionType) known() bool {
	switch t {
	case ActionAdd, ActionRemove, ActionClear, ActionUpdatePosition:
		return true
	}
	return false
}

// Action is one mutation request. Only the payload fields belonging to
// Type are read.
type Action struct {
	Type     ActionType `json:"action"`
	Block    *Block     `json:"block,omitempty"`
	BlockId  string     `json:"blockId,omitempty"`
	Position *Position  `json:"position,omitempty"`
	Sender   string     `json:"sender,omitempty"`
}

// BlockTypes reports whether a block type exists in the static catalog.
type BlockTypes interface {
	HasBlockType(name string) bool
}

const actionSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["action"],
	"properties": {
		"action": {"type": "string"},
		"sender": {"type": "string"},
		"blockId": {"type": "string", "minLength": 1},
		"block": {"$ref": "#/definitions/block"},
		"position": {"$ref": "#/definitions/position"}
	},
	"allOf": [
		{"if": {"properties": {"action": {"const": "add"}}}, "then": {"required": ["block"]}},
		{"if": {"properties": {"action": {"const": "remove"}}}, "then": {"required": ["blockId"]}},
		{"if": {"properties": {"action": {"const": "update_position"}}}, "then": {"required": ["position", "sender"]}}
	],
	"definitions": {
		"block": {
			"type": "object",
			"required": ["id", "x", "y", "z"],
			"properties": {
				"id": {"type": "string", "minLength": 1},
				"x": {"type": "integer"},
				"y": {"type": "integer"},
				"z": {"type": "integer"},
				"blockType": {"type": "string"},
				"color": {"type": "string"}
			}
		},
		"position": {
			"type": "object",
			"required": ["x", "y", "z"],
			"properties": {
				"x": {"type": "number"},
				"y": {"type": "number"},
				"z": {"type": "number"}
			}
		}
	}
}`

var actionSchema = jsonschema.MustCompileString("action.schema.json", actionSchemaJSON)

// DecodeAction parses and validates a submitted action body. Unknown action
// tags yield ErrInvalidAction; anything else wrong with the body yields
// ErrMalformedPayload. Both are returned as *PayloadError. types may be nil,
// in which case any block type is accepted.
func DecodeAction(data []byte, types BlockTypes) (Action, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Action{}, malformed("body is not valid JSON")
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return Action{}, malformed("body must be a JSON object")
	}

	tag, present := obj["action"]
	if !present {
		return Action{}, malformed("action is required")
	}
	s, ok := tag.(string)
	if !ok {
		return Action{}, malformed("action must be a string")
	}
	if !ActionType(s).known() {
		return Action{}, invalidAction(fmt.Sprintf("unrecognized action %q", s))
	}

	if err := actionSchema.Validate(raw); err != nil {
		return Action{}, malformed(err.Error())
	}

	var a Action
	if err := json.Unmarshal(data, &a); err != nil {
		return Action{}, malformed(err.Error())
	}
	a.Sender = NormalizeName(a.Sender)

	if err := a.Validate(types); err != nil {
		return Action{}, malformed(err.Error())
	}

	return a, nil
}

// Validate checks the payload fields required by the action's type.
func (a *Action) Validate(types BlockTypes) error {
	el := errors.NewErrorList()

	switch a.Type {
	case ActionAdd:
		if a.Block == nil {
			el.Add(fmt.Errorf("block is required"))
			break
		}
		el.Add(a.Block.Validate())
		if a.Block.BlockType != "" && types != nil && !types.HasBlockType(a.Block.BlockType) {
			el.Add(fmt.Errorf("unknown block type %q", a.Block.BlockType))
		}
	case ActionRemove:
		if a.BlockId == "" {
			el.Add(fmt.Errorf("blockId is required"))
		}
	case ActionUpdatePosition:
		if a.Sender == "" {
			el.Add(fmt.Errorf("sender is required"))
		}
		if a.Position == nil {
			el.Add(fmt.Errorf("position is required"))
		} else {
			el.Add(a.Position.Validate())
		}
	}

	return el.Err()
}

// NormalizeName trims a display name and puts it in NFC form so names that
// render identically share one identity.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
