package sqliterepo

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"geoforge/internal/domain/game"
	"geoforge/internal/domain/grid"
)

// Documents are tagged so a store opened against a file written by an
// incompatible build is detected instead of silently misread.
const docSchemaTag = "geoforge.session.v1"

const docSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["schema", "player", "mode", "overrides"],
  "properties": {
    "schema": {"const": "geoforge.session.v1"},
    "player": {
      "type": "object",
      "required": ["row", "col"],
      "properties": {
        "row": {"type": "integer"},
        "col": {"type": "integer"}
      }
    },
    "held": {"type": "integer", "minimum": 1},
    "mode": {"enum": ["manual", "tracked"]},
    "overrides": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["row", "col", "value"],
        "properties": {
          "row": {"type": "integer"},
          "col": {"type": "integer"},
          "value": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

var docSchema = jsonschema.MustCompileString("session.schema.json", docSchemaJSON)

type sessionDoc struct {
	Schema    string        `json:"schema"`
	Player    docCell       `json:"player"`
	Held      *int64        `json:"held,omitempty"`
	Mode      string        `json:"mode"`
	Overrides []docOverride `json:"overrides"`
}

type docCell struct {
	Row int64 `json:"row"`
	Col int64 `json:"col"`
}

type docOverride struct {
	Row   int64 `json:"row"`
	Col   int64 `json:"col"`
	Value int64 `json:"value"`
}

func encodeDoc(snap game.Snapshot) ([]byte, error) {
	doc := sessionDoc{
		Schema:    docSchemaTag,
		Player:    docCell{Row: int64(snap.Player.Row), Col: int64(snap.Player.Col)},
		Mode:      string(snap.Mode),
		Overrides: make([]docOverride, 0, len(snap.Overrides)),
	}
	if snap.Held != nil {
		held := int64(*snap.Held)
		doc.Held = &held
	}
	for _, e := range snap.Overrides {
		doc.Overrides = append(doc.Overrides, docOverride{
			Row:   int64(e.Cell.Row),
			Col:   int64(e.Cell.Col),
			Value: int64(e.Value),
		})
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeDoc(blob []byte) (game.Snapshot, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return game.Snapshot{}, err
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("decompress doc: %w", err)
	}

	var loose any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return game.Snapshot{}, fmt.Errorf("decode doc: %w", err)
	}
	if err := docSchema.Validate(loose); err != nil {
		return game.Snapshot{}, fmt.Errorf("validate doc: %w", err)
	}

	var doc sessionDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return game.Snapshot{}, err
	}

	snap := game.Snapshot{
		Player: grid.Cell{Row: int(doc.Player.Row), Col: int(doc.Player.Col)},
		Mode:   game.MovementMode(doc.Mode),
	}
	if doc.Held != nil {
		held := game.TokenValue(*doc.Held)
		snap.Held = &held
	}
	for _, o := range doc.Overrides {
		snap.Overrides = append(snap.Overrides, game.OverrideEntry{
			Cell:  grid.Cell{Row: int(o.Row), Col: int(o.Col)},
			Value: game.TokenValue(o.Value),
		})
	}
	return snap, nil
}
