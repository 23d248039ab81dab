package scenario

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ErrEmptyDocument is returned for blank scenario input.
var ErrEmptyDocument = errors.New("empty scenario document")

// Format selects the decoder for a scenario document.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatHJSON Format = "hjson"
)

// FormatFromPath picks the decoder by extension; anything unknown is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".hjson":
		return FormatHJSON
	}
	return FormatJSON
}

// LoadFile reads and decodes a scenario file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scenario %s", path)
	}
	doc, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", path)
	}
	return doc, nil
}

// Decode parses a scenario document in the given format.
func Decode(data []byte, format Format) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "yaml")
		}
	case FormatHJSON:
		normalized, err := hjsonToJSON(data)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(normalized, &doc); err != nil {
			return nil, errors.Wrap(err, "hjson")
		}
	default:
		if err := smartParse(data, &doc); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

// smartParse tries, in order: strict JSON, repaired JSON, then Hjson.
// Hand-edited payloads with trailing commas, single quotes or comments
// still decode.
func smartParse(data []byte, out *Document) error {
	if err := json.Unmarshal(data, out); err == nil {
		return nil
	}

	if repaired, err := jsonrepair.RepairJSON(string(data)); err == nil {
		*out = Document{}
		if err := json.Unmarshal([]byte(repaired), out); err == nil {
			return nil
		}
	}

	if normalized, err := hjsonToJSON(data); err == nil {
		*out = Document{}
		if err := json.Unmarshal(normalized, out); err == nil {
			return nil
		}
	}
	return errors.New("json: all parsing strategies failed")
}

// hjsonToJSON converts Hjson (comments, unquoted keys, optional commas) into
// standard JSON.
func hjsonToJSON(data []byte) ([]byte, error) {
	var tree interface{}
	if err := hjson.Unmarshal(data, &tree); err != nil {
		return nil, errors.Wrap(err, "hjson")
	}
	out, err := json.Marshal(tree)
	if err != nil {
		return nil, errors.Wrap(err, "hjson to json")
	}
	return out, nil
}
