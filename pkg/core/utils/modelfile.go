// Package utils holds tolerant parsing helpers for hand-authored model and
// actuals files. Users edit these files by hand, so the loaders accept Hjson
// (comments, unquoted keys, trailing commas) and repair common JSON mistakes
// before giving up.
package utils

import (
	"encoding/json"
	"fmt"
	"os"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// SmartParse tries multiple parsing strategies to decode input into schema.
// Order of attempts:
// 1. Standard JSON parse
// 2. JSON repair (missing quotes, single quotes, trailing commas)
// 3. Hjson parse (most lenient)
func SmartParse(input string, schema interface{}) error {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	if repaired, err := jsonrepair.RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return nil
		}
	}

	if err := hjson.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	return fmt.Errorf("all parsing strategies failed for input")
}

// LoadFile reads a file and decodes it into schema via SmartParse.
func LoadFile(path string, schema interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := SmartParse(string(data), schema); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
