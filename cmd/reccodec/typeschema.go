package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/solidcoredata/reccodec/dt"
	"github.com/solidcoredata/reccodec/rectype"
)

// typeSchemaFile is the on-disk JSON form a type schema is read from and
// written to by this tool: an Avro-style type definition plus the
// per-column properties that recover scalar types an Avro base type alone
// cannot express (see rectype.TypeSchema).
type typeSchemaFile struct {
	Label          string              `json:"label"`
	TypeDefinition json.RawMessage     `json:"type_definition"`
	Properties     map[string][]string `json:"properties"`
}

func readRecordType(path string) (*rectype.RecordType, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading type schema %q: %w", path, err)
	}
	var tf typeSchemaFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		return nil, fmt.Errorf("parsing type schema %q: %w", path, err)
	}
	typ, err := rectype.FromTypeSchema(tf.Label, string(tf.TypeDefinition), tf.Properties)
	if err != nil {
		return nil, fmt.Errorf("building record type from %q: %w", path, err)
	}
	return typ, nil
}

// coerceRow converts a JSON-decoded row (where every number arrives as
// float64 and every date/time arrives as a formatted string) into the
// concrete Go types record.Set expects for typ's columns.
func coerceRow(typ *rectype.RecordType, row map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(row))
	for name, v := range row {
		if v == nil {
			out[name] = nil
			continue
		}
		i, ok := typ.IndexOf(name)
		if !ok {
			out[name] = v
			continue
		}
		coerced, err := coerceValue(typ.Column(i).Type(), v)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		out[name] = coerced
	}
	return out, nil
}

func coerceValue(scalar rectype.ScalarType, v any) (any, error) {
	switch scalar {
	case rectype.Bytes:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected a base64 string")
		}
		return base64.StdEncoding.DecodeString(s)
	case rectype.Double, rectype.Float:
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("expected a number")
		}
		if scalar == rectype.Float {
			return float32(f), nil
		}
		return f, nil
	case rectype.Int, rectype.Int8, rectype.Int16:
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("expected a number")
		}
		return int32(f), nil
	case rectype.Long, rectype.Timestamp:
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("expected a number")
		}
		return int64(f), nil
	case rectype.Date:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected a %q date string", "YYYY-MM-DD")
		}
		var year, month, day int
		if _, err := fmt.Sscanf(s, "%4d-%2d-%2d", &year, &month, &day); err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", s, err)
		}
		return dt.PackDate(year, month, day)
	case rectype.Time:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected a %q time string", "HH:MM:SS.mmm")
		}
		var hour, minute, second, ms int
		if _, err := fmt.Sscanf(s, "%2d:%2d:%2d.%3d", &hour, &minute, &second, &ms); err != nil {
			return nil, fmt.Errorf("parsing time %q: %w", s, err)
		}
		return dt.PackTime(hour, minute, second, ms)
	case rectype.DateTimeType:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected a %q datetime string", "YYYY-MM-DD HH:MM:SS.mmm")
		}
		var year, month, day, hour, minute, second, ms int
		if _, err := fmt.Sscanf(s, "%4d-%2d-%2d %2d:%2d:%2d.%3d", &year, &month, &day, &hour, &minute, &second, &ms); err != nil {
			return nil, fmt.Errorf("parsing datetime %q: %w", s, err)
		}
		return dt.PackDateTime(year, month, day, hour, minute, second, ms)
	default:
		return v, nil
	}
}

func writeTypeSchemaJSON(ts rectype.TypeSchema) ([]byte, error) {
	tf := typeSchemaFile{
		Label:          ts.Label,
		TypeDefinition: json.RawMessage(ts.TypeDefinition),
		Properties:     ts.Properties,
	}
	return json.MarshalIndent(tf, "", "  ")
}
