// Package loader reads JSON time series documents with their key order intact.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/buger/jsonparser"
	"github.com/huangsam/trendplot/schema"
)

// ErrNotObject is returned when the document is not a JSON object.
var ErrNotObject = errors.New("expected a JSON object")

// LoadFile reads and parses the document at path.
func LoadFile(path string) (schema.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.RawRecord{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	record, err := Parse(data)
	if err != nil {
		return schema.RawRecord{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return record, nil
}

// Parse walks a document shaped as {"<date>": {"<metric>": value, "<group>": {...}}}.
// Entries, metrics and group members keep their input order. Object values
// inside an entry become groups; every other value is a scalar metric.
// Top-level values that are not objects are listed in Skipped.
func Parse(data []byte) (schema.RawRecord, error) {
	var record schema.RawRecord

	_, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return record, fmt.Errorf("invalid JSON: %w", err)
	}
	if dataType != jsonparser.Object {
		return record, fmt.Errorf("%w, found %s", ErrNotObject, dataType)
	}

	err = jsonparser.ObjectEach(data, func(key []byte, value []byte, dt jsonparser.ValueType, _ int) error {
		k := string(key)
		if dt != jsonparser.Object {
			record.Skipped = append(record.Skipped, k)
			return nil
		}
		entry, err := parseEntry(k, value)
		if err != nil {
			return err
		}
		record.Entries = append(record.Entries, entry)
		return nil
	})
	if err != nil {
		return schema.RawRecord{}, err
	}
	return record, nil
}

// parseEntry splits one entry object into scalar metrics and nested groups.
func parseEntry(key string, data []byte) (schema.RawEntry, error) {
	entry := schema.RawEntry{
		Key:     key,
		Metrics: map[string]schema.RawValue{},
	}
	err := jsonparser.ObjectEach(data, func(name []byte, value []byte, dt jsonparser.ValueType, _ int) error {
		n := string(name)
		if dt == jsonparser.Object {
			group, err := parseGroup(value)
			if err != nil {
				return fmt.Errorf("entry %q group %q: %w", key, n, err)
			}
			if entry.Groups == nil {
				entry.Groups = map[string]schema.RawGroup{}
			}
			if _, seen := entry.Groups[n]; !seen {
				entry.GroupKeys = append(entry.GroupKeys, n)
			}
			entry.Groups[n] = group
			return nil
		}

		raw, err := rawValue(value, dt)
		if err != nil {
			return fmt.Errorf("entry %q metric %q: %w", key, n, err)
		}
		if _, seen := entry.Metrics[n]; !seen {
			entry.MetricKeys = append(entry.MetricKeys, n)
		}
		entry.Metrics[n] = raw
		return nil
	})
	if err != nil {
		return schema.RawEntry{}, err
	}
	return entry, nil
}

// parseGroup reads a nested member -> value mapping.
func parseGroup(data []byte) (schema.RawGroup, error) {
	group := schema.RawGroup{Values: map[string]schema.RawValue{}}
	err := jsonparser.ObjectEach(data, func(name []byte, value []byte, dt jsonparser.ValueType, _ int) error {
		n := string(name)
		raw, err := rawValue(value, dt)
		if err != nil {
			return fmt.Errorf("member %q: %w", n, err)
		}
		if _, seen := group.Values[n]; !seen {
			group.Names = append(group.Names, n)
		}
		group.Values[n] = raw
		return nil
	})
	return group, err
}

// rawValue keeps a scalar with its JSON kind. Strings are unescaped.
func rawValue(value []byte, dt jsonparser.ValueType) (schema.RawValue, error) {
	switch dt {
	case jsonparser.Number:
		return schema.RawValue{Kind: schema.RawNumber, Text: string(value)}, nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return schema.RawValue{}, err
		}
		return schema.RawValue{Kind: schema.RawString, Text: s}, nil
	case jsonparser.Null:
		return schema.RawValue{Kind: schema.RawNull, Text: "null"}, nil
	case jsonparser.Boolean:
		return schema.RawValue{Kind: schema.RawBool, Text: string(value)}, nil
	default:
		return schema.RawValue{Kind: schema.RawOther, Text: string(value)}, nil
	}
}
