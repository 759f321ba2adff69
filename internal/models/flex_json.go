package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

// fieldMaps caches JSON tag -> struct field index mappings per type
var fieldMaps sync.Map // map[reflect.Type]map[string]int

func fieldMapFor(t reflect.Type) map[string]int {
	if cached, ok := fieldMaps.Load(t); ok {
		return cached.(map[string]int)
	}
	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		m[strings.Split(tag, ",")[0]] = i
	}
	fieldMaps.Store(t, m)
	return m
}

func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	return flexUnmarshal(data, (*alias)(r))
}

func (c *Course) UnmarshalJSON(data []byte) error {
	type alias Course
	return flexUnmarshal(data, (*alias)(c))
}

func (c *Challenge) UnmarshalJSON(data []byte) error {
	type alias Challenge
	return flexUnmarshal(data, (*alias)(c))
}

func (r *ChallengeRecord) UnmarshalJSON(data []byte) error {
	type alias ChallengeRecord
	return flexUnmarshal(data, (*alias)(r))
}

// flexUnmarshal decodes a spreadsheet-exported row. The export pipeline
// writes cells as whatever type the sheet inferred, so a time column can
// arrive as 12.5 or "12.50" and a date as a number. Values are coerced to
// the field's type; a row that is not an object decodes to the zero value
// instead of failing the whole document.
func flexUnmarshal(data []byte, target interface{}) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	// Fast path: every cell already has the declared type
	if err := json.Unmarshal(trimmed, target); err == nil {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	v := reflect.ValueOf(target).Elem()
	fieldMap := fieldMapFor(v.Type())

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}
		fv := v.Field(idx)
		if !fv.CanSet() {
			continue
		}

		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}
		coerceRawToField(fv, rawVal)
	}

	return nil
}

// coerceRawToField converts a scalar JSON value to the field's native type.
func coerceRawToField(fv reflect.Value, rawVal json.RawMessage) {
	text := strings.TrimSpace(string(rawVal))
	if text == "" || text == "null" {
		return
	}
	if text[0] == '"' {
		var s string
		if err := json.Unmarshal(rawVal, &s); err != nil {
			return
		}
		text = s
	}

	switch fv.Kind() {
	case reflect.String:
		if text[0] == '{' || text[0] == '[' {
			return
		}
		fv.SetString(text)
	case reflect.Float32, reflect.Float64:
		if n, err := strconv.ParseFloat(text, 64); err == nil {
			fv.SetFloat(n)
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(text); err == nil {
			fv.SetBool(b)
		}
	}
}

// RankList is an ordered rank progression, lowest first. The sheet export
// emits either a JSON array or a single comma separated cell.
type RankList []string

func (l *RankList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*l = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(trimmed, &list); err == nil {
		*l = compactRanks(list)
		return nil
	}

	var cell string
	if err := json.Unmarshal(trimmed, &cell); err != nil {
		return fmt.Errorf("rank list: %w", err)
	}
	*l = compactRanks(strings.FieldsFunc(cell, func(r rune) bool {
		return r == ',' || r == '、' || r == '\n'
	}))
	return nil
}

// Index returns the position of rank in the list, or -1.
func (l RankList) Index(rank string) int {
	for i, r := range l {
		if r == rank {
			return i
		}
	}
	return -1
}

func compactRanks(in []string) RankList {
	out := make(RankList, 0, len(in))
	for _, r := range in {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// UnmarshalJSON reads a versionMaster row. The column header has been
// renamed across sheet revisions, so the label is taken from the first key
// in document order rather than a fixed name. A bare string is accepted too.
func (v *Version) UnmarshalJSON(data []byte) error {
	result := gjson.ParseBytes(data)
	switch {
	case result.Type == gjson.String || result.Type == gjson.Number:
		v.Label = strings.TrimSpace(result.String())
	case result.IsObject():
		result.ForEach(func(_, value gjson.Result) bool {
			v.Label = strings.TrimSpace(value.String())
			return false
		})
	default:
		v.Label = ""
	}
	return nil
}

func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"バージョン": v.Label})
}
