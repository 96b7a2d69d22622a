package toml

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Marshal returns the TOML encoding of v
//
// The root must be a struct or map[string]T. Encoding rules:
//   - Struct fields keep declaration order; map keys are sorted
//   - Unexported fields, `toml:"-"` fields and nil pointers are skipped
//   - `omitempty` skips zero values
//   - Scalars of a table are written before its sub-tables
//   - Slices of structs/maps become arrays of tables, other slices inline arrays
func Marshal(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("marshal: cannot marshal nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("marshal: root must be struct or map, got %v", rv.Kind())
	}

	var buf bytes.Buffer
	if err := encodeTable(&buf, rv, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// entry is one key of a table with its resolved value
type entry struct {
	key string
	val reflect.Value
}

func encodeTable(buf *bytes.Buffer, rv reflect.Value, prefix string) error {
	entries, err := tableEntries(rv)
	if err != nil {
		return err
	}

	var tables []entry
	for _, e := range entries {
		if isTable(e.val) {
			tables = append(tables, e)
			continue
		}
		writeKey(buf, e.key)
		buf.WriteString(" = ")
		if err := encodeValue(buf, e.val); err != nil {
			return fmt.Errorf("key %q: %w", e.key, err)
		}
		buf.WriteByte('\n')
	}

	for _, e := range tables {
		path := quoteKey(e.key)
		if prefix != "" {
			path = prefix + "." + path
		}

		if e.val.Kind() == reflect.Struct || e.val.Kind() == reflect.Map {
			buf.WriteString("\n[" + path + "]\n")
			if err := encodeTable(buf, e.val, path); err != nil {
				return err
			}
			continue
		}

		for i := 0; i < e.val.Len(); i++ {
			elem := indirect(e.val.Index(i))
			if !elem.IsValid() {
				continue
			}
			buf.WriteString("\n[[" + path + "]]\n")
			if err := encodeTable(buf, elem, path); err != nil {
				return err
			}
		}
	}
	return nil
}

// tableEntries lists the encodable keys of a struct or map
func tableEntries(rv reflect.Value) ([]entry, error) {
	var out []entry

	if rv.Kind() == reflect.Map {
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map key must be string, got %v", rv.Type().Key().Kind())
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			val := indirect(rv.MapIndex(k))
			if !val.IsValid() {
				continue
			}
			out = append(out, entry{key: k.String(), val: val})
		}
		return out, nil
	}

	typ := rv.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		key := fieldKey(field)
		if key == "-" {
			continue
		}
		val := indirect(rv.Field(i))
		if !val.IsValid() {
			continue
		}
		if strings.Contains(field.Tag.Get("toml"), "omitempty") && val.IsZero() {
			continue
		}
		out = append(out, entry{key: key, val: val})
	}
	return out, nil
}

// indirect unwraps interfaces and pointers; nil yields an invalid Value
func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// isTable reports whether v is written as [table] or [[array of tables]]
func isTable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Struct, reflect.Map:
		return true
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return false
		}
		elem := indirect(v.Index(0))
		return elem.Kind() == reflect.Struct || elem.Kind() == reflect.Map
	}
	return false
}

func encodeValue(buf *bytes.Buffer, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		buf.WriteString(strconv.FormatBool(v.Bool()))

	case reflect.String:
		writeString(buf, v.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(v.Int(), 10))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteString(strconv.FormatUint(v.Uint(), 10))

	case reflect.Float32, reflect.Float64:
		s := strconv.FormatFloat(v.Float(), 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)

	case reflect.Slice, reflect.Array:
		buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				buf.WriteString(", ")
			}
			elem := indirect(v.Index(i))
			if !elem.IsValid() {
				return fmt.Errorf("nil array element at index %d", i)
			}
			if err := encodeValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	default:
		return fmt.Errorf("unsupported type: %v", v.Kind())
	}
	return nil
}

func writeKey(buf *bytes.Buffer, key string) {
	buf.WriteString(quoteKey(key))
}

// quoteKey returns key bare when the lexer would read it back as an identifier
func quoteKey(key string) string {
	if isBareKey(key) {
		return key
	}
	var b bytes.Buffer
	writeString(&b, key)
	return b.String()
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

// isBareKey reports whether s survives a round trip through the lexer as TokenIdent
// Booleans and anything starting with a digit or signed digit must be quoted
func isBareKey(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return false
	}
	for _, r := range s {
		if !isAlpha(r) && !isDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	if isDigit(rune(s[0])) {
		return false
	}
	if (s[0] == '-' || s[0] == '+') && len(s) > 1 && isDigit(rune(s[1])) {
		return false
	}
	return true
}
