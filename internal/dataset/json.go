package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// jsonIndent matches the four-space layout existing datasets were written with.
const jsonIndent = "    "

// decodeJSON walks the token stream so identifier and field order survive.
// Numbers are kept as json.Number and re-encode unchanged.
func decodeJSON(data []byte) (*Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("top level: %w", err)
	}

	c := NewCollection()
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		rec, err := decodeJSONRecord(dec)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", key, err)
		}
		c.Put(key, rec)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}
	return c, nil
}

func decodeJSONRecord(dec *json.Decoder) (*Record, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	rec := NewRecord()
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		rec.Set(name, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return ErrNotMapping
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func encodeJSON(w io.Writer, c *Collection) error {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, key := range c.keys {
		if i > 0 {
			compact.WriteByte(',')
		}
		if err := writeJSONValue(&compact, key); err != nil {
			return err
		}
		compact.WriteByte(':')
		if err := encodeJSONRecord(&compact, c.records[key]); err != nil {
			return fmt.Errorf("record %q: %w", key, err)
		}
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", jsonIndent); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

func encodeJSONRecord(buf *bytes.Buffer, r *Record) error {
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONValue(buf, name); err != nil {
			return err
		}
		buf.WriteByte(':')
		value := r.fields[name]
		if n, ok := value.(*yaml.Node); ok {
			decoded, err := yamlValue(n)
			if err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
			value = decoded
		}
		if err := writeJSONValue(buf, value); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
