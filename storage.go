package marcidx

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"sort"

	"github.com/segmentio/encoding/json"
)

// StorageVersion is the storage JSON version written by EncodeStorage.
const StorageVersion = 3

type storageEnvelope struct {
	V *int               `json:"v"`
	F stdjson.RawMessage `json:"f"`
}

// storedField is the v3 data field shape: subfields as single-key objects.
type storedField struct {
	I1 string              `json:"i1"`
	I2 string              `json:"i2"`
	S  []map[string]string `json:"s"`
}

// storedFieldV2 is the v2 data field shape with explicit code/value keys.
type storedFieldV2 struct {
	I1 string `json:"i1"`
	I2 string `json:"i2"`
	S  []struct {
		C string `json:"c"`
		V string `json:"v"`
	} `json:"s"`
}

// decodeStorage reads the persisted JSON form. Unversioned documents hold
// inline ISO2709 payloads, either under "f" or as the top-level object.
func (r *Record) decodeStorage(data []byte) error {
	var env storageEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: storage json: %v", ErrMalformed, err)
	}
	version := 1
	fieldMap := []byte(env.F)
	if env.V != nil {
		version = *env.V
	}
	if env.V == nil && len(fieldMap) == 0 {
		fieldMap = data
	}
	if version != 1 && version != 2 && version != StorageVersion {
		return fmt.Errorf("%w: %d", ErrStorageVersion, version)
	}
	if len(fieldMap) == 0 {
		return nil
	}

	// The tag order of the object is part of the record, so walk it as a
	// token stream rather than decoding into a map.
	dec := stdjson.NewDecoder(bytes.NewReader(fieldMap))
	if tok, err := dec.Token(); err != nil || tok != stdjson.Delim('{') {
		return fmt.Errorf("%w: storage field map is not an object", ErrMalformed)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: storage json: %v", ErrMalformed, err)
		}
		tag, _ := tok.(string)
		var items []stdjson.RawMessage
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("%w: storage field %s: %v", ErrMalformed, tag, err)
		}
		if version == 1 && (tag == "v" || tag == "f") {
			continue
		}
		for _, item := range items {
			f, err := r.decodeStoredField(version, tag, item)
			if err != nil {
				return err
			}
			r.add(f)
		}
	}
	return nil
}

func (r *Record) decodeStoredField(version int, tag string, item []byte) (Field, error) {
	item = bytes.TrimSpace(item)
	if len(item) > 0 && item[0] == '"' {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return nil, fmt.Errorf("%w: storage field %s: %v", ErrMalformed, tag, err)
		}
		if version == 1 {
			return r.decodePayload(tag, []byte(s)), nil
		}
		return ControlField{Tag: tag, Value: s}, nil
	}

	d := DataField{Tag: tag}
	if version == 2 {
		var sf storedFieldV2
		if err := json.Unmarshal(item, &sf); err != nil {
			return nil, fmt.Errorf("%w: storage field %s: %v", ErrMalformed, tag, err)
		}
		d.Indicator1, d.Indicator2 = sf.I1, sf.I2
		for _, s := range sf.S {
			d.SubFields = append(d.SubFields, SubField{Code: s.C, Value: s.V})
		}
	} else {
		var sf storedField
		if err := json.Unmarshal(item, &sf); err != nil {
			return nil, fmt.Errorf("%w: storage field %s: %v", ErrMalformed, tag, err)
		}
		d.Indicator1, d.Indicator2 = sf.I1, sf.I2
		for _, s := range sf.S {
			codes := make([]string, 0, len(s))
			for c := range s {
				codes = append(codes, c)
			}
			sort.Strings(codes)
			for _, c := range codes {
				d.SubFields = append(d.SubFields, SubField{Code: c, Value: s[c]})
			}
		}
	}
	if d.Indicator1 == "" {
		r.Warn("missing ind1 in field %s", tag)
	}
	if d.Indicator2 == "" {
		r.Warn("missing ind2 in field %s", tag)
	}
	d.Indicator1, d.Indicator2 = indicator(d.Indicator1), indicator(d.Indicator2)
	return d, nil
}

// EncodeStorage serializes the record in the current storage JSON version,
// keeping tag order.
func (r *Record) EncodeStorage() ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, `{"v":%d,"f":{`, StorageVersion)
	for i, tag := range r.tags {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(tag)
		if err != nil {
			return nil, fmt.Errorf("encode tag %q: %w", tag, err)
		}
		b.Write(key)
		b.WriteByte(':')

		items := make([]interface{}, 0, len(r.fields[tag]))
		for _, f := range r.fields[tag] {
			switch f := f.(type) {
			case ControlField:
				items = append(items, f.Value)
			case DataField:
				sf := storedField{I1: indicator(f.Indicator1), I2: indicator(f.Indicator2), S: make([]map[string]string, 0, len(f.SubFields))}
				for _, s := range f.SubFields {
					sf.S = append(sf.S, map[string]string{s.Code: s.Value})
				}
				items = append(items, sf)
			}
		}
		v, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("encode field %s: %w", tag, err)
		}
		b.Write(v)
	}
	b.WriteString("}}")
	return b.Bytes(), nil
}
