package marcidx

import (
	"bytes"
	"errors"
)

// Format identifies one of the serialized forms a Record can be read from.
type Format int

const (
	FormatISO2709 Format = iota
	FormatMARCXML
	FormatStorage
)

// String returns the format name used in logs and metrics.
func (f Format) String() string {
	switch f {
	case FormatMARCXML:
		return "marcxml"
	case FormatStorage:
		return "json"
	}
	return "iso2709"
}

// DedupKeyTag is the private-use tag the deduplication key is written to.
const DedupKeyTag = "995"

// DetectFormat picks the decoder for data from its first non-whitespace
// character: '{' is storage JSON, '<' is MARCXML, anything else ISO2709.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return FormatISO2709
	}
	switch trimmed[0] {
	case '{':
		return FormatStorage
	case '<':
		return FormatMARCXML
	}
	return FormatISO2709
}

// Parse builds a Record from data in any supported form.
func Parse(data []byte, opts ...Option) (*Record, error) {
	r := New(opts...)
	if err := r.SetData(data); err != nil {
		return nil, err
	}
	return r, nil
}

// SetData populates an empty record from data, detecting its form with
// DetectFormat. A record is populated once; SetData on a record that
// already has fields returns ErrDataAlreadySet.
func (r *Record) SetData(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return ErrEmptyInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.tags) > 0 {
		return ErrDataAlreadySet
	}
	var err error
	switch DetectFormat(trimmed) {
	case FormatStorage:
		err = r.decodeStorage(trimmed)
	case FormatMARCXML:
		err = r.decodeMARCXML(trimmed)
	default:
		err = r.decodeISO2709(trimmed)
	}
	if err != nil {
		r.reset()
		return err
	}
	r.invalidate()
	return nil
}

// FullRecord returns the record as ISO2709, or as MARCXML when the record
// exceeds what ISO2709 can represent. The returned Format tells which.
func (r *Record) FullRecord() ([]byte, Format, error) {
	out, err := r.EncodeISO2709()
	if err == nil {
		return out, FormatISO2709, nil
	}
	if !errors.Is(err, ErrCannotEncode) {
		return nil, FormatISO2709, err
	}
	out, err = r.EncodeMARCXML()
	if err != nil {
		return nil, FormatMARCXML, err
	}
	return out, FormatMARCXML, nil
}

// Normalize pads or truncates the leader to 24 characters, replaces empty
// indicators with spaces, removes empty subfields and drops data fields
// left without subfields.
func (r *Record) Normalize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fields[LeaderTag]; ok {
		r.fields[LeaderTag] = []Field{ControlField{Tag: LeaderTag, Value: r.LeaderString()}}
	}
	for _, tag := range append([]string(nil), r.tags...) {
		var kept []Field
		for _, f := range r.fields[tag] {
			d, ok := f.(DataField)
			if !ok {
				kept = append(kept, f)
				continue
			}
			d.Indicator1, d.Indicator2 = indicator(d.Indicator1), indicator(d.Indicator2)
			subs := make([]SubField, 0, len(d.SubFields))
			for _, sf := range d.SubFields {
				if sf.Code != "" && sf.Value != "" {
					subs = append(subs, sf)
				}
			}
			if len(subs) == 0 {
				continue
			}
			d.SubFields = subs
			kept = append(kept, d)
		}
		r.replace(tag, kept)
	}
	r.invalidate()
}

// AddDedupKey stores key in 995 $a, replacing any earlier key. An empty key
// removes the field.
func (r *Record) AddDedupKey(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if key == "" {
		r.replace(DedupKeyTag, nil)
	} else {
		r.replace(DedupKeyTag, []Field{DataField{
			Tag:        DedupKeyTag,
			Indicator1: " ",
			Indicator2: " ",
			SubFields:  []SubField{{Code: "a", Value: key}},
		}})
	}
	r.invalidate()
}
