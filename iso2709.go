package marcidx

import (
	"bytes"
	"fmt"
)

const (
	rt = 0x1d // End of record
	ft = 0x1e // End of field
	st = 0x1f // Subfield indicator

	leaderLen    = 24
	dirEntryLen  = 12
	maxFieldLen  = 9999
	maxRecordLen = 99999
)

func (r *Record) decodeISO2709(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) < leaderLen {
		return fmt.Errorf("%w: %d bytes is shorter than the leader", ErrMalformed, len(data))
	}
	base, ok := digits(data[12:17])
	if !ok {
		return fmt.Errorf("%w: could not determine base address of data", ErrMalformed)
	}
	if base <= leaderLen || base > len(data) {
		return fmt.Errorf("%w: base address %d outside record of %d bytes", ErrMalformed, base, len(data))
	}
	r.add(ControlField{Tag: LeaderTag, Value: string(data[:leaderLen])})

	dirs := data[leaderLen : base-1]
	payload := data[base:]
	for len(dirs) >= dirEntryLen {
		tag := string(dirs[:3])
		length, ok := digits(dirs[3:7])
		if !ok || length < 1 {
			return fmt.Errorf("%w: could not determine length of field %s", ErrMalformed, tag)
		}
		start, ok := digits(dirs[7:12])
		if !ok {
			return fmt.Errorf("%w: could not determine start of field %s", ErrMalformed, tag)
		}
		if start+length > len(payload) {
			return fmt.Errorf("%w: field %s extends past the end of the record", ErrMalformed, tag)
		}
		fdata := payload[start : start+length]
		if fdata[length-1] != ft {
			return fmt.Errorf("%w: field %s at offset %d", ErrMissingTerminator, tag, start)
		}
		r.add(r.decodePayload(tag, fdata[:length-1]))
		dirs = dirs[dirEntryLen:]
	}
	return nil
}

// digits parses an unsigned decimal number made only of ASCII digits.
func digits(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// decodePayload builds a field from its ISO2709 payload without the field
// terminator. A payload without any subfield indicator is control text.
func (r *Record) decodePayload(tag string, data []byte) Field {
	if bytes.IndexByte(data, st) < 0 {
		return ControlField{Tag: tag, Value: string(data)}
	}
	parts := bytes.Split(data, []byte{st})
	d := DataField{Tag: tag, Indicator1: " ", Indicator2: " "}
	switch ind := parts[0]; len(ind) {
	case 0:
		r.Warn("missing indicators in field %s", tag)
	case 1:
		d.Indicator1 = string(ind[0])
		r.Warn("missing second indicator in field %s", tag)
	default:
		d.Indicator1 = string(ind[0])
		d.Indicator2 = string(ind[1])
		if len(ind) > 2 {
			r.Warn("extra bytes before first subfield in field %s", tag)
		}
	}
	for _, sf := range parts[1:] {
		if len(sf) == 0 {
			r.Warn("empty subfield in field %s", tag)
			continue
		}
		d.SubFields = append(d.SubFields, SubField{Code: string(sf[0]), Value: string(sf[1:])})
	}
	return d
}

func encodePayload(f Field) []byte {
	switch f := f.(type) {
	case ControlField:
		return []byte(f.Value)
	case DataField:
		var b bytes.Buffer
		b.WriteString(indicator(f.Indicator1))
		b.WriteString(indicator(f.Indicator2))
		for _, sf := range f.SubFields {
			b.WriteByte(st)
			b.WriteString(sf.Code)
			b.WriteString(sf.Value)
		}
		return b.Bytes()
	}
	return nil
}

func indicator(s string) string {
	if s == "" {
		return " "
	}
	return s[:1]
}

// EncodeISO2709 serializes the record in the binary exchange format. Records
// with a field longer than 9999 bytes or a total length above 99999 bytes
// return ErrCannotEncode. Fields whose tag is not three bytes long are
// logged and skipped.
func (r *Record) EncodeISO2709() ([]byte, error) {
	var dir, body bytes.Buffer
	for _, tag := range r.tags {
		if tag == LeaderTag {
			continue
		}
		if len(tag) != 3 {
			r.logger.Warn("skipping field on ISO2709 encode", "tag", tag, "reason", "tag is not 3 characters")
			r.Warn("invalid tag %q skipped", tag)
			continue
		}
		for _, f := range r.fields[tag] {
			data := append(encodePayload(f), ft)
			if len(data) > maxFieldLen {
				return nil, fmt.Errorf("%w: field %s is %d bytes", ErrCannotEncode, tag, len(data))
			}
			offset := body.Len()
			if offset > maxRecordLen {
				return nil, fmt.Errorf("%w: field %s starts at offset %d", ErrCannotEncode, tag, offset)
			}
			fmt.Fprintf(&dir, "%s%04d%05d", tag, len(data), offset)
			body.Write(data)
		}
	}
	dir.WriteByte(ft)

	base := leaderLen + dir.Len()
	total := base + body.Len() + 1
	if total > maxRecordLen {
		return nil, fmt.Errorf("%w: record is %d bytes", ErrCannotEncode, total)
	}
	leader := r.LeaderString()
	out := make([]byte, 0, total)
	out = append(out, fmt.Sprintf("%05d", total)...)
	out = append(out, leader[5:12]...)
	out = append(out, fmt.Sprintf("%05d", base)...)
	out = append(out, leader[17:]...)
	out = append(out, dir.Bytes()...)
	out = append(out, body.Bytes()...)
	out = append(out, rt)
	return out, nil
}
