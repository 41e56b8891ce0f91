package obj

import (
	"bytes"
	"encoding/binary"
	"maps"
	"slices"
)

// MarshalBinary returns the object file image: the magic, the label table,
// the relocation use table, then the raw data. Labels are written in name
// order; uses are written in emission order.
func (o *Object) MarshalBinary() (data []byte, err error) {
	if len(o.Labels) > 0xffff || len(o.Uses) > 0xffff {
		err = ErrObjectTooLarge
		return
	}

	data = append(data, MAGIC...)

	data = binary.LittleEndian.AppendUint16(data, uint16(len(o.Labels)))
	for _, label := range slices.Sorted(maps.Keys(o.Labels)) {
		data = appendEntry(data, label, o.Labels[label])
	}

	data = binary.LittleEndian.AppendUint16(data, uint16(len(o.Uses)))
	for _, use := range o.Uses {
		data = appendEntry(data, use.Label, use.Offset)
	}

	data = append(data, o.Data...)

	return
}

func appendEntry(data []byte, name string, offset uint16) []byte {
	data = append(data, name...)
	data = append(data, 0)
	return binary.LittleEndian.AppendUint16(data, offset)
}

// UnmarshalBinary replaces the object with the contents of an object file image.
// On error the object is left unchanged.
func (o *Object) UnmarshalBinary(data []byte) (err error) {
	if !bytes.HasPrefix(data, []byte(MAGIC)) {
		err = ErrObjectMagic
		return
	}
	data = data[len(MAGIC):]

	labels := map[string]uint16{}
	data, err = parseTable(data, func(name string, offset uint16) error {
		if _, ok := labels[name]; ok {
			return ErrLabelDuplicated(name)
		}
		labels[name] = offset
		return nil
	})
	if err != nil {
		return
	}

	var uses []Use
	data, err = parseTable(data, func(name string, offset uint16) error {
		uses = append(uses, Use{Label: name, Offset: offset})
		return nil
	})
	if err != nil {
		return
	}

	if len(data) > MAX_SIZE {
		err = ErrObjectTooLarge
		return
	}

	o.Labels = labels
	o.Uses = uses
	o.Data = slices.Clone(data)

	return
}

// parseTable parses a count-prefixed table of (NUL-terminated name, offset)
// entries, and returns the remaining data.
func parseTable(data []byte, entry func(name string, offset uint16) error) (rest []byte, err error) {
	if len(data) < 2 {
		err = ErrObjectTruncated
		return
	}
	count := binary.LittleEndian.Uint16(data)
	data = data[2:]

	for range count {
		end := bytes.IndexByte(data, 0)
		if end < 0 || len(data) < end+3 {
			err = ErrObjectTruncated
			return
		}
		if end == 0 {
			err = ErrLabelName
			return
		}
		name := string(data[:end])
		offset := binary.LittleEndian.Uint16(data[end+1:])
		err = entry(name, offset)
		if err != nil {
			return
		}
		data = data[end+3:]
	}

	rest = data
	return
}

// Load parses an object file image.
func Load(data []byte) (o *Object, err error) {
	o = New()
	err = o.UnmarshalBinary(data)
	if err != nil {
		o = nil
	}

	return
}
