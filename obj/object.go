// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package obj implements q16 relocatable objects and the linker.
//
// An Object is a byte buffer with a table of label offsets and an ordered list
// of relocation uses: places in the buffer that must be patched with a
// label's address once every object has been laid out.
package obj

import (
	"encoding/binary"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/q16/isa"
)

// MAGIC identifies a q16 object file.
const MAGIC = "Q16"

// MAX_SIZE is the largest data size addressable by a label offset.
const MAX_SIZE = isa.MEMORY_SIZE

// Use is a relocation use: the 16-bit little-endian slot at Offset is
// replaced by the address of Label when the object is linked.
type Use struct {
	Label  string
	Offset uint16
}

// Object is an assembled, relocatable unit.
type Object struct {
	Labels map[string]uint16 // Map of label names to data offsets.
	Uses   []Use             // Relocation uses, in emission order.
	Data   []byte            // Emitted code and data.
}

// New returns an empty object.
func New() *Object {
	return &Object{
		Labels: map[string]uint16{},
	}
}

// Len returns the current data length.
func (o *Object) Len() int {
	return len(o.Data)
}

// Here returns the offset of the next emitted byte.
func (o *Object) Here() (offset uint16, err error) {
	if len(o.Data) >= MAX_SIZE {
		err = ErrObjectTooLarge
		return
	}

	offset = uint16(len(o.Data))
	return
}

// InsertLabel binds a label to the current data length.
func (o *Object) InsertLabel(label string) (err error) {
	if len(label) == 0 || strings.IndexByte(label, 0) >= 0 {
		err = ErrLabelName
		return
	}

	if _, ok := o.Labels[label]; ok {
		err = ErrLabelDuplicated(label)
		return
	}

	offset, err := o.Here()
	if err != nil {
		return
	}

	if o.Labels == nil {
		o.Labels = make(map[string]uint16, 16)
	}
	o.Labels[label] = offset

	return
}

// InsertUse records a relocation use of label at the current data length
// plus delta.
func (o *Object) InsertUse(label string, delta int) (err error) {
	if len(label) == 0 || strings.IndexByte(label, 0) >= 0 {
		err = ErrLabelName
		return
	}

	offset := len(o.Data) + delta
	if offset+2 > MAX_SIZE {
		err = ErrObjectTooLarge
		return
	}

	o.Uses = append(o.Uses, Use{Label: label, Offset: uint16(offset)})

	return
}

// Emit appends raw bytes.
func (o *Object) Emit(data ...byte) (err error) {
	if len(o.Data)+len(data) > MAX_SIZE {
		err = ErrObjectTooLarge
		return
	}

	o.Data = append(o.Data, data...)
	return
}

// EmitWord appends a little-endian 16-bit value.
func (o *Object) EmitWord(value uint16) (err error) {
	return o.Emit(binary.LittleEndian.AppendUint16(nil, value)...)
}

// EmitInstruction appends an encoded instruction.
func (o *Object) EmitInstruction(in isa.Instruction) (err error) {
	data, err := in.Bytes()
	if err != nil {
		return
	}

	return o.Emit(data[:]...)
}

// Extend appends another object, rebasing its labels and uses.
// On error the object is left unchanged.
func (o *Object) Extend(other *Object) (err error) {
	base := len(o.Data)
	if base+len(other.Data) > MAX_SIZE {
		err = ErrObjectTooLarge
		return
	}

	for _, label := range slices.Sorted(maps.Keys(other.Labels)) {
		if _, ok := o.Labels[label]; ok {
			err = ErrLabelDuplicated(label)
			return
		}
		if base+int(other.Labels[label]) >= MAX_SIZE {
			err = ErrObjectTooLarge
			return
		}
	}

	if o.Labels == nil {
		o.Labels = make(map[string]uint16, len(other.Labels))
	}
	for label, offset := range other.Labels {
		o.Labels[label] = uint16(base + int(offset))
	}
	for _, use := range other.Uses {
		o.Uses = append(o.Uses, Use{Label: use.Label, Offset: uint16(base + int(use.Offset))})
	}
	o.Data = append(o.Data, other.Data...)

	return
}

// Binary resolves every relocation use against the label table, and returns
// the flat binary image. The object itself is not modified.
func (o *Object) Binary() (bin []byte, err error) {
	bin = slices.Clone(o.Data)
	if bin == nil {
		bin = []byte{}
	}

	for _, use := range o.Uses {
		addr, ok := o.Labels[use.Label]
		if !ok {
			bin = nil
			err = ErrLabelMissing(use.Label)
			return
		}
		if int(use.Offset)+2 > len(bin) {
			bin = nil
			err = ErrObjectTruncated
			return
		}
		binary.LittleEndian.PutUint16(bin[use.Offset:], addr)
	}

	return
}
