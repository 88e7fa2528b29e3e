// Package ubo describes the std140 uniform blocks shared between the host
// and the shader programs and owns the per-frame transform block.
package ubo

import (
	"fmt"
	"sort"
	"strings"
)

// std140 sizes of the member types the engine uses.
const (
	Mat3x4Size = 48 // three vec4 columns
	Mat4Size   = 64
)

// MaxInstances is the number of InstanceData slots in the instance block.
const MaxInstances = 1024

// Field is one member of a uniform block.
type Field struct {
	Name   string // name as reported by program introspection
	Offset int
	Size   int
}

// Layout is the single description of a uniform block. Host encoders write
// at these offsets and every program that declares the block is checked
// against it at link time.
type Layout struct {
	Name    string
	Binding uint32
	Size    int
	Fields  []Field
}

// TransformLayout is the per-frame camera block, binding 0.
var TransformLayout = Layout{
	Name:    "TransformBlock",
	Binding: 0,
	Size:    Mat3x4Size + Mat4Size,
	Fields: []Field{
		{Name: "worldToView", Offset: 0, Size: Mat3x4Size},
		{Name: "projection", Offset: Mat3x4Size, Size: Mat4Size},
	},
}

// InstanceLayout is the instanced model-to-world array, binding 1.
var InstanceLayout = Layout{
	Name:    "InstanceBuffer",
	Binding: 1,
	Size:    MaxInstances * Mat3x4Size,
	Fields: []Field{
		{Name: "instance[0].modelToWorld", Offset: 0, Size: Mat3x4Size},
		{Name: "instance[1].modelToWorld", Offset: Mat3x4Size, Size: Mat3x4Size},
	},
}

// Field returns the member with the given name.
func (l Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Reflection is what a linked program reports about one block.
type Reflection struct {
	Size    int
	Offsets map[string]int
}

// MismatchError lists every difference between a layout and a program.
type MismatchError struct {
	Block    string
	Program  string
	Problems []string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("uniform block %s in program %s does not match host layout: %s",
		e.Block, e.Program, strings.Join(e.Problems, "; "))
}

// Check compares a program's view of the block with the layout.
func (l Layout) Check(program string, r Reflection) error {
	var problems []string

	if r.Size != l.Size {
		problems = append(problems, fmt.Sprintf("size %d, want %d", r.Size, l.Size))
	}
	for _, f := range l.Fields {
		off, ok := r.Offsets[f.Name]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("member %s missing", f.Name))
		case off != f.Offset:
			problems = append(problems, fmt.Sprintf("member %s at offset %d, want %d", f.Name, off, f.Offset))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &MismatchError{Block: l.Name, Program: program, Problems: problems}
}

// Validate checks the layout against std140 rules for matrix members:
// 16-byte aligned, non-overlapping and inside the block.
func (l Layout) Validate() error {
	fields := append([]Field(nil), l.Fields...)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Offset < fields[j].Offset })

	end := 0
	for _, f := range fields {
		if f.Offset%16 != 0 {
			return fmt.Errorf("%s.%s: offset %d not 16-byte aligned", l.Name, f.Name, f.Offset)
		}
		if f.Offset < end {
			return fmt.Errorf("%s.%s: overlaps previous member", l.Name, f.Name)
		}
		end = f.Offset + f.Size
	}
	if end > l.Size {
		return fmt.Errorf("%s: members end at %d past block size %d", l.Name, end, l.Size)
	}
	return nil
}
