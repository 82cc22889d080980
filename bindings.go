// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hephaistos

import (
	"fmt"

	"github.com/gogpu/hephaistos/hal"
)

// Parameter is anything bindable to a reflected shader binding: *Tensor
// (uniform/storage buffer), *Image/*Texture (storage image/combined
// image sampler), or raytracing.AccelerationStructure (acceleration
// structure). Implemented outside this package too, so the method is
// exported rather than a private marker.
type Parameter interface {
	// DescriptorWrite produces the hal-level write for binding this
	// parameter at index binding, validating it matches kind.
	DescriptorWrite(binding uint32, kind ParameterKind) (hal.DescriptorWrite, error)
}

// BindingRef names a binding either by its declared index or by name.
type BindingRef struct {
	name    string
	index   uint32
	byIndex bool
}

// ByIndex references a binding by its declared index.
func ByIndex(index uint32) BindingRef { return BindingRef{index: index, byIndex: true} }

// ByName references a binding by its reflected name.
func ByName(name string) BindingRef { return BindingRef{name: name} }

func (r BindingRef) String() string {
	if r.byIndex {
		return fmt.Sprintf("#%d", r.index)
	}
	return r.name
}

// BindingTarget is the binding-by-index-or-name surface shared by
// Program and raytracing.RayTracingPipeline.
type BindingTarget struct {
	traits  []BindingTraits // deduplicated, ordered by index
	byIndex map[uint32]int  // traits-slice position
	byName  map[string]int

	bound []hal.DescriptorWrite
	isSet []bool
}

// NewBindingTarget builds a binding target over an already-reflected
// trait table. Program uses it internally; the raytracing subpackage
// uses it directly for RayTracingPipeline's binding-target embedding.
func NewBindingTarget(traits []BindingTraits) *BindingTarget {
	return newBindingTarget(traits)
}

func newBindingTarget(traits []BindingTraits) *BindingTarget {
	bt := &BindingTarget{
		traits:  traits,
		byIndex: make(map[uint32]int, len(traits)),
		byName:  make(map[string]int, len(traits)),
		bound:   make([]hal.DescriptorWrite, len(traits)),
		isSet:   make([]bool, len(traits)),
	}
	for i, t := range traits {
		bt.byIndex[t.Index] = i
		bt.byName[t.Name] = i
	}
	return bt
}

func (bt *BindingTarget) resolve(ref BindingRef) (int, error) {
	if ref.byIndex {
		if i, ok := bt.byIndex[ref.index]; ok {
			return i, nil
		}
		return 0, fmt.Errorf("binding %s not found", ref)
	}
	if i, ok := bt.byName[ref.name]; ok {
		return i, nil
	}
	return 0, fmt.Errorf("binding %s not found", ref)
}

// ListBindings returns the deduplicated binding-trait table, ordered by
// declared index.
func (bt *BindingTarget) ListBindings() []BindingTraits {
	out := make([]BindingTraits, len(bt.traits))
	copy(out, bt.traits)
	return out
}

// HasBinding reports whether ref names a declared binding.
func (bt *BindingTarget) HasBinding(ref BindingRef) bool {
	_, err := bt.resolve(ref)
	return err == nil
}

// GetBindingTraits returns the traits for ref.
func (bt *BindingTarget) GetBindingTraits(ref BindingRef) (BindingTraits, error) {
	i, err := bt.resolve(ref)
	if err != nil {
		return BindingTraits{}, wrapErr("GetBindingTraits", ref.String(), err)
	}
	return bt.traits[i], nil
}

// BindParameter attaches param to the binding named by ref.
func (bt *BindingTarget) BindParameter(ref BindingRef, param Parameter) error {
	i, err := bt.resolve(ref)
	if err != nil {
		return wrapErr("BindParameter", ref.String(), err)
	}
	w, err := param.DescriptorWrite(bt.traits[i].Index, bt.traits[i].Kind)
	if err != nil {
		return wrapErr("BindParameter", ref.String(), err)
	}
	bt.bound[i] = w
	bt.isSet[i] = true
	return nil
}

// BindParameterList binds params to bindings in shader-declaration
// (index) order, positionally.
func (bt *BindingTarget) BindParameterList(params ...Parameter) error {
	if len(params) > len(bt.traits) {
		return invalidArg("BindParameterList", "more parameters than declared bindings")
	}
	for i, p := range params {
		w, err := p.DescriptorWrite(bt.traits[i].Index, bt.traits[i].Kind)
		if err != nil {
			return wrapErr("BindParameterList", bt.traits[i].Name, err)
		}
		bt.bound[i] = w
		bt.isSet[i] = true
	}
	return nil
}

// IsBindingBound reports whether ref currently has a bound parameter.
func (bt *BindingTarget) IsBindingBound(ref BindingRef) bool {
	i, err := bt.resolve(ref)
	if err != nil {
		return false
	}
	return bt.isSet[i]
}

// AllBindingsBound reports whether every declared binding has a
// parameter bound.
func (bt *BindingTarget) AllBindingsBound() bool {
	for _, set := range bt.isSet {
		if !set {
			return false
		}
	}
	return true
}

func (bt *BindingTarget) checkAllBindingsBound(op string) error {
	for i, set := range bt.isSet {
		if !set {
			return wrapErr(op, bt.traits[i].Name, fmt.Errorf("binding not bound"))
		}
	}
	return nil
}

func (bt *BindingTarget) writes() []hal.DescriptorWrite {
	return bt.bound
}

// DescriptorWrites returns the currently bound parameters' descriptor
// writes, in declaration order. Used by the raytracing subpackage's
// trace-rays commands, which cannot reach the unexported writes method.
func (bt *BindingTarget) DescriptorWrites() []hal.DescriptorWrite {
	return bt.writes()
}
