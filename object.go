// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"fmt"
	"sync/atomic"

	"gioui.org/glsafe/internal/gl"
)

// currentObject is a native object name owned through a CurrentContext.
// A zero name marks an object consumed by a conversion or a release.
type currentObject struct {
	kind string
	name uint
	cc   *CurrentContext
}

// asyncObject is a native object name owned through a SharingGroup.
type asyncObject struct {
	kind  string
	name  atomic.Uint64
	group *SharingGroup
}

func (o *currentObject) init(kind string, name uint, cc *CurrentContext) {
	cc.acquire()
	o.kind = kind
	o.name = name
	o.cc = cc
}

// Name returns the native name of the object, or 0 if the object was
// released or converted.
func (o *currentObject) Name() uint {
	return o.name
}

// CurrentContext returns the context the object is owned through.
func (o *currentObject) CurrentContext() *CurrentContext {
	return o.cc
}

func (o *currentObject) funcs() gl.Functions {
	if o.name == 0 {
		panic("glsafe: use of a consumed " + o.kind)
	}
	return o.cc.funcs()
}

// take empties o and returns its name and context reference.
func (o *currentObject) take() (uint, *CurrentContext) {
	name, cc := o.name, o.cc
	o.name, o.cc = 0, nil
	return name, cc
}

func (o *asyncObject) init(kind string, name uint, g *SharingGroup) {
	g.refs.acquire()
	o.kind = kind
	o.name.Store(uint64(name))
	o.group = g
}

// Name returns the native name of the object, or 0 if the object was
// converted.
func (o *asyncObject) Name() uint {
	return uint(o.name.Load())
}

// SharingGroup returns the group the object belongs to.
func (o *asyncObject) SharingGroup() *SharingGroup {
	return o.group
}

// take consumes o for use through cc.
func (o *asyncObject) take(cc *CurrentContext) uint {
	cc.check()
	if cc.ctx.group != o.group {
		panic(fmt.Sprintf("glsafe: Async %s converted on a context outside its sharing group", o.kind))
	}
	name := uint(o.name.Swap(0))
	if name == 0 {
		panic("glsafe: conversion of a consumed Async " + o.kind)
	}
	o.group.release()
	return name
}

// leaked is run by the finalizer of Async objects.
func (o *asyncObject) leaked() {
	if n := o.name.Load(); n != 0 {
		panic(fmt.Sprintf("glsafe: Async %s %d garbage collected before conversion to Current", o.kind, n))
	}
}
