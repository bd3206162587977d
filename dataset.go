/*
Copyright © 2026 the NCGrid authors.
This file is part of NCGrid.

NCGrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

NCGrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with NCGrid.  If not, see <http://www.gnu.org/licenses/>.*/

package ncgrid

import (
	"io"
	"sync"

	"github.com/ctessum/sparse"
)

// A Dataset provides convention-aware access to one open data source.
// It caches the resolved coordinate axes of each variable for its own
// lifetime; a cache entry is never invalidated or re-resolved.
//
// Methods may be called concurrently; the cache is guarded by a mutex.
type Dataset struct {
	acc Accessor

	mx      sync.Mutex
	handles map[string]*Variable
}

// NewDataset returns a Dataset reading from acc.
func NewDataset(acc Accessor) *Dataset {
	return &Dataset{
		acc:     acc,
		handles: make(map[string]*Variable),
	}
}

// Close releases the underlying accessor, if it holds resources.
func (d *Dataset) Close() error {
	if c, ok := d.acc.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Variables returns the names of the variables in the dataset, in the
// dataset's own order.
func (d *Dataset) Variables() []string { return d.acc.Variables() }

// Shape returns the dimension lengths of the named variable, or nil if
// it is not in the dataset.
func (d *Dataset) Shape(name string) []int { return d.acc.Shape(name) }

// Attribute returns the value of an attribute of the named variable
// and whether it is present.
func (d *Dataset) Attribute(name, key string) (string, bool) {
	return d.acc.Attribute(name, key)
}

// Variable returns the handle for the named variable, resolving its
// coordinate axes on first access and caching the result. Repeated
// calls with the same name return the same handle; resolution runs at
// most once per name for the life of the Dataset. The name is not
// checked for existence here—a handle for an unknown variable fails
// when its data is read.
func (d *Dataset) Variable(name string) *Variable {
	d.mx.Lock()
	defer d.mx.Unlock()
	if h, ok := d.handles[name]; ok {
		return h
	}
	h := &Variable{
		name: name,
		axes: coordinateVars(d.acc, name),
		ds:   d,
	}
	d.handles[name] = h
	return h
}

// Data returns the data of the named variable selected by first, last,
// and stride (1-based, inclusive, one entry per dimension). Nil
// arguments default to the entire array: first all ones, last the
// variable's shape, stride all ones.
func (d *Dataset) Data(name string, first, last, stride []int) (*sparse.DenseArray, error) {
	v := d.Variable(name)
	first, last, stride = d.defaults(name, first, last, stride)
	return v.Data(first, last, stride)
}

// Grid returns the coordinate data associated with the named variable:
// a map from each resolved axis name to that axis's data, subset with
// the same parameters. Defaults are as in Data, computed from the named
// variable's shape. The result never includes the named variable's own
// data unless the variable declares itself as one of its axes.
func (d *Dataset) Grid(name string, first, last, stride []int) (map[string]*sparse.DenseArray, error) {
	v := d.Variable(name)
	first, last, stride = d.defaults(name, first, last, stride)
	return v.Grid(first, last, stride)
}

// Struct returns the coordinate data associated with the named variable
// plus the variable's own data under its own name: exactly the Grid
// result with one additional entry. Defaults are as in Data.
func (d *Dataset) Struct(name string, first, last, stride []int) (map[string]*sparse.DenseArray, error) {
	v := d.Variable(name)
	first, last, stride = d.defaults(name, first, last, stride)
	out, err := v.Grid(first, last, stride)
	if err != nil {
		return nil, err
	}
	data, err := v.Data(first, last, stride)
	if err != nil {
		return nil, err
	}
	out[name] = data
	return out, nil
}

// StandardName returns the names of all variables whose CF
// standard_name attribute exactly equals value (case-sensitive), in
// dataset order. The result is empty when no variable matches;
// variables without the attribute are skipped.
func (d *Dataset) StandardName(value string) []string {
	var out []string
	for _, v := range d.acc.Variables() {
		if s, ok := d.acc.Attribute(v, "standard_name"); ok && s == value {
			out = append(out, v)
		}
	}
	return out
}

// defaults fills in nil subsetting parameters from the named variable's
// shape. An unknown variable passes through unchanged; the read fails
// downstream instead.
func (d *Dataset) defaults(name string, first, last, stride []int) ([]int, []int, []int) {
	shape := d.acc.Shape(name)
	if shape == nil {
		return first, last, stride
	}
	if first == nil {
		first = ones(len(shape))
	}
	if last == nil {
		last = shape
	}
	if stride == nil {
		stride = ones(len(shape))
	}
	return first, last, stride
}

func ones(n int) []int {
	o := make([]int, n)
	for i := range o {
		o[i] = 1
	}
	return o
}
