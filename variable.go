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

import "github.com/ctessum/sparse"

// A Variable is one named dataset variable together with its resolved
// coordinate axes. Variables are created by Dataset.Variable and share
// the Dataset's accessor; the axis list is resolved once, when the
// Variable is created, and never changes.
type Variable struct {
	name string
	axes []string
	ds   *Dataset
}

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Axes returns the ordered names of the variable's coordinate
// variables. The result is empty when the axes could not be determined.
func (v *Variable) Axes() []string { return v.axes }

// Data returns the variable's data selected by first, last, and stride
// (1-based, inclusive, one entry per dimension; nil selects the entire
// array).
func (v *Variable) Data(first, last, stride []int) (*sparse.DenseArray, error) {
	return v.ds.acc.Read(v.name, first, last, stride)
}

// Grid returns the coordinate data associated with the variable: a map
// from each axis-variable name to that axis's data, read with the same
// first, last, and stride parameters as would apply to the variable
// itself. The map is empty when the variable has no resolved axes. If
// any one axis cannot be read the whole call fails; there is no
// partial result.
func (v *Variable) Grid(first, last, stride []int) (map[string]*sparse.DenseArray, error) {
	out := make(map[string]*sparse.DenseArray)
	for _, axis := range v.axes {
		data, err := v.ds.acc.Read(axis, first, last, stride)
		if err != nil {
			return nil, err
		}
		out[axis] = data
	}
	return out, nil
}
