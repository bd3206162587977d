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

// Package ncgrid provides convention-aware access to gridded scientific
// datasets. Given a variable name, it resolves the variable's
// coordinate ("axis") variables from CF or COARDS metadata and exposes
// retrieval of the variable's data together with the coordinate data
// needed to interpret it, with optional subsetting, without the caller
// needing to know which convention the dataset follows.
//
// Datasets are accessed through the Accessor interface; package ncf
// implements it for NetCDF classic files.
package ncgrid

import (
	"github.com/ctessum/sparse"

	"github.com/spatialgrid/ncgrid/ncf"
)

// Version gives the version number of this version of NCGrid.
const Version = "0.1.0"

// An Accessor provides raw access to one open dataset. Implementations
// are responsible for storage and transport; ncgrid only interprets
// metadata. The zero or more subsetting indices accepted by Read are
// 1-based and inclusive, one entry per dimension, with nil meaning the
// entire array.
type Accessor interface {
	// Variables returns the names of the variables in the dataset,
	// in the dataset's own order.
	Variables() []string

	// Attribute returns the value of an attribute of the named
	// variable rendered as text, and whether it is present.
	Attribute(variable, key string) (string, bool)

	// DimensionAxes returns one candidate coordinate-variable name per
	// dimension of the named variable, following the COARDS convention;
	// an empty string marks a dimension with no candidate, and a nil
	// result an unknown variable.
	DimensionAxes(variable string) []string

	// Shape returns the dimension lengths of the named variable, or
	// nil if it is not in the dataset.
	Shape(variable string) []int

	// Read returns the hyperslab of the named variable selected by
	// first, last, and stride.
	Read(variable string, first, last, stride []int) (*sparse.DenseArray, error)
}

// Open opens the NetCDF file at path and returns a Dataset accessing
// it. Close the Dataset to release the file.
func Open(path string) (*Dataset, error) {
	f, err := ncf.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return NewDataset(f), nil
}
