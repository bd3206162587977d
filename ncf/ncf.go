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

// Package ncf provides raw access to NetCDF classic (V1 or V2) files:
// variable enumeration, attribute and shape lookup, COARDS axis
// candidates, and strided array reads. It makes no decisions about
// metadata conventions; that is the job of the ncgrid package.
package ncf

import (
	"fmt"
	"math"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// A RangeError reports subsetting parameters that are inconsistent with
// the shape of the variable being read.
type RangeError struct {
	Var    string
	Detail string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("ncf: range error reading %s: %s", e.Var, e.Detail)
}

// File allows interaction with a NetCDF-formatted data source.
type File struct {
	cdf *cdf.File

	// f is the underlying file when opened with OpenFile; it is the
	// caller's handle to close.
	f *os.File

	// numRecs is the resolved length of the record dimension, if the
	// file has one.
	numRecs int

	varSet map[string]bool
}

// Open reads the header from rw, where size is the total size of the
// underlying storage in bytes. size is used to resolve the length of
// the record dimension, if there is one.
func Open(rw cdf.ReaderWriterAt, size int64) (*File, error) {
	cf, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("ncf: opening dataset: %v", err)
	}
	f := &File{
		cdf:    cf,
		varSet: make(map[string]bool),
	}
	for _, l := range cf.Header.Lengths("") {
		if l == 0 {
			f.numRecs = int(cf.Header.NumRecs(size))
			break
		}
	}
	for _, v := range cf.Header.Variables() {
		f.varSet[v] = true
	}
	return f, nil
}

// OpenFile opens the NetCDF file at path.
func OpenFile(path string) (*File, error) {
	ff, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncf: opening %s: %v", path, err)
	}
	fi, err := ff.Stat()
	if err != nil {
		ff.Close()
		return nil, fmt.Errorf("ncf: opening %s: %v", path, err)
	}
	f, err := Open(ff, fi.Size())
	if err != nil {
		ff.Close()
		return nil, fmt.Errorf("ncf: opening %s: %v", path, err)
	}
	f.f = ff
	return f, nil
}

// Close closes the underlying file, if this File was created
// with OpenFile.
func (f *File) Close() error {
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

// Variables returns the names of the variables in the file,
// in header order.
func (f *File) Variables() []string {
	return f.cdf.Header.Variables()
}

// Attribute returns the value of the named attribute of variable v,
// or the global attribute if v is empty, rendered as text. The second
// return is false when the attribute is absent.
func (f *File) Attribute(v, key string) (string, bool) {
	a := f.cdf.Header.GetAttribute(v, key)
	if a == nil {
		return "", false
	}
	switch a := a.(type) {
	case string:
		return a, true
	case []float32:
		if len(a) == 1 {
			return fmt.Sprint(a[0]), true
		}
	case []float64:
		if len(a) == 1 {
			return fmt.Sprint(a[0]), true
		}
	case []int32:
		if len(a) == 1 {
			return fmt.Sprint(a[0]), true
		}
	case []int16:
		if len(a) == 1 {
			return fmt.Sprint(a[0]), true
		}
	case []uint8:
		if len(a) == 1 {
			return fmt.Sprint(a[0]), true
		}
	}
	return fmt.Sprint(a), true
}

// Dimensions returns the names of the dimensions of variable v, or nil
// if v is not in the file.
func (f *File) Dimensions(v string) []string {
	return f.cdf.Header.Dimensions(v)
}

// DimensionAxes returns one candidate coordinate-variable name for each
// dimension of variable v, following the COARDS convention that a
// coordinate variable shares its name with its dimension. Dimensions
// with no same-named variable yield an empty string. The result is nil
// if v is not in the file.
func (f *File) DimensionAxes(v string) []string {
	dims := f.cdf.Header.Dimensions(v)
	if dims == nil {
		return nil
	}
	axes := make([]string, len(dims))
	for i, d := range dims {
		if f.varSet[d] {
			axes[i] = d
		}
	}
	return axes
}

// Shape returns the dimension lengths of variable v, or nil if v is not
// in the file. A record dimension is reported with its resolved length
// rather than zero.
func (f *File) Shape(v string) []int {
	l := f.cdf.Header.Lengths(v)
	if l == nil {
		return nil
	}
	shape := make([]int, len(l))
	copy(shape, l)
	if len(shape) > 0 && shape[0] == 0 && f.cdf.Header.IsRecordVariable(v) {
		shape[0] = f.numRecs
	}
	return shape
}

// Read returns the hyperslab of variable v selected by first, last, and
// stride, which contain one entry per dimension of v. Indices are
// 1-based and inclusive; nil arguments select the entire array with
// unit stride. Values are widened to float64, and elements equal to the
// variable's _FillValue attribute are set to NaN.
func (f *File) Read(v string, first, last, stride []int) (*sparse.DenseArray, error) {
	shape := f.Shape(v)
	if shape == nil {
		return nil, fmt.Errorf("ncf: variable %s not in file", v)
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
	if err := checkRange(v, shape, first, last, stride); err != nil {
		return nil, err
	}

	data, err := f.readFull(v, shape)
	if err != nil {
		return nil, err
	}
	if whole(shape, first, last, stride) {
		return data, nil
	}

	outShape := make([]int, len(shape))
	for i := range shape {
		outShape[i] = (last[i]-first[i])/stride[i] + 1
	}
	out := sparse.ZerosDense(outShape...)
	src := make([]int, len(shape))
	for i := range out.Elements {
		for j, x := range out.IndexNd(i) {
			src[j] = first[j] - 1 + x*stride[j]
		}
		out.Elements[i] = data.Get(src...)
	}
	return out, nil
}

// readFull reads the entire contents of variable v.
func (f *File) readFull(v string, shape []int) (*sparse.DenseArray, error) {
	begin := make([]int, len(shape))
	end := make([]int, len(shape))
	n := 1
	for i, s := range shape {
		end[i] = s - 1
		n *= s
	}
	r := f.cdf.Reader(v, begin, end)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("ncf: reading variable %s: %v", v, err)
	}
	data := sparse.ZerosDense(shape...)
	switch b := buf.(type) {
	case []float64:
		copy(data.Elements, b)
	case []float32:
		for i, val := range b {
			data.Elements[i] = float64(val)
		}
	case []int32:
		for i, val := range b {
			data.Elements[i] = float64(val)
		}
	case []int16:
		for i, val := range b {
			data.Elements[i] = float64(val)
		}
	case []uint8:
		for i, val := range b {
			data.Elements[i] = float64(val)
		}
	default:
		return nil, fmt.Errorf("ncf: unsupported data type %T for variable %s", buf, v)
	}
	f.applyFillValue(v, data)
	return data, nil
}

// applyFillValue sets elements matching the variable's _FillValue
// attribute to NaN. Only floating-point fill values are recognized;
// integer fill values pass through unchanged.
func (f *File) applyFillValue(v string, data *sparse.DenseArray) {
	a := f.cdf.Header.GetAttribute(v, "_FillValue")
	if a == nil {
		return
	}
	var noData float64
	switch a := a.(type) {
	case []float32:
		if len(a) != 1 {
			return
		}
		noData = float64(a[0])
	case []float64:
		if len(a) != 1 {
			return
		}
		noData = a[0]
	default:
		return
	}
	for i, d := range data.Elements {
		if d == noData {
			data.Elements[i] = math.NaN()
		}
	}
}

func checkRange(v string, shape, first, last, stride []int) error {
	if len(first) != len(shape) || len(last) != len(shape) || len(stride) != len(shape) {
		return &RangeError{Var: v, Detail: fmt.Sprintf(
			"subset dimensions (%d, %d, %d) do not match variable dimensions (%d)",
			len(first), len(last), len(stride), len(shape))}
	}
	for i := range shape {
		if stride[i] < 1 {
			return &RangeError{Var: v, Detail: fmt.Sprintf(
				"stride %d in dimension %d is less than 1", stride[i], i)}
		}
		if first[i] < 1 || last[i] > shape[i] || first[i] > last[i] {
			return &RangeError{Var: v, Detail: fmt.Sprintf(
				"index range [%d, %d] in dimension %d is outside [1, %d]",
				first[i], last[i], i, shape[i])}
		}
	}
	return nil
}

// whole reports whether the subset selects the entire array.
func whole(shape, first, last, stride []int) bool {
	for i := range shape {
		if first[i] != 1 || last[i] != shape[i] || stride[i] != 1 {
			return false
		}
	}
	return true
}

func ones(n int) []int {
	o := make([]int, n)
	for i := range o {
		o[i] = 1
	}
	return o
}
