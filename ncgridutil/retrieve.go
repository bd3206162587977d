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

package ncgridutil

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/ctessum/sparse"

	"github.com/spatialgrid/ncgrid"
)

// OpenDataset stages source locally if it is remote, then opens it.
// The caller is responsible for closing the returned Dataset.
func OpenDataset(ctx context.Context, source string, c chan string) (*ncgrid.Dataset, error) {
	return ncgrid.Open(maybeDownload(ctx, source, c))
}

// Vars returns the names of the variables in source, in dataset order.
// If standardName is not empty, only variables whose CF standard_name
// attribute exactly equals it are returned.
func Vars(ctx context.Context, source, standardName string, c chan string) ([]string, error) {
	d, err := OpenDataset(ctx, source, c)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	if standardName != "" {
		return d.StandardName(standardName), nil
	}
	return d.Variables(), nil
}

// Describe writes a summary of the named variable in source to w:
// its shape, resolved coordinate axes, and common CF attributes.
func Describe(ctx context.Context, w io.Writer, source, varName string, c chan string) error {
	d, err := OpenDataset(ctx, source, c)
	if err != nil {
		return err
	}
	defer d.Close()
	shape := d.Shape(varName)
	if shape == nil {
		return fmt.Errorf("ncgridutil: variable %s not in %s", varName, source)
	}
	v := d.Variable(varName)
	fmt.Fprintf(w, "variable %s\n", varName)
	fmt.Fprintf(w, "  shape: %v\n", shape)
	fmt.Fprintf(w, "  axes: %v\n", v.Axes())
	for _, key := range []string{"standard_name", "long_name", "units", "coordinates"} {
		if val, ok := d.Attribute(varName, key); ok {
			fmt.Fprintf(w, "  %s: %s\n", key, val)
		}
	}
	return nil
}

// Retrieve runs one of the facade retrieval operations ("data", "grid",
// or "struct") against the named variable in source, with the given
// subsetting parameters (nil or empty slices select the entire array).
// If output is not empty, the result is written there as a NetCDF file;
// otherwise a summary of each retrieved field is written to w.
func Retrieve(ctx context.Context, w io.Writer, source, varName, op string, first, last, stride []int, output string, c chan string) error {
	d, err := OpenDataset(ctx, source, c)
	if err != nil {
		return err
	}
	defer d.Close()

	fields := make(map[string]*sparse.DenseArray)
	switch op {
	case "data":
		data, err := d.Data(varName, first, last, stride)
		if err != nil {
			return err
		}
		fields[varName] = data
	case "grid":
		fields, err = d.Grid(varName, first, last, stride)
		if err != nil {
			return err
		}
	case "struct":
		fields, err = d.Struct(varName, first, last, stride)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("ncgridutil: invalid retrieval operation %s", op)
	}

	if output != "" {
		return WriteNetCDF(output, fields)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a := fields[name]
		min, max := arrayRange(a)
		fmt.Fprintf(w, "%s %v: min %g, max %g\n", name, a.Shape, min, max)
	}
	return nil
}

// arrayRange returns the smallest and largest finite values in a.
func arrayRange(a *sparse.DenseArray) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range a.Elements {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
