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
	"fmt"
	"os"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"

	"github.com/spatialgrid/ncgrid"
)

// WriteNetCDF writes the given fields to a new NetCDF classic file at
// path. Each field becomes a float64 variable with private dimensions
// named after it, so fields of unrelated shapes can share a file.
func WriteNetCDF(path string, fields map[string]*sparse.DenseArray) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var dims []string
	var lengths []int
	varDims := make(map[string][]string)
	for _, name := range names {
		a := fields[name]
		dd := make([]string, len(a.Shape))
		for i, l := range a.Shape {
			dd[i] = fmt.Sprintf("%s_%d", name, i)
			dims = append(dims, dd[i])
			lengths = append(lengths, l)
		}
		varDims[name] = dd
	}

	h := cdf.NewHeader(dims, lengths)
	for _, name := range names {
		h.AddVariable(name, varDims[name], []float64{0})
	}
	h.AddAttribute("", "source", "NCGrid v"+ncgrid.Version)
	h.Define()

	ff, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ncgridutil: creating output file %s: %v", path, err)
	}
	f, err := cdf.Create(ff, h)
	if err != nil {
		ff.Close()
		return fmt.Errorf("ncgridutil: creating output file %s: %v", path, err)
	}
	for _, name := range names {
		w := f.Writer(name, nil, nil)
		if _, err := w.Write(fields[name].Elements); err != nil {
			ff.Close()
			return fmt.Errorf("ncgridutil: writing variable %s to %s: %v", name, path, err)
		}
	}
	return ff.Close()
}
