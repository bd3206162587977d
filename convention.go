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

import "strings"

// coordinateVars returns the ordered coordinate-variable names
// associated with variable v, or an empty list if they cannot be
// determined.
//
// If v has a CF "coordinates" attribute, its whitespace-separated
// tokens are returned in attribute order, without checking that the
// named variables exist; a bogus name fails later, when the axis is
// actually read. Otherwise the COARDS dimension-name heuristic is used:
// one candidate per dimension from the accessor. If any dimension has
// no candidate the whole list is discarded, because downstream code
// assumes either all axes are known or none are.
func coordinateVars(acc Accessor, v string) []string {
	if coords, ok := acc.Attribute(v, "coordinates"); ok {
		return strings.Fields(coords)
	}
	axes := acc.DimensionAxes(v)
	for _, a := range axes {
		if a == "" {
			return nil
		}
	}
	return axes
}
