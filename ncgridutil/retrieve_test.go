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
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ctessum/cdf"

	"github.com/spatialgrid/ncgrid"
)

// writeDataset writes a NetCDF file holding a 10-element TEMP series
// with CF-declared TIME, LAT, and LON axis variables. The values of
// variable i are 100i..100i+9.
func writeDataset(t *testing.T, dir string) string {
	h := cdf.NewHeader([]string{"obs"}, []int{10})
	for _, v := range []string{"TIME", "LAT", "LON", "TEMP"} {
		h.AddVariable(v, []string{"obs"}, []float64{0})
	}
	h.AddAttribute("TEMP", "coordinates", "TIME LAT LON")
	h.AddAttribute("TEMP", "standard_name", "sea_water_temperature")
	h.AddAttribute("TEMP", "units", "K")
	h.Define()

	path := filepath.Join(dir, "dataset.nc")
	ff, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	f, err := cdf.Create(ff, h)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range []string{"TIME", "LAT", "LON", "TEMP"} {
		data := make([]float64, 10)
		for j := range data {
			data[j] = float64(100*i + j)
		}
		// The cdf Writer returns io.EOF when an exact-length write
		// reaches the end of a fixed-size variable.
		if _, err := f.Writer(v, nil, nil).Write(data); err != nil && err != io.EOF {
			t.Fatal(err)
		}
	}
	if err := ff.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func tempDataset(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "ncgridtest")
	if err != nil {
		t.Fatal(err)
	}
	return writeDataset(t, dir), func() { os.RemoveAll(dir) }
}

func TestVars(t *testing.T) {
	path, closer := tempDataset(t)
	defer closer()
	ctx := context.Background()

	names, err := Vars(ctx, path, "", helperLog(t))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"TIME", "LAT", "LON", "TEMP"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}

	names, err = Vars(ctx, path, "sea_water_temperature", helperLog(t))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"TEMP"}) {
		t.Errorf("got %v, want [TEMP]", names)
	}
}

func TestDescribe(t *testing.T) {
	path, closer := tempDataset(t)
	defer closer()

	var buf bytes.Buffer
	if err := Describe(context.Background(), &buf, path, "TEMP", helperLog(t)); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"variable TEMP",
		"shape: [10]",
		"axes: [TIME LAT LON]",
		"standard_name: sea_water_temperature",
		"units: K",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output %q does not contain %q", buf.String(), want)
		}
	}

	if err := Describe(context.Background(), &buf, path, "MISSING", helperLog(t)); err == nil {
		t.Error("expected an error describing an unknown variable")
	}
}

func TestRetrieveSummary(t *testing.T) {
	path, closer := tempDataset(t)
	defer closer()

	var buf bytes.Buffer
	err := Retrieve(context.Background(), &buf, path, "TEMP", "data",
		nil, nil, nil, "", helperLog(t))
	if err != nil {
		t.Fatal(err)
	}
	want := "TEMP [10]: min 300, max 309\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestRetrieveSubset(t *testing.T) {
	path, closer := tempDataset(t)
	defer closer()

	var buf bytes.Buffer
	err := Retrieve(context.Background(), &buf, path, "TEMP", "data",
		[]int{2}, []int{8}, []int{3}, "", helperLog(t))
	if err != nil {
		t.Fatal(err)
	}
	want := "TEMP [3]: min 301, max 307\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestRetrieveNetCDF(t *testing.T) {
	path, closer := tempDataset(t)
	defer closer()
	out := filepath.Join(filepath.Dir(path), "out.nc")

	var buf bytes.Buffer
	err := Retrieve(context.Background(), &buf, path, "TEMP", "struct",
		nil, nil, nil, out, helperLog(t))
	if err != nil {
		t.Fatal(err)
	}

	d, err := ncgrid.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	// Output variables are written in sorted order.
	want := []string{"LAT", "LON", "TEMP", "TIME"}
	if got := d.Variables(); !reflect.DeepEqual(got, want) {
		t.Fatalf("variables = %v, want %v", got, want)
	}
	for i, v := range []string{"TIME", "LAT", "LON", "TEMP"} {
		data, err := d.Data(v, nil, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		wantData := make([]float64, 10)
		for j := range wantData {
			wantData[j] = float64(100*i + j)
		}
		if !reflect.DeepEqual(data.Elements, wantData) {
			t.Errorf("%s = %v, want %v", v, data.Elements, wantData)
		}
	}
	if src, ok := d.Attribute("", "source"); !ok || src != "NCGrid v"+ncgrid.Version {
		t.Errorf("source attribute = %q, %v", src, ok)
	}
}

func TestRetrieveBadOp(t *testing.T) {
	path, closer := tempDataset(t)
	defer closer()
	err := Retrieve(context.Background(), ioutil.Discard, path, "TEMP", "frobnicate",
		nil, nil, nil, "", helperLog(t))
	if err == nil {
		t.Error("expected an error for an invalid operation")
	}
}
