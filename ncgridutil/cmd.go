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

// Package ncgridutil holds the command-line interface and configuration
// for the ncgrid command.
package ncgridutil

import (
	"context"
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialgrid/ncgrid"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to NCGrid.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose enables debug-level logging.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "standard-name",
			usage: `
              standard-name restricts the listed variables to those whose
              CF standard_name attribute exactly equals the given value.`,
			shorthand:  "n",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{varsCmd.Flags()},
		},
		{
			name: "first",
			usage: `
              first specifies the 1-based starting index of the retrieval
              in each dimension of the variable. The default is the
              beginning of the array in every dimension.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{dataCmd.Flags(), gridCmd.Flags(), structCmd.Flags()},
		},
		{
			name: "last",
			usage: `
              last specifies the 1-based ending index (inclusive) of the
              retrieval in each dimension of the variable. The default is
              the end of the array in every dimension.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{dataCmd.Flags(), gridCmd.Flags(), structCmd.Flags()},
		},
		{
			name: "stride",
			usage: `
              stride specifies the sampling interval of the retrieval in
              each dimension of the variable. The default is 1 in every
              dimension.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{dataCmd.Flags(), gridCmd.Flags(), structCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output specifies a NetCDF file to write the retrieved data
              to. If it is not specified, a summary of each retrieved
              field is printed instead.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{dataCmd.Flags(), gridCmd.Flags(), structCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("NCGRID")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(varsCmd)
	Root.AddCommand(describeCmd)
	Root.AddCommand(dataCmd)
	Root.AddCommand(gridCmd)
	Root.AddCommand(structCmd)
}

// outChan returns a channel forwarding messages to the logger.
func outChan() chan string {
	outChan := make(chan string)
	go func() {
		for {
			msg := <-outChan
			logrus.Info(msg)
		}
	}()
	return outChan
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("ncgrid: problem reading configuration file: %v", err)
		}
	}
	if Cfg.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// subsetFlag returns the named subsetting option, with an empty value
// converted to nil so that downstream defaulting applies.
func subsetFlag(name string) ([]int, error) {
	v, err := cast.ToIntSliceE(Cfg.Get(name))
	if err != nil {
		return nil, fmt.Errorf("ncgrid: parsing option %s: %v", name, err)
	}
	if len(v) == 0 {
		return nil, nil
	}
	return v, nil
}

// retrieve implements the data, grid, and struct commands.
func retrieve(op string, args []string) error {
	first, err := subsetFlag("first")
	if err != nil {
		return err
	}
	last, err := subsetFlag("last")
	if err != nil {
		return err
	}
	stride, err := subsetFlag("stride")
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"source":   args[0],
		"variable": args[1],
	}).Debugf("retrieving %s", op)
	return Retrieve(context.Background(), os.Stdout, args[0], args[1], op,
		first, last, stride, Cfg.GetString("output"), outChan())
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "ncgrid",
	Short: "Convention-aware access to gridded scientific datasets.",
	Long: `NCGrid reads variables and their coordinate ("axis") variables from
NetCDF datasets, resolving the association between them from CF or
COARDS metadata conventions automatically.

Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the
format 'NCGRID_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of NCGrid.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("NCGrid v%s\n", ncgrid.Version)
	},
	DisableAutoGenTag: true,
}

var varsCmd = &cobra.Command{
	Use:   "vars [source]",
	Short: "List the variables in a dataset",
	Long: `vars lists the names of the variables in the given dataset, in
dataset order. With --standard-name, only variables whose standard_name
attribute exactly equals the given value are listed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := Vars(context.Background(), args[0], Cfg.GetString("standard-name"), outChan())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var describeCmd = &cobra.Command{
	Use:   "describe [source] [variable]",
	Short: "Describe a variable",
	Long: `describe prints the shape, resolved coordinate axes, and common CF
attributes of the given variable.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Describe(context.Background(), os.Stdout, args[0], args[1], outChan())
	},
	DisableAutoGenTag: true,
}

var dataCmd = &cobra.Command{
	Use:   "data [source] [variable]",
	Short: "Retrieve a variable's data",
	Long: `data retrieves the given variable's data, subset with --first,
--last, and --stride.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return retrieve("data", args)
	},
	DisableAutoGenTag: true,
}

var gridCmd = &cobra.Command{
	Use:   "grid [source] [variable]",
	Short: "Retrieve a variable's coordinate grid",
	Long: `grid retrieves the coordinate variables associated with the given
variable, subset with --first, --last, and --stride. The variable's own
data is not included.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return retrieve("grid", args)
	},
	DisableAutoGenTag: true,
}

var structCmd = &cobra.Command{
	Use:   "struct [source] [variable]",
	Short: "Retrieve a variable's data and coordinate grid",
	Long: `struct retrieves the given variable's data together with its
coordinate variables, subset with --first, --last, and --stride.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return retrieve("struct", args)
	},
	DisableAutoGenTag: true,
}
