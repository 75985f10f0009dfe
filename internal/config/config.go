// Package config loads the generator-arguments file that drives a
// generation run. The file is produced by the build system invoking the
// generator; JSON and YAML are both accepted.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/rosidl-go/msggen/internal/parser"
)

// GeneratorArguments holds all inputs of a single generation run
type GeneratorArguments struct {
	// PackageName is the interface package the definitions belong to
	PackageName string `mapstructure:"package_name"`
	// OutputDir is the root directory generated sources are written into
	OutputDir string `mapstructure:"output_dir"`
	// GoImportPrefix is prepended to dependency package paths in generated
	// import statements
	GoImportPrefix string `mapstructure:"go_import_prefix"`
	// IDLFiles are the .msg and .srv definition files to generate from
	IDLFiles []string `mapstructure:"idl_files"`
	// InterfaceDependencies are interface files of other packages whose
	// types may be referenced by the definitions of this package
	InterfaceDependencies []Dependency `mapstructure:"interface_dependencies"`
	// TargetDependencies are build inputs the run depends on (templates,
	// arguments files of dependencies); they are recorded in the manifest
	TargetDependencies []string `mapstructure:"target_dependencies"`
	// AdditionalFiles are copied into the output directory unchanged
	AdditionalFiles []string `mapstructure:"additional_files"`
}

// Dependency is an interface file of another package. In the arguments
// file it is written as "package:path" or as a bare path, in which case
// the package name is derived from the path layout.
type Dependency struct {
	Package string
	Path    string
}

// Load reads and validates a generator-arguments file
func Load(path string) (*GeneratorArguments, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		// the original toolchain writes plain JSON without an extension
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read generator arguments file %s: %w", path, err)
	}

	var args GeneratorArguments
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToDependencyHookFunc(),
	))
	if err := v.Unmarshal(&args, decodeHook); err != nil {
		return nil, fmt.Errorf("failed to decode generator arguments file %s: %w", path, err)
	}

	if err := args.Validate(); err != nil {
		return nil, err
	}
	return &args, nil
}

// stringToDependencyHookFunc decodes "package:path" strings into Dependency
// values while leaving map-shaped entries to the default decoding.
func stringToDependencyHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(Dependency{}) {
			return data, nil
		}
		return ParseDependency(data.(string))
	}
}

// ParseDependency splits a dependency entry into its package name and path.
// Entries without an explicit "package:" prefix take the package name from
// the grandparent directory, matching the package/msg/Name.msg layout.
func ParseDependency(entry string) (Dependency, error) {
	if pkg, path, found := strings.Cut(entry, ":"); found && len(pkg) > 1 {
		// single letters before ':' are Windows drive letters, not packages
		return Dependency{Package: pkg, Path: path}, nil
	}
	dir := filepath.Dir(filepath.Dir(entry))
	pkg := filepath.Base(dir)
	if pkg == "." || pkg == string(filepath.Separator) {
		return Dependency{}, fmt.Errorf(
			"can not derive a package name from dependency entry '%s'", entry)
	}
	return Dependency{Package: pkg, Path: entry}, nil
}

// Validate checks the arguments for completeness
func (a *GeneratorArguments) Validate() error {
	if a.PackageName == "" {
		return fmt.Errorf("generator arguments are missing 'package_name'")
	}
	if !parser.IsValidPackageName(a.PackageName) {
		return fmt.Errorf("'%s' is not a valid package name", a.PackageName)
	}
	if a.OutputDir == "" {
		return fmt.Errorf("generator arguments are missing 'output_dir'")
	}
	for _, file := range a.IDLFiles {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("interface file does not exist: %s", file)
		}
	}
	for _, dep := range a.InterfaceDependencies {
		if _, err := os.Stat(dep.Path); err != nil {
			return fmt.Errorf("interface dependency does not exist: %s", dep.Path)
		}
	}
	return nil
}
