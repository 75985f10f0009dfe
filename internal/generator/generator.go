// Package generator turns parsed .msg and .srv definitions into Go source
// files. A run is driven entirely by a generator-arguments file; the
// command layer passes its path through unmodified.
package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rosidl-go/msggen/internal/config"
	"github.com/rosidl-go/msggen/internal/logger"
	"github.com/rosidl-go/msggen/internal/parser"
	"github.com/rosidl-go/msggen/internal/validation"
)

// ManifestFilename is the name of the manifest written next to the
// generated sources.
const ManifestFilename = "msggen.manifest.yaml"

// Run loads the generator-arguments file at argumentsFile and performs a
// full generation run. Any failure aborts the run and is returned
// unchanged.
func Run(argumentsFile string) error {
	args, err := config.Load(argumentsFile)
	if err != nil {
		return err
	}
	g := New(args)
	g.ArgumentsFile = argumentsFile
	return g.Generate()
}

// Generator performs a single generation run.
type Generator struct {
	// ArgumentsFile is recorded in the manifest; it does not influence the
	// run itself.
	ArgumentsFile string

	args *config.GeneratorArguments
}

// New returns a Generator for the given arguments.
func New(args *config.GeneratorArguments) *Generator {
	return &Generator{args: args}
}

// Generate parses all interface files, validates every complex field type
// against the known type set and writes the generated sources and the run
// manifest into the output directory.
func (g *Generator) Generate() error {
	logger.Infof("Generating interface bindings for package '%s'", g.args.PackageName)

	known := parser.KnownTypes{}
	g.registerDependencyTypes(known)

	messages, services, err := g.parseInterfaceFiles(known)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if err := msg.ValidateFieldTypes(known); err != nil {
			return err
		}
	}
	for _, srv := range services {
		if err := srv.ValidateFieldTypes(known); err != nil {
			return err
		}
	}

	var outputs []string
	for _, msg := range messages {
		path, err := g.emitMessage(msg)
		if err != nil {
			return err
		}
		outputs = append(outputs, path)
	}
	for _, srv := range services {
		path, err := g.emitService(srv)
		if err != nil {
			return err
		}
		outputs = append(outputs, path)
	}

	copied, err := g.copyAdditionalFiles()
	if err != nil {
		return err
	}
	outputs = append(outputs, copied...)

	if err := g.writeManifest(outputs); err != nil {
		return err
	}

	logger.Infof("Generated %d file(s) into %s", len(outputs), g.args.OutputDir)
	return nil
}

// registerDependencyTypes adds the interface types of all dependency
// packages to the known type set. The type names are derived from the file
// layout; dependency files are not parsed.
func (g *Generator) registerDependencyTypes(known parser.KnownTypes) {
	for _, dep := range g.args.InterfaceDependencies {
		basename := filepath.Base(dep.Path)
		name := strings.TrimSuffix(basename, filepath.Ext(basename))
		switch validation.DetectKind(dep.Path) {
		case validation.KindMessage:
			known.Add(parser.BaseType{PkgName: dep.Package, Namespace: "msg", Name: name})
		case validation.KindService:
			known.Add(parser.BaseType{
				PkgName: dep.Package, Namespace: "srv",
				Name: name + parser.ServiceRequestMessageSuffix,
			})
			known.Add(parser.BaseType{
				PkgName: dep.Package, Namespace: "srv",
				Name: name + parser.ServiceResponseMessageSuffix,
			})
		default:
			logger.Warnf("Ignoring dependency of unknown kind: %s", dep.Path)
		}
	}
}

// parseInterfaceFiles parses every input file and registers the resulting
// types with the known type set.
func (g *Generator) parseInterfaceFiles(known parser.KnownTypes) ([]*parser.MessageSpec, []*parser.ServiceSpec, error) {
	var messages []*parser.MessageSpec
	var services []*parser.ServiceSpec

	for _, file := range g.args.IDLFiles {
		switch validation.DetectKind(file) {
		case validation.KindMessage:
			spec, err := parser.ParseMessageFile(g.args.PackageName, file)
			if err != nil {
				return nil, nil, err
			}
			known.Add(spec.BaseType)
			messages = append(messages, spec)
			logger.Debugf("Parsed message %s (%d fields, %d constants)",
				spec.BaseType, len(spec.Fields), len(spec.Constants))

		case validation.KindService:
			spec, err := parser.ParseServiceFile(g.args.PackageName, file)
			if err != nil {
				return nil, nil, err
			}
			known.Add(spec.Request.BaseType)
			known.Add(spec.Response.BaseType)
			services = append(services, spec)
			logger.Debugf("Parsed service %s/%s", spec.PkgName, spec.SrvName)

		default:
			return nil, nil, fmt.Errorf("unsupported interface file: %s", file)
		}
	}
	return messages, services, nil
}

// copyAdditionalFiles copies the additional files of the arguments into the
// package output directory unchanged.
func (g *Generator) copyAdditionalFiles() ([]string, error) {
	var copied []string
	for _, file := range g.args.AdditionalFiles {
		dst := filepath.Join(g.packageOutputDir(), filepath.Base(file))
		if err := copyFile(file, dst); err != nil {
			return nil, fmt.Errorf("failed to copy additional file %s: %w", file, err)
		}
		copied = append(copied, dst)
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Manifest records the inputs and outputs of a generation run.
type Manifest struct {
	PackageName        string   `yaml:"package_name"`
	ArgumentsFile      string   `yaml:"arguments_file,omitempty"`
	GeneratedAt        string   `yaml:"generated_at"`
	Inputs             []string `yaml:"inputs"`
	Outputs            []string `yaml:"outputs"`
	TargetDependencies []string `yaml:"target_dependencies,omitempty"`
}

func (g *Generator) writeManifest(outputs []string) error {
	sort.Strings(outputs)
	manifest := Manifest{
		PackageName:        g.args.PackageName,
		ArgumentsFile:      g.ArgumentsFile,
		GeneratedAt:        time.Now().UTC().Format(time.RFC3339),
		Inputs:             g.args.IDLFiles,
		Outputs:            outputs,
		TargetDependencies: g.args.TargetDependencies,
	}

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(g.packageOutputDir(), ManifestFilename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// packageOutputDir is the directory all sources of the package land in.
func (g *Generator) packageOutputDir() string {
	return filepath.Join(g.args.OutputDir, g.args.PackageName)
}
