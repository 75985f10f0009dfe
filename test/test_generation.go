// Manual end-to-end harness for the generator. It materializes the sample
// packages described in a YAML scenario file, runs a full generation for
// each and prints the outcome. Not part of the automated test suite; run
// it directly:
//
//	go run ./test/test_generation.go [scenario.yaml]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"gopkg.in/yaml.v2"

	"github.com/rosidl-go/msggen/internal/generator"
)

// Scenario is the top-level structure of the harness configuration
type Scenario struct {
	Packages []PackageFixture `yaml:"packages"`
}

// PackageFixture describes one interface package to generate
type PackageFixture struct {
	Name       string            `yaml:"name"`
	Interfaces map[string]string `yaml:"interfaces"` // filename -> definition content
	ExpectFail bool              `yaml:"expect_fail"`
}

var defaultScenario = Scenario{
	Packages: []PackageFixture{
		{
			Name: "sensor_data",
			Interfaces: map[string]string{
				"msg/Temperature.msg": "float64 reading\nstring frame_id 'base'\nuint8 SCALE_CELSIUS=0\nuint8 SCALE_KELVIN=1\n",
				"msg/Readings.msg":    "Temperature[] samples\nuint32 count 0\n",
				"srv/Reset.srv":       "bool hard\n---\nbool ok\nstring message\n",
			},
		},
		{
			Name: "broken_pkg",
			Interfaces: map[string]string{
				"msg/Bad.msg": "uint8 value 300\n",
			},
			ExpectFail: true,
		},
	},
}

func main() {
	scenarioPath := flag.String("scenario", "", "YAML scenario file (optional, built-in scenario otherwise)")
	keep := flag.Bool("keep", false, "keep the working directory instead of removing it")
	flag.Parse()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	scenario := defaultScenario
	if *scenarioPath != "" {
		data, err := os.ReadFile(*scenarioPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s failed to read scenario: %v\n", red("✗"), err)
			os.Exit(1)
		}
		if err := yaml.Unmarshal(data, &scenario); err != nil {
			fmt.Fprintf(os.Stderr, "%s failed to parse scenario: %v\n", red("✗"), err)
			os.Exit(1)
		}
	}

	workDir, err := os.MkdirTemp("", "msggen-harness-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("✗"), err)
		os.Exit(1)
	}
	if !*keep {
		defer os.RemoveAll(workDir)
	}
	fmt.Printf("Working directory: %s\n\n", workDir)

	failures := 0
	for _, pkg := range scenario.Packages {
		err := runPackage(workDir, pkg)
		switch {
		case err == nil && !pkg.ExpectFail:
			fmt.Printf("%s %s\n", green("✓"), pkg.Name)
		case err != nil && pkg.ExpectFail:
			fmt.Printf("%s %s (failed as expected: %v)\n", green("✓"), pkg.Name, err)
		case err != nil:
			fmt.Printf("%s %s: %v\n", red("✗"), pkg.Name, err)
			failures++
		default:
			fmt.Printf("%s %s: expected a failure but generation succeeded\n", red("✗"), pkg.Name)
			failures++
		}
	}

	fmt.Println()
	if failures > 0 {
		fmt.Printf("%s %d package(s) failed\n", red("FAIL"), failures)
		os.Exit(1)
	}
	fmt.Printf("%s all packages generated\n", green("PASS"))
}

// runPackage writes the fixture files, builds a generator-arguments file
// and runs a generation for the package.
func runPackage(workDir string, pkg PackageFixture) error {
	pkgDir := filepath.Join(workDir, pkg.Name)

	var idlFiles []string
	for name, content := range pkg.Interfaces {
		path := filepath.Join(pkgDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
		idlFiles = append(idlFiles, path)
	}

	arguments := map[string]interface{}{
		"package_name": pkg.Name,
		"output_dir":   filepath.Join(workDir, "gen"),
		"idl_files":    idlFiles,
	}
	data, err := json.Marshal(arguments)
	if err != nil {
		return err
	}
	argsFile := filepath.Join(pkgDir, "generator_arguments.json")
	if err := os.WriteFile(argsFile, data, 0644); err != nil {
		return err
	}

	return generator.Run(argsFile)
}
