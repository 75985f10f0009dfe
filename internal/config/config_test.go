package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	msgFile := writeFile(t, dir, "msg/Temperature.msg", "float64 reading\n")
	depFile := writeFile(t, dir, "geometry_msgs/msg/Point.msg", "float64 x\nfloat64 y\nfloat64 z\n")

	t.Run("JSON", func(t *testing.T) {
		argsFile := writeFile(t, dir, "args.json", `{
			"package_name": "sensor_data",
			"output_dir": "`+strings.ReplaceAll(filepath.Join(dir, "out"), `\`, `\\`)+`",
			"idl_files": ["`+strings.ReplaceAll(msgFile, `\`, `\\`)+`"],
			"interface_dependencies": ["geometry_msgs:`+strings.ReplaceAll(depFile, `\`, `\\`)+`"]
		}`)

		args, err := Load(argsFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if args.PackageName != "sensor_data" {
			t.Errorf("unexpected package name: %q", args.PackageName)
		}
		if len(args.IDLFiles) != 1 || args.IDLFiles[0] != msgFile {
			t.Errorf("unexpected idl files: %v", args.IDLFiles)
		}
		if len(args.InterfaceDependencies) != 1 {
			t.Fatalf("unexpected dependencies: %v", args.InterfaceDependencies)
		}
		dep := args.InterfaceDependencies[0]
		if dep.Package != "geometry_msgs" || dep.Path != depFile {
			t.Errorf("unexpected dependency: %+v", dep)
		}
	})

	t.Run("YAML", func(t *testing.T) {
		argsFile := writeFile(t, dir, "args.yaml",
			"package_name: sensor_data\n"+
				"output_dir: "+filepath.Join(dir, "out")+"\n"+
				"idl_files:\n  - "+msgFile+"\n")

		args, err := Load(argsFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if args.PackageName != "sensor_data" || len(args.IDLFiles) != 1 {
			t.Errorf("unexpected arguments: %+v", args)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("missing arguments file should fail")
		}
	})

	t.Run("Missing Package Name", func(t *testing.T) {
		argsFile := writeFile(t, dir, "nopkg.json", `{"output_dir": "out"}`)
		if _, err := Load(argsFile); err == nil {
			t.Error("missing package_name should fail")
		}
	})

	t.Run("Invalid Package Name", func(t *testing.T) {
		argsFile := writeFile(t, dir, "badpkg.json", `{"package_name": "BadPkg", "output_dir": "out"}`)
		if _, err := Load(argsFile); err == nil {
			t.Error("invalid package_name should fail")
		}
	})

	t.Run("Missing Interface File", func(t *testing.T) {
		argsFile := writeFile(t, dir, "badidl.json", `{
			"package_name": "sensor_data",
			"output_dir": "out",
			"idl_files": ["/does/not/exist.msg"]
		}`)
		if _, err := Load(argsFile); err == nil {
			t.Error("nonexistent interface file should fail")
		}
	})
}

func TestParseDependency(t *testing.T) {
	t.Run("Explicit Package", func(t *testing.T) {
		dep, err := ParseDependency("geometry_msgs:/ws/geometry_msgs/msg/Point.msg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dep.Package != "geometry_msgs" || dep.Path != "/ws/geometry_msgs/msg/Point.msg" {
			t.Errorf("unexpected dependency: %+v", dep)
		}
	})

	t.Run("Derived From Layout", func(t *testing.T) {
		dep, err := ParseDependency("/ws/geometry_msgs/msg/Point.msg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dep.Package != "geometry_msgs" {
			t.Errorf("unexpected package: %q", dep.Package)
		}
	})

	t.Run("Underivable", func(t *testing.T) {
		if _, err := ParseDependency("Point.msg"); err == nil {
			t.Error("bare file name should fail")
		}
	})
}
