package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/rosidl-go/msggen/internal/parser"
)

// goPrimitiveTypes maps interface primitive types to Go types.
var goPrimitiveTypes = map[string]string{
	"bool":    "bool",
	"byte":    "byte",
	"char":    "int8",
	"float32": "float32",
	"float64": "float64",
	"int8":    "int8",
	"uint8":   "uint8",
	"int16":   "int16",
	"uint16":  "uint16",
	"int32":   "int32",
	"uint32":  "uint32",
	"int64":   "int64",
	"uint64":  "uint64",
	"string":  "string",
	"wstring": "string",
}

type goFile struct {
	Source    string
	GoPackage string
	Imports   []string
	Messages  []goMessage
	Service   *goService
}

type goMessage struct {
	Name      string
	Doc       string
	Constants []goConstant
	Fields    []goField
}

type goField struct {
	RawName    string
	GoName     string
	GoType     string
	GoDefault  string
	HasDefault bool
}

type goConstant struct {
	Name    string
	GoType  string
	GoValue string
}

type goService struct {
	Name string
	Doc  string
}

var fileTemplate = template.Must(template.New("gofile").Parse(`// Code generated by msggen from {{ .Source }}. DO NOT EDIT.

package {{ .GoPackage }}
{{ if .Imports }}
import (
{{- range .Imports }}
	"{{ . }}"
{{- end }}
)
{{ end }}
{{- range .Messages }}
{{ if .Constants }}const (
{{- range .Constants }}
	{{ .Name }} {{ .GoType }} = {{ .GoValue }}
{{- end }}
)
{{ end }}
// {{ .Doc }}
type {{ .Name }} struct {
{{- range .Fields }}
	{{ .GoName }} {{ .GoType }} ` + "`json:\"{{ .RawName }}\" yaml:\"{{ .RawName }}\"`" + `
{{- end }}
}

// New{{ .Name }} returns a {{ .Name }} with its default values applied.
func New{{ .Name }}() *{{ .Name }} {
	return &{{ .Name }}{
{{- range .Fields }}
{{- if .HasDefault }}
		{{ .GoName }}: {{ .GoDefault }},
{{- end }}
{{- end }}
	}
}
{{ end }}
{{- with .Service }}
// {{ .Doc }}
type {{ .Name }} struct {
	Request  {{ .Name }}_Request
	Response {{ .Name }}_Response
}
{{ end -}}`))

// emitMessage writes the Go source for a message and returns the path of
// the generated file.
func (g *Generator) emitMessage(spec *parser.MessageSpec) (string, error) {
	imports := map[string]struct{}{}
	msg, err := g.buildMessage(spec, "msg", imports)
	if err != nil {
		return "", err
	}

	file := goFile{
		Source:    fmt.Sprintf("%s/msg/%s.msg", g.args.PackageName, spec.MsgName),
		GoPackage: g.args.PackageName + "_msg",
		Imports:   sortedImports(imports),
		Messages:  []goMessage{msg},
	}
	path := filepath.Join(g.packageOutputDir(), "msg", spec.MsgName+".go")
	return path, g.renderFile(path, file)
}

// emitService writes the Go source for a service, containing its request
// and response messages and a type bundling the two.
func (g *Generator) emitService(spec *parser.ServiceSpec) (string, error) {
	imports := map[string]struct{}{}
	request, err := g.buildMessage(spec.Request, "srv", imports)
	if err != nil {
		return "", err
	}
	response, err := g.buildMessage(spec.Response, "srv", imports)
	if err != nil {
		return "", err
	}

	source := fmt.Sprintf("%s/srv/%s.srv", g.args.PackageName, spec.SrvName)
	file := goFile{
		Source:    source,
		GoPackage: g.args.PackageName + "_srv",
		Imports:   sortedImports(imports),
		Messages:  []goMessage{request, response},
		Service: &goService{
			Name: spec.SrvName,
			Doc:  fmt.Sprintf("%s bundles the request and response of the %s service.", spec.SrvName, source),
		},
	}
	path := filepath.Join(g.packageOutputDir(), "srv", spec.SrvName+".go")
	return path, g.renderFile(path, file)
}

func (g *Generator) renderFile(path string, file goFile) error {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, file); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// buildMessage converts a parsed message into its rendering model,
// collecting the imports its field types require.
func (g *Generator) buildMessage(spec *parser.MessageSpec, namespace string, imports map[string]struct{}) (goMessage, error) {
	msg := goMessage{
		Name: spec.MsgName,
		Doc: fmt.Sprintf("%s mirrors the %s interface definition.",
			spec.MsgName, spec.BaseType),
	}

	for _, c := range spec.Constants {
		msg.Constants = append(msg.Constants, goConstant{
			Name:    spec.MsgName + "_" + c.Name,
			GoType:  goPrimitiveTypes[c.Type],
			GoValue: goScalarLiteral(c.Value),
		})
	}

	for _, f := range spec.Fields {
		goType, err := g.goType(f.Type, namespace, imports)
		if err != nil {
			return goMessage{}, fmt.Errorf("field '%s' of %s: %w", f.Name, spec.BaseType, err)
		}
		field := goField{
			RawName: f.Name,
			GoName:  exportName(f.Name),
			GoType:  goType,
		}
		if f.DefaultValue != nil {
			field.GoDefault = goLiteral(f.DefaultValue, goType)
			field.HasDefault = true
		}
		msg.Fields = append(msg.Fields, field)
	}
	return msg, nil
}

// goType maps an interface field type to its Go rendering and records any
// import the rendering needs.
func (g *Generator) goType(t parser.Type, currentNamespace string, imports map[string]struct{}) (string, error) {
	var base string
	if t.IsPrimitive() {
		base = goPrimitiveTypes[t.Name]
	} else if t.PkgName == g.args.PackageName && t.Namespace == currentNamespace {
		base = t.Name
	} else {
		if g.args.GoImportPrefix == "" {
			return "", fmt.Errorf(
				"referencing type %s requires 'go_import_prefix' to be set", t.BaseType)
		}
		imports[g.args.GoImportPrefix+"/"+t.PkgName+"/"+t.Namespace] = struct{}{}
		base = t.PkgName + "_" + t.Namespace + "." + t.Name
	}

	if t.IsFixedSizeArray() {
		return fmt.Sprintf("[%d]%s", t.ArraySize, base), nil
	}
	if t.IsArray {
		return "[]" + base, nil
	}
	return base, nil
}

// goLiteral renders a parsed value as a Go literal of the given type.
func goLiteral(value interface{}, goType string) string {
	if elements, ok := value.([]interface{}); ok {
		literals := make([]string, len(elements))
		for i, e := range elements {
			literals[i] = goScalarLiteral(e)
		}
		return goType + "{" + strings.Join(literals, ", ") + "}"
	}
	return goScalarLiteral(value)
}

func goScalarLiteral(value interface{}) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// exportName converts a snake_case field name into an exported Go name.
func exportName(name string) string {
	parts := strings.Split(name, "_")
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, "")
}

func sortedImports(imports map[string]struct{}) []string {
	if len(imports) == 0 {
		return nil
	}
	paths := make([]string, 0, len(imports))
	for path := range imports {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
