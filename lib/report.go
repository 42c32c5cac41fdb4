package lib

import (
	"io"
	"os"
	"sort"
	"strings"
	"text/template"
)

var reportTemplate = `{{range .Scripts}}== {{.Name}} ({{.Path}})
statements: {{len .Statements}}
{{range .Statements}}  {{.}}
{{end}}{{if .Functions}}functions:
{{range .Functions}}  {{.Name}}({{join .Parameters ", "}})
{{end}}{{end}}{{if .Variables}}variables:
{{range .Variables}}  {{.}}
{{end}}{{end}}
{{end}}`

type reportViewModel struct {
	Scripts []scriptViewModel
}

type scriptViewModel struct {
	Name       string
	Path       string
	Statements []string
	Functions  []functionViewModel
	Variables  []string
}

type functionViewModel struct {
	Name       string
	Parameters []string
}

// WriteReportFile renders the report for scripts into the file at dest.
func WriteReportFile(dest string, scripts []Script) error {
	fileWriter, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer fileWriter.Close()

	return WriteReport(fileWriter, scripts)
}

// WriteReport renders a summary of every script: its formatted statements
// and the functions and variables it defines.
func WriteReport(writer io.Writer, scripts []Script) error {
	tmpl, err := template.New("report").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(writer, newReportViewModel(scripts))
}

func newReportViewModel(scripts []Script) reportViewModel {
	vm := reportViewModel{
		Scripts: []scriptViewModel{},
	}

	for _, s := range scripts {
		svm := scriptViewModel{
			Name:       s.Name,
			Path:       s.Path,
			Statements: []string{},
			Functions:  []functionViewModel{},
			Variables:  []string{},
		}

		for _, stmt := range s.Program.Statements {
			svm.Statements = append(svm.Statements, Format(stmt))
		}

		for _, name := range sortedKeys(s.Model.Functions) {
			fn := s.Model.Functions[name]
			svm.Functions = append(svm.Functions, functionViewModel{
				Name:       fn.Name,
				Parameters: fn.Parameters,
			})
		}

		for _, name := range sortedKeys(s.Model.Variables) {
			svm.Variables = append(svm.Variables, name)
		}

		vm.Scripts = append(vm.Scripts, svm)
	}

	return vm
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
