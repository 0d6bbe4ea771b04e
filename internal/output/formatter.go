package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
)

// Formatter is the interface for output formatting
type Formatter interface {
	Print(data any) error
	PrintList(items any, columns []Column) error
	PrintMessage(msg string)
	PrintError(err error)
	PrintHint(msg string)
}

// Column defines a column for table/list output
type Column struct {
	Name  string // Display name
	Key   string // Struct field name or map key
	Width int    // Width for rich mode (0 = auto)
}

// New creates a formatter for the specified mode writing to stdout/stderr
func New(mode string) Formatter {
	return NewWithWriters(mode, false, os.Stdout, os.Stderr)
}

// NewWithWriters creates a formatter with explicit writers. resultsOnly
// drops the JSON list envelope.
func NewWithWriters(mode string, resultsOnly bool, out, errOut io.Writer) Formatter {
	switch mode {
	case "json":
		return &jsonFormatter{out: out, errOut: errOut, resultsOnly: resultsOnly}
	case "rich":
		return &richFormatter{out: out, errOut: errOut, profile: termenv.EnvColorProfile()}
	default:
		return &plainFormatter{out: out, errOut: errOut}
	}
}

// jsonFormatter outputs JSON to stdout
type jsonFormatter struct {
	out, errOut io.Writer
	resultsOnly bool
}

func (f *jsonFormatter) Print(data any) error {
	enc := json.NewEncoder(f.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (f *jsonFormatter) PrintList(items any, columns []Column) error {
	// If results-only mode, print raw array
	if f.resultsOnly {
		return f.Print(items)
	}

	count := 0
	if v := indirect(reflect.ValueOf(items)); v.Kind() == reflect.Slice {
		count = v.Len()
	}

	return f.Print(map[string]any{
		"data":  items,
		"count": count,
	})
}

// PrintMessage is a no-op: JSON stdout stays machine-readable and the data
// already carries the result.
func (f *jsonFormatter) PrintMessage(msg string) {}

func (f *jsonFormatter) PrintError(err error) {
	enc := json.NewEncoder(f.errOut)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]string{"error": err.Error()})
}

func (f *jsonFormatter) PrintHint(msg string) {}

// plainFormatter outputs tab-separated values
type plainFormatter struct {
	out, errOut io.Writer
}

func (f *plainFormatter) Print(data any) error {
	fields, ok := structFields(data)
	if !ok {
		fmt.Fprintf(f.out, "%v\n", data)
		return nil
	}
	for _, kv := range fields {
		fmt.Fprintf(f.out, "%s\t%s\n", kv[0], kv[1])
	}
	return nil
}

func (f *plainFormatter) PrintList(items any, columns []Column) error {
	rows, err := tableRows(items, columns)
	if err != nil {
		return err
	}

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Name
	}
	fmt.Fprintln(f.out, strings.Join(headers, "\t"))

	for _, row := range rows {
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = row[col.Key]
		}
		fmt.Fprintln(f.out, strings.Join(values, "\t"))
	}
	return nil
}

func (f *plainFormatter) PrintMessage(msg string) {
	fmt.Fprintln(f.errOut, msg)
}

func (f *plainFormatter) PrintError(err error) {
	fmt.Fprintf(f.errOut, "error: %v\n", err)
}

func (f *plainFormatter) PrintHint(msg string) {
	fmt.Fprintf(f.errOut, "hint: %v\n", msg)
}

// richFormatter outputs styled content for terminal
type richFormatter struct {
	out, errOut io.Writer
	profile     termenv.Profile
}

func (f *richFormatter) style(s lipgloss.Style, text string) string {
	// NO_COLOR and dumb terminals resolve to Ascii
	if f.profile == termenv.Ascii {
		return text
	}
	return s.Render(text)
}

func (f *richFormatter) Print(data any) error {
	fields, ok := structFields(data)
	if !ok {
		fmt.Fprintf(f.out, "%v\n", data)
		return nil
	}

	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	for _, kv := range fields {
		fmt.Fprintf(f.out, "%s: %s\n", f.style(keyStyle, kv[0]), kv[1])
	}
	return nil
}

func (f *richFormatter) PrintList(items any, columns []Column) error {
	rows, err := tableRows(items, columns)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(f.errOut, f.style(lipgloss.NewStyle().Faint(true), "(none)"))
		return nil
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Underline(true)
	RenderTable(f.out, columns, rows, func(s string) string {
		return f.style(headerStyle, s)
	})
	return nil
}

func (f *richFormatter) PrintMessage(msg string) {
	fmt.Fprintln(f.errOut, f.style(lipgloss.NewStyle().Foreground(lipgloss.Color("10")), msg))
}

func (f *richFormatter) PrintError(err error) {
	errorStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9"))

	fmt.Fprintln(f.errOut, f.style(errorStyle, "error: "+err.Error()))
}

func (f *richFormatter) PrintHint(msg string) {
	hintStyle := lipgloss.NewStyle().
		Faint(true).
		Foreground(lipgloss.Color("8"))

	fmt.Fprintln(f.errOut, f.style(hintStyle, "hint: "+msg))
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

// structFields returns name/value pairs of an exported struct's fields,
// named by their json tag when present.
func structFields(data any) ([][2]string, bool) {
	v := indirect(reflect.ValueOf(data))
	if v.Kind() != reflect.Struct {
		return nil, false
	}

	t := v.Type()
	var out [][2]string
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		out = append(out, [2]string{name, fmt.Sprintf("%v", v.Field(i).Interface())})
	}
	return out, true
}

// tableRows flattens a slice of structs or maps into rows keyed by Column.Key.
func tableRows(items any, columns []Column) ([]map[string]string, error) {
	v := indirect(reflect.ValueOf(items))
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("PrintList requires a slice")
	}

	rows := make([]map[string]string, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := indirect(v.Index(i))

		row := make(map[string]string, len(columns))
		for _, col := range columns {
			var val reflect.Value
			switch item.Kind() {
			case reflect.Map:
				val = item.MapIndex(reflect.ValueOf(col.Key))
			case reflect.Struct:
				val = item.FieldByName(col.Key)
			}
			if val.IsValid() {
				row[col.Key] = fmt.Sprintf("%v", val.Interface())
			}
		}
		rows[i] = row
	}
	return rows, nil
}
