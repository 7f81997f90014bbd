// Package parser loads process sets from YAML, JSON and CSV documents and
// validates them before they reach the scheduler.
package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/me/cpusched/pkg/model"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a process-set document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// FormatFromPath guesses the document format from a file extension.
// Unknown extensions are read as YAML, which also accepts JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	}
	return FormatYAML
}

// Parser converts raw documents into a Document.
type Parser struct {
	logger *slog.Logger
}

// New creates a Parser with the given logger.
func New(logger *slog.Logger) *Parser {
	return &Parser{logger: logger.With("component", "parser")}
}

// ParseFile reads path and parses it in the format implied by its extension.
func (p *Parser) ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := p.Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Parse decodes data in the given format. It does not validate the result.
func (p *Parser) Parse(data []byte, format Format) (*Document, error) {
	var (
		doc *Document
		err error
	)
	switch format {
	case FormatCSV:
		doc, err = p.parseCSV(data)
	case FormatYAML, FormatJSON, "":
		// JSON is a subset of YAML.
		doc, err = p.parseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}
	p.logger.Debug("parsed process set", "format", format, "processes", len(doc.Processes))
	return doc, nil
}

// rawDocument mirrors Document but accepts the short field aliases.
type rawDocument struct {
	Name      string       `yaml:"name"`
	Algorithm string       `yaml:"algorithm"`
	Quantum   int          `yaml:"quantum"`
	Processes []rawProcess `yaml:"processes"`
}

type rawProcess struct {
	ID          string `yaml:"id"`
	Arrival     *int   `yaml:"arrival"`
	ArrivalTime *int   `yaml:"arrival_time"`
	Burst       *int   `yaml:"burst"`
	BurstTime   *int   `yaml:"burst_time"`
	Priority    *int   `yaml:"priority"`
}

func (r rawProcess) process() model.Process {
	p := model.Process{ID: strings.TrimSpace(r.ID), Priority: model.DefaultPriority}
	if v := firstSet(r.ArrivalTime, r.Arrival); v != nil {
		p.ArrivalTime = *v
	}
	if v := firstSet(r.BurstTime, r.Burst); v != nil {
		p.BurstTime = *v
	}
	if r.Priority != nil {
		p.Priority = *r.Priority
	}
	return p
}

func firstSet(vals ...*int) *int {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

// parseYAML accepts either a mapping with a processes key or a bare sequence
// of processes.
func (p *Parser) parseYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if len(root.Content) == 0 {
		return &Document{}, nil
	}

	var raw rawDocument
	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&raw.Processes); err != nil {
			return nil, fmt.Errorf("decode processes: %w", err)
		}
	case yaml.MappingNode:
		if err := node.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
	default:
		return nil, fmt.Errorf("document must be a mapping or a list of processes")
	}

	doc := &Document{
		Name:      raw.Name,
		Algorithm: raw.Algorithm,
		Quantum:   raw.Quantum,
		Processes: make([]model.Process, 0, len(raw.Processes)),
	}
	for _, rp := range raw.Processes {
		doc.Processes = append(doc.Processes, rp.process())
	}
	return doc, nil
}

// csvColumns maps header names to column roles.
var csvColumns = map[string]string{
	"id":             "id",
	"pid":            "id",
	"process":        "id",
	"process_id":     "id",
	"arrival":        "arrival",
	"arrival_time":   "arrival",
	"burst":          "burst",
	"burst_time":     "burst",
	"burst_duration": "burst",
	"priority":       "priority",
}

// parseCSV reads rows of id,arrival,burst[,priority]. A header row, detected by
// a first cell naming the id column, may reorder the columns.
func (p *Parser) parseCSV(data []byte) (*Document, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'

	cols := map[string]int{"id": 0, "arrival": 1, "burst": 2, "priority": 3}
	doc := &Document{}
	for line := 1; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV parse error: %w", err)
		}
		if line == 1 && isHeader(rec) {
			cols, err = headerColumns(rec)
			if err != nil {
				return nil, err
			}
			continue
		}

		proc, err := csvProcess(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", line, err)
		}
		doc.Processes = append(doc.Processes, proc)
	}
	return doc, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	return csvColumns[strings.ToLower(strings.TrimSpace(rec[0]))] == "id"
}

func headerColumns(rec []string) (map[string]int, error) {
	cols := make(map[string]int)
	for i, name := range rec {
		if role, ok := csvColumns[strings.ToLower(strings.TrimSpace(name))]; ok {
			cols[role] = i
		}
	}
	for _, required := range []string{"id", "arrival", "burst"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV header is missing a %s column", required)
		}
	}
	return cols, nil
}

func csvProcess(rec []string, cols map[string]int) (model.Process, error) {
	field := func(role string) (string, bool) {
		i, ok := cols[role]
		if !ok || i >= len(rec) {
			return "", false
		}
		v := strings.TrimSpace(rec[i])
		return v, v != ""
	}
	number := func(role string) (int, error) {
		v, _ := field(role)
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s %q is not an integer", role, v)
		}
		return n, nil
	}

	id, ok := field("id")
	if !ok {
		return model.Process{}, fmt.Errorf("missing id")
	}
	proc := model.Process{ID: id, Priority: model.DefaultPriority}

	var err error
	if proc.ArrivalTime, err = number("arrival"); err != nil {
		return model.Process{}, err
	}
	if proc.BurstTime, err = number("burst"); err != nil {
		return model.Process{}, err
	}
	if _, ok := field("priority"); ok {
		if proc.Priority, err = number("priority"); err != nil {
			return model.Process{}, err
		}
	}
	return proc, nil
}

// Marshal encodes doc as YAML.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
