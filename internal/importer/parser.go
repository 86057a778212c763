// Package importer reads deal files into the domain model.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/dealflow/internal/common"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// dateLayouts are tried in order when parsing created_at.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// requiredColumns must appear in every CSV header.
var requiredColumns = []string{"name", "status"}

// Parser converts deal files to deals.
type Parser struct {
	newID func() string
}

// NewParser creates a new deal file parser.
func NewParser() *Parser {
	return &Parser{newID: uuid.NewString}
}

// record is the shape of a single deal in a YAML file and the
// intermediate form of a CSV row.
type record struct {
	Value     *float64 `yaml:"value"`
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Company   string   `yaml:"company"`
	Status    string   `yaml:"status"`
	CreatedAt string   `yaml:"created_at"`
	StageID   int      `yaml:"stage_id"`
}

type yamlFile struct {
	Deals []record `yaml:"deals"`
}

// ParseFile parses a deal file, choosing the format from its extension.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]model.Deal, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var deals []model.Deal
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		deals, err = p.ParseYAML(ctx, f)
	case ".csv":
		deals, err = p.ParseCSV(ctx, f)
	default:
		return nil, fmt.Errorf("%s: %w: %q", path, common.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Info("Parsed deal file", "path", path, "deals", len(deals))
	return deals, nil
}

// ParseYAML parses a document with a top-level "deals" list.
func (p *Parser) ParseYAML(ctx context.Context, reader io.Reader) ([]model.Deal, error) {
	var doc yamlFile
	if err := yaml.NewDecoder(reader).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, common.ErrNoDeals
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	deals := make([]model.Deal, 0, len(doc.Deals))
	for i, rec := range doc.Deals {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		deal, err := p.convert(rec)
		if err != nil {
			return nil, fmt.Errorf("deal %d: %w", i+1, err)
		}
		deals = append(deals, deal)
	}

	if len(deals) == 0 {
		return nil, common.ErrNoDeals
	}
	return deals, nil
}

// ParseCSV parses a CSV file with a header row. Column order is free and
// unknown columns are ignored.
func (p *Parser) ParseCSV(ctx context.Context, reader io.Reader) ([]model.Deal, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, common.ErrNoDeals
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Spreadsheet "CSV UTF-8" exports start with a byte-order mark.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var deals []model.Deal
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := r.FieldPos(0)

		rec := record{
			ID:        field(row, "id"),
			Name:      field(row, "name"),
			Company:   field(row, "company"),
			Status:    field(row, "status"),
			CreatedAt: field(row, "created_at"),
		}

		if raw := field(row, "value"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid value %q: %w", line, raw, err)
			}
			rec.Value = &v
		}
		if raw := field(row, "stage_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid stage_id %q: %w", line, raw, err)
			}
			rec.StageID = id
		}

		deal, err := p.convert(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		deals = append(deals, deal)
	}

	if len(deals) == 0 {
		return nil, common.ErrNoDeals
	}
	return deals, nil
}

func (p *Parser) convert(rec record) (model.Deal, error) {
	status := strings.ToLower(strings.TrimSpace(rec.Status))
	if status == "" {
		return model.Deal{}, errors.New("missing status")
	}
	if rec.StageID < 0 {
		return model.Deal{}, fmt.Errorf("negative stage_id %d", rec.StageID)
	}

	deal := model.Deal{
		ID:      strings.TrimSpace(rec.ID),
		Name:    strings.TrimSpace(rec.Name),
		Company: strings.TrimSpace(rec.Company),
		Status:  model.DealStatus(status),
		StageID: rec.StageID,
		Value:   math.NaN(),
	}
	if deal.ID == "" {
		deal.ID = p.newID()
	}

	if rec.Value != nil {
		if math.IsInf(*rec.Value, 0) || math.IsNaN(*rec.Value) {
			return model.Deal{}, fmt.Errorf("invalid value %v", *rec.Value)
		}
		deal.Value = *rec.Value
	}

	if raw := strings.TrimSpace(rec.CreatedAt); raw != "" {
		created, err := parseDate(raw)
		if err != nil {
			return model.Deal{}, err
		}
		deal.CreatedAt = created
	}

	return deal, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid created_at %q: want RFC3339 or YYYY-MM-DD", raw)
}
