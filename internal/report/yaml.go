package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/charfang/charfang/pkg/authorship"
)

// yamlRow mirrors the CSV column contract with snake_case keys.
type yamlRow struct {
	Author               string `yaml:"author"`
	Email                string `yaml:"email"`
	Commits              int    `yaml:"commits"`
	AddedLines           int    `yaml:"added_lines"`
	DeletedLines         int    `yaml:"deleted_lines"`
	AddedPlusDeleted     int    `yaml:"added+deleted_lines"`
	NetLines             int    `yaml:"net_lines"`
	AddedChars           int    `yaml:"added_chars"`
	DeletedChars         int    `yaml:"deleted_chars"`
	ModifiedChars        int    `yaml:"modified_chars"`
	AddedOrModifiedChars int    `yaml:"added_or_modified_chars"`
	NetChars             int    `yaml:"net_chars"`
}

// yamlReport is the document root.
type yamlReport struct {
	Authors []yamlRow `yaml:"authors"`
}

// WriteYAML renders rows as a YAML document.
func WriteYAML(w io.Writer, rows []authorship.Row) error {
	doc := yamlReport{Authors: make([]yamlRow, 0, len(rows))}

	for _, row := range rows {
		doc.Authors = append(doc.Authors, yamlRow{
			Author:               row.Author,
			Email:                row.Email,
			Commits:              row.Commits,
			AddedLines:           row.AddedLines,
			DeletedLines:         row.DeletedLines,
			AddedPlusDeleted:     row.AddedPlusDeleted,
			NetLines:             row.NetLines,
			AddedChars:           row.AddedChars,
			DeletedChars:         row.DeletedChars,
			ModifiedChars:        row.ModifiedChars,
			AddedOrModifiedChars: row.AddedOrModifiedChars,
			NetChars:             row.NetChars,
		})
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	return nil
}
