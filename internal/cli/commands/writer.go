package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"context-variants/internal/cli/config"
	"context-variants/internal/session"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// OutputFile is one file written to the output directory.
type OutputFile struct {
	Filename string
	Content  []byte
}

// outputFiles renders one file per table, named after the entity.
func outputFiles(format string, tables []*session.Table) ([]OutputFile, error) {
	ext := map[string]string{
		config.OutputYAML:  ".yaml",
		config.OutputJSON:  ".json",
		config.OutputTable: ".txt",
	}[format]

	files := make([]OutputFile, 0, len(tables))

	for _, t := range tables {
		var buf bytes.Buffer
		if err := render(&buf, format, []*session.Table{t}); err != nil {
			return nil, err
		}

		files = append(files, OutputFile{
			Filename: t.Entity + ".variants" + ext,
			Content:  buf.Bytes(),
		})
	}

	return files, nil
}

// WriteFiles writes all files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []OutputFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
