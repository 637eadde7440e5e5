package exportname

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrTableNotFound is returned when a sessions archive lacks its embedded table.
var ErrTableNotFound = errors.New("exportname: embedded table not found")

// tableExtensions are tried in order; exporter versions have used both.
var tableExtensions = []string{".tsv", ".csv"}

// TablePaths lists the archive member paths that may hold the table.
func TablePaths(datasetID, stem string) []string {
	paths := make([]string, 0, len(tableExtensions))
	for _, ext := range tableExtensions {
		paths = append(paths, datasetID+"/"+stem+ext)
	}
	return paths
}

// CountRows opens the archive at zipPath and counts the data rows of the
// embedded table, excluding the header. The delimiter is taken from the
// header line: tab when it contains one, comma otherwise.
func CountRows(zipPath, datasetID, stem string) (int, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	for _, member := range TablePaths(datasetID, stem) {
		f, err := reader.Open(member)
		if err != nil {
			continue
		}
		defer f.Close()
		count, err := countDelimited(f)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", member, err)
		}
		return count, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrTableNotFound, TablePaths(datasetID, stem))
}

func countDelimited(r io.Reader) (int, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return 0, err
	}
	if len(bytes.TrimSpace(head)) == 0 {
		return 0, errors.New("table is empty")
	}

	reader := csv.NewReader(br)
	reader.Comma = delimiterFor(head)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	rows := 0
	for {
		_, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
		rows++
	}
	// The first record is the header.
	return max(rows-1, 0), nil
}

func delimiterFor(head []byte) rune {
	line, _, _ := bytes.Cut(head, []byte("\n"))
	if bytes.IndexByte(line, '\t') >= 0 {
		return '\t'
	}
	return ','
}
