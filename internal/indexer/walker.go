package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"reindexer/internal/logging"
)

// backupMarker excludes any directory whose path contains it.
const backupMarker = "BACKUP"

// FileClass is the walker's decision for one file.
type FileClass int

const (
	ClassIgnored FileClass = iota
	ClassMeta
	ClassArchive
)

func (c FileClass) String() string {
	switch c {
	case ClassMeta:
		return "meta"
	case ClassArchive:
		return "archive"
	default:
		return "ignored"
	}
}

// Classify inspects the text after the final '.' of a file name.
func Classify(name string) FileClass {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ClassIgnored
	}
	switch name[idx+1:] {
	case "meta":
		return ClassMeta
	case "zip":
		return ClassArchive
	default:
		return ClassIgnored
	}
}

// Plan lists the inputs found by Walk in discovery order.
type Plan struct {
	MetaFiles   []string
	Archives    []string
	Ignored     int
	SkippedDirs int
}

// Stats reports the walk counters.
func (p Plan) Stats() Stats {
	return Stats{
		FilesSeen:    len(p.MetaFiles) + len(p.Archives) + p.Ignored,
		MetaFiles:    len(p.MetaFiles),
		ArchiveFiles: len(p.Archives),
		IgnoredFiles: p.Ignored,
		SkippedDirs:  p.SkippedDirs,
	}
}

// Walk traverses root in lexical order and classifies every file. Unreadable
// subdirectories are logged and skipped; an unreadable root is an error.
func (ix *Indexer) Walk(ctx context.Context, root string) (Plan, error) {
	logger := logging.WithContext(ctx, ix.logger)
	var plan Plan

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logging.WarnWithContext(logger, "skipping unreadable path", "walk_error",
				logging.String(logging.FieldPath, path),
				logging.Error(walkErr),
				logging.String(logging.FieldErrorHint, "check directory permissions"),
			)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if strings.Contains(path, backupMarker) {
				logger.Debug("skipping backup directory", logging.String(logging.FieldPath, path))
				plan.SkippedDirs++
				return filepath.SkipDir
			}
			return nil
		}

		if ix.isExcluded(path) {
			logger.Debug("skipping catalog output", logging.String(logging.FieldPath, path))
			return nil
		}

		switch Classify(d.Name()) {
		case ClassMeta:
			logger.Info("indexing metadata file", logging.String(logging.FieldPath, path))
			plan.MetaFiles = append(plan.MetaFiles, path)
		case ClassArchive:
			logger.Debug("reserving archive", logging.String(logging.FieldPath, path))
			plan.Archives = append(plan.Archives, path)
		default:
			logger.Debug("doing nothing with file", logging.String(logging.FieldPath, path))
			plan.Ignored++
		}
		return nil
	})
	if err != nil {
		return Plan{}, fmt.Errorf("walk %s: %w", root, err)
	}
	return plan, nil
}

func (ix *Indexer) isExcluded(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	_, ok := ix.excluded[abs]
	return ok
}
