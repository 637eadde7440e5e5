package indexer_test

import (
	"path/filepath"
	"testing"

	"reindexer/internal/indexer"
	"reindexer/internal/testsupport"
)

func TestClassify(t *testing.T) {
	tests := map[string]indexer.FileClass{
		"a.meta":          indexer.ClassMeta,
		"a.zip":           indexer.ClassArchive,
		"a.tsv.zip":       indexer.ClassArchive,
		"a.zip.meta":      indexer.ClassMeta,
		"file_list.json":  indexer.ClassIgnored,
		"README":          indexer.ClassIgnored,
		"archive.ZIP":     indexer.ClassIgnored,
		"meta":            indexer.ClassIgnored,
		".meta.swp":       indexer.ClassIgnored,
		"notes.meta.bak":  indexer.ClassIgnored,
		"GAMEA_x_raw.zip": indexer.ClassArchive,
	}
	for name, want := range tests {
		if got := indexer.Classify(name); got != want {
			t.Fatalf("Classify(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestWalkClassifiesAndSkipsBackups(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	root := cfg.Paths.DataDir

	testsupport.WriteFile(t, filepath.Join(root, "GAMEB", "b.meta"), "{}")
	testsupport.WriteFile(t, filepath.Join(root, "GAMEA", "a.meta"), "{}")
	testsupport.WriteFile(t, filepath.Join(root, "GAMEA", "a.zip"), "")
	testsupport.WriteFile(t, filepath.Join(root, "GAMEA", "notes.txt"), "")
	testsupport.WriteFile(t, filepath.Join(root, "GAMEA", "BACKUP_2023", "old.meta"), "{}")
	testsupport.WriteFile(t, filepath.Join(root, "OLD-BACKUP", "x", "old.zip"), "")
	testsupport.WriteFile(t, cfg.OutputPath(), "{}")
	testsupport.WriteFile(t, cfg.LockPath(), "")

	ix := indexer.New(cfg, nil)
	plan, err := ix.Walk(t.Context(), root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	wantMeta := []string{
		filepath.Join(root, "GAMEA", "a.meta"),
		filepath.Join(root, "GAMEB", "b.meta"),
	}
	if len(plan.MetaFiles) != len(wantMeta) {
		t.Fatalf("meta files = %v", plan.MetaFiles)
	}
	for i := range wantMeta {
		if plan.MetaFiles[i] != wantMeta[i] {
			t.Fatalf("meta[%d] = %q, want %q", i, plan.MetaFiles[i], wantMeta[i])
		}
	}
	if len(plan.Archives) != 1 || plan.Archives[0] != filepath.Join(root, "GAMEA", "a.zip") {
		t.Fatalf("archives = %v", plan.Archives)
	}
	if plan.Ignored != 1 {
		t.Fatalf("ignored = %d, want 1 (catalog output and lock are excluded)", plan.Ignored)
	}
	if plan.SkippedDirs != 2 {
		t.Fatalf("skipped dirs = %d, want 2", plan.SkippedDirs)
	}
	if stats := plan.Stats(); stats.FilesSeen != 4 {
		t.Fatalf("files seen = %d, want 4", stats.FilesSeen)
	}
}

func TestWalkSkipsRootContainingBackup(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	root := filepath.Join(cfg.Paths.DataDir, "BACKUP")
	testsupport.WriteFile(t, filepath.Join(root, "a.meta"), "{}")

	plan, err := indexer.New(cfg, nil).Walk(t.Context(), root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(plan.MetaFiles) != 0 || plan.SkippedDirs != 1 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if _, err := indexer.New(cfg, nil).Walk(t.Context(), filepath.Join(cfg.Paths.DataDir, "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}
