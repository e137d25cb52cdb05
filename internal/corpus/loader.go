package corpus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is one rule book: a parsed JSON file from the corpus directory,
// identified by its base filename. Immutable once loaded.
type Document struct {
	Filename string
	Root     Value
}

// LoadDir reads every *.json file in dir. A file that fails to read or
// parse is logged and skipped; one bad rule book must not abort corpus
// ingestion. Documents are returned in filename order.
func LoadDir(dir string, logger *slog.Logger) ([]Document, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			logger.Error("skipping unreadable rule file", "file", name, "error", err)
			continue
		}
		root, err := DecodeValue(f)
		_ = f.Close()
		if err != nil {
			logger.Error("skipping malformed rule file", "file", name, "error", err)
			continue
		}
		docs = append(docs, Document{Filename: name, Root: root})
	}
	return docs, nil
}
