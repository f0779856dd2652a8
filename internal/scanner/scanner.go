package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MarkdownFiles returns the Markdown files to import from path. A file path
// is returned as is; a directory is walked recursively and its .md files are
// returned in lexical path order so imports are repeatable.
func MarkdownFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	if err := walkDir(path, &files); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// walkDir recursively collects note files below dir
func walkDir(dir string, files *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		absPath := filepath.Join(dir, name)

		if entry.IsDir() {
			if shouldSkipDir(name) {
				continue
			}
			if err := walkDir(absPath, files); err != nil {
				return err
			}
			continue
		}

		if isNoteFile(name) {
			*files = append(*files, absPath)
		}
	}

	return nil
}

// isNoteFile returns true if the file is a markdown file
func isNoteFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.HasSuffix(strings.ToLower(name), ".md")
}

// shouldSkipDir returns true for directories that should be skipped during scanning
func shouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "vendor", "__pycache__", "target", "build", "dist":
		return true
	}
	return false
}
