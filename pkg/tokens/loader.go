package tokens

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"strings"
)

// ParseJSON parses JSON data into a Dictionary
func ParseJSON(r io.Reader) (*Dictionary, error) {
	dec := json.NewDecoder(r)
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	return &Dictionary{
		Root:        root,
		SourceFiles: make(map[string]string),
	}, nil
}

// LoadFile opens path, parses it as a token dictionary, and annotates every
// token path it contains with path as its SourceFile. This is the one
// loading primitive duckwind's CLI needs: the directory-tree scanning a
// themes/base split would require is already pkg/compiler/scan.go's job
// for utility sources, so --tokens instead takes one or more explicit file
// paths (see LoadFiles) rather than re-implementing a second tree walker.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	dict, err := ParseJSON(f)
	if err != nil {
		return nil, err
	}
	annotateSourceFile(dict, "", path)
	return dict, nil
}

// LoadFiles loads and deep-merges multiple token dictionary files in order,
// last file wins on any conflicting path, matching every other
// configuration surface's last-writer-wins rule. warnConflicts, when true,
// logs a warning (standard logger, stderr by default) for each token a
// later file overwrites.
func LoadFiles(paths []string, warnConflicts bool) (*Dictionary, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no token files given")
	}
	master, err := LoadFile(paths[0])
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", paths[0], err)
	}
	for _, path := range paths[1:] {
		dict, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		if err := master.MergeWithPath(dict, warnConflicts); err != nil {
			return nil, fmt.Errorf("merging %s: %w", path, err)
		}
	}
	return master, nil
}

// annotateSourceFile recursively marks every token path in dict with
// sourceFile, so later validation/metadata errors can report where a
// token came from.
func annotateSourceFile(dict *Dictionary, currentPath, sourceFile string) {
	annotateSourceFileRecursive(dict, dict.Root, currentPath, sourceFile)
}

func annotateSourceFileRecursive(dict *Dictionary, node map[string]any, currentPath, sourceFile string) {
	if IsToken(node) {
		if currentPath != "" {
			dict.SourceFiles[currentPath] = sourceFile
		}
		return
	}

	for key, val := range node {
		if strings.HasPrefix(key, "$") {
			continue
		}

		childMap, ok := val.(map[string]any)
		if !ok {
			continue
		}

		childPath := key
		if currentPath != "" {
			childPath = currentPath + "." + key
		}

		annotateSourceFileRecursive(dict, childMap, childPath, sourceFile)
	}
}

// Merge merges another dictionary into this one (deep merge)
func (d *Dictionary) Merge(other *Dictionary) error {
	if err := deepMerge(d.Root, other.Root, ""); err != nil {
		return err
	}
	// Merge source file mappings
	maps.Copy(d.SourceFiles, other.SourceFiles)
	return nil
}

// MergeWithPath is like Merge but allows controlling conflict warnings
func (d *Dictionary) MergeWithPath(other *Dictionary, warnConflicts bool) error {
	if err := deepMergeWithWarnings(d.Root, other.Root, "", warnConflicts); err != nil {
		return err
	}
	// Merge source file mappings, preferring the new source file for conflicts
	maps.Copy(d.SourceFiles, other.SourceFiles)
	return nil
}

func deepMerge(dst, src map[string]any, currentPath string) error {
	return deepMergeWithWarnings(dst, src, currentPath, false)
}

func deepMergeWithWarnings(dst, src map[string]any, currentPath string, warnConflicts bool) error {
	for key, srcVal := range src {
		// Build path for error messages
		path := key
		if currentPath != "" {
			path = currentPath + "." + key
		}

		// Skip warning for metadata keys ($ prefix) - these are expected to be redefined across files
		isMetadataKey := strings.HasPrefix(key, "$")

		if dstVal, ok := dst[key]; ok {
			// Collision handling
			dstMap, dstOk := dstVal.(map[string]any)
			srcMap, srcOk := srcVal.(map[string]any)

			if dstOk && srcOk {
				// Both are maps, check if either is a token before recursing
				isDstToken := IsToken(dstMap)
				isSrcToken := IsToken(srcMap)

				if isDstToken || isSrcToken {
					// One or both are tokens - this is an overwrite
					if warnConflicts && !isMetadataKey {
						log.Printf("Warning: Token '%s' redefined (overwriting)", path)
					}
					dst[key] = srcVal
				} else {
					// Both are groups, recursive merge
					if err := deepMergeWithWarnings(dstMap, srcMap, path, warnConflicts); err != nil {
						return err
					}
				}
			} else {
				// Type mismatch or value overwrite
				if warnConflicts && !isMetadataKey {
					log.Printf("Warning: Token '%s' redefined (overwriting %T with %T)", path, dstVal, srcVal)
				}
				dst[key] = srcVal
			}
		} else {
			// No collision, just add
			dst[key] = srcVal
		}
	}
	return nil
}
