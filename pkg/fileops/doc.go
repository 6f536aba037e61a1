// Package fileops provides read-side file helpers for loading catalog content
// from directories that are not fully trusted (local checkouts, git clones).
//
// # Validation Order
//
// Readers should combine the checks in this order:
//
// 1. **Path Security**: ValidatePathSecurity() - rejects traversal sequences
// 2. **Directory Containment**: ValidateFileInDirectory() - rejects files and symlinks resolving outside a base directory
// 3. **File Size**: ValidateFileSizeLimit() - bounds memory use per file
//
// ReadFile runs all three before reading:
//
//	data, err := fileops.ReadFile(filepath.Join(dir, "manifest.json"), dir, 1<<20)
//	if err != nil {
//	    return fmt.Errorf("reading manifest: %w", err)
//	}
//
// # Directory Listing
//
// ListDir returns the entries of a single directory in name order. Symlinked
// entries are kept only when they resolve inside the listed directory:
//
//	entries, err := fileops.ListDir(examplesDir, &fileops.ListOptions{
//	    FilesOnly:  true,
//	    Extensions: []string{".ts", ".tsx"},
//	})
//
// # Writable Locations
//
// ValidateStoragePath() and EnsureDirectoryExists() guard directories the
// application writes to, such as a git clone target.
package fileops
