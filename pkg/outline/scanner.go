package outline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specvital/gospec/internal/ctxlog"
)

const (
	// DefaultWorkers indicates that the scanner should use GOMAXPROCS as
	// the worker count.
	DefaultWorkers = 0
	// DefaultTimeout is the default scan timeout duration.
	DefaultTimeout = 2 * time.Minute
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
	// DefaultMaxFileSize is the default maximum file size for scanning (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// DefaultSkipPatterns contains directory names that are skipped by default
// during scanning.
var DefaultSkipPatterns = []string{
	".git",
	"vendor",
	"node_modules",
	"testdata",
	".cache",
}

var (
	// ErrScanCancelled is returned when scanning is cancelled via context.
	ErrScanCancelled = errors.New("outline: scan cancelled")
	// ErrScanTimeout is returned when scanning exceeds the timeout duration.
	ErrScanTimeout = errors.New("outline: scan timeout")
)

// Scanner discovers and outlines spec files.
type Scanner struct {
	options Options
}

// ScanResult contains the outcome of a scan operation.
type ScanResult struct {
	// Inventory contains all outlined spec files.
	Inventory *Inventory

	// Errors contains non-fatal errors encountered during scanning.
	Errors []ScanError

	// Stats provides scan statistics.
	Stats ScanStats
}

// ScanError represents an error that occurred during a specific phase of
// scanning.
type ScanError struct {
	// Err is the underlying error.
	Err error

	// Path is the file path where the error occurred (may be empty for
	// non-file errors).
	Path string

	// Phase indicates which phase the error occurred in.
	// Values: "discovery", "parsing"
	Phase string
}

// Error implements the error interface.
func (e ScanError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

// ScanStats provides statistics about the scan operation.
type ScanStats struct {
	// FilesScanned is the total number of spec file candidates discovered.
	FilesScanned int

	// FilesMatched is the number of files with at least one declaration.
	FilesMatched int

	// FilesFailed is the number of files that failed to parse.
	FilesFailed int

	// Duration is the total scan duration.
	Duration time.Duration
}

// NewScanner creates a new scanner with the given options.
func NewScanner(opts ...Option) *Scanner {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	applyDefaults(&options)

	return &Scanner{options: options}
}

// Scan discovers spec files under root and outlines them in parallel.
func (s *Scanner) Scan(ctx context.Context, root string) (*ScanResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.options.Timeout)
	defer cancel()

	rootPath, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}

	result := &ScanResult{
		Inventory: &Inventory{
			RootPath: rootPath,
			Files:    []FileOutline{},
		},
		Errors: []ScanError{},
	}

	specFiles, errs := s.discoverSpecFiles(ctx, rootPath)
	for _, err := range errs {
		result.Errors = append(result.Errors, ScanError{
			Err:   err,
			Phase: "discovery",
		})
	}
	result.Stats.FilesScanned = len(specFiles)

	ctxlog.FromContext(ctx).Debug("spec discovery complete",
		"root", rootPath, "candidates", len(specFiles))

	if len(specFiles) == 0 {
		result.Stats.Duration = time.Since(startTime)
		return result, nil
	}

	files, scanErrors := s.parseFilesParallel(ctx, rootPath, specFiles)
	result.Inventory.Files = files
	result.Errors = append(result.Errors, scanErrors...)

	result.Stats.FilesMatched = len(files)
	result.Stats.FilesFailed = len(scanErrors)
	result.Stats.Duration = time.Since(startTime)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, ErrScanTimeout
		}
		if errors.Is(err, context.Canceled) {
			return result, ErrScanCancelled
		}
	}

	return result, nil
}

// discoverSpecFiles walks the root to find spec file candidates.
// Returns relative paths from the root.
func (s *Scanner) discoverSpecFiles(ctx context.Context, rootPath string) ([]string, []error) {
	skipSet := buildSkipSet(append(DefaultSkipPatterns, s.options.ExcludePatterns...))

	var (
		files []string
		errs  []error
	)

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if walkErr != nil {
			errs = append(errs, fmt.Errorf("access error at %s: %w", path, walkErr))
			return nil
		}

		if d.IsDir() {
			if shouldSkipDir(path, rootPath, skipSet) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isSpecFileCandidate(path) {
			return nil
		}

		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("compute relative path for %s: %w", path, err))
			return nil
		}

		if len(s.options.Patterns) > 0 && !matchesAnyPattern(relPath, s.options.Patterns) {
			return nil
		}

		if s.options.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to get file info for %s: %w", path, err))
				return nil
			}
			if info.Size() > s.options.MaxFileSize {
				return nil
			}
		}

		files = append(files, relPath)
		return nil
	})

	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			errs = append(errs, err)
		}
	}

	return files, errs
}

func (s *Scanner) parseFilesParallel(ctx context.Context, rootPath string, files []string) ([]FileOutline, []ScanError) {
	workers := s.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	var (
		mu         sync.Mutex
		outlines   = make([]FileOutline, 0, len(files))
		scanErrors = make([]ScanError, 0)
	)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			outline, scanErr := s.parseFile(gCtx, rootPath, file)

			mu.Lock()
			defer mu.Unlock()

			if scanErr != nil {
				scanErrors = append(scanErrors, *scanErr)
				return nil
			}

			if outline != nil {
				outlines = append(outlines, *outline)
			}

			return nil
		})
	}

	_ = g.Wait()

	// Parallel goroutines complete in variable order; sort by path for
	// deterministic output.
	sort.Slice(outlines, func(i, j int) bool {
		return outlines[i].Path < outlines[j].Path
	})

	return outlines, scanErrors
}

// parseFile outlines one file. Files without any DSL declaration yield nil
// without error; they are spec file candidates that turned out not to be
// suites.
func (s *Scanner) parseFile(ctx context.Context, rootPath, relPath string) (*FileOutline, *ScanError) {
	if err := ctx.Err(); err != nil {
		return nil, &ScanError{Err: err, Path: relPath, Phase: "parsing"}
	}

	content, err := os.ReadFile(filepath.Join(rootPath, relPath))
	if err != nil {
		return nil, &ScanError{Err: err, Path: relPath, Phase: "parsing"}
	}

	nodes, err := ParseSource(ctx, content, relPath)
	if err != nil {
		return nil, &ScanError{
			Err:   fmt.Errorf("parse: %w", err),
			Path:  relPath,
			Phase: "parsing",
		}
	}

	if len(nodes) == 0 {
		return nil, nil
	}

	return &FileOutline{Path: relPath, Nodes: nodes}, nil
}

// Scan discovers and outlines spec files with a one-off scanner.
func Scan(ctx context.Context, root string, opts ...Option) (*ScanResult, error) {
	return NewScanner(opts...).Scan(ctx, root)
}

func buildSkipSet(patterns []string) map[string]bool {
	skipSet := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		skipSet[p] = true
	}
	return skipSet
}

func shouldSkipDir(path, rootPath string, skipSet map[string]bool) bool {
	if path == rootPath {
		return false
	}
	return skipSet[filepath.Base(path)]
}

// isSpecFileCandidate matches the conventional spec file names:
// *_spec.go and files under a spec/ or specs/ directory.
func isSpecFileCandidate(path string) bool {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".go") {
		return false
	}
	if strings.HasSuffix(base, "_spec.go") {
		return true
	}

	normalizedPath := filepath.ToSlash(path)
	if strings.Contains(normalizedPath, "/spec/") || strings.Contains(normalizedPath, "/specs/") {
		return true
	}

	return false
}

func matchesAnyPattern(relPath string, patterns []string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
