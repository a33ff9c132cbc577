package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"sql-lint/internal/model"
)

// FileWalker traverses directories and feeds matching file paths to a
// channel.
type FileWalker struct {
	extensions map[string]struct{}
	excludes   []string
}

func NewFileWalker(exts []string, excludes []string) *FileWalker {
	e := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		e[strings.ToLower(ext)] = struct{}{}
	}
	return &FileWalker{extensions: e, excludes: excludes}
}

func (fw *FileWalker) excluded(path, name string) bool {
	for _, pattern := range fw.excludes {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// Walk starts the traversal in a goroutine and closes both channels when
// done.
func (fw *FileWalker) Walk(ctx context.Context, root string) (<-chan string, <-chan error) {
	paths := make(chan string, 100)
	errs := make(chan error, 1)

	go func() {
		defer close(paths)
		defer close(errs)

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if d.IsDir() {
				if fw.excluded(path, d.Name()) {
					return filepath.SkipDir
				}
				if strings.HasPrefix(d.Name(), ".") && d.Name() != "." {
					return filepath.SkipDir
				}
				return nil
			}

			if fw.excluded(path, d.Name()) {
				return nil
			}
			ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
			if _, ok := fw.extensions[ext]; !ok {
				return nil
			}

			select {
			case paths <- path:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})
		if err != nil {
			errs <- err
		}
	}()

	return paths, errs
}

// FileResult is one file's lint outcome collected from a worker.
type FileResult struct {
	File   string
	Issues []model.Issue
	Error  error
}

// Processor lints a single file. Each invocation is an isolated lint pass:
// whatever per-file state the rules keep must live inside the call.
type Processor func(path string) ([]model.Issue, error)

// WorkerPool fans file paths out to concurrent lint passes. Per-file rule
// memory stays correct under concurrency because every file is processed
// by exactly one worker invocation.
type WorkerPool struct {
	Concurrency int
	Process     Processor
}

func NewWorkerPool(concurrency int, proc Processor) *WorkerPool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &WorkerPool{Concurrency: concurrency, Process: proc}
}

func (wp *WorkerPool) Start(ctx context.Context, paths <-chan string) <-chan FileResult {
	results := make(chan FileResult)
	var wg sync.WaitGroup

	for i := 0; i < wp.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				select {
				case <-ctx.Done():
					return
				default:
				}
				issues, err := wp.Process(path)
				select {
				case results <- FileResult{File: path, Issues: issues, Error: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
