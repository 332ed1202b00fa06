package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/qrnoize/pkg/errors"
	qio "github.com/matzehuels/qrnoize/pkg/io"
)

// Target is a resolved input path.
type Target struct {
	Path    string
	Dir     bool
	Files   []string // accepted images, in directory order
	Skipped []string // entries with unsupported extensions
}

// ResolveTarget classifies path as a single file or a directory and lists
// the images it contributes. Directories are not traversed recursively;
// subdirectories are ignored.
func ResolveTarget(path string) (*Target, error) {
	info, err := os.Stat(path)
	if err != nil || (!info.Mode().IsRegular() && !info.IsDir()) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is neither a file nor a directory", path)
	}

	t := &Target{Path: path, Dir: info.IsDir()}
	if !t.Dir {
		t.add(path)
		return t, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list %s", path)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		t.add(filepath.Join(path, e.Name()))
	}
	return t, nil
}

func (t *Target) add(path string) {
	if qio.Accepted(path) {
		t.Files = append(t.Files, path)
	} else {
		t.Skipped = append(t.Skipped, path)
	}
}

// OutputPath returns <outDir>/<stem>_<stack><ext> for the input image.
func OutputPath(outDir, input, stack string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(outDir, stem+"_"+stack+ext)
}

func extOf(path string) string {
	if ext := filepath.Ext(path); ext != "" {
		return ext
	}
	return "(none)"
}
