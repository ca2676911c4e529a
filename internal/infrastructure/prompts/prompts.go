// Package prompts supplies the static pre/post template fragments for
// each generation phase. Defaults are embedded in the binary; a fragment
// directory can override individual files.
package prompts

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ersonp/fable-core/internal/domain/services"
)

//go:embed templates/*.txt
var defaults embed.FS

// Loader implements the FragmentSource interface.
type Loader struct {
	// dir, when set, is checked before the embedded defaults.
	dir string
}

// NewLoader creates a fragment loader. dir may be empty to use only the
// embedded defaults.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Fragment returns the pre or post text for a phase.
func (l *Loader) Fragment(phase services.Phase, kind string) (string, error) {
	name := fmt.Sprintf("%s_%s.txt", phase, kind)

	if l.dir != "" {
		data, err := os.ReadFile(filepath.Join(l.dir, name))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("reading fragment %s: %w", name, err)
		}
	}

	data, err := defaults.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("unknown fragment %s: %w", name, err)
	}
	return string(data), nil
}
