package metrics

import (
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Textfile couples a registry with the node_exporter textfile it is written
// to once a run ends.
type Textfile struct {
	Path     string
	Registry *prom.Registry
	Recorder *PrometheusRecorder
}

// NewTextfile registers a fresh recorder for export to path.
func NewTextfile(path string) *Textfile {
	reg := prom.NewRegistry()
	return &Textfile{Path: path, Registry: reg, Recorder: NewPrometheusRecorder(reg)}
}

// Flush writes the gathered metrics. The write goes through a temp file and a
// rename, so collectors never read a partial file.
func (t *Textfile) Flush() error {
	if err := prom.WriteToTextfile(t.Path, t.Registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", t.Path, err)
	}
	return nil
}
