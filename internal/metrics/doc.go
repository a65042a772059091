// Package metrics records per-step and per-run pipeline metrics.
//
// The pipeline records nothing unless a Recorder is attached; a nil Recorder
// falls back to NoopRecorder. When metrics.textfile is configured the CLI
// attaches a PrometheusRecorder backed by its own registry and writes it out
// once the run ends, for collection by node_exporter's textfile collector:
//
//	tf := metrics.NewTextfile("/var/lib/node_exporter/rectpromote.prom")
//	p := pipeline.NewDefault(deps).WithRecorder(tf.Recorder)
//	_, runErr := p.Run(ctx)
//	_ = tf.Flush()
package metrics
