// Package metrics records report build metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so recording never needs a nil check:
//
//	r, err := report.New(env, md, desc, report.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// Report builds are short-lived processes, so the Prometheus implementation is
// meant to be flushed once with WriteTextfile for the node exporter textfile
// collector rather than scraped.
package metrics
