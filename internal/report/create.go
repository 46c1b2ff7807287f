package report

import (
	"time"

	"git.home.luguber.info/inful/perfreport/internal/logfields"
	"git.home.luguber.info/inful/perfreport/internal/metrics"
	"git.home.luguber.info/inful/perfreport/internal/templates"
)

// Render produces the complete report document.
func (r *Report) Render() (string, error) {
	vars := make(map[string]any, 3)
	stages := []struct {
		name  string
		key   string
		build func() (string, error)
	}{
		{metrics.StageMenu, "menu", r.Menu},
		{metrics.StageHeader, "header", r.Header},
		{metrics.StageContent, "content", r.Content},
	}
	for _, s := range stages {
		err := metrics.Track(r.recorder, s.name, func() error {
			out, err := s.build()
			vars[s.key] = out
			return err
		})
		if err != nil {
			return "", err
		}
	}

	var doc string
	err := metrics.Track(r.recorder, metrics.StageLayout, func() error {
		var err error
		doc, err = templates.Render(r.env, templates.LayoutTemplate, vars)
		return err
	})
	return doc, err
}

// Create renders the report and writes it to <result dir>/<output>.html,
// replacing any existing file. It returns the path written. Create may be
// called repeatedly; it does not change the report.
func (r *Report) Create(output string) (string, error) {
	start := time.Now()
	path, err := r.create(output)
	if err != nil {
		return "", r.fail(err)
	}
	r.recorder.IncReportOutcome(metrics.ResultSuccess)
	r.logger.Info("Report written",
		logfields.Output(output),
		logfields.Path(path),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return path, nil
}

func (r *Report) create(output string) (string, error) {
	if err := ValidateOutputName(output); err != nil {
		return "", err
	}
	doc, err := r.Render()
	if err != nil {
		return "", err
	}

	var path string
	err = metrics.Track(r.recorder, metrics.StageWrite, func() error {
		var err error
		path, err = WriteDocument(r.resultDir, output, doc)
		return err
	})
	if err != nil {
		return "", err
	}
	r.recorder.ObserveReportBytes(len(doc))
	return path, nil
}
