package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg            *prom.Registry
	stageDuration  *prom.HistogramVec
	stageResults   *prom.CounterVec
	reportOutcomes *prom.CounterVec
	figures        prom.Gauge
	parts          prom.Gauge
	reportBytes    prom.Histogram
}

// NewPrometheusRecorder constructs the report metrics and registers them with reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "perfreport",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual report build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "perfreport",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		reportOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "perfreport",
			Name:      "reports_total",
			Help:      "Report builds by final outcome",
		}, []string{"result"}),
		figures: prom.NewGauge(prom.GaugeOpts{
			Namespace: "perfreport",
			Name:      "figures",
			Help:      "Figures indexed by the last report build",
		}),
		parts: prom.NewGauge(prom.GaugeOpts{
			Namespace: "perfreport",
			Name:      "parts",
			Help:      "Parts, preamble included, of the last report build",
		}),
		reportBytes: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "perfreport",
			Name:      "report_bytes",
			Help:      "Size of written report documents",
			Buckets:   prom.ExponentialBuckets(1024, 4, 8),
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.reportOutcomes, pr.figures, pr.parts, pr.reportBytes)
	return pr
}

// Registry returns the registry the metrics live in.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// WriteTextfile writes all gathered metrics to path in the text exposition
// format, atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncReportOutcome(result ResultLabel) {
	if p == nil || p.reportOutcomes == nil {
		return
	}
	p.reportOutcomes.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetFigures(n int) {
	if p == nil || p.figures == nil {
		return
	}
	p.figures.Set(float64(n))
}

func (p *PrometheusRecorder) SetParts(n int) {
	if p == nil || p.parts == nil {
		return
	}
	p.parts.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveReportBytes(n int) {
	if p == nil || p.reportBytes == nil {
		return
	}
	p.reportBytes.Observe(float64(n))
}
