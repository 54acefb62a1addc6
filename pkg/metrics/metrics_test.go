package metrics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "unit")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})

			Convey("And the collectors are registered under the namespace", func() {
				manager.studentsRanked.Set(4)
				var buf bytes.Buffer
				So(writeGathered(&buf, registry), ShouldBeNil)
				So(buf.String(), ShouldContainSubstring, "test_unit_students_ranked 4")
			})
		})

		Convey("When creating a manager with empty values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "tally")
				So(manager.subsystem, ShouldEqual, "scores")
				So(manager.histogramBuckets, ShouldResemble, defaultLatencyBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording run metrics", func() {
			So(func() {
				RecordRecordsLoaded("sample", 12)
				RecordRecordRejected("negative_score")
				RecordAggregationLatency(0.02)
				UpdateStudentsRanked(3)
				RecordRecordsAggregated(12)
				RecordRun("rank", "ok")
				RecordErrorByComponent("source", "decode")
			}, ShouldNotPanic)

			Convey("Then the text dump contains them", func() {
				var buf bytes.Buffer
				So(WriteText(&buf), ShouldBeNil)
				out := buf.String()
				So(out, ShouldContainSubstring, `tally_scores_records_loaded_total{source="sample"}`)
				So(out, ShouldContainSubstring, `tally_scores_records_rejected_total{reason="negative_score"}`)
				So(out, ShouldContainSubstring, "tally_scores_students_ranked 3")
				So(out, ShouldContainSubstring, `tally_scores_runs_total{command="rank",status="ok"}`)
				So(out, ShouldContainSubstring, "tally_scores_aggregation_latency_milliseconds_bucket")
			})
		})

		Convey("When recording with empty labels", func() {
			So(func() {
				RecordRecordsLoaded("", 0)
				RecordRecordRejected("")
				RecordRun("", "")
				RecordErrorByComponent("", "")
			}, ShouldNotPanic)
		})
	})
}

// brokenCollector emits an invalid metric so Gather fails.
type brokenCollector struct {
	desc *prometheus.Desc
}

func (c brokenCollector) Describe(ch chan<- *prometheus.Desc) { ch <- c.desc }

func (c brokenCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.NewInvalidMetric(c.desc, errors.New("boom"))
}

func TestWriteTextErrors(t *testing.T) {
	Convey("Given a registry whose collector fails", t, func() {
		registry := prometheus.NewRegistry()
		registry.MustRegister(brokenCollector{
			desc: prometheus.NewDesc("tally_broken", "always fails", nil, nil),
		})

		err := writeGathered(&bytes.Buffer{}, registry)

		Convey("Then the export error kind is returned", func() {
			So(errors.Is(err, ErrExport), ShouldBeTrue)
		})
	})
}
