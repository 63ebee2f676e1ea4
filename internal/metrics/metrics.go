// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// Googleクライアントやサービス層から利用する。
type MetricsCollector interface {
	RecordGoogleRequest(endpoint string, statusCode int)
	RecordGoogleLatency(endpoint string, duration time.Duration)
	RecordGoogleUnreachable(endpoint string)
	RecordTasksEnriched(count int)
	RecordTagOperation(operation string)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	googleRequests    *prometheus.CounterVec
	googleLatency     *prometheus.HistogramVec
	googleUnreachable *prometheus.CounterVec
	tasksEnriched     prometheus.Counter
	tagOperations     *prometheus.CounterVec
	httpStatus        *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		googleRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dominotasks_google_request_total",
			Help: "Google API呼び出しのエンドポイント・ステータスコード別の合計数",
		}, []string{"endpoint", "status_code"}),
		googleLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dominotasks_google_latency_seconds",
			Help:    "Google API呼び出しのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		googleUnreachable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dominotasks_google_unreachable_total",
			Help: "Google APIへのネットワークレベル接続失敗の合計数",
		}, []string{"endpoint"}),
		tasksEnriched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dominotasks_tasks_enriched_total",
			Help: "タグ付与されたタスクの合計数",
		}),
		tagOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dominotasks_tag_operations_total",
			Help: "タグ操作の種類別の合計数",
		}, []string{"operation"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dominotasks_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.googleRequests,
		c.googleLatency,
		c.googleUnreachable,
		c.tasksEnriched,
		c.tagOperations,
		c.httpStatus,
	)

	return c
}

// RecordGoogleRequest はGoogle API呼び出しの結果ステータスを記録する。
func (c *Collector) RecordGoogleRequest(endpoint string, statusCode int) {
	c.googleRequests.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
}

// RecordGoogleLatency はGoogle API呼び出しのレイテンシを記録する。
func (c *Collector) RecordGoogleLatency(endpoint string, duration time.Duration) {
	c.googleLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordGoogleUnreachable はGoogle APIへの接続失敗を記録する。
func (c *Collector) RecordGoogleUnreachable(endpoint string) {
	c.googleUnreachable.WithLabelValues(endpoint).Inc()
}

// RecordTasksEnriched はタグ付与されたタスク数を記録する。
func (c *Collector) RecordTasksEnriched(count int) {
	c.tasksEnriched.Add(float64(count))
}

// RecordTagOperation はタグ操作を記録する。operationには"create"または"list"を指定する。
func (c *Collector) RecordTagOperation(operation string) {
	c.tagOperations.WithLabelValues(operation).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
