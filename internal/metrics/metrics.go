// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 認証結果のラベル値
const (
	ResultCreated  = "created"
	ResultUpdated  = "updated"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// Recorder はメトリクス記録のインターフェース。
// 認証サービスやHTTPミドルウェアから利用する。
type Recorder interface {
	RecordAuthentication(result string)
	RecordFacebookLookup(duration time.Duration)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	authentications *prometheus.CounterVec
	lookupLatency   prometheus.Histogram
	httpStatus      *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		authentications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fblogin_authentication_total",
			Help: "Facebook認証の結果別の合計数",
		}, []string{"result"}),
		lookupLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fblogin_facebook_lookup_seconds",
			Help:    "Facebookユーザー情報取得のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fblogin_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.authentications,
		c.lookupLatency,
		c.httpStatus,
	)

	return c
}

// RecordAuthentication は認証結果を記録する。
func (c *Collector) RecordAuthentication(result string) {
	c.authentications.WithLabelValues(result).Inc()
}

// RecordFacebookLookup はFacebookユーザー情報取得のレイテンシを記録する。
func (c *Collector) RecordFacebookLookup(duration time.Duration) {
	c.lookupLatency.Observe(duration.Seconds())
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Nop は何も記録しないRecorder。
type Nop struct{}

func (Nop) RecordAuthentication(string)        {}
func (Nop) RecordFacebookLookup(time.Duration) {}
func (Nop) RecordHTTPStatus(int)               {}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = Nop{}
)
