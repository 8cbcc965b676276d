// Package metrics 定义服务的 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "listerdale"

var (
	// ChatMessages 对话请求结果计数
	ChatMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chat",
		Name:      "messages_total",
		Help:      "Chat messages handled, by outcome.",
	}, []string{"outcome"})

	// ChatSessionsCreated 新建会话数
	ChatSessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chat",
		Name:      "sessions_created_total",
		Help:      "Chat sessions created.",
	})

	// HistoryMessages 发送给模型的历史条数
	HistoryMessages = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "chat",
		Name:      "history_messages",
		Help:      "Number of history messages sent with each completion.",
		Buckets:   prometheus.LinearBuckets(0, 4, 11),
	})

	// LLMRequestDuration 大模型请求耗时
	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "llm",
		Name:      "request_duration_seconds",
		Help:      "Completion request latency.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
	}, []string{"model", "status"})

	// LLMTokens 大模型 Token 用量
	LLMTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "llm",
		Name:      "tokens_total",
		Help:      "Tokens reported by the completion API.",
	}, []string{"model", "kind"})

	// DiagnosticResults 诊断结论计数
	DiagnosticResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "diagnostic",
		Name:      "results_total",
		Help:      "Diagnostic runs that reached a result.",
	}, []string{"result"})

	// KnowledgeModules 当前加载的知识模块数
	KnowledgeModules = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "knowledge",
		Name:      "modules",
		Help:      "Knowledge modules currently loaded.",
	})

	// KnowledgeReloads 知识库重载次数
	KnowledgeReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "knowledge",
		Name:      "reloads_total",
		Help:      "Knowledge file reloads, by outcome.",
	}, []string{"outcome"})

	// RateLimited 被限流的请求数
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-client rate limiter.",
	})

	// WebSocketConnections 当前 WebSocket 连接数
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ws",
		Name:      "connections",
		Help:      "Open chat websocket connections.",
	})
)
