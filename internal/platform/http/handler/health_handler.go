// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// CheckFunc は依存サービスの疎通を確認します。nilなら正常です。
type CheckFunc func(ctx context.Context) error

// checkTimeout bounds each dependency check.
const checkTimeout = 2 * time.Second

// checkUnavailable is reported for a failed check.
const checkUnavailable = "unavailable"

// HealthHandler は /healthz を処理します。
// 依存サービスが落ちていてもモックデータで応答できるため、ステータスコードは常に200です。
type HealthHandler struct {
	checks map[string]CheckFunc
}

// NewHealthHandler は名前付きチェックを持つHealthHandlerを生成します。checksはnilでも構いません。
func NewHealthHandler(checks map[string]CheckFunc) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	if len(h.checks) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	results := make(map[string]string, len(names))
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		err := h.checks[name](ctx)
		cancel()
		if err != nil {
			// 接続先などの詳細はログにのみ出力する
			slog.Warn("health check failed", "check", name, "error", err)
			results[name] = checkUnavailable
			status = "degraded"
			continue
		}
		results[name] = "ok"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "checks": results})
}
