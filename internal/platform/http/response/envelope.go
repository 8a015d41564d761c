// Package response はすべてのAPIが返す共通のJSONエンベロープを提供します。
package response

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TimeFormat は updatedAt の書式です（ミリ秒付きのUTC ISO-8601）。
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Envelope は {success, data, updatedAt} 形式のレスポンスです。
// キーはこの3つに固定されており、追加のメタ情報はヘッダーで返します。
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	UpdatedAt string `json:"updatedAt"`
}

// OK は success:true のエンベロープを HTTP 200 で書き込みます。
func OK(c *gin.Context, data any, now time.Time) {
	c.JSON(http.StatusOK, Envelope{
		Success:   true,
		Data:      data,
		UpdatedAt: now.UTC().Format(TimeFormat),
	})
}

// Fail は data を空にした success:false のエンベロープを HTTP 500 で書き込みます。
// エラーの詳細はログにのみ出力し、クライアントには返しません。
func Fail(c *gin.Context, err error, now time.Time) {
	slog.Error("request failed", "path", c.FullPath(), "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
		Success:   false,
		Data:      nil,
		UpdatedAt: now.UTC().Format(TimeFormat),
	})
}

// Recovery はハンドラー内のpanicを回復し、Failと同じエンベロープを返すミドルウェアです。
func Recovery(now func() time.Time) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		slog.Error("panic recovered", "path", c.FullPath(), "panic", rec)
		c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
			Success:   false,
			Data:      nil,
			UpdatedAt: now().UTC().Format(TimeFormat),
		})
	})
}
