// Package logger はAPIサーバーのJSON構造化ログ設定を提供する。
// 全ログはslog経由で1行1JSONとして出力され、リクエストログの
// request_id属性でGoogle API呼び出しログと突き合わせられる。
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup はJSON構造化ログ出力のslog.Loggerを生成して返す。
// ログレベルはInfo固定。Google APIへのリクエスト内容など
// Debugレベルの詳細は本番では出力しない。
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault はJSON構造化ログ出力をグローバルロガーとして設定する。
// app.Initから起動時に1回呼ばれる。writerがnilの場合はos.Stdoutに出力する
// （コンテナ実行時はstdout収集を想定）。
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	logger := Setup(w)
	slog.SetDefault(logger)
}
