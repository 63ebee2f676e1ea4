// Package security はアプリケーションのセキュリティ機能を提供する。
//
// NotesSanitizerService はGoogle Tasksから取得したタスクのnotesをサニタイズし、
// 第三者由来のテキストをクライアントへ中継する際のXSSリスクからユーザーを保護する。
// bluemondayのStrictPolicyを使用し、すべてのHTMLタグを除去してテキストのみを残す。
package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// NotesSanitizerService はタスクnotesのサニタイズ機能のインターフェースを定義する。
// タグ付与処理でAPI応答前に使用される。
type NotesSanitizerService interface {
	// Sanitize はnotesからすべてのHTMLタグを除去したテキストを返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(notes string) string
}

// notesSanitizer はNotesSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type notesSanitizer struct {
	policy *bluemonday.Policy
}

// NewNotesSanitizer はNotesSanitizerServiceの新しいインスタンスを生成する。
// notesはプレーンテキストとして扱うため、許可タグのないStrictPolicyを使用する。
func NewNotesSanitizer() *notesSanitizer {
	return &notesSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize はnotesからすべてのHTMLタグを除去したテキストを返す。
func (s *notesSanitizer) Sanitize(notes string) string {
	return s.policy.Sanitize(notes)
}
