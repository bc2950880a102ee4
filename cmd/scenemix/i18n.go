// Package main provides localization for the scenemix CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Composite live scenes from screen, camera, and video sources.": "画面・カメラ・動画ソースからライブシーンを合成します。",

		// Run command
		"Run the live compositor.": "ライブコンポジタを実行",

		// Version command
		"Show version information.": "バージョン情報を表示",
		"scenemix version %s":       "scenemix バージョン %s",

		// Flags
		"YAML configuration file path.":                                                  "YAML設定ファイルのパス",
		"Scene persistence file path (default: ./scenes.json).":                          "シーン保存ファイルのパス（デフォルト: ./scenes.json）",
		"Scene index to activate at startup.":                                            "起動時にアクティブにするシーン番号",
		"Render loop frame rate (default: 30).":                                          "レンダリングループのフレームレート（デフォルト: 30）",
		"Path to Chrome executable (falls back to CHROME_PATH env, then system default).": "Chrome実行ファイルのパス（未指定時はCHROME_PATH環境変数、次にシステムデフォルト）",
		"Run the capture browser in non-headless mode.":                                  "キャプチャ用ブラウザを非ヘッドレスモードで実行",
		"Directory for composited frame dumps (disabled when empty).":                    "合成フレームダンプのディレクトリ（空の場合は無効）",
		"Dump every Nth frame (default: 30).":                                            "Nフレームごとにダンプ（デフォルト: 30）",
		"Log level (debug, info, warn, error)":                                           "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                                        "全てのログ出力を抑制",

		// Runtime messages
		"Interrupted, shutting down...":                "中断されました。シャットダウン中...",
		"Camera source %s skipped: no grabber configured": "カメラソース %s をスキップ: グラバーが未設定です",
		"Unknown source type %s skipped":               "不明なソース種別 %s をスキップ",
	})
}
