package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Compositor lifecycle (info)
		"Compositor started: %dx%d at %.1f fps": "コンポジターを開始: %dx%d, %.1f fps",
		"Compositor stopped":                    "コンポジターを停止しました",
		"Loaded %d scenes":                      "%d 件のシーンを読み込みました",
		"No persisted scenes, using defaults":   "保存済みシーンがないため、デフォルトを使用します",
		"Active scene changed to %d (%s)":       "アクティブシーンを %d (%s) に変更しました",
		"Source %s added (%s)":                  "ソース %s を追加しました (%s)",
		"Source %s removed":                     "ソース %s を削除しました",

		// Source registry
		"Decoding file source %s":                  "ファイルソース %s をデコード中",
		"File source %s ready: %d frames, %d ms":   "ファイルソース %s の準備完了: %d フレーム, %d ms",
		"Live source %s started":                   "ライブソース %s を開始しました",
		"Live source %s stopped":                   "ライブソース %s を停止しました",
		"Failed to start source %s: %s":            "ソース %s の開始に失敗しました: %s",
		"Failed to decode live frame for %s: %s":   "%s のライブフレームのデコードに失敗しました: %s",
		"Rewinding file source %s for active scene": "アクティブシーンのためファイルソース %s を頭出しします",

		// Scene renderer
		"Layout %s draw failed: %v": "レイアウト %s の描画に失敗しました: %v",

		// Render loop
		"Render tick panicked: %v":           "描画ティックでパニックが発生しました: %v",
		"Output sink write failed: %s":       "出力シンクへの書き込みに失敗しました: %s",
		"Render loop: %.1f fps, %d layouts skipped, cpu %.1f%%, rss %d MB": "描画ループ: %.1f fps, スキップしたレイアウト %d 件, CPU %.1f%%, RSS %d MB",

		// Persistence
		"Failed to persist scenes: %s": "シーンの保存に失敗しました: %s",
	})
}
