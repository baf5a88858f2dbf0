// Package main provides localization for the stereopipe CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Build a DSM, orthophoto and shaded relief from a stereo satellite pair.": "衛星ステレオペアからDSM、オルソ画像、陰影起伏図を作成します。",

		// Run command
		"Run the stereo reconstruction pipeline on an image directory.":              "画像ディレクトリに対してステレオ復元パイプラインを実行",
		"Directory containing the stereo pair, RPC files and projection definition.": "ステレオペア、RPCファイル、投影法定義を含むディレクトリ",

		// Version command
		"Show version information.": "バージョン情報を表示",
		"stereopipe version %s":     "stereopipe バージョン %s",

		// Preset flags
		"Sensor preset (spot or pleiades).":           "センサープリセット（spot, pleiades）",
		"YAML configuration file (overrides preset).": "YAML設定ファイル（プリセットを上書き）",

		// Projection flags
		"Output spatial reference (e.g., EPSG:32638).":              "出力空間参照系（例: EPSG:32638）",
		"Coordinate system definition file in the input directory.": "入力ディレクトリ内の座標系定義ファイル",
		"Tie-point working resolution in pixels (-1 = full).":       "タイポイント処理解像度（ピクセル、-1 = フル解像度）",
		"Polynomial correction degree for bundle adjustment.":       "バンドル調整の多項式補正次数",
		"Correlation window half-size.":                             "相関ウィンドウの半サイズ",
		"Correlation regularization factor.":                        "相関の正則化係数",

		// Tool flags
		"Path to the mm3d executable (falls back to MM3D_PATH env, then system default).":                     "mm3d実行ファイルのパス（MM3D_PATH環境変数、システムデフォルトの順に探索）",
		"Path to the gdal_translate executable (falls back to GDAL_TRANSLATE_PATH env, then system default).": "gdal_translate実行ファイルのパス（GDAL_TRANSLATE_PATH環境変数、システムデフォルトの順に探索）",

		// Output flags
		"Output execution summary to file (Markdown format).": "実行サマリーをファイルに出力（Markdown形式）",

		// Debug flags
		"Enable diagnostic output (plots, previews, step logs).": "診断出力を有効化（プロット、プレビュー、ステップログ）",
		"Directory for diagnostic output.":                       "診断出力のディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error).": "ログレベル（debug, info, warn, error）",
		"Shortcut for --log-level=debug.":       "--log-level=debug のショートカット",
		"Suppress all log output.":              "全てのログ出力を抑制",

		// Runtime messages
		"Processing %s (%s preset)...":  "%s を処理中 (%s プリセット)...",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Failed to write summary: %s":   "サマリーの書き込みに失敗しました: %s",
	})
}
