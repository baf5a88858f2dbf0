package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Pipeline level messages (info)
		"Starting stereo pipeline":        "ステレオパイプラインを開始します",
		"Pipeline completed successfully": "パイプラインが正常に完了しました",
		"Found %d candidate images":       "%d 枚の候補画像が見つかりました",
		"Created geo output directory %s": "ジオ出力ディレクトリ %s を作成しました",

		// Tie-point stage
		"Extracting tie points":            "タイポイントを抽出中",
		"Loaded %d tie points":             "%d 個のタイポイントを読み込みました",
		"No tie-point file found in %s":    "%s にタイポイントファイルが見つかりません",
		"Tie-point extraction completed":   "タイポイント抽出が完了しました",
		"Rendering tie-point scatter plot": "タイポイント散布図を描画中",
		"Rendering stereo pair preview":    "ステレオペアのプレビューを描画中",

		// Orientation stage
		"Converting RPC orientations": "RPC標定を変換中",
		"Running bundle adjustment":   "バンドル調整を実行中",
		"Bundle adjustment completed": "バンドル調整が完了しました",

		// Surface stage
		"Generating DSM":                  "DSMを生成中",
		"DSM generated: %s":               "DSM生成完了: %s",
		"Generating shaded relief":        "陰影起伏図を生成中",
		"Shaded relief generated: %s":     "陰影起伏図生成完了: %s",
		"Rendering shaded relief preview": "陰影起伏図のプレビューを描画中",

		// Orthophoto stage
		"Generating orthophoto mosaic": "オルソモザイクを生成中",
		"Orthophoto generated: %s":     "オルソ画像生成完了: %s",
		"Rendering orthophoto preview": "オルソ画像のプレビューを描画中",

		// Georeferencing stage
		"Georeferencing DSM":            "DSMにジオリファレンスを付与中",
		"Georeferenced DSM saved to %s": "ジオリファレンス済みDSMを %s に保存しました",

		// External tools (debug)
		"Running %s":                       "%s を実行中",
		"Command completed in %dms":        "コマンドが %dms で完了しました",
		"Preview skipped, %s not readable": "プレビューをスキップしました。%s を読み込めません",
	})
}
