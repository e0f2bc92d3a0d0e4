// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/uninavi/uninavi/pkg/types"
)

// systemPrompt frames the extraction task. The model must answer with
// JSON only; anything else is handled by the staged parser.
const systemPrompt = `あなたは日本の大学受験に詳しいアドバイザーです。
与えられた検索結果から正確な情報を抽出し、指定されたJSON形式で返してください。
情報が不足している場合は、推測せずに空文字列や空配列を使用してください。
回答には、JSON形式のデータ以外、余分なテキストは含めないでください。`

// extractionGuidelines are the per-field extraction rules sent with every
// request.
const extractionGuidelines = `方針
- 同一大学でも「学部が異なる」または「入試形態が異なる」場合は、別の要素として出力してください（学部バリエーション/方式バリエーションを可視化）。
- 情報源は PassNavi（passnavi.obunsha.co.jp）と Kei-Net（keinet.ne.jp）を優先し、可能であれば sources にそれらのURLを1つ以上含めてください。
- 公式サイト（*.ac.jp）の入試情報/要項/admissionsページも信頼できます。sources には必ず公式サイトURLを1件含めてください。
- sources には信頼できる入試情報サイト（PassNavi: https://passnavi.obunsha.co.jp, Kei-Net: https://keinet.ne.jp）のURLを必ず含めてください。これらのサイトからの情報が使用された場合は、対応するURLをsourcesに追加してください。
- 不明な項目は空文字列や空配列のままにしてください（推測禁止）。
- "deviationScore"（偏差値）は信頼できる情報源（PassNavi、Kei-Net、公式サイト）からの情報のみを使用してください。信頼できないソースからの偏差値は記載しないでください。
- "aiSummary" には、複数の情報源から得られた具体的な事実を最低でも2つ含めてください。（例: 学部の特色 + 入試方式/配点 + キャンパスの特徴）。単なる繰り返しや曖昧な表現は避け、実際の検索結果から得られた内容を簡潔に統合してください。
- "examSchedules" には「願書受付」「出願締切」「試験日」「合格発表」などの日程を時系列で列挙してください。
- "admissionMethods" には "一般選抜" や "総合型選抜" などの方式名を列挙し、必要であれば配点や特徴を併記してください。
- "subjectHighlights" には各科目の配点比率や必須/選択区分などの入試に特化した情報を列挙してください。
- "commonTestRatio" が判明している場合は百分率や「○割」といった形式で記載してください。
- "selectionNotes" には特記事項（再受験可否、面接の有無、出願条件など）を記載してください。
- "applicationDeadline" には願書提出の締切日を記載してください。
- "institutionType" には大学の種類（国立/公立/私立）を必ず記載してください。公式サイトのドメイン（*.ac.jp）から判断し、国立大学は「国立」、公立大学は「公立」、それ以外は「私立」と設定してください。`

// jsonOutputExample is the literal output shape requested from the model.
const jsonOutputExample = `[
  {
    "id": "unique-id",
    "name": "大学名",
    "officialUrl": "公式サイトURL",
    "faculty": "学部名",
    "department": "学科名",
    "deviationScore": "偏差値（例: 60-65）",
    "commonTestScore": "共テ得点率（例: 75-80%）",
    "examType": "入試形態",
    "requiredSubjects": ["科目1", "科目2"],
    "examDate": "試験日",
    "examSchedules": ["願書受付: YYYY年MM月DD日", "試験日: YYYY年MM月DD日"],
    "admissionMethods": ["一般選抜: 前期日程 2科目型", "共通テスト利用型: 英語重視"],
    "subjectHighlights": ["数学: 200点（共通テスト換算）", "理科: 150点（化学/物理から選択)"],
    "commonTestRatio": "共通テスト 60% / 個別試験 40%",
    "selectionNotes": "指定校推薦枠あり。共テ利用型は英語外部試験得点換算可。",
    "applicationDeadline": "2025年1月15日",
    "institutionType": "国立",
    "aiSummary": "大学・学部の特徴や強みを100文字程度で具体的に要約（複数ソースからの要素を統合）",
    "sources": ["出典URL1", "出典URL2"]
  }
]`

// userPromptTmpl assembles the extraction request from the ranked search
// results and the query label.
var userPromptTmpl = template.Must(template.New("extraction").Parse(`以下の検索結果から、大学情報を抽出して構造化してください。

検索クエリ: {{.Query}}

検索結果:
{{.Results}}

{{.Guidelines}}

以下のJSON形式で、見つかった大学情報を配列で返してください（最大20件）。異なる大学を優先しつつ、同一大学内の学部/入試形態のバリエーションも含め、重複は避けてください。

出力はJSON配列のみとし、それ以外のテキストは一切含めないでください。JSONの前に説明文や` + "```json" + `は不要です。直接[で始まるJSON配列を返してください。

{{.Example}}`))

const (
	// maxPromptResults bounds how many ranked results feed the prompt.
	maxPromptResults = 25

	// maxSnippetRunes truncates each result's snippet content.
	maxSnippetRunes = 500
)

// buildUserPrompt renders the extraction prompt from the top ranked
// results, each truncated to maxSnippetRunes of content.
func buildUserPrompt(results []types.SearchResultItem, queryLabel string) (string, error) {
	if len(results) > maxPromptResults {
		results = results[:maxPromptResults]
	}

	var sb strings.Builder
	for i, r := range results {
		title := r.Title
		if title == "" {
			title = "No title"
		}
		url := r.URL
		if url == "" {
			url = "No URL"
		}
		content := r.Content
		if content == "" {
			content = "No content"
		}
		if runes := []rune(content); len(runes) > maxSnippetRunes {
			content = string(runes[:maxSnippetRunes])
		}
		fmt.Fprintf(&sb, "Result %d:\nTitle: %s\nURL: %s\nContent: %s...\n\n", i+1, title, url, content)
	}

	var buf bytes.Buffer
	err := userPromptTmpl.Execute(&buf, struct {
		Query, Results, Guidelines, Example string
	}{
		Query:      queryLabel,
		Results:    sb.String(),
		Guidelines: extractionGuidelines,
		Example:    jsonOutputExample,
	})
	if err != nil {
		return "", fmt.Errorf("rendering extraction prompt: %w", err)
	}
	return buf.String(), nil
}
