// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chat implements the career counseling assistant. Replies are
// always user-presentable: gateway failures surface as friendly Japanese
// notices rather than errors.
package chat

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/uninavi/uninavi/internal/llm"
	"github.com/uninavi/uninavi/pkg/types"
)

// Only the most recent exchanges feed the prompt.
const maxHistoryExchanges = 3

// maxReplyRunes caps a non-streaming reply before truncation.
const maxReplyRunes = 1000

const counselingSystemPrompt = `あなたは日本の高校生向けの進路相談アドバイザーです。
以下のガイドラインに従って、親しみやすく、かつ検索最適化された提案を行ってください：

1. 生徒の興味・関心や得意科目から、適した学部・学科を提案する
2. 具体的な大学名を挙げる場合は、有名大学や地域を意識した候補を3-5校程度紹介する
3. **回答は100-200文字程度にまとめ、過度に短くしすぎない**
4. 必要に応じてMarkdownの見出し・箇条書き・番号付きリストを活用し、構造化して分かりやすく提示する
5. 生徒の質問内容に応じて、都道府県・地方・出願方式など検索エンジンに有益なキーワードを補い、意図を明確にした上で提案する
6. 回答は必ず日本語で行う
`

const unavailableNotice = "申し訳ございません。現在AIサービスが利用できません。\n**HF_API_KEY** を設定してください。"

// Exchange is one completed question/answer pair of prior conversation.
type Exchange struct {
	Question string
	Answer   string
}

// Gateway is the model client surface the advisor needs.
type Gateway interface {
	Complete(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error)
	Stream(ctx context.Context, messages []llm.Message, opts llm.Options, fn func(delta string) error) error
}

// Advisor answers counseling questions with conversation context.
type Advisor struct {
	Client     Gateway
	Model      string
	Configured bool
	Logw       io.Writer
}

// PairHistory converts a flat role/content transcript into exchanges.
// Turns are consumed pairwise; a pair counts only when it is a user turn
// followed by an assistant turn.
func PairHistory(turns []types.ChatTurn) []Exchange {
	var exchanges []Exchange
	for i := 0; i+1 < len(turns); i += 2 {
		if turns[i].Role == "user" && turns[i+1].Role == "assistant" {
			exchanges = append(exchanges, Exchange{Question: turns[i].Content, Answer: turns[i+1].Content})
		}
	}
	return exchanges
}

// buildMessages assembles the completion payload shared by streaming and
// non-streaming replies.
func buildMessages(message string, history []Exchange) []llm.Message {
	messages := []llm.Message{{Role: "system", Content: counselingSystemPrompt}}

	if len(history) > maxHistoryExchanges {
		history = history[len(history)-maxHistoryExchanges:]
	}
	for _, ex := range history {
		messages = append(messages,
			llm.Message{Role: "user", Content: ex.Question},
			llm.Message{Role: "assistant", Content: ex.Answer})
	}

	refined := "以下の質問に答える前に、検索精度を高めるために必要な地名・大学区分・試験形態などを含むように意図を整理してください。" +
		"箇条書きで検索向けキーワードを補足した上で、その後に回答を提示してください。\n\n" +
		"質問: " + message
	return append(messages, llm.Message{Role: "user", Content: refined})
}

func (a *Advisor) options() llm.Options {
	return llm.Options{
		Model:       a.Model,
		Temperature: 0.7,
		MaxTokens:   1000,
		TopP:        0.9,
	}
}

// Reply answers one question. The returned string is always presentable
// to the student.
func (a *Advisor) Reply(ctx context.Context, message string, history []Exchange) string {
	logw := a.Logw
	if logw == nil {
		logw = io.Discard
	}
	if !a.Configured {
		fmt.Fprintln(logw, "warning: no model credential configured for chat")
		return unavailableNotice
	}

	reply, err := a.Client.Complete(ctx, buildMessages(message, history), a.options())
	if err != nil {
		fmt.Fprintf(logw, "warning: chat completion failed: %v\n", err)
		return fmt.Sprintf("申し訳ありませんが、現在AIとの会話中にエラーが発生しました。\nしばらく経ってからもう一度お試しください。\n\n（エラーの詳細: %v）", err)
	}

	reply = strings.ReplaceAll(reply, "<s>", "")
	reply = strings.ReplaceAll(reply, "</s>", "")
	reply = strings.TrimSpace(reply)
	if runes := []rune(reply); len(runes) > maxReplyRunes {
		reply = string(runes[:maxReplyRunes]) + "..."
	}
	return reply
}

// ReplyStream streams the answer token by token through fn. With no
// credential configured the unavailable notice is delivered as a single
// delta. A non-nil error from fn aborts the stream.
func (a *Advisor) ReplyStream(ctx context.Context, message string, history []Exchange, fn func(delta string) error) error {
	if !a.Configured {
		return fn(unavailableNotice)
	}
	return a.Client.Stream(ctx, buildMessages(message, history), a.options(), fn)
}
