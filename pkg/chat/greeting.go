package chat

import "urcloud_chat/pkg/ai"

// GreetingID is the ID of the initial model message.
const GreetingID = "init-1"

// GreetingHTML is shown once the disclaimer has been accepted.
const GreetingHTML = `<p>こんにちは。<strong>` + ai.AssistantName + `</strong>です。</p>` +
	`<p>税務・会計・経理・法務・労務に関する幅広いご質問にお答えします。</p>` +
	`<p>公的機関の情報を優先的に参照しつつ、信頼できる情報源をもとに回答を作成します。</p>` +
	`<ul><li>「インボイス制度の登録要件は？」(税務)</li>` +
	`<li>「接待交際費の損金算入ルールは？」(経理)</li>` +
	`<li>「36協定の届出について教えて」(労務)</li>` +
	`<li>「契約書の収入印紙の金額は？」(法務)</li></ul>` +
	`<p>また、<strong>資料（PDFや画像）を添付</strong>して質問することも可能です。</p>`

// ErrorHTML replaces a failed reply. The underlying error only goes to the log.
const ErrorHTML = `<p>申し訳ありません。エラーが発生しました。時間をおいて再度お試しください。</p>`

// DisclaimerTitle and DisclaimerLines make up the gate shown before chatting.
const DisclaimerTitle = "ご利用にあたっての注意事項"

var DisclaimerLines = []string{
	"本サービスはAIによる一般的な情報提供を目的としており、税務・法務・労務等の専門的な助言ではありません。",
	"AIの回答には誤りや古い情報が含まれる可能性があります。",
	"個別の判断は、必ず税理士・弁護士・社会保険労務士等の専門家にご相談ください。",
	"個人情報や機密情報の入力はお控えください。",
	"本サービスの利用により生じた損害について、当事務所は一切の責任を負いません。",
}

// Suggestion is a canned follow-up question.
type Suggestion struct {
	Label string
	Icon  string
}

// Suggestions are offered after each successful model reply.
var Suggestions = []Suggestion{
	{Label: "もっと詳しく教えて", Icon: "🔍"},
	{Label: "もっと簡単に説明して", Icon: "💡"},
	{Label: "具体例を教えて", Icon: "📝"},
	{Label: "ユアクラウド会計事務所について教えて", Icon: "🏢"},
}

// introRewrites maps suggestion labels to usage-guide questions while only the
// greeting is on screen.
// The office question has no entry and is sent as is.
var introRewrites = map[string]string{
	"もっと詳しく教えて":   "この「" + ai.AssistantName + "」の使い方や、対応している相談範囲について詳しく教えてください。",
	"もっと簡単に説明して": "このAIチャットを使うと何ができるのですか？初心者向けに簡単に説明してください。",
	"具体例を教えて":     "このAIチャットで相談できる質問の具体例を、税務・法務・労務などの分野別にいくつか教えてください。",
}
