// Package symbolcode は台湾株の銘柄コードとYahooティッカーの相互変換を提供します。
package symbolcode

import "strings"

const (
	// ListedSuffix は上場（TWSE）銘柄のティッカー接尾辞です。
	ListedSuffix = ".TW"
	// OTCSuffix は上櫃（TPEx）銘柄のティッカー接尾辞です。
	OTCSuffix = ".TWO"
)

// Normalize は前後の空白を除去し、接尾辞を大文字にそろえます。
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	upper := strings.ToUpper(code)
	switch {
	case strings.HasSuffix(upper, OTCSuffix):
		return code[:len(code)-len(OTCSuffix)] + OTCSuffix
	case strings.HasSuffix(upper, ListedSuffix):
		return code[:len(code)-len(ListedSuffix)] + ListedSuffix
	}
	return code
}

// HasSuffix はコードに取引所接尾辞が付いているかを返します。
func HasSuffix(code string) bool {
	upper := strings.ToUpper(code)
	return strings.HasSuffix(upper, ListedSuffix) || strings.HasSuffix(upper, OTCSuffix)
}

// Candidates は問い合わせるティッカーを優先順に返します。
// 接尾辞付きならそのまま、なければ上場(.TW)、上櫃(.TWO)の順です。
func Candidates(code string) []string {
	code = Normalize(code)
	if code == "" {
		return nil
	}
	if HasSuffix(code) {
		return []string{code}
	}
	return []string{code + ListedSuffix, code + OTCSuffix}
}

// Bare は取引所接尾辞を除いた銘柄コードを返します。
func Bare(ticker string) string {
	ticker = Normalize(ticker)
	if s, ok := strings.CutSuffix(ticker, OTCSuffix); ok {
		return s
	}
	if s, ok := strings.CutSuffix(ticker, ListedSuffix); ok {
		return s
	}
	return ticker
}
