// 指示: miu200521358
// Package naming は命名規約によるミラー名解決アダプタを提供する。
package naming

import "strings"

// mirrorRule は左右対応の置換規則を表す。
type mirrorRule struct {
	left    string
	right   string
	matches func(name string, token string) bool
	replace func(name string, from string, to string) string
}

// 規則は上から順に評価し、最初に一致したものを採用する。
var mirrorRules = []mirrorRule{
	{left: "左", right: "右", matches: hasPrefixToken, replace: replacePrefixToken},
	{left: "L_", right: "R_", matches: hasPrefixToken, replace: replacePrefixToken},
	{left: "Left", right: "Right", matches: hasPrefixToken, replace: replacePrefixToken},
	{left: "left", right: "right", matches: hasPrefixToken, replace: replacePrefixToken},
	{left: "_L", right: "_R", matches: hasSuffixToken, replace: replaceSuffixToken},
	{left: ".L", right: ".R", matches: hasSuffixToken, replace: replaceSuffixToken},
	{left: "_l", right: "_r", matches: hasSuffixToken, replace: replaceSuffixToken},
	{left: ".l", right: ".r", matches: hasSuffixToken, replace: replaceSuffixToken},
	{left: "Left", right: "Right", matches: hasSuffixToken, replace: replaceSuffixToken},
}

// ConventionResolver は命名規約と明示ペアでミラー名を解決する。
type ConventionResolver struct {
	extraPairs map[string]string
}

// NewConventionResolver はミラー名リゾルバを生成する。
// extraPairs は規約で解決できない名前の明示対応で、双方向に登録される。
func NewConventionResolver(extraPairs map[string]string) *ConventionResolver {
	pairs := map[string]string{}
	for left, right := range extraPairs {
		pairs[left] = right
		pairs[right] = left
	}
	return &ConventionResolver{extraPairs: pairs}
}

// MirrorName は対称側の名前を返す。解決できない場合は false を返す。
// 明示ペアを規約より優先する。
func (r *ConventionResolver) MirrorName(name string) (string, bool) {
	if mirrored, exists := r.extraPairs[name]; exists {
		return mirrored, true
	}
	for _, rule := range mirrorRules {
		if rule.matches(name, rule.left) {
			return rule.replace(name, rule.left, rule.right), true
		}
		if rule.matches(name, rule.right) {
			return rule.replace(name, rule.right, rule.left), true
		}
	}
	return "", false
}

// hasPrefixToken は先頭一致かつ残りが空でないことを判定する。
func hasPrefixToken(name string, token string) bool {
	return strings.HasPrefix(name, token) && len(name) > len(token)
}

// replacePrefixToken は先頭tokenを置換する。
func replacePrefixToken(name string, from string, to string) string {
	return to + strings.TrimPrefix(name, from)
}

// hasSuffixToken は末尾一致かつ残りが空でないことを判定する。
func hasSuffixToken(name string, token string) bool {
	return strings.HasSuffix(name, token) && len(name) > len(token)
}

// replaceSuffixToken は末尾tokenを置換する。
func replaceSuffixToken(name string, from string, to string) string {
	return strings.TrimSuffix(name, from) + to
}
