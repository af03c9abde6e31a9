package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "got" or "detail").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates may
// reference data with {name}; unknown placeholders are left as-is.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":   "invalid type: expected {expected}, got {got}",
		"required":       "required property missing",
		"unknown_key":    "unknown key",
		"duplicate_key":  "duplicate key",
		"too_small":      "value is below the minimum {min}",
		"too_big":        "value is above the maximum {max}",
		"too_short":      "too few elements (minimum {min})",
		"too_long":       "too many elements (maximum {max})",
		"pattern":        "does not match pattern {pattern}",
		"invalid_format": "invalid {format} value",
		"invalid_enum":   "value is not one of the allowed values",
		"no_match":       "value matches none of the alternatives",
		"parse_error":    "parse error: {detail}",
		"overflow":       "number does not fit the target type",
		"truncated":      "input ended before the value was complete",
		"business_rule":  "business rule violated",
	},
	"ja": {
		"invalid_type":   "型が不正です ({expected} が必要ですが {got} でした)",
		"required":       "必須プロパティが不足しています",
		"unknown_key":    "未知のキーです",
		"duplicate_key":  "キーが重複しています",
		"too_small":      "最小値 {min} を下回っています",
		"too_big":        "最大値 {max} を上回っています",
		"too_short":      "要素が少なすぎます (最小 {min})",
		"too_long":       "要素が多すぎます (最大 {max})",
		"pattern":        "パターン {pattern} に一致しません",
		"invalid_format": "{format} の形式が不正です",
		"invalid_enum":   "許可された値ではありません",
		"no_match":       "いずれの候補にも一致しません",
		"parse_error":    "解析エラー: {detail}",
		"overflow":       "数値が型の範囲を超えています",
		"truncated":      "入力が途中で終わっています",
		"business_rule":  "業務ルール違反です",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
