// Package markup implements toggling of inline markdown constructs: wrap a
// word or selection in delimiters, or collapse an existing construct back
// to its inner text.
package markup

// DelimiterPair holds the prefix/suffix strings of an inline style.
type DelimiterPair struct {
	Prefix string
	Suffix string
}

// Style names follow the rendered-span vocabulary the span source reports.
const (
	StyleStrong        = "strong"
	StyleEm            = "em"
	StyleCode          = "code"
	StyleStrikethrough = "strikethrough"
	StyleHighlight     = "highlight"
	StyleComment       = "comment"
	StyleLink          = "link"
)

// delimiters is the fixed style -> delimiter mapping. Identical nested
// styles are not distinguished from different nested styles.
var delimiters = map[string]DelimiterPair{
	StyleStrong:        {Prefix: "**", Suffix: "**"},
	StyleEm:            {Prefix: "*", Suffix: "*"},
	StyleCode:          {Prefix: "`", Suffix: "`"},
	StyleStrikethrough: {Prefix: "~~", Suffix: "~~"},
	StyleHighlight:     {Prefix: "==", Suffix: "=="},
	StyleComment:       {Prefix: "<!--", Suffix: "-->"},
}

// Delimiters returns the delimiter pair for a style name.
func Delimiters(style string) (DelimiterPair, bool) {
	pair, ok := delimiters[style]
	return pair, ok
}
