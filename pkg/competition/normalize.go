package competition

import "strings"

// characterEntities are the entities decoded in club and event names.
var characterEntities = strings.NewReplacer(
	"&nbsp;", " ",
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&apos;", "'",
	"&cent;", "¢",
	"&pound;", "£",
	"&yen;", "¥",
	"&euro;", "€",
	"&copy;", "©",
	"&reg;", "®",
)

// NormalizeName decodes the fixed entity table in a club or event name so that
// encoded and literal spellings of the same name compare equal. Decoding is
// repeated until the name stops changing, which keeps the function idempotent
// for double-encoded input such as "&amp;amp;".
func NormalizeName(name string) string {
	for {
		decoded := characterEntities.Replace(name)
		decoded = strings.ReplaceAll(decoded, "\u00a0", " ")
		if decoded == name {
			return name
		}
		name = decoded
	}
}
