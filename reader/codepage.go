package reader

import (
	"golang.org/x/text/encoding/charmap"
)

// charmaps maps $DWGCODEPAGE values to their decoders. Pre-R2007 DXF
// stores text in the drawing code page rather than UTF-8.
var charmaps = map[string]*charmap.Charmap{
	"ANSI_1250": charmap.Windows1250,
	"ANSI_1251": charmap.Windows1251,
	"ANSI_1252": charmap.Windows1252,
	"ANSI_1253": charmap.Windows1253,
	"ANSI_1254": charmap.Windows1254,
	"ANSI_1257": charmap.Windows1257,
}

// decodeCodePage converts s from the named code page to UTF-8. Unknown
// code pages and decoding failures leave the value unchanged.
func decodeCodePage(s, codepage string) string {
	cm, ok := charmaps[codepage]
	if !ok {
		return s
	}
	out, err := cm.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}
