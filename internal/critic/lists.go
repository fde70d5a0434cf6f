package critic

import "strings"

// Переиспользованные до дыр шрифты: display в списке стоит -2,
// body -1 к дифференциации
var overusedFonts = map[string]bool{
	"arial":            true,
	"helvetica":        true,
	"roboto":           true,
	"open sans":        true,
	"lato":             true,
	"montserrat":       true,
	"raleway":          true,
	"poppins":          true,
	"oswald":           true,
	"playfair display": true,
}

// Generic цвета, по которым бренд не отличить от тысячи других
var genericColors = map[string]bool{
	"#000000": true,
	"#ffffff": true,
	"#ff0000": true,
	"#00ff00": true,
	"#0000ff": true,
	"#808080": true,
	"#1877f2": true, // facebook blue
	"#0077b5": true, // linkedin blue
}

func isOverusedFont(name string) bool {
	return overusedFonts[strings.ToLower(strings.TrimSpace(name))]
}

func isGenericColor(hex string) bool {
	return genericColors[strings.ToLower(strings.TrimSpace(hex))]
}
