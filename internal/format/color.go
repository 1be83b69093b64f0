package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Token is a semantic color name. Presentation layers map tokens onto their
// own palette.
type Token string

const (
	TokenPrimary   Token = "primary"
	TokenSecondary Token = "secondary"
	TokenSuccess   Token = "success"
	TokenInfo      Token = "info"
	TokenWarning   Token = "warning"
	TokenDanger    Token = "danger"
	TokenDark      Token = "dark"
)

// NeutralToken is used for any code without a mapping.
const NeutralToken = TokenSecondary

var priorityTokens = map[string]Token{
	"LOW":      TokenInfo,
	"MED":      TokenWarning,
	"HIGH":     TokenDanger,
	"HIG":      TokenDanger, // maintenance logs use the three-letter code
	"CRITICAL": TokenDark,
}

// PriorityColor maps a ticket or maintenance priority onto a token.
func PriorityColor(priority string) Token {
	if t, ok := priorityTokens[strings.ToUpper(strings.TrimSpace(priority))]; ok {
		return t
	}
	return NeutralToken
}

// Equipment lifecycle status codes.
const (
	StatusAvailable = "AVA"
	StatusInUse     = "INU"
	StatusInRepair  = "REP"
	StatusRetired   = "RET"
	StatusLost      = "LOS"
	StatusDisposed  = "DIS"
)

// NeutralStatusColor is returned for unrecognized status codes.
const NeutralStatusColor = "#6c757d"

var statusColors = map[string]string{
	StatusAvailable: "#28a745",
	StatusInUse:     "#17a2b8",
	StatusInRepair:  "#ffc107",
	StatusRetired:   "#adb5bd",
	StatusLost:      "#dc3545",
	StatusDisposed:  "#495057",
}

// StatusColor returns the fixed hex color for an equipment status code.
func StatusColor(code string) string {
	if c, ok := statusColors[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return c
	}
	return NeutralStatusColor
}

type rgb struct{ r, g, b uint8 }

var palette = []rgb{
	{54, 162, 235},
	{255, 99, 132},
	{255, 159, 64},
	{75, 192, 192},
	{153, 102, 255},
	{255, 205, 86},
}

// PaletteSize is the number of distinct colors PaletteColors produces before
// it starts over.
var PaletteSize = len(palette)

// PaletteColors returns count rgba() colors from the fixed palette. Counts
// larger than the palette cycle through it again.
func PaletteColors(count int, opacity float64) []string {
	if count <= 0 {
		return []string{}
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	a := strconv.FormatFloat(opacity, 'f', -1, 64)
	out := make([]string, count)
	for i := range out {
		c := palette[i%len(palette)]
		out[i] = fmt.Sprintf("rgba(%d, %d, %d, %s)", c.r, c.g, c.b, a)
	}
	return out
}

// ToHex converts "#rrggbb", "#rgb" or "rgb(a)(r, g, b[, a])" into "#rrggbb".
// Alpha is dropped. Anything else yields NeutralStatusColor.
func ToHex(color string) string {
	s := strings.TrimSpace(strings.ToLower(color))
	switch {
	case strings.HasPrefix(s, "#") && len(s) == 7:
		return s
	case strings.HasPrefix(s, "#") && len(s) == 4:
		return "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	case strings.HasPrefix(s, "rgb"):
		open := strings.IndexByte(s, '(')
		end := strings.IndexByte(s, ')')
		if open < 0 || end < open {
			return NeutralStatusColor
		}
		parts := strings.Split(s[open+1:end], ",")
		if len(parts) < 3 {
			return NeutralStatusColor
		}
		var ch [3]int
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || v < 0 || v > 255 {
				return NeutralStatusColor
			}
			ch[i] = v
		}
		return fmt.Sprintf("#%02x%02x%02x", ch[0], ch[1], ch[2])
	}
	return NeutralStatusColor
}
