package similarity

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

var cnDigits = map[rune]byte{
	'一': '1', '二': '2', '三': '3', '四': '4', '五': '5',
	'六': '6', '七': '7', '八': '8', '九': '9',
}

// ParseRoadNumber extracts the numeric part of a road number such as
// "40号院" or "甲一号". Arabic digits win, full-width digits are folded to
// ASCII first; otherwise Chinese numerals 一-九/十 are read in the common
// 十 / X十 / 十X / X十X patterns (1-99). Returns 0 when nothing parses.
func ParseRoadNumber(text string) int {
	if text == "" {
		return 0
	}
	folded := width.Narrow.String(text)

	var sb strings.Builder
	for _, c := range folded {
		if c >= '0' && c <= '9' {
			sb.WriteRune(c)
		}
	}
	if sb.Len() > 0 {
		n, err := strconv.Atoi(sb.String())
		if err != nil {
			return 0
		}
		return n
	}

	// Chinese numerals. A 十 sets a pending-tens flag resolved by the next
	// rune; once digits started accumulating, any other rune ends the scan.
	isTen := false
	for _, c := range text {
		if isTen {
			_, post := cnDigits[c]
			if sb.Len() > 0 {
				if !post {
					sb.WriteByte('0')
				}
			} else {
				if post {
					sb.WriteByte('1')
				} else {
					sb.WriteString("10")
				}
			}
			isTen = false
		}
		if d, ok := cnDigits[c]; ok {
			sb.WriteByte(d)
			continue
		}
		if c == '十' {
			isTen = true
			continue
		}
		if sb.Len() > 0 {
			break
		}
	}
	if isTen {
		if sb.Len() > 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteString("10")
		}
	}
	if sb.Len() > 0 {
		n, err := strconv.Atoi(sb.String())
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
