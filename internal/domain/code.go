package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	codePrefixLayout = "0201" // DDMM
	codeSeparator    = "-"
	codeSequenceMin  = 3
)

// CodePrefix возвращает префикс кода для дня создания, например "0507" для 5 июля
func CodePrefix(creationDate time.Time) string {
	return creationDate.Format(codePrefixLayout)
}

// FormatCode собирает код тикета. Номер дополняется нулями до трех знаков.
func FormatCode(prefix string, seq int) string {
	return fmt.Sprintf("%s%s%0*d", prefix, codeSeparator, codeSequenceMin, seq)
}

// ParseCodeSequence извлекает числовой номер из кода с указанным префиксом.
// ok=false для кодов другого дня и для непарсящихся суффиксов.
func ParseCodeSequence(code, prefix string) (int, bool) {
	suffix, found := strings.CutPrefix(code, prefix+codeSeparator)
	if !found || suffix == "" {
		return 0, false
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// NextSequence возвращает следующий номер после максимального среди codes.
// Сравнение числовое: "0705-100" больше "0705-099".
func NextSequence(codes []string, prefix string) int {
	maxSeq := 0
	for _, code := range codes {
		if seq, ok := ParseCodeSequence(code, prefix); ok && seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}
