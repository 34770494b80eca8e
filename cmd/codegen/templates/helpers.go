package templates

import (
	"strconv"
	"strings"
)

func prefixedStrings(prefix string, count int) string {
	return wrappedStrings(prefix, "", count)
}

// wrappedStrings renders prefix0suffix, prefix1suffix, ...
func wrappedStrings(prefix, suffix string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(prefix)
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(suffix)
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// typedParams renders name0 typePrefix0typeSuffix, name1 typePrefix1typeSuffix, ...
func typedParams(name, typePrefix, typeSuffix string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		idx := strconv.Itoa(i)
		sb.WriteString(name)
		sb.WriteString(idx)
		sb.WriteByte(' ')
		sb.WriteString(typePrefix)
		sb.WriteString(idx)
		sb.WriteString(typeSuffix)
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}
