package checker

import "github.com/fastlint/fastlint/pkg/rbast"

// LineContent returns the content of a 1-based line number, excluding the
// trailing newline. Returns nil if out of range.
func LineContent(f *rbast.FileSnapshot, lineNum int) []byte {
	return f.LineContent(lineNum)
}

// LineLength returns the byte length of a 1-based line, excluding the
// trailing newline.
func LineLength(f *rbast.FileSnapshot, lineNum int) int {
	return len(f.LineContent(lineNum))
}

// IsBlankLine reports whether a 1-based line contains only whitespace.
func IsBlankLine(f *rbast.FileSnapshot, lineNum int) bool {
	content := f.LineContent(lineNum)
	for _, b := range content {
		if b != ' ' && b != '\t' && b != '\r' {
			return false
		}
	}
	return true
}

// HasTrailingWhitespace reports whether a 1-based line ends with spaces or
// tabs before its newline.
func HasTrailingWhitespace(f *rbast.FileSnapshot, lineNum int) bool {
	content := f.LineContent(lineNum)
	if len(content) == 0 {
		return false
	}
	return content[len(content)-1] == ' ' || content[len(content)-1] == '\t'
}

// TrailingWhitespaceRange returns the byte offset range of a 1-based
// line's trailing whitespace run, or (-1, -1) if it has none.
func TrailingWhitespaceRange(f *rbast.FileSnapshot, lineNum int) (int, int) {
	if lineNum < 1 || lineNum > len(f.Lines) {
		return -1, -1
	}
	info := f.Lines[lineNum-1]
	content := f.Content[info.StartOffset:info.NewlineStart]

	end := len(content)
	start := end
	for start > 0 && (content[start-1] == ' ' || content[start-1] == '\t') {
		start--
	}
	if start == end {
		return -1, -1
	}
	return info.StartOffset + start, info.StartOffset + end
}

// IndentOf returns the run of leading ' '/'\t' bytes on a 1-based line.
func IndentOf(f *rbast.FileSnapshot, lineNum int) []byte {
	content := f.LineContent(lineNum)
	i := 0
	for i < len(content) && (content[i] == ' ' || content[i] == '\t') {
		i++
	}
	return content[:i]
}

// ColumnOf converts a byte offset on a 1-based line to a 1-based column.
func ColumnOf(f *rbast.FileSnapshot, lineNum, offset int) int {
	if lineNum < 1 || lineNum > len(f.Lines) {
		return 1
	}
	return offset - f.Lines[lineNum-1].StartOffset + 1
}

// CountBlankLinesBefore returns the number of consecutive blank lines
// immediately preceding the 1-based line lineNum.
func CountBlankLinesBefore(f *rbast.FileSnapshot, lineNum int) int {
	count := 0
	for l := lineNum - 1; l >= 1 && IsBlankLine(f, l); l-- {
		count++
	}
	return count
}

// CountBlankLinesAfter returns the number of consecutive blank lines
// immediately following the 1-based line lineNum.
func CountBlankLinesAfter(f *rbast.FileSnapshot, lineNum int) int {
	count := 0
	for l := lineNum + 1; l <= len(f.Lines) && IsBlankLine(f, l); l++ {
		count++
	}
	return count
}
