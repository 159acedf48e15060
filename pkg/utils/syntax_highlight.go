// Package utils provides utility functions shared by the regc packages and commands.
package utils

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Go syntax highlighting colors
var (
	// Keywords
	goKeywordColor = color.New(color.FgMagenta, color.Bold)
	// Predeclared types and constants
	goTypeColor = color.New(color.FgCyan)
	// String and rune literals
	goStringColor = color.New(color.FgGreen)
	// Numbers
	goNumberColor = color.New(color.FgYellow)
	// Comments
	goCommentColor = color.New(color.FgHiBlack)
	// Operators
	goOperatorColor = color.New(color.FgRed)
	// Function calls
	goFunctionColor = color.New(color.FgHiYellow)
)

// Go language keywords
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true,
}

// Go predeclared identifiers
var goTypes = map[string]bool{
	"bool": true, "byte": true, "rune": true, "string": true, "error": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"uintptr": true, "any": true, "true": true, "false": true, "nil": true,
}

// Patterns for syntax elements
var (
	// Matches interpreted strings (handles escaped quotes)
	goStringPattern = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|` + "`[^`]*`")
	// Matches rune literals
	goRunePattern = regexp.MustCompile(`'(?:[^'\\]|\\.)*'`)
	// Matches single-line comments
	goLineCommentPattern = regexp.MustCompile(`(?m)//.*$`)
	// Matches numbers (hex, octal, binary, decimal, float), including digit separators
	goNumberPattern = regexp.MustCompile(`\b(?:0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[oO]?[0-7_]+|[0-9][0-9_]*(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?)\b`)
	// Matches identifiers (for keyword/type matching)
	goIdentifierPattern = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`)
	// Matches function calls (identifier followed by open paren)
	goFunctionCallPattern = regexp.MustCompile(`\b([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`)
	// Matches operators
	goOperatorPattern = regexp.MustCompile(`[+\-*/%&|^!<>=:]+|&\^`)
)

// token represents a syntax-highlighted token
type token struct {
	text  string
	color *color.Color
	start int
	end   int
}

// HighlightGoCode applies syntax highlighting to Go source code and returns the colored string
func HighlightGoCode(code string) string {
	if code == "" {
		return ""
	}

	var tokens []token

	// strings and comments first, nothing inside them gets highlighted
	tokens = appendMatches(tokens, code, goStringPattern, goStringColor)
	tokens = appendMatches(tokens, code, goRunePattern, goStringColor)
	tokens = appendMatches(tokens, code, goLineCommentPattern, goCommentColor)
	tokens = appendMatches(tokens, code, goNumberPattern, goNumberColor)

	for _, match := range goFunctionCallPattern.FindAllStringSubmatchIndex(code, -1) {
		// match[2]:match[3] is the function name
		if len(match) < 4 || match[2] < 0 {
			continue
		}

		funcName := code[match[2]:match[3]]
		if goKeywords[funcName] || goTypes[funcName] || overlapsAny(match[2], match[3], tokens) {
			continue
		}

		tokens = append(tokens, token{
			text:  funcName,
			color: goFunctionColor,
			start: match[2],
			end:   match[3],
		})
	}

	for _, match := range goIdentifierPattern.FindAllStringIndex(code, -1) {
		if overlapsAny(match[0], match[1], tokens) {
			continue
		}

		word := code[match[0]:match[1]]
		var c *color.Color
		if goKeywords[word] {
			c = goKeywordColor
		} else if goTypes[word] {
			c = goTypeColor
		}
		if c != nil {
			tokens = append(tokens, token{
				text:  word,
				color: c,
				start: match[0],
				end:   match[1],
			})
		}
	}

	tokens = appendMatches(tokens, code, goOperatorPattern, goOperatorColor)

	return buildHighlightedString(code, tokens)
}

// appendMatches adds a token for every match of the pattern not overlapping previous tokens
func appendMatches(tokens []token, code string, pattern *regexp.Regexp, c *color.Color) []token {
	for _, match := range pattern.FindAllStringIndex(code, -1) {
		if !overlapsAny(match[0], match[1], tokens) {
			tokens = append(tokens, token{
				text:  code[match[0]:match[1]],
				color: c,
				start: match[0],
				end:   match[1],
			})
		}
	}

	return tokens
}

// overlapsAny checks if a range overlaps with any existing token
func overlapsAny(start, end int, tokens []token) bool {
	for _, t := range tokens {
		if start < t.end && end > t.start {
			return true
		}
	}
	return false
}

// buildHighlightedString constructs the final string with color codes
func buildHighlightedString(code string, tokens []token) string {
	if len(tokens) == 0 {
		return code
	}

	// Sort tokens by start position
	sortTokens(tokens)

	var result strings.Builder
	pos := 0

	for _, t := range tokens {
		// Add unhighlighted text before this token
		if t.start > pos {
			result.WriteString(code[pos:t.start])
		}
		// Add highlighted token
		result.WriteString(t.color.Sprint(t.text))
		pos = t.end
	}

	// Add remaining unhighlighted text
	if pos < len(code) {
		result.WriteString(code[pos:])
	}

	return result.String()
}

// sortTokens sorts tokens by start position
func sortTokens(tokens []token) {
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].start < tokens[j].start })
}

