package parser

import (
	"strings"
	"unicode"
)

// TokenKind classifies a lexical token of the plan syntax.
type TokenKind int

const (
	TokenBlock TokenKind = iota
	TokenTask
	TokenDuration
	TokenTag
	TokenPriority
	TokenDependsOn
	TokenUnknown
)

func (k TokenKind) String() string {
	switch k {
	case TokenBlock:
		return "block"
	case TokenTask:
		return "task"
	case TokenDuration:
		return "duration"
	case TokenTag:
		return "tag"
	case TokenPriority:
		return "priority"
	case TokenDependsOn:
		return "after"
	default:
		return "unknown"
	}
}

// Token is one lexical element. Text holds the payload with its sigil removed.
type Token struct {
	Kind TokenKind
	Text string
	Line int
}

// Tokenize splits plan source into tokens. Blank lines and lines starting
// with "//" produce nothing.
func Tokenize(src string) []Token {
	var tokens []Token
	for n, raw := range strings.Split(src, "\n") {
		line := n + 1
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if strings.HasPrefix(trimmed, "@") {
			tokens = append(tokens, Token{Kind: TokenBlock, Text: strings.TrimSpace(trimmed[1:]), Line: line})
			continue
		}

		head, rest := cutTaskHead(trimmed)
		tokens = append(tokens, Token{Kind: TokenTask, Text: head, Line: line})
		for _, f := range strings.Fields(rest) {
			tokens = append(tokens, classify(f, line))
		}
	}
	return tokens
}

// cutTaskHead splits a task line after its head. A parameter list may hold
// spaces, so a head that opens "(" runs to the matching ")".
func cutTaskHead(line string) (head, rest string) {
	end := strings.IndexFunc(line, unicode.IsSpace)
	if end < 0 {
		end = len(line)
	}
	if open := strings.IndexByte(line[:end], '('); open >= 0 {
		if closing := strings.IndexByte(line[open:], ')'); closing >= 0 {
			end = max(end, open+closing+1)
		}
	}
	return line[:end], line[end:]
}

func classify(field string, line int) Token {
	switch {
	case strings.HasPrefix(field, "[") && strings.HasSuffix(field, "]"):
		return Token{Kind: TokenDuration, Text: strings.Trim(field, "[]"), Line: line}
	case strings.HasPrefix(field, "#"):
		return Token{Kind: TokenTag, Text: field[1:], Line: line}
	case strings.HasPrefix(field, "p:"):
		return Token{Kind: TokenPriority, Text: field[2:], Line: line}
	case strings.HasPrefix(field, "after:"):
		return Token{Kind: TokenDependsOn, Text: field[len("after:"):], Line: line}
	default:
		return Token{Kind: TokenUnknown, Text: field, Line: line}
	}
}

// splitTaskHead separates "write(report, draft)" into "write" and its params.
func splitTaskHead(head string) (string, []string) {
	open := strings.Index(head, "(")
	closing := strings.LastIndex(head, ")")
	if open <= 0 || closing < open {
		return head, nil
	}
	var params []string
	for _, p := range strings.Split(head[open+1:closing], ",") {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}
	return head[:open], params
}
