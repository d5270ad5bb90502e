// Package parser reads the plain-text plan syntax:
//
//	@morning
//	  review(inbox) [30m] #admin p:high
//	  write(report) [2h] #deepwork p:critical after:review
//
// into domain blocks. It performs no referential checks; unknown or cyclic
// dependencies are the scheduler's concern.
package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/zibox/internal/domain"
)

// DefaultBlock holds tasks declared before the first @block line.
const DefaultBlock = "default"

// ErrSyntax is wrapped by every ParseError.
var ErrSyntax = errors.New("syntax error")

// ParseError locates a syntax problem in the source.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

func errorf(line int, format string, args ...any) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// ParseFile reads and parses a plan file.
func ParseFile(path string) ([]domain.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan %s: %w", path, err)
	}
	blocks, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing plan %s: %w", path, err)
	}
	return blocks, nil
}

// Parse converts plan source into blocks, preserving declaration order.
func Parse(src string) ([]domain.Block, error) {
	tokens := Tokenize(src)

	defaultBlock := domain.Block{Label: DefaultBlock}
	var blocks []domain.Block
	labels := make(map[string]int)
	current := &defaultBlock

	for i := 0; i < len(tokens); {
		tok := tokens[i]
		switch tok.Kind {
		case TokenBlock:
			if tok.Text == "" {
				return nil, errorf(tok.Line, "block label is empty")
			}
			if prev, dup := labels[tok.Text]; dup {
				return nil, errorf(tok.Line, "block %q already declared on line %d", tok.Text, prev)
			}
			labels[tok.Text] = tok.Line
			blocks = append(blocks, domain.Block{Label: tok.Text})
			current = &blocks[len(blocks)-1]
			i++

		case TokenTask:
			task, next, err := parseTask(tokens, i, current.Label)
			if err != nil {
				return nil, err
			}
			current.Tasks = append(current.Tasks, task)
			i = next

		default:
			return nil, errorf(tok.Line, "unexpected %s token %q", tok.Kind, tok.Text)
		}
	}

	if len(defaultBlock.Tasks) > 0 {
		if _, clash := labels[DefaultBlock]; clash {
			return nil, errorf(1, "tasks outside a block conflict with an explicit @%s block", DefaultBlock)
		}
		blocks = append([]domain.Block{defaultBlock}, blocks...)
	}
	return blocks, nil
}

// parseTask consumes a task token and its attribute tokens on the same line.
func parseTask(tokens []Token, i int, blockLabel string) (domain.Task, int, error) {
	head := tokens[i]
	name, params := splitTaskHead(head.Text)
	task := domain.Task{
		Name:     name,
		Params:   params,
		Priority: domain.DefaultPriority,
		Block:    blockLabel,
	}

	i++
	for ; i < len(tokens) && tokens[i].Line == head.Line; i++ {
		tok := tokens[i]
		switch tok.Kind {
		case TokenDuration:
			min, err := ParseDuration(tok.Text)
			if err != nil {
				return task, i, errorf(tok.Line, "%v", err)
			}
			task.DurationMin = min
		case TokenTag:
			if tok.Text == "" {
				return task, i, errorf(tok.Line, "empty tag")
			}
			task.Tags = append(task.Tags, tok.Text)
		case TokenPriority:
			p, err := domain.ParsePriority(tok.Text)
			if err != nil {
				return task, i, errorf(tok.Line, "%v", err)
			}
			task.Priority = p
		case TokenDependsOn:
			for _, dep := range strings.Split(tok.Text, ",") {
				if dep = strings.TrimSpace(dep); dep != "" {
					task.DependsOn = append(task.DependsOn, dep)
				}
			}
		default:
			return task, i, errorf(tok.Line, "unexpected %q after task %q", tok.Text, name)
		}
	}
	return task, i, nil
}

// ParseDuration accepts "45m", "2h", "1h30m" and any other Go duration that
// is a whole, non-negative number of minutes.
func ParseDuration(s string) (int, error) {
	d, err := time.ParseDuration(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 || d%time.Minute != 0 {
		return 0, fmt.Errorf("invalid duration %q (must be whole, non-negative minutes)", s)
	}
	return int(d / time.Minute), nil
}
