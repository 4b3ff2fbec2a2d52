package console

import (
	"errors"
	"fmt"

	"github.com/mattn/go-shellwords"
)

var (
	// ErrSyntax is returned for an open quote, a trailing escape or other invalid quoting
	ErrSyntax = errors.New("invalid console syntax")

	// ErrOperator is returned for an unquoted shell operator such as ; or |
	ErrOperator = errors.New("unexpected operator")
)

// Tokenize splits line into words with shell quoting rules. Environment
// variables and backticks are left as literal text.
func Tokenize(line string) ([]string, error) {
	p := shellwords.NewParser()
	p.ParseEnv = false
	p.ParseBacktick = false

	words, err := p.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if p.Position >= 0 {
		return nil, fmt.Errorf("%w at column %d", ErrOperator, p.Position+1)
	}
	if len(words) == 0 {
		return nil, nil
	}
	return words, nil
}
