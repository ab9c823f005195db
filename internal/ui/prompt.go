package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when the input stream ends before an answer is read.
var ErrNoInput = errors.New("no input available")

// Prompter asks line-based questions on an input stream.
// One Prompter must be used for all questions on a stream so that
// buffered input is not lost between questions.
type Prompter struct {
	in   *bufio.Reader
	echo bool
}

// NewPrompter creates a Prompter reading from in. When in is not a terminal
// the answers are echoed so that transcripts stay readable.
func NewPrompter(in io.Reader) *Prompter {
	return &Prompter{
		in:   bufio.NewReader(in),
		echo: !IsTerminal(in),
	}
}

// Ask prints label and returns the next input line with surrounding whitespace removed.
//
// Parameters:
//   - label: Question shown to the user
//
// Returns:
//   - string: Answer (may be empty if the user just pressed enter)
//   - error: ErrNoInput when the stream is exhausted before any character is read,
//     or immediately in non-interactive mode
//
// Concurrency:
//   - Single-threaded (blocks on user input)
//
// Performance:
//   - Blocks until a full line is available
func (p *Prompter) Ask(label string) (string, error) {
	mu.RLock()
	out, st, nonInt := stdout, styles, nonInteractive
	mu.RUnlock()

	if nonInt {
		return "", ErrNoInput
	}

	fmt.Fprintf(out, "%s ", st.prompt.Render("❓ "+label))

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		fmt.Fprintln(out)
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}

	answer := strings.TrimSpace(line)
	if p.echo {
		fmt.Fprintln(out, answer)
	}
	return answer, nil
}
