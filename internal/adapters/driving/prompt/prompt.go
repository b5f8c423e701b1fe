// Package prompt reads validated values from a line-oriented terminal.
//
// Every helper loops until the input is acceptable, printing an error line
// after each rejected attempt. End of input stops the loop with an error
// wrapping io.EOF.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Default prompts and error messages.
const (
	IntError       = "That is not a whole number"
	FloatError     = "That is not a decimal number"
	StringError    = "String must not be empty"
	YesNoError     = "You must enter a variant of a yes or no answer"
	PasswordPrompt = "\nEnter new password: "
	PasswordVerify = "Re-enter new password: "
	PasswordError  = "\nPasswords must match and/or not be empty"
	SelectError    = "That is not a valid selection"
	AmbiguousError = "That matches more than one selection, enter it exactly"
)

// Prompter reads answers from in and writes prompts to out.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	secret func() (string, error)
}

// New creates a prompter over plain streams. Passwords are echoed.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// NewTerminal creates a prompter that hides password input when in is a
// terminal.
func NewTerminal(in *os.File, out io.Writer) *Prompter {
	p := New(in, out)
	if term.IsTerminal(int(in.Fd())) {
		p.secret = func() (string, error) {
			b, err := term.ReadPassword(int(in.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return string(b), nil
		}
	}
	return p
}

// Writer returns the output stream.
func (p *Prompter) Writer() io.Writer {
	return p.out
}

// Println writes a line to the output stream.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes formatted output.
func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Line prints prompt and returns the next line without its line ending.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Pause waits for the user to press Enter.
func (p *Prompter) Pause() error {
	_, err := p.Line("\nPress <Enter> to continue: ")
	return err
}

func (p *Prompter) hidden(prompt string) (string, error) {
	if p.secret == nil {
		return p.Line(prompt)
	}
	fmt.Fprint(p.out, prompt)
	s, err := p.secret()
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return s, nil
}

// Bound is a numeric constraint checked after parsing.
type Bound struct {
	check func(float64) bool
	msg   string
}

// AtMost requires value <= n.
func AtMost(n float64) Bound {
	return Bound{func(v float64) bool { return v <= n }, fmt.Sprintf("Value must be less than or equal to %v", n)}
}

// Below requires value < n.
func Below(n float64) Bound {
	return Bound{func(v float64) bool { return v < n }, fmt.Sprintf("Value must be less than %v", n)}
}

// AtLeast requires value >= n.
func AtLeast(n float64) Bound {
	return Bound{func(v float64) bool { return v >= n }, fmt.Sprintf("Value must be greater than or equal to %v", n)}
}

// Above requires value > n.
func Above(n float64) Bound {
	return Bound{func(v float64) bool { return v > n }, fmt.Sprintf("Value must be greater than %v", n)}
}

// Range requires lo <= value <= hi.
func Range(lo, hi float64) []Bound {
	return []Bound{AtMost(hi), AtLeast(lo)}
}

// firstFailure returns the message of the first bound v violates.
func firstFailure(v float64, bounds []Bound) (string, bool) {
	for _, b := range bounds {
		if !b.check(v) {
			return b.msg, true
		}
	}
	return "", false
}

// Int reads a whole number satisfying every bound.
func (p *Prompter) Int(prompt string, bounds ...Bound) (int, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			p.Println(IntError)
			continue
		}
		if msg, failed := firstFailure(float64(n), bounds); failed {
			p.Println(msg)
			continue
		}
		return n, nil
	}
}

// Float reads a decimal number satisfying every bound.
func (p *Prompter) Float(prompt string, bounds ...Bound) (float64, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			p.Println(FloatError)
			continue
		}
		if msg, failed := firstFailure(f, bounds); failed {
			p.Println(msg)
			continue
		}
		return f, nil
	}
}

// String reads a non-empty line. errMsg replaces the default error if set.
func (p *Prompter) String(prompt, errMsg string) (string, error) {
	if errMsg == "" {
		errMsg = StringError
	}
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		p.Println(errMsg)
	}
}

// YesNo reads y/yes or n/no in any case.
func (p *Prompter) YesNo(prompt string) (bool, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.Println(YesNoError)
	}
}

// Password reads a new password twice. Both entries must match and be
// non-empty.
func (p *Prompter) Password() (string, error) {
	for {
		pw, err := p.hidden(PasswordPrompt)
		if err != nil {
			return "", err
		}
		verify, err := p.hidden(PasswordVerify)
		if err != nil {
			return "", err
		}
		if pw != "" && pw == verify {
			return pw, nil
		}
		p.Println(PasswordError)
	}
}

// Select reads one of choices and returns the canonical spelling. Case is
// ignored unless two choices differ only by case, in which case the answer
// must match one of them exactly.
func (p *Prompter) Select(prompt string, choices []string) (string, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return "", err
		}
		c, n := match(strings.TrimSpace(line), choices)
		switch {
		case n == 1:
			return c, nil
		case n > 1:
			p.Println(AmbiguousError)
		default:
			p.Println(SelectError)
		}
	}
}

// match returns the choice equal to s and 1, or the number of choices equal
// to s ignoring case with the first of them.
func match(s string, choices []string) (string, int) {
	var first string
	n := 0
	for _, c := range choices {
		if c == s {
			return c, 1
		}
		if strings.EqualFold(c, s) {
			if n == 0 {
				first = c
			}
			n++
		}
	}
	return first, n
}

// FormatChoices renders choices as "[a, b, c]".
func FormatChoices(choices []string) string {
	return "[" + strings.Join(choices, ", ") + "]"
}
