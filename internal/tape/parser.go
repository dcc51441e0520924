package tape

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Gaurav-Gosain/tuidesk/internal/geometry"
)

// ParseError locates a failure in a script.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFile reads and parses the script at path.
func ParseFile(path string) ([]Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// ParseString parses a script held in memory.
func ParseString(s string) ([]Command, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads a script. Blank lines and lines starting with # are skipped.
// The first bad line stops parsing with a *ParseError.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, err := parseLine(text)
		if err != nil {
			return nil, &ParseError{Line: line, Text: text, Err: err}
		}
		cmd.Line = line
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return cmds, nil
}

// arity is the number of arguments each command takes.
var arity = map[CommandType]int{
	CommandTypeOpen:         1,
	CommandTypeClose:        1,
	CommandTypeMinimize:     1,
	CommandTypeMaximize:     1,
	CommandTypeFocus:        1,
	CommandTypeTaskbarClick: 1,
	CommandTypeNextWindow:   0,
	CommandTypePrevWindow:   0,
	CommandTypeStartMenu:    0,
	CommandTypeShutdown:     0,
	CommandTypeDrag:         3,
	CommandTypeResize:       4,
	CommandTypeViewport:     2,
	CommandTypeIconDrag:     3,
	CommandTypeIconOpen:     1,
	CommandTypeSleep:        1,
}

func parseLine(text string) (Command, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return Command{}, err
	}
	typ, ok := LookupCommand(tokens[0])
	if !ok {
		return Command{}, fmt.Errorf("%w %s", ErrUnknownCommand, tokens[0])
	}
	cmd := Command{Type: typ, Args: tokens[1:]}

	switch n := arity[typ]; {
	case len(cmd.Args) < n:
		return Command{}, fmt.Errorf("%w: %s takes %d", ErrMissingArgument, typ, n)
	case len(cmd.Args) > n:
		return Command{}, fmt.Errorf("%w: %s takes %d, got %d", ErrInvalidArgument, typ, n, len(cmd.Args))
	}

	a := cmd.Args
	switch typ {
	case CommandTypeOpen, CommandTypeClose, CommandTypeMinimize, CommandTypeMaximize,
		CommandTypeFocus, CommandTypeTaskbarClick:
		cmd.Key = a[0]

	case CommandTypeDrag:
		cmd.Key = a[0]
		cmd.Delta, err = parsePoint(a[1], a[2])

	case CommandTypeResize:
		cmd.Key = a[0]
		if cmd.Edges, ok = geometry.ParseEdge(a[1]); !ok {
			return Command{}, fmt.Errorf("%w: edge %q", ErrInvalidArgument, a[1])
		}
		cmd.Delta, err = parsePoint(a[2], a[3])

	case CommandTypeViewport:
		var p geometry.Point
		if p, err = parsePoint(a[0], a[1]); err == nil {
			if p.X <= 0 || p.Y <= 0 {
				return Command{}, fmt.Errorf("%w: viewport %dx%d", ErrInvalidArgument, p.X, p.Y)
			}
			cmd.Size = geometry.Viewport{Width: p.X, Height: p.Y}
		}

	case CommandTypeIconDrag:
		if cmd.IconID, err = parseInt(a[0]); err == nil {
			cmd.Point, err = parsePoint(a[1], a[2])
		}

	case CommandTypeIconOpen:
		cmd.IconID, err = parseInt(a[0])

	case CommandTypeSleep:
		cmd.Duration, err = parseDuration(a[0])
	}
	if err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// tokenize splits on whitespace. Double-quoted tokens use Go escapes.
func tokenize(text string) ([]string, error) {
	var tokens []string
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '"':
			end := i + 1
			for end < len(text) && text[end] != '"' {
				if text[end] == '\\' {
					end++
				}
				end++
			}
			if end >= len(text) {
				return nil, ErrUnterminatedQuote
			}
			s, err := strconv.Unquote(text[i : end+1])
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, text[i:end+1])
			}
			tokens = append(tokens, s)
			i = end + 1
		default:
			end := strings.IndexFunc(text[i:], unicode.IsSpace)
			if end < 0 {
				end = len(text) - i
			}
			tokens = append(tokens, text[i:i+end])
			i += end
		}
	}
	return tokens, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidArgument, s)
	}
	return v, nil
}

func parsePoint(xs, ys string) (geometry.Point, error) {
	x, err := parseInt(xs)
	if err != nil {
		return geometry.Point{}, err
	}
	y, err := parseInt(ys)
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.Point{X: x, Y: y}, nil
}

// parseDuration accepts Go durations and bare millisecond counts.
func parseDuration(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("%w: negative sleep %s", ErrInvalidArgument, s)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: duration %q", ErrInvalidArgument, s)
	}
	return d, nil
}
