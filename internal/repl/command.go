package repl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Action is what a command asks the session to do
type Action int

const (
	ActionListAll Action = iota
	ActionShowOne
	ActionHelp
	ActionExit
)

var (
	// ErrInvalidChoice is returned for tokens outside the command set
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrInvalidID is returned when "get <id>" names something other than a positive integer
	ErrInvalidID = errors.New("invalid book id")
)

// shortcutIDs are the bare tokens that fetch a single book
var shortcutIDs = map[string]int{"1": 1, "2": 2, "3": 3}

// Command is a parsed line of user input
type Command struct {
	Action Action
	ID     int
}

// String returns the canonical form of the command, as stored in history
func (c Command) String() string {
	switch c.Action {
	case ActionListAll:
		return "get"
	case ActionShowOne:
		return fmt.Sprintf("get %d", c.ID)
	case ActionHelp:
		return "help"
	case ActionExit:
		return "exit"
	default:
		return "unknown"
	}
}

// ParseCommand trims line and matches it against the command set. Matching
// is case-sensitive.
func ParseCommand(line string) (Command, error) {
	token := strings.TrimSpace(line)

	switch token {
	case "get":
		return Command{Action: ActionListAll}, nil
	case "exit":
		return Command{Action: ActionExit}, nil
	case "help":
		return Command{Action: ActionHelp}, nil
	}

	if id, ok := shortcutIDs[token]; ok {
		return Command{Action: ActionShowOne, ID: id}, nil
	}

	fields := strings.Fields(token)
	if len(fields) == 2 && fields[0] == "get" {
		id, err := strconv.Atoi(fields[1])
		if err != nil || id <= 0 {
			return Command{}, fmt.Errorf("%w %q: must be a positive integer", ErrInvalidID, fields[1])
		}
		return Command{Action: ActionShowOne, ID: id}, nil
	}

	return Command{}, ErrInvalidChoice
}
