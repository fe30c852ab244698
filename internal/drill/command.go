package drill

import "strings"

// Command is an in-session instruction typed at the answer prompt.
type Command int

const (
	// CmdSave writes a checkpoint of the session and keeps drilling.
	CmdSave Command = iota + 1
	// CmdSkipNeutral reveals the answer and moves on without scoring.
	CmdSkipNeutral
	// CmdSkipCorrect reveals the answer and credits one point.
	CmdSkipCorrect
	// CmdToggleSkip is reserved.
	CmdToggleSkip
)

var commandTokens = map[string]Command{
	"1": CmdSave,
	"2": CmdSkipNeutral,
	"3": CmdSkipCorrect,
	"4": CmdToggleSkip,
}

// ParseCommand reports whether input is a command token.
func ParseCommand(input string) (Command, bool) {
	cmd, ok := commandTokens[strings.TrimSpace(input)]
	return cmd, ok
}

func (c Command) String() string {
	switch c {
	case CmdSave:
		return "save"
	case CmdSkipNeutral:
		return "skip"
	case CmdSkipCorrect:
		return "skip-correct"
	case CmdToggleSkip:
		return "toggle-skip"
	}
	return "unknown"
}

// Help is the one-line command reference shown under each prompt.
const Help = "1 save · 2 skip · 3 skip as correct · 4 toggle skip"
