package lua

// CommandKind tells the enclosing block how to continue after a statement.
type CommandKind int

const (
	// CommandContinue proceeds with the next statement.
	CommandContinue CommandKind = iota
	// CommandBreak leaves the innermost loop.
	CommandBreak
	// CommandGoto jumps to Label in the current block or an enclosing one.
	CommandGoto
	// CommandReturn leaves the innermost function with Values.
	CommandReturn
	// CommandError aborts the execution with Err.
	CommandError
)

func (k CommandKind) String() string {
	switch k {
	case CommandContinue:
		return "continue"
	case CommandBreak:
		return "break"
	case CommandGoto:
		return "goto"
	case CommandReturn:
		return "return"
	}
	return "error"
}

// Command is the outcome of executing a statement. Control flow is carried
// as data up through the blocks being executed.
type Command struct {
	Kind   CommandKind
	Label  string
	Values []Value
	Err    error
	// Line is the line of the goto statement for CommandGoto.
	Line int
}

var continueCommand = Command{Kind: CommandContinue}

var breakCommand = Command{Kind: CommandBreak}

func gotoCommand(label string) Command {
	return Command{Kind: CommandGoto, Label: label}
}

func returnCommand(values []Value) Command {
	return Command{Kind: CommandReturn, Values: values}
}

func errorCommand(err error) Command {
	return Command{Kind: CommandError, Err: err}
}
