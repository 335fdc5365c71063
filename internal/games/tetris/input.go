package tetris

// InputKind enumerates the discrete commands accepted by a game session.
type InputKind int

const (
	InputNone InputKind = iota
	InputMoveLeft
	InputMoveRight
	InputRotate
	InputSoftDropStart
	InputSoftDropStop
	InputTogglePause
	InputStart
)

// Input is one command from the input layer. PlayerName is only read for InputStart.
type Input struct {
	Kind       InputKind
	PlayerName string
}

// Start returns the start command for a player.
func Start(playerName string) Input {
	return Input{Kind: InputStart, PlayerName: playerName}
}

func (k InputKind) String() string {
	switch k {
	case InputNone:
		return "None"
	case InputMoveLeft:
		return "MoveLeft"
	case InputMoveRight:
		return "MoveRight"
	case InputRotate:
		return "Rotate"
	case InputSoftDropStart:
		return "SoftDropStart"
	case InputSoftDropStop:
		return "SoftDropStop"
	case InputTogglePause:
		return "TogglePause"
	case InputStart:
		return "Start"
	default:
		return "Unknown"
	}
}
