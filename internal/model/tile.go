package model

// Tile is the value stored per observed map cell. Unknown is the zero
// value, returned for any position the map has never observed; once a
// cell is observed as something else it is never replaced by Unknown
// again (the map enforces this, not the enum).
type Tile int

const (
	Unknown Tile = iota
	Empty
	Wall
	Exit
	Sword
	Health
	Boulder
	KeyRed
	KeyGreen
	KeyBlue
	DoorRed
	DoorGreen
	DoorBlue
	PlateRed
	PlateGreen
	PlateBlue
	Enemy
	Player1
	Player2
)

func (t Tile) String() string {
	switch t {
	case Unknown:
		return "Unknown"
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case Exit:
		return "Exit"
	case Sword:
		return "Sword"
	case Health:
		return "Health"
	case Boulder:
		return "Boulder"
	case KeyRed:
		return "KeyRed"
	case KeyGreen:
		return "KeyGreen"
	case KeyBlue:
		return "KeyBlue"
	case DoorRed:
		return "DoorRed"
	case DoorGreen:
		return "DoorGreen"
	case DoorBlue:
		return "DoorBlue"
	case PlateRed:
		return "PlateRed"
	case PlateGreen:
		return "PlateGreen"
	case PlateBlue:
		return "PlateBlue"
	case Enemy:
		return "Enemy"
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return "Invalid"
	}
}

// KeyForColor returns the key tile for c.
func KeyForColor(c Color) Tile {
	switch c {
	case Red:
		return KeyRed
	case Green:
		return KeyGreen
	default:
		return KeyBlue
	}
}

// DoorForColor returns the door tile for c.
func DoorForColor(c Color) Tile {
	switch c {
	case Red:
		return DoorRed
	case Green:
		return DoorGreen
	default:
		return DoorBlue
	}
}

// PlateForColor returns the pressure-plate tile for c.
func PlateForColor(c Color) Tile {
	switch c {
	case Red:
		return PlateRed
	case Green:
		return PlateGreen
	default:
		return PlateBlue
	}
}
