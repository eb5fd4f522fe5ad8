package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnknownPosition = errors.New("unknown roster position")
	ErrDuplicatePlayer = errors.New("player already on roster")
	ErrInvalidPlayer   = errors.New("invalid player record")
)

// Position is one of the nine fixed fantasy baseball roster slots.
type Position string

const (
	PositionPitcher     Position = "P"
	PositionCatcher     Position = "C"
	PositionFirstBase   Position = "1B"
	PositionSecondBase  Position = "2B"
	PositionThirdBase   Position = "3B"
	PositionShortstop   Position = "SS"
	PositionLeftField   Position = "LF"
	PositionCenterField Position = "CF"
	PositionRightField  Position = "RF"
)

// PositionTwoWay is the remote abbreviation for two-way players. It is not a
// roster slot, but it qualifies for PositionPitcher.
const PositionTwoWay = "TWP"

const SlotCount = 9

// positionOrder follows the 1-9 scorekeeping numbering.
var positionOrder = [SlotCount]Position{
	PositionPitcher,
	PositionCatcher,
	PositionFirstBase,
	PositionSecondBase,
	PositionThirdBase,
	PositionShortstop,
	PositionLeftField,
	PositionCenterField,
	PositionRightField,
}

var AllPositions = func() map[Position]int {
	out := make(map[Position]int, SlotCount)
	for i, pos := range positionOrder {
		out[pos] = i + 1
	}
	return out
}()

// Positions returns every slot in numbering order.
func Positions() []Position {
	out := make([]Position, SlotCount)
	copy(out, positionOrder[:])
	return out
}

func PositionFromNumber(n int) (Position, error) {
	if n < 1 || n > SlotCount {
		return "", fmt.Errorf("%w: number %d", ErrUnknownPosition, n)
	}
	return positionOrder[n-1], nil
}

func ParsePosition(raw string) (Position, error) {
	pos := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := AllPositions[pos]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
	}
	return pos, nil
}

func (p Position) Number() int {
	return AllPositions[p]
}

func (p Position) Valid() bool {
	_, ok := AllPositions[p]
	return ok
}

func (p Position) String() string {
	return string(p)
}

// Player is the persisted reference to a remote player. The name is display
// only and may go stale.
type Player struct {
	Name string `json:"name" validate:"required,max=200"`
	ID   int64  `json:"id" validate:"gt=0"`
}

var validate = validator.New()

func (p Player) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPlayer, err)
	}
	return nil
}

func (p Player) String() string {
	return fmt.Sprintf("%s (%d)", p.Name, p.ID)
}

// Roster maps each filled slot to its player.
type Roster map[Position]Player

type Entry struct {
	Position Position
	Player   Player
}

func New() Roster {
	return make(Roster, SlotCount)
}

func (r Roster) Get(pos Position) (Player, bool) {
	item, ok := r[pos]
	return item, ok
}

func (r Roster) Set(pos Position, item Player) error {
	if !pos.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPosition, pos)
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if holder, ok := r.HoldsPlayer(item.ID); ok && holder != pos {
		return fmt.Errorf("%w: %s already plays %s", ErrDuplicatePlayer, item.Name, holder)
	}
	r[pos] = item
	return nil
}

// HoldsPlayer returns the slot already occupied by playerID.
func (r Roster) HoldsPlayer(playerID int64) (Position, bool) {
	for _, pos := range positionOrder {
		if item, ok := r[pos]; ok && item.ID == playerID {
			return pos, true
		}
	}
	return "", false
}

func (r Roster) Len() int {
	return len(r)
}

func (r Roster) Complete() bool {
	for _, pos := range positionOrder {
		if _, ok := r[pos]; !ok {
			return false
		}
	}
	return true
}

// Entries lists filled slots in numbering order.
func (r Roster) Entries() []Entry {
	out := make([]Entry, 0, len(r))
	for _, pos := range positionOrder {
		if item, ok := r[pos]; ok {
			out = append(out, Entry{Position: pos, Player: item})
		}
	}
	return out
}

func (r Roster) Clone() Roster {
	out := make(Roster, len(r))
	for pos, item := range r {
		out[pos] = item
	}
	return out
}
