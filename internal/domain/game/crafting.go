package game

// CraftOutcome describes the resolved transition for one click on a cell.
// NewHeld and NewCellValue are only meaningful when the signal mutates.
type CraftOutcome struct {
	Signal       Signal
	NewHeld      TokenValue
	NewCellValue TokenValue
}

// ResolveInteraction is the pick-up/drop/craft transition table. It is a
// pure function of the hand and the cell value; range checks and
// persistence belong to the caller.
//
//	hand empty, cell > 0  -> pick up
//	hand empty, cell == 0 -> nothing to pick up
//	held h, cell == 0     -> drop
//	held h, cell == h     -> craft one token of value 2h
//	held h, cell != h     -> value mismatch
func ResolveInteraction(held, cellValue TokenValue) CraftOutcome {
	if held == Empty {
		if cellValue > Empty {
			return CraftOutcome{Signal: SignalPickedUp, NewHeld: cellValue, NewCellValue: Empty}
		}
		return CraftOutcome{Signal: SignalNothingToPickUp, NewHeld: held, NewCellValue: cellValue}
	}
	switch cellValue {
	case Empty:
		return CraftOutcome{Signal: SignalDropped, NewHeld: Empty, NewCellValue: held}
	case held:
		return CraftOutcome{Signal: SignalCrafted, NewHeld: held * 2, NewCellValue: Empty}
	default:
		return CraftOutcome{Signal: SignalValueMismatch, NewHeld: held, NewCellValue: cellValue}
	}
}
