package level

// Flip flag bits as stored per slot. The code bits line up with the item
// flag code bits shifted down by eight.
const (
	FlipOneShot  uint8 = 0x01
	FlipCodeBits uint8 = 0x3E
)

// FlipMap swaps every room that has an alternate with that alternate and
// toggles FlipStatus. Each slot keeps its index, its resident item and
// effect lists and its link to the alternate, so a second call restores
// the previous state exactly.
//
// before and after, when non-nil, are called with each flipping room so the
// caller can let resident objects react to the swap.
func (l *Level) FlipMap(before, after func(room int16)) {
	for i := range l.Rooms {
		r := &l.Rooms[i]
		if r.FlippedRoom == NoRoom || !l.ValidRoom(r.FlippedRoom) {
			continue
		}
		if before != nil {
			before(r.Index)
		}

		f := &l.Rooms[r.FlippedRoom]
		*r, *f = *f, *r

		// Slot identity stays put; only geometry moves.
		r.Index, f.Index = f.Index, r.Index
		r.FlippedRoom, f.FlippedRoom = f.FlippedRoom, r.FlippedRoom
		r.ItemHead, f.ItemHead = f.ItemHead, r.ItemHead
		r.EffectHead, f.EffectHead = f.EffectHead, r.EffectHead

		if after != nil {
			after(r.Index)
		}
	}
	l.FlipStatus = !l.FlipStatus
}

// FlippingRooms lists the rooms that FlipMap will swap.
func (l *Level) FlippingRooms() []int16 {
	var rooms []int16
	for i := range l.Rooms {
		if l.Rooms[i].FlippedRoom != NoRoom && l.ValidRoom(l.Rooms[i].FlippedRoom) {
			rooms = append(rooms, l.Rooms[i].Index)
		}
	}
	return rooms
}

// FlipTrigger applies a flip-map trigger command to slot and reports
// whether the map must be flipped. mask carries code bits in item flag
// units; switches toggle the bits, other triggers set them.
func (l *Level) FlipTrigger(slot int, mask uint16, isSwitch, oneShot bool) bool {
	if slot < 0 || slot >= MaxFlipMaps {
		return false
	}
	flags := &l.FlipFlags[slot]
	if *flags&FlipOneShot != 0 {
		return false
	}
	bits := uint8(mask>>8) & FlipCodeBits
	if isSwitch {
		*flags ^= bits
	} else {
		*flags |= bits
	}

	if *flags&FlipCodeBits == FlipCodeBits {
		if oneShot {
			*flags |= FlipOneShot
		}
		return !l.FlipStatus
	}
	return l.FlipStatus
}

// FlipOnRequested reports whether a flip-on command for slot should flip.
func (l *Level) FlipOnRequested(slot int) bool {
	if slot < 0 || slot >= MaxFlipMaps {
		return false
	}
	return l.FlipFlags[slot]&FlipCodeBits == FlipCodeBits && !l.FlipStatus
}

// FlipOffRequested reports whether a flip-off command for slot should flip.
func (l *Level) FlipOffRequested(slot int) bool {
	if slot < 0 || slot >= MaxFlipMaps {
		return false
	}
	return l.FlipFlags[slot]&FlipCodeBits == FlipCodeBits && l.FlipStatus
}
