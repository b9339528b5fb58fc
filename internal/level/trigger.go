package level

// TriggerType says what activates a floor trigger.
type TriggerType uint8

const (
	TriggerPlain TriggerType = iota
	TriggerPad
	TriggerSwitch
	TriggerKey
	TriggerPickup
	TriggerHeavy
	TriggerAntipad
	TriggerCombat
	TriggerDummy
)

// String returns the trigger type name used in level files.
func (t TriggerType) String() string {
	switch t {
	case TriggerPlain:
		return "trigger"
	case TriggerPad:
		return "pad"
	case TriggerSwitch:
		return "switch"
	case TriggerKey:
		return "key"
	case TriggerPickup:
		return "pickup"
	case TriggerHeavy:
		return "heavy"
	case TriggerAntipad:
		return "antipad"
	case TriggerCombat:
		return "combat"
	case TriggerDummy:
		return "dummy"
	default:
		return "unknown"
	}
}

// ParseTriggerType is the inverse of TriggerType.String.
func ParseTriggerType(s string) (TriggerType, bool) {
	for t := TriggerPlain; t <= TriggerDummy; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// CommandKind says what a trigger command acts on.
type CommandKind uint8

const (
	CmdObject CommandKind = iota
	CmdCamera
	CmdFlipMap
	CmdFlipOn
	CmdFlipOff
	CmdLookAt
	CmdFloor
	CmdEndLevel
)

// String returns the command kind name used in level files.
func (k CommandKind) String() string {
	switch k {
	case CmdObject:
		return "object"
	case CmdCamera:
		return "camera"
	case CmdFlipMap:
		return "flipmap"
	case CmdFlipOn:
		return "flip_on"
	case CmdFlipOff:
		return "flip_off"
	case CmdLookAt:
		return "look_at"
	case CmdFloor:
		return "floor"
	case CmdEndLevel:
		return "end_level"
	default:
		return "unknown"
	}
}

// ParseCommandKind is the inverse of CommandKind.String.
func ParseCommandKind(s string) (CommandKind, bool) {
	for k := CmdObject; k <= CmdEndLevel; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Command is one action of a trigger.
type Command struct {
	Kind CommandKind
	// Arg is the item, camera, flip slot or new floor height.
	Arg int16

	// Camera options, used by CmdCamera.
	CameraTimer int16
	CameraOnce  bool
	CameraHeavy bool
}

// Trigger is the decoded floor data of a sector.
type Trigger struct {
	Type    TriggerType
	Timer   int16
	OneShot bool
	// Mask holds code bits in item flag units.
	Mask uint16
	// Item is the switch or key item for those trigger types.
	Item     int16
	Commands []Command
}

// Objects returns the item numbers named by object commands, in order.
// These are the items consulted for dynamic floor and ceiling heights.
func (t *Trigger) Objects() []int16 {
	if t == nil {
		return nil
	}
	var items []int16
	for _, c := range t.Commands {
		if c.Kind == CmdObject {
			items = append(items, c.Arg)
		}
	}
	return items
}
