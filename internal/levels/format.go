package levels

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Number   int               `yaml:"number"`
	Rooms    []YAMLRoom        `yaml:"rooms"`
	Boxes    []YAMLBox         `yaml:"boxes"`
	Cameras  []YAMLCamera      `yaml:"cameras,omitempty"`
	Items    []YAMLItem        `yaml:"items"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
	Music    string            `yaml:"music,omitempty"` // wav track, relative to the file
}

// YAMLRoom is one room. Pos is the world origin of sector (0, 0) with Y
// at the default floor.
type YAMLRoom struct {
	Pos     [3]int32     `yaml:"pos"`
	Size    [2]int32     `yaml:"size"` // sectors along X and Z
	Height  int32        `yaml:"height"`
	Flags   []string     `yaml:"flags,omitempty"`
	Flipped *int16       `yaml:"flipped,omitempty"` // alternate room index
	Box     *int16       `yaml:"box,omitempty"`     // box of every inner sector
	Open    bool         `yaml:"open,omitempty"`    // no wall ring
	Sectors []YAMLSector `yaml:"sectors,omitempty"`
}

// YAMLSector overrides a rectangle of sectors, inclusive, in room sector
// coordinates. At is shorthand for a single sector.
type YAMLSector struct {
	At      *[2]int32    `yaml:"at,omitempty"`
	Rect    *[4]int32    `yaml:"rect,omitempty"`
	Floor   *int32       `yaml:"floor,omitempty"`
	Ceiling *int32       `yaml:"ceiling,omitempty"`
	Tilt    *[2]int8     `yaml:"tilt,omitempty"`
	Wall    bool         `yaml:"wall,omitempty"`
	Box     *int16       `yaml:"box,omitempty"`
	Portal  *YAMLPortal  `yaml:"portal,omitempty"`
	Trigger *YAMLTrigger `yaml:"trigger,omitempty"`
}

// YAMLPortal links a sector to neighbouring rooms.
type YAMLPortal struct {
	Wall *int16 `yaml:"wall,omitempty"`
	Pit  *int16 `yaml:"pit,omitempty"`
	Sky  *int16 `yaml:"sky,omitempty"`
}

// YAMLTrigger is the floor data of a sector.
type YAMLTrigger struct {
	Type     string        `yaml:"type"`
	Timer    int16         `yaml:"timer,omitempty"`
	Once     bool          `yaml:"once,omitempty"`
	Mask     uint16        `yaml:"mask"` // five code bits
	Item     int16         `yaml:"item,omitempty"`
	Commands []YAMLCommand `yaml:"commands"`
}

// YAMLCommand is one trigger action.
type YAMLCommand struct {
	Kind        string `yaml:"kind"`
	Arg         int16  `yaml:"arg"`
	CameraTimer int16  `yaml:"camera_timer,omitempty"`
	CameraOnce  bool   `yaml:"camera_once,omitempty"`
	CameraHeavy bool   `yaml:"camera_heavy,omitempty"`
}

// YAMLBox is a pathing box in world sector units, upper bounds exclusive.
type YAMLBox struct {
	Left       int32   `yaml:"left"`
	Right      int32   `yaml:"right"`
	Top        int32   `yaml:"top"`
	Bottom     int32   `yaml:"bottom"`
	Height     int32   `yaml:"height"`
	FlipHeight *int32  `yaml:"flip_height,omitempty"`
	Blockable  bool    `yaml:"blockable,omitempty"`
	Overlaps   []int16 `yaml:"overlaps"`
}

// YAMLCamera is a fixed camera.
type YAMLCamera struct {
	Pos  [3]int32 `yaml:"pos"`
	Room int16    `yaml:"room"`
}

// YAMLItem places an object. Either Pos (world) or At (room sector, on
// the sector floor) gives the position.
type YAMLItem struct {
	Object   string    `yaml:"object"`
	Room     int16     `yaml:"room"`
	Pos      *[3]int32 `yaml:"pos,omitempty"`
	At       *[2]int32 `yaml:"at,omitempty"`
	Yaw      int       `yaml:"yaw,omitempty"` // degrees
	CodeBits uint16    `yaml:"code_bits,omitempty"`
	Once     bool      `yaml:"once,omitempty"`
	Reverse  bool      `yaml:"reverse,omitempty"`
}
