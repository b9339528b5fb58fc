package engine

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/interp"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// Frame is the committed render snapshot of the world. It holds only
// blended result poses and is safe to hand to another goroutine.
type Frame struct {
	Tick     uint64        `msgpack:"tick"`
	Ratio    float64       `msgpack:"ratio"`
	Level    string        `msgpack:"level"`
	Flipped  bool          `msgpack:"flipped"`
	Complete bool          `msgpack:"complete"`
	Camera   CameraFrame   `msgpack:"camera"`
	Lara     int16         `msgpack:"lara"`
	Hair     []core.Vec3   `msgpack:"hair,omitempty"`
	Items    []EntityFrame `msgpack:"items"`
	Effects  []EntityFrame `msgpack:"effects"`
}

// CameraFrame is the committed camera.
type CameraFrame struct {
	Type   string    `msgpack:"type"`
	Pos    core.Vec3 `msgpack:"pos"`
	Target core.Vec3 `msgpack:"target"`
	Shift  int32     `msgpack:"shift"`
	Room   int16     `msgpack:"room"`
}

// EntityFrame is one committed item or effect.
type EntityFrame struct {
	Num       int16           `msgpack:"num"`
	Object    entity.ObjectID `msgpack:"object"`
	Name      string          `msgpack:"name"`
	Room      int16           `msgpack:"room"`
	Pos       core.Vec3       `msgpack:"pos"`
	Rot       core.Rot        `msgpack:"rot"`
	State     int16           `msgpack:"state"`
	Frame     int16           `msgpack:"frame"`
	HitPoints int16           `msgpack:"hp"`
	Status    string          `msgpack:"status"`
}

// Frame builds the snapshot of the last Commit.
func (w *World) Frame() Frame {
	f := Frame{
		Tick:     w.tick,
		Ratio:    w.ratio,
		Level:    w.lvl.Name,
		Flipped:  w.lvl.FlipStatus,
		Complete: w.levelComplete,
		Lara:     w.laraNum,
		Camera: CameraFrame{
			Type:   w.camera.Type.String(),
			Pos:    w.camera.ResultPos,
			Target: w.camera.ResultTarget,
			Shift:  w.camera.ResultShift,
			Room:   w.camera.ResultRoom,
		},
	}
	if w.lara != nil {
		for _, seg := range w.lara.Hair {
			f.Hair = append(f.Hair, seg.Interp.Result.Pos)
		}
	}

	for i := range w.items.Items {
		item := &w.items.Items[i]
		if !item.InPlay() || item.Status == entity.StatusInvisible {
			continue
		}
		f.Items = append(f.Items, EntityFrame{
			Num:       item.Num,
			Object:    item.Object,
			Name:      objectName(item.Object),
			Room:      item.Room,
			Pos:       item.Interp.Result.Pos,
			Rot:       item.Interp.Result.Rot,
			State:     item.CurrentAnimState,
			Frame:     item.FrameNum,
			HitPoints: item.HitPoints,
			Status:    item.Status.String(),
		})
	}
	for _, num := range w.effects.ActiveEffects() {
		fx := w.effects.Get(num)
		f.Effects = append(f.Effects, EntityFrame{
			Num:    fx.Num,
			Object: fx.Object,
			Name:   objectName(fx.Object),
			Room:   fx.Room,
			Pos:    fx.Interp.Result.Pos,
			Rot:    fx.Interp.Result.Rot,
			Frame:  fx.FrameNum,
			Status: "active",
		})
	}
	return f
}

// Drawables converts the frame into the values object Draw slots take.
func (f Frame) Drawables() []registry.Drawable {
	out := make([]registry.Drawable, 0, len(f.Items)+len(f.Effects))
	for _, e := range f.Items {
		out = append(out, e.drawable(false))
	}
	for _, e := range f.Effects {
		out = append(out, e.drawable(true))
	}
	return out
}

func (e EntityFrame) drawable(effect bool) registry.Drawable {
	return registry.Drawable{
		Num:    e.Num,
		Object: e.Object,
		Effect: effect,
		Room:   e.Room,
		Pose:   interp.Pose{Pos: e.Pos, Rot: e.Rot},
		State:  e.State,
		Frame:  e.Frame,
	}
}

// Draw renders every entity of the frame through its object's Draw slot.
func (f Frame) Draw(canvas *core.Canvas) {
	for _, d := range f.Drawables() {
		if obj, ok := registry.Lookup(d.Object); ok {
			obj.Behavior.Draw(d, canvas)
		}
	}
}

// FrameEncoder streams frames as consecutive msgpack values.
type FrameEncoder struct {
	enc *msgpack.Encoder
}

// NewFrameEncoder creates an encoder writing to w.
func NewFrameEncoder(w io.Writer) *FrameEncoder {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return &FrameEncoder{enc: enc}
}

// Encode writes one frame.
func (e *FrameEncoder) Encode(f Frame) error {
	return e.enc.Encode(f)
}

// DecodeFrames reads every frame from r.
func DecodeFrames(r io.Reader) ([]Frame, error) {
	dec := msgpack.NewDecoder(r)
	var frames []Frame
	for {
		var f Frame
		if err := dec.Decode(&f); err != nil {
			if err == io.EOF {
				return frames, nil
			}
			return frames, err
		}
		frames = append(frames, f)
	}
}
