package engine

import (
	"fmt"
	"strconv"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"

	"github.com/vovakirdan/tomb-engine/internal/entity"
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

// dispatch runs one behaviour slot of an entity. A panic inside the slot is
// recovered, logged, reported and the entity is killed; it never reaches
// the tick.
func (w *World) dispatch(slot string, num int16, effect bool, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			w.fault(slot, num, effect, r)
		}
	}()
	fn()
}

func (w *World) fault(slot string, num int16, effect bool, r any) {
	w.faults++

	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("slot", slot)
	data.Set("tick", w.tick)
	if effect {
		data.Set("effect", num)
		if fx := w.effects.Get(num); fx != nil {
			data.Set("object", objectName(fx.Object))
		}
	} else {
		data.Set("item", num)
		if item := w.items.Get(num); item != nil {
			data.Set("object", objectName(item.Object))
			data.Set("room", item.Room)
		}
	}

	kv := make([]any, 0, data.Len()*2+2)
	for _, key := range data.Keys() {
		v, _ := data.Get(key)
		kv = append(kv, key, v)
	}
	kv = append(kv, "panic", r)
	w.log.Error("entity fault", kv...)

	if w.hub != nil {
		hub := w.hub.Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			for _, key := range data.Keys() {
				v, _ := data.Get(key)
				scope.SetTag(key, fmt.Sprint(v))
			}
		})
		hub.Recover(fmt.Errorf("entity fault: %v", r))
		hub.Flush(time.Second)
	}

	if effect {
		w.effects.Kill(num)
	} else if num == w.laraNum {
		// The player is never removed; freeze it instead.
		w.items.Get(num).Speed = 0
	} else {
		w.KillItem(num)
	}
}

func objectName(id entity.ObjectID) string {
	if o, ok := registry.Lookup(id); ok {
		return o.Name
	}
	return strconv.Itoa(int(id))
}
