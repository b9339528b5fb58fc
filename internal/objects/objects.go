// Package objects links every object behaviour into the registry. Import it
// for its side effects before building a world.
package objects

import (
	_ "github.com/vovakirdan/tomb-engine/internal/objects/creatures"
	_ "github.com/vovakirdan/tomb-engine/internal/objects/effects"
	_ "github.com/vovakirdan/tomb-engine/internal/objects/general"
	_ "github.com/vovakirdan/tomb-engine/internal/objects/lara"
)
