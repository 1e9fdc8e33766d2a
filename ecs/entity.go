package ecs

import "fmt"

// Entity is a world-local handle. The low 32 bits hold a 1-based slot id and
// the high 32 bits the slot's generation, so a handle to a destroyed entity
// never aliases the entity that later reuses its slot.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String formats e as id.generation for logs and tetra3d node names.
func (e Entity) String() string {
	return fmt.Sprintf("%d.%d", e.id(), e.generation())
}

// Valid reports whether e was ever handed out by a world.
func (e Entity) Valid() bool {
	return e > 0
}
