/*
Package silo provides a columnar Entity-Component-System (ECS) data store for games and simulations.

Silo keeps each component type in its own column, tracks presence with one bitset per column,
and finds the entities that hold a set of components by intersecting those bitsets. Every
piece of state, including the registries and the aspect index, lives in a resource container
that checks borrows at runtime: any number of readers or exactly one writer per resource.

Core Concepts:

  - Entity: A reusable integer id that carries no data itself.
  - Component: Plain data attached to an entity, stored in a per-type column.
  - Resource: A singleton value held by the world and borrowed through handles.
  - Aspect: The components an entity must have and must not have.
  - System: Logic run once per dispatch over the entities matching its aspect.

Basic Usage:

	world := silo.Factory.NewWorld()

	// Register components
	position := silo.RegisterComponent[Position](world)
	velocity := silo.RegisterComponent[Velocity](world)

	// Create entities
	for range 100 {
		ed := world.Create()
		silo.Add(ed, Position{})
		silo.Add(ed, Velocity{X: 1, Y: 1})
	}

	// Join columns directly
	pos, vel := position.Write(), velocity.Read()
	for _, row := range silo.Join2(pos.Get(), vel.Get()) {
		row.A.X += row.B.X
		row.A.Y += row.B.Y
	}
	vel.Release()
	pos.Release()

Systems declare the resources they borrow. Inside Process, change values in place through the
borrowed columns and request structural changes (adding, removing, destroying) through the
Enqueue methods; they are applied once the system returns.

	move := silo.NewSystem("move", silo.All{silo.Has[Position]{}, silo.Has[Velocity]{}},
		func(ctx silo.Context, dt time.Duration, entities []silo.Entity) {
			pos := position.Storage(ctx.Borrows())
			vel := velocity.Storage(ctx.Borrows())
			for _, en := range entities {
				p, _ := pos.GetMut(en)
				v, _ := vel.Get(en)
				p.X += v.X
			}
		}, position.Writes(), velocity.Reads())
	world.RegisterSystem(move)
	world.Dispatch(16 * time.Millisecond)
*/
package silo
