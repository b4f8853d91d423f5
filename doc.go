/*
Package hydro is an in-memory entity/component store.

A Universe creates Worlds. A World holds entities: each entity is a bag of typed component values plus a set of
shared values stored once for every entity inserted alongside it. Entities with the same component types and the
same shared values live together in an archetype, one densely packed column per component type.

	universe, err := hydro.NewUniverse()
	world := universe.CreateWorld()

	entities, err := world.InsertFrom(
		hydro.Tuple{Static{}, Model(5)},
		[]hydro.Tuple{
			{Pos{1, 2, 3}, Rot{0.1, 0.2, 0.3}},
			{Pos{4, 5, 6}, Rot{0.4, 0.5, 0.6}},
		},
	)

	pos, ok := hydro.Component[Pos](world, entities[1])
	model, ok := hydro.Shared[Model](world, entities[0])
	world.Delete(entities[0])

Entities are identified by an index and a generation. Deleting an entity bumps its generation, so an old handle
never reports alive again (until the 16-bit generation wraps). Storage stays dense: deletion moves the last row of
the archetype into the hole and updates the moved entity's location.

A World has a single writer. InsertFrom and Delete must not run concurrently with anything else on the same World;
the lookups may run concurrently with each other.
*/
package hydro
