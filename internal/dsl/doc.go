// Package dsl declares text-adventure worlds with nested, scoped builders
// and compiles them into a models.GameConfiguration.
//
// Every scope is used exactly once: it is configured, then built. A child
// scope is opened by a method on its parent that takes an init function,
// and is built and folded into the parent before the method returns:
//
//	cfg := dsl.Game("start", func(g *dsl.GameScope) {
//		g.Room("start", func(r *dsl.RoomScope) {
//			r.Item("key", func(i *dsl.ItemScope) {
//				i.Storable = true
//				i.Matchers("key")
//			})
//		})
//	})
//
// Builders return a primary record together with the entities created as a
// side effect of nested declarations (dialogue rewards, room contents).
// Parents append those side lists to their own in declaration order and
// never deduplicate them.
//
// Configuration methods called after Build panic with a *LifecycleError,
// as does a second Build of a room, character, dialogue, question or game.
// Exported fields such as Name or Storable cannot detect late assignment:
// after Build they are ignored. Item, direction, answer, metadata, player
// and winning-condition scopes may be built repeatedly and always return
// copies of the record fixed by their first Build.
//
// The package does not validate identifiers. Duplicates and dangling
// references are carried into the configuration unchanged; see package
// validate for the downstream checks.
package dsl
