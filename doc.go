/*
Package fireside is the reference engine for the Fireside deck format: a
portable directed graph of presentation/lesson nodes.

The library is organized around four cores that the Session type ties
together:

  - pkg/domain: the graph store, an ordered node sequence plus an id
    index that is rebuilt after every structural change.
  - pkg/validate: structural diagnostics (dangling references, malformed
    branch points, unreachable nodes) without mutation.
  - pkg/traversal: the navigation state machine (Advance, Choose, Jump,
    Back) with a bounded visit history.
  - pkg/command: typed, invertible mutations with undo/redo stacks.

A minimal presenting loop:

	session, err := fireside.LoadFile("deck.yaml")
	if err != nil {
		log.Fatal(err)
	}
	for {
		render(session.Current())
		if res := session.Advance(); !res.Moved {
			break
		}
	}

The core performs no I/O beyond loading the document handed to it and is
single-threaded by design; hosts that share a Session across goroutines
must serialize access themselves.
*/
package fireside
