/*
Package domain contains the core data model for a Fireside deck.

It defines the fundamental entities of the format: Nodes (the unit of
navigation), Blocks (the typed content inside a node), the Traversal
override record (next, after, branch points) and the Graph itself, which is
the ordered node sequence plus its derived id to position index. This
package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Node: a single vertex of content; owned exclusively by the Graph.
  - Block: one typed unit of renderable material (heading, code, list...).
  - Traversal: per-node overrides controlling how Advance resolves.
  - Graph: metadata + node sequence + id index. The index invariant is
    that every non-empty id maps to the node's true position; it is
    rebuilt after every structural mutation, never patched in place.
*/
package domain
