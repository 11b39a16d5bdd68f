/*
Package schema implements the portable wire format for Fireside decks.

A deck document is YAML with kebab-case field names: a root object carrying
deck metadata and an ordered list of node objects, where each content block
is a tagged object discriminated by a "kind" field. Parsing is a data
contract only; validation of meaning (dangling references, unreachable
nodes) belongs to the validate package, not the parser.

The package also owns the reverse direction: Marshal serializes an
in-memory graph back to the document form, which is how "saving" happens.
Everything Parse accepts must survive a Marshal/Parse round trip, opaque
extension payloads included.
*/
package schema
