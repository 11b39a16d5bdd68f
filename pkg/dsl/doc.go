/*
Package dsl provides a fluent builder for constructing decks in Go code
instead of YAML. This is useful for generated decks, unit tests, and
anywhere IDE autocompletion beats editing a document by hand.

Example usage:

	deck := dsl.New("Intro to Graphs")

	deck.Node("intro").
		Heading(1, "Intro to Graphs").
		Text("A gentle walk through graph theory.")

	deck.Node("decision").
		Ask("Pick a track").
		Option('b', "Beginner", "basics").
		Option('d', "Deep dive", "advanced")

	deck.Node("basics").Text("Start simple.").After("summary")
	deck.Node("advanced").Text("Into the weeds.").After("summary")
	deck.Node("summary").Text("That is all.")

	g, err := deck.Build()
	// ... wrap g in a fireside.Session
*/
package dsl
