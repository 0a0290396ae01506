// Package plantuml renders transition lifecycles as PlantUML state diagrams.
package plantuml

import (
	"fmt"
	"io"
	"strings"

	"github.com/stateforward/go-kenburns/transition"
)

func idFromQualifiedName(qualifiedName string) string {
	return strings.ReplaceAll(strings.ReplaceAll(strings.TrimPrefix(strings.TrimPrefix(qualifiedName, "/"), "."), "-", "_"), "/", ".")
}

func generateStates(builder *strings.Builder, depth int, edges []transition.Edge, active map[transition.State]int) {
	indent := strings.Repeat(" ", depth*2)
	visited := map[transition.State]struct{}{}
	visit := func(state transition.State) {
		if _, ok := visited[state]; ok {
			return
		}
		visited[state] = struct{}{}
		id := idFromQualifiedName(state.String())
		fmt.Fprintf(builder, "%sstate %s\n", indent, id)
		if count := active[state]; count > 0 {
			fmt.Fprintf(builder, "%sstate %s: %d active\n", indent, id, count)
		}
	}
	for _, edge := range edges {
		visit(edge.Source)
		visit(edge.Target)
	}
}

func generateTransition(builder *strings.Builder, depth int, edge transition.Edge) {
	label := ""
	if edge.Trigger != "" {
		label = fmt.Sprintf(" : %s", idFromQualifiedName(edge.Trigger))
	}
	indent := strings.Repeat(" ", depth*2)
	fmt.Fprintf(builder, "%s%s ----> %s%s\n", indent, idFromQualifiedName(edge.Source.String()), idFromQualifiedName(edge.Target.String()), label)
}

func generate(builder *strings.Builder, name string, edges []transition.Edge, active map[transition.State]int) {
	fmt.Fprintf(builder, "@startuml %s\n", idFromQualifiedName(name))
	generateStates(builder, 1, edges, active)
	if len(edges) > 0 {
		fmt.Fprintf(builder, "[*] ----> %s\n", idFromQualifiedName(edges[0].Source.String()))
	}
	for _, edge := range edges {
		generateTransition(builder, 0, edge)
	}
	fmt.Fprintln(builder, "@enduml")
}

// Generate writes a diagram of edges. The first edge's source is the
// initial state.
func Generate(writer io.Writer, name string, edges []transition.Edge) error {
	var builder strings.Builder
	generate(&builder, name, edges, nil)
	_, err := writer.Write([]byte(builder.String()))
	return err
}

// GenerateSnapshot writes the lifecycle diagram annotated with how many of
// the snapshotted machines sit in each state.
func GenerateSnapshot(writer io.Writer, name string, snapshots []transition.Snapshot) error {
	active := map[transition.State]int{}
	for _, snapshot := range snapshots {
		active[snapshot.State]++
	}
	var builder strings.Builder
	generate(&builder, name, transition.Lifecycle(), active)
	_, err := writer.Write([]byte(builder.String()))
	return err
}
