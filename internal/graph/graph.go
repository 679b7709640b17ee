// Package graph derives the relationship graph between catalog records.
// The conflict responses the backend returns on delete are exactly the
// edges this graph makes visible.
package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"catalogctl/internal/store"
)

// Kind names a node's record type.
type Kind string

const (
	KindLocation     Kind = "Location"
	KindAddress      Kind = "Address"
	KindOrganization Kind = "Organization"
	KindPerson       Kind = "Person"
	KindProduct      Kind = "Product"
)

// Node is one record in the graph.
type Node struct {
	Kind  Kind   `json:"kind"`
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Edge is one reference from a record to a dependency. Dangling marks an
// edge whose target id is absent from the loaded collections.
type Edge struct {
	FromKind Kind   `json:"fromKind"`
	FromID   int64  `json:"fromId"`
	Relation string `json:"relation"`
	ToKind   Kind   `json:"toKind"`
	ToID     int64  `json:"toId"`
	Dangling bool   `json:"dangling,omitempty"`
}

// Graph is the full relationship graph over the loaded collections.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Dangling returns the edges whose targets are missing from the loaded
// collections. Any such edge means the local snapshot is stale or the
// backend holds a broken reference.
func (g *Graph) Dangling() []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Dangling {
			out = append(out, e)
		}
	}
	return out
}

// Build derives the graph from the registry's current snapshots.
func Build(reg *store.Registry) *Graph {
	g := &Graph{}

	for _, loc := range reg.Locations.Items() {
		g.addNode(KindLocation, loc.ID, fmt.Sprintf("(%g, %g, %g)", loc.X, loc.Y, loc.Z))
	}
	for _, addr := range reg.Addresses.Items() {
		label := "address"
		if addr.ZipCode != nil {
			label = *addr.ZipCode
		}
		g.addNode(KindAddress, addr.ID, label)
		if addr.Town != nil {
			_, ok := reg.Locations.Find(addr.Town.ID)
			g.addEdge(KindAddress, addr.ID, "town", KindLocation, addr.Town.ID, !ok)
		}
	}
	for _, org := range reg.Organizations.Items() {
		g.addNode(KindOrganization, org.ID, org.Name)
		if org.OfficialAddress != nil {
			_, ok := reg.Addresses.Find(org.OfficialAddress.ID)
			g.addEdge(KindOrganization, org.ID, "officialAddress", KindAddress, org.OfficialAddress.ID, !ok)
		}
		if org.PostalAddress != nil {
			_, ok := reg.Addresses.Find(org.PostalAddress.ID)
			g.addEdge(KindOrganization, org.ID, "postalAddress", KindAddress, org.PostalAddress.ID, !ok)
		}
	}
	for _, p := range reg.Persons.Items() {
		g.addNode(KindPerson, p.ID, p.Name)
		if p.Location != nil {
			_, ok := reg.Locations.Find(p.Location.ID)
			g.addEdge(KindPerson, p.ID, "location", KindLocation, p.Location.ID, !ok)
		}
	}
	for _, prod := range reg.Products.Items() {
		g.addNode(KindProduct, prod.ID, prod.Name)
		if prod.Manufacturer != nil {
			_, ok := reg.Organizations.Find(prod.Manufacturer.ID)
			g.addEdge(KindProduct, prod.ID, "manufacturer", KindOrganization, prod.Manufacturer.ID, !ok)
		}
		if prod.Owner != nil {
			_, ok := reg.Persons.Find(prod.Owner.ID)
			g.addEdge(KindProduct, prod.ID, "owner", KindPerson, prod.Owner.ID, !ok)
		}
	}

	sort.Slice(g.Edges, func(i, j int) bool {
		a, b := g.Edges[i], g.Edges[j]
		if a.FromKind != b.FromKind {
			return a.FromKind < b.FromKind
		}
		if a.FromID != b.FromID {
			return a.FromID < b.FromID
		}
		return a.Relation < b.Relation
	})
	return g
}

func (g *Graph) addNode(kind Kind, id int64, label string) {
	g.Nodes = append(g.Nodes, Node{Kind: kind, ID: id, Label: label})
}

func (g *Graph) addEdge(fromKind Kind, fromID int64, relation string, toKind Kind, toID int64, dangling bool) {
	g.Edges = append(g.Edges, Edge{
		FromKind: fromKind, FromID: fromID,
		Relation: relation,
		ToKind: toKind, ToID: toID,
		Dangling: dangling,
	})
}

// Incoming returns the edges pointing at the given record. A non-empty
// result predicts the backend would refuse to delete it.
func (g *Graph) Incoming(kind Kind, id int64) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.ToKind == kind && e.ToID == id {
			out = append(out, e)
		}
	}
	return out
}

// RenderText writes the graph as indented text, one node per line with its
// outgoing edges beneath it.
func (g *Graph) RenderText(w io.Writer) error {
	byFrom := make(map[Node][]Edge)
	for _, e := range g.Edges {
		key := Node{Kind: e.FromKind, ID: e.FromID}
		byFrom[key] = append(byFrom[key], e)
	}
	for _, n := range g.Nodes {
		if _, err := fmt.Fprintf(w, "%s/%d %s\n", n.Kind, n.ID, n.Label); err != nil {
			return err
		}
		for _, e := range byFrom[Node{Kind: n.Kind, ID: n.ID}] {
			marker := ""
			if e.Dangling {
				marker = " (missing)"
			}
			if _, err := fmt.Fprintf(w, "  %s -> %s/%d%s\n", e.Relation, e.ToKind, e.ToID, marker); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderJSON writes the graph as indented JSON.
func (g *Graph) RenderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}
