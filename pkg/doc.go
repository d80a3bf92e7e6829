// Package pkg provides the core libraries for the automata toolkit.
//
// # Overview
//
// The pkg directory is organized into a small set of areas:
//
//  1. [fa] - The symbolic model shared by all automata, with [fa/dfa] and
//     [fa/nfa] holding the executable machines
//  2. [graph] - The directed-graph analyzer behind reachability and
//     finiteness
//  3. [definition] - The TOML/JSON file representation of automata
//  4. [render] - DOT serialization and Graphviz rasterization
//  5. [pipeline] - The shared load → operate → render flow
//  6. [cache], [store], [observability] - Infrastructure for reuse,
//     persistence, and instrumentation
//
// # Architecture
//
// The typical data flow:
//
//	Definition file (TOML/JSON)
//	         ↓
//	    [definition] package (decode + convert)
//	         ↓
//	    [fa/dfa] package (validate, recognize, operate)
//	         ↓
//	    [render] package (DOT / SVG / PNG output)
//
// The CLI and the HTTP API both drive this flow through [pipeline], so
// operation names, caching, and result encoding stay identical across entry
// points.
package pkg
