package render

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"

	"github.com/automatalib/automata/pkg/fa/dfa"
)

// RenderSVG renders the automaton's DOT diagram to SVG using Graphviz.
func RenderSVG(ctx context.Context, d *dfa.DFA) ([]byte, error) {
	return renderFormat(ctx, d, graphviz.SVG)
}

// RenderPNG renders the automaton's DOT diagram to PNG using Graphviz.
func RenderPNG(ctx context.Context, d *dfa.DFA) ([]byte, error) {
	return renderFormat(ctx, d, graphviz.PNG)
}

func renderFormat(ctx context.Context, d *dfa.DFA, format graphviz.Format) ([]byte, error) {
	dot := ToDOT(d)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDiagram writes the DOT serialization to path+".dot". When rasterize
// is true it additionally renders path+".png" through Graphviz.
func WriteDiagram(ctx context.Context, d *dfa.DFA, path string, rasterize bool) error {
	dotPath := path + ".dot"
	if err := os.WriteFile(dotPath, []byte(ToDOT(d)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", dotPath, err)
	}
	if !rasterize {
		return nil
	}

	png, err := RenderPNG(ctx, d)
	if err != nil {
		return err
	}
	pngPath := path + ".png"
	if err := os.WriteFile(pngPath, png, 0644); err != nil {
		return fmt.Errorf("write %s: %w", pngPath, err)
	}
	return nil
}
