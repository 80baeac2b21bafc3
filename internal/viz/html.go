package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/matsen/ppaat/internal/config"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Colors config.Colors
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{Colors: config.DefaultColors()}
}

// GenerateHTML generates a self-contained HTML file for the graph visualization.
func GenerateHTML(graph *GraphData, opts HTMLOptions) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	colors := opts.Colors.Merge(config.DefaultColors())
	if err := colors.Validate(); err != nil {
		return "", err
	}

	if graph.IsEmpty() {
		return generateEmptyHTML(), nil
	}

	graphJSON, err := graph.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}
	viewsJSON, err := json.Marshal(graph.Views)
	if err != nil {
		return "", fmt.Errorf("marshaling views to JSON: %w", err)
	}

	data := templateData{
		Title:     graph.Title,
		GraphJSON: template.JS(graphJSON),
		ViewsJSON: template.JS(viewsJSON),
		Initial:   graph.Initial,
		Palette:   newPalette(colors),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// templateData holds data for the HTML template.
type templateData struct {
	Title     string
	GraphJSON template.JS
	ViewsJSON template.JS
	Initial   string
	Palette   palette
}

// palette pairs each fill colour with a readable label colour.
type palette struct {
	Species1     string `json:"species1"`
	Species1Text string `json:"species1Text"`
	Species2     string `json:"species2"`
	Species2Text string `json:"species2Text"`
	Domain       string `json:"domain"`
	DomainText   string `json:"domainText"`
}

func newPalette(c config.Colors) palette {
	return palette{
		Species1:     c.Species1,
		Species1Text: textColor(c.Species1),
		Species2:     c.Species2,
		Species2Text: textColor(c.Species2),
		Domain:       c.Domain,
		DomainText:   textColor(c.Domain),
	}
}

func textColor(bg string) string {
	if ColorIsLight(bg) {
		return "#000000"
	}
	return "#ffffff"
}

// ColorIsLight reports whether a #rgb or #rrggbb colour is light enough to
// need dark text. Unparseable colours count as light.
func ColorIsLight(hex string) bool {
	h := strings.TrimPrefix(hex, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return true
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return true
	}
	r, g, b := float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff)
	return 0.299*r+0.587*g+0.114*b >= 150
}

// generateEmptyHTML returns HTML for an empty graph state.
func generateEmptyHTML() string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Interolog viewer - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #333;
    }
    .empty-state code {
      background: #e0e0e0;
      padding: 2px 6px;
      border-radius: 3px;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No graph data</h2>
    <p>The document has no nodes.</p>
    <p>Check it with <code>ppaat validate</code></p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      display: flex;
      background: #f5f5f5;
    }
    #cy {
      flex: 1;
      height: 100vh;
      background: white;
    }
    #panel {
      width: 320px;
      height: 100vh;
      overflow-y: auto;
      padding: 12px;
      font-size: 13px;
      border-left: 1px solid #ccc;
    }
    #panel h3 {
      font-size: 12px;
      text-transform: uppercase;
      color: #888;
      margin: 12px 0 4px;
    }
    #panel button {
      width: 100%;
      margin: 2px 0;
      padding: 6px;
    }
    #stats {
      white-space: pre-wrap;
    }
    #missing li {
      margin: 2px 0;
    }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="panel">
    <h3>{{.Title}}</h3>
    <button id="granularity"></button>
    <button id="predicted"></button>
    <h3>View</h3>
    <div id="view-label"></div>
    <h3>Statistics</h3>
    <div id="stats"></div>
    <h3>Predicted interactors</h3>
    <ul id="missing"></ul>
  </div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const views = {{.ViewsJSON}};
      const palette = {{.Palette}};
      const byKey = {};
      views.forEach(function(v) { byKey[v.key] = v; });

      const state = {key: {{.Initial}}};

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'label': 'data(label)',
              'font-size': '10px',
              'text-valign': 'center',
              'width': '40px',
              'height': '20px',
              'shape': 'round-rectangle'
            }
          },
          {
            selector: 'node[species = 1]',
            style: {'background-color': palette.species1, 'color': palette.species1Text}
          },
          {
            selector: 'node[species = 2]',
            style: {'background-color': palette.species2, 'color': palette.species2Text}
          },
          {
            selector: 'node[type="anchor"], node[type="terminus"]',
            style: {'background-color': palette.domain, 'color': palette.domainText, 'shape': 'rectangle'}
          },
          {
            selector: 'node[type="query"]',
            style: {'width': '60px', 'height': '30px', 'font-weight': 'bold'}
          },
          {
            selector: 'node.group',
            style: {
              'background-opacity': 0.05,
              'border-color': '#bbb',
              'border-width': 1,
              'text-valign': 'top',
              'color': '#666'
            }
          },
          {
            selector: 'node.predicted',
            style: {'border-style': 'dashed', 'border-width': 2, 'border-color': '#555'}
          },
          {
            selector: 'node.unmatchable',
            style: {'opacity': 0.5}
          },
          {
            selector: 'edge',
            style: {'line-color': '#95A5A6', 'width': 1, 'curve-style': 'bezier'}
          },
          {
            selector: 'edge[kind="orthology"]',
            style: {'line-color': '#E8923A', 'line-style': 'dashed', 'width': 2}
          },
          {
            selector: 'edge[kind="sequence"]',
            style: {'line-color': '#9B59B6', 'line-style': 'dotted'}
          },
          {
            selector: '.hidden',
            style: {'display': 'none'}
          }
        ],
        layout: {name: 'preset'}
      });

      function toggled(key, which) {
        const pred = key.charAt(0), gran = key.charAt(1);
        if (which === 'granularity') {
          return pred + (gran === 'd' ? 'p' : 'd');
        }
        return (pred === 'p' ? 'v' : 'p') + gran;
      }

      function applyView(key) {
        const v = byKey[key];
        if (!v) return;
        state.key = key;

        cy.batch(function() {
          cy.nodes().not('.group').forEach(function(node) {
            const nv = v.nodes[node.id()];
            if (!nv) {
              node.addClass('hidden');
              return;
            }
            node.removeClass('hidden unmatchable');
            if (nv.status === 'unmatchable') node.addClass('unmatchable');
            const parent = nv.parent || null;
            const current = node.parent().length ? node.parent().id() : null;
            if (parent !== current) node.move({parent: parent});
          });
          cy.nodes('.group').forEach(function(g) {
            if (v.groups.indexOf(g.id()) >= 0) g.removeClass('hidden');
            else g.addClass('hidden');
          });
          const shown = {};
          v.edges.forEach(function(id) { shown[id] = true; });
          cy.edges().forEach(function(e) {
            if (shown[e.id()]) e.removeClass('hidden');
            else e.addClass('hidden');
          });
        });

        // move() replaces elements, so positions are set after the batch.
        cy.nodes().not('.group').forEach(function(node) {
          const nv = v.nodes[node.id()];
          if (nv && nv.placed) node.position({x: nv.x, y: nv.y});
        });
        cy.fit(cy.elements().not('.hidden'), 30);

        const gran = key.charAt(1) === 'd' ? 'protein' : 'domain';
        document.getElementById('granularity').textContent = 'Switch to ' + gran + ' view';
        document.getElementById('predicted').textContent =
          key.charAt(0) === 'p' ? 'Hide predicted interactions' : 'Show predicted interactions';
        document.getElementById('view-label').textContent = v.label;
        document.getElementById('stats').textContent = v.stats;

        const list = document.getElementById('missing');
        list.innerHTML = '';
        (v.missing || []).forEach(function(line) {
          const li = document.createElement('li');
          li.textContent = line;
          list.appendChild(li);
        });
      }

      document.getElementById('granularity').addEventListener('click', function() {
        applyView(toggled(state.key, 'granularity'));
      });
      document.getElementById('predicted').addEventListener('click', function() {
        applyView(toggled(state.key, 'predicted'));
      });

      applyView(state.key);
    })();
  </script>
</body>
</html>`
