// Package visualization renders an interactive 3D view of a packing result,
// adapted from the original packer's Three.js HTML template to the layered,
// orientation-aware PackedBox produced by internal/packer.
package visualization

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/palletize/cargopack/internal/packer"
)

// Data is everything the template needs to render one packing result.
type Data struct {
	RequestID string
	Boxes     []*packer.PackedBox
}

type vizItem struct {
	Description string `json:"description"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Z           int    `json:"z"`
	Width       int    `json:"w"`
	Length      int    `json:"l"`
	Depth       int    `json:"d"`
}

type vizBox struct {
	Reference string    `json:"reference"`
	Width     int       `json:"w"`
	Length    int       `json:"l"`
	Depth     int       `json:"d"`
	FillRatio float64   `json:"fillRatio"`
	Items     []vizItem `json:"items"`
}

// GenerateHTML renders a standalone HTML page embedding the packing result
// as a Three.js scene, one box selectable at a time.
func GenerateHTML(data Data) (string, error) {
	t, err := template.New("visualization").Funcs(template.FuncMap{
		"jsonMarshal": func(v any) template.JS {
			b, err := json.Marshal(v)
			if err != nil {
				return "[]"
			}
			return template.JS(b)
		},
	}).Parse(pageTemplate)
	if err != nil {
		return "", fmt.Errorf("parse visualization template: %w", err)
	}

	boxes := make([]vizBox, 0, len(data.Boxes))
	for _, pb := range data.Boxes {
		vb := vizBox{
			Reference: pb.Box.Reference,
			Width:     pb.Box.InnerWidth,
			Length:    pb.Box.InnerLength,
			Depth:     pb.Box.InnerDepth,
			FillRatio: pb.FillRatio(),
		}
		for _, it := range pb.Items.Items() {
			vb.Items = append(vb.Items, vizItem{
				Description: it.Item.Description,
				X:           it.X, Y: it.Y, Z: it.Z,
				Width: it.Width, Length: it.Length, Depth: it.Depth,
			})
		}
		boxes = append(boxes, vb)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, struct {
		RequestID string
		Boxes     []vizBox
	}{RequestID: data.RequestID, Boxes: boxes}); err != nil {
		return "", fmt.Errorf("execute visualization template: %w", err)
	}
	return buf.String(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Packing Result - {{.RequestID}}</title>
    <style>
        :root {
            --bg-primary: #0f0f1a;
            --bg-secondary: #1a1a2e;
            --text-primary: #e8e8f0;
            --text-secondary: #a0a0b8;
            --accent: #6366f1;
            --border-color: #3a3a5c;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: 'Inter', 'Segoe UI', system-ui, sans-serif; background: var(--bg-primary); color: var(--text-primary); overflow: hidden; }
        #container { width: 100vw; height: 100vh; position: relative; }
        #info {
            position: absolute; top: 20px; left: 20px;
            background: var(--bg-secondary); padding: 16px 20px; border-radius: 12px;
            border: 1px solid var(--border-color); max-width: 320px; z-index: 100;
        }
        #info h2 { font-size: 16px; margin-bottom: 8px; }
        #info p { font-size: 13px; color: var(--text-secondary); margin: 2px 0; }
        select { width: 100%; margin-top: 8px; padding: 6px; background: var(--bg-primary); color: var(--text-primary); border: 1px solid var(--border-color); border-radius: 6px; }
    </style>
</head>
<body>
    <div id="container">
        <div id="info">
            <h2>Packing Result</h2>
            <p>Request: {{.RequestID}}</p>
            <select id="boxSelect"></select>
            <p id="fillRatio"></p>
        </div>
    </div>
    <script src="https://unpkg.com/three@0.160.0/build/three.min.js"></script>
    <script>
        const boxes = {{.Boxes | jsonMarshal}};
        const select = document.getElementById('boxSelect');
        boxes.forEach((b, i) => {
            const opt = document.createElement('option');
            opt.value = i;
            opt.textContent = b.reference + ' (' + b.items.length + ' items)';
            select.appendChild(opt);
        });

        const scene = new THREE.Scene();
        const camera = new THREE.PerspectiveCamera(60, window.innerWidth / window.innerHeight, 0.1, 10000);
        const renderer = new THREE.WebGLRenderer({ antialias: true });
        renderer.setSize(window.innerWidth, window.innerHeight);
        document.getElementById('container').appendChild(renderer.domElement);
        scene.add(new THREE.AmbientLight(0xffffff, 0.6));
        const dir = new THREE.DirectionalLight(0xffffff, 0.8);
        dir.position.set(1, 2, 3);
        scene.add(dir);

        let group = new THREE.Group();
        scene.add(group);

        function renderBox(idx) {
            scene.remove(group);
            group = new THREE.Group();
            const b = boxes[idx];
            document.getElementById('fillRatio').textContent =
                'Fill: ' + (b.fillRatio * 100).toFixed(1) + '%';

            const wire = new THREE.LineSegments(
                new THREE.EdgesGeometry(new THREE.BoxGeometry(b.w, b.d, b.l)),
                new THREE.LineBasicMaterial({ color: 0x6366f1 })
            );
            wire.position.set(b.w / 2, b.d / 2, b.l / 2);
            group.add(wire);

            b.items.forEach((it, i) => {
                const geo = new THREE.BoxGeometry(it.w, it.d, it.l);
                const mat = new THREE.MeshLambertMaterial({ color: new THREE.Color().setHSL((i * 0.13) % 1, 0.6, 0.55) });
                const mesh = new THREE.Mesh(geo, mat);
                mesh.position.set(it.x + it.w / 2, it.z + it.d / 2, it.y + it.l / 2);
                group.add(mesh);
            });

            scene.add(group);
            camera.position.set(b.w * 1.6, b.d * 1.6, b.l * 1.6);
            camera.lookAt(b.w / 2, b.d / 2, b.l / 2);
        }

        select.addEventListener('change', () => renderBox(Number(select.value)));
        if (boxes.length > 0) renderBox(0);

        function animate() {
            requestAnimationFrame(animate);
            renderer.render(scene, camera);
        }
        animate();

        window.addEventListener('resize', () => {
            camera.aspect = window.innerWidth / window.innerHeight;
            camera.updateProjectionMatrix();
            renderer.setSize(window.innerWidth, window.innerHeight);
        });
    </script>
</body>
</html>
`
