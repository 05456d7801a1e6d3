package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// handleIndex serves the viewer shell. The page polls the scene endpoint,
// draws the returned SVG-equivalent scene on a canvas, and posts pointer and
// viewport events back to the interaction endpoints.
func (s *Server) handleIndex(c echo.Context) error {
	return c.HTML(http.StatusOK, indexHTML)
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Knowledge Graph Viewer</title>
  <style>
    body { font-family: 'Helvetica Neue', Arial, sans-serif; margin: 0; background: #f5f5f5; }
    #toolbar { padding: 10px 16px; background: #fff; box-shadow: 0 1px 4px rgba(0,0,0,0.1); }
    #toolbar input, #toolbar select { padding: 6px; margin-right: 8px; }
    #canvas { display: block; }
    #notice { color: #c62828; padding: 4px 16px; }
  </style>
</head>
<body>
  <div id="toolbar">
    <input id="subject" placeholder="Subject ID">
    <select id="graphType">
      <option value="full_knowledge">Full knowledge</option>
      <option value="exam_scope">Exam scope</option>
      <option value="mastery_level">Mastery level</option>
      <option value="ai_assistant_content">AI assistant content</option>
    </select>
    <button onclick="loadGraph()">Load</button>
    <a href="/export.svg">Export SVG</a>
  </div>
  <div id="notice"></div>
  <canvas id="canvas"></canvas>
  <script>
    const canvas = document.getElementById('canvas');
    const ctx = canvas.getContext('2d');
    canvas.width = window.innerWidth;
    canvas.height = window.innerHeight - 60;
    let scene = null;

    function loadGraph() {
      fetch('/api/graph', {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify({
          subjectId: document.getElementById('subject').value,
          graphType: document.getElementById('graphType').value,
        }),
      }).then(r => r.json()).then(d => {
        document.getElementById('notice').textContent = d.notice || '';
      });
    }

    function draw() {
      if (!scene || !scene.nodes) return;
      ctx.clearRect(0, 0, canvas.width, canvas.height);
      ctx.save();
      ctx.translate(scene.translateX, scene.translateY);
      ctx.scale(scene.scale, scene.scale);
      for (const e of scene.edges) {
        ctx.beginPath();
        ctx.moveTo(e.x1, e.y1);
        ctx.lineTo(e.x2, e.y2);
        ctx.lineWidth = e.width;
        ctx.strokeStyle = scene.options.EdgeColor || '#999';
        ctx.stroke();
      }
      for (const n of scene.nodes) {
        ctx.beginPath();
        ctx.arc(n.x, n.y, n.radius, 0, 2 * Math.PI);
        ctx.fillStyle = n.color;
        ctx.fill();
        ctx.lineWidth = n.strokeWidth;
        ctx.strokeStyle = 'rgba(0,0,0,0.3)';
        ctx.stroke();
        if (n.badgeColor) {
          ctx.beginPath();
          ctx.arc(n.x + n.radius * 0.8, n.y - n.radius * 0.8, n.radius * 0.3, 0, 2 * Math.PI);
          ctx.fillStyle = n.badgeColor;
          ctx.fill();
        }
        ctx.fillStyle = '#333';
        ctx.textAlign = 'center';
        ctx.fillText(n.name, n.x, n.y + n.radius + 12);
      }
      ctx.restore();
    }

    function hitNode(x, y) {
      if (!scene || !scene.nodes) return null;
      const wx = (x - scene.translateX) / scene.scale;
      const wy = (y - scene.translateY) / scene.scale;
      for (const n of scene.nodes) {
        const dx = wx - n.x, dy = wy - n.y;
        if (dx * dx + dy * dy <= n.radius * n.radius) return n;
      }
      return null;
    }

    function post(path, body) {
      fetch(path, {method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify(body)});
    }

    let dragging = false;
    canvas.addEventListener('pointerdown', ev => {
      const n = hitNode(ev.offsetX, ev.offsetY);
      if (n) { dragging = true; post('/api/pointer', {event: 'down', nodeId: n.id, x: ev.offsetX, y: ev.offsetY}); }
    });
    canvas.addEventListener('pointermove', ev => {
      if (dragging) post('/api/pointer', {event: 'move', x: ev.offsetX, y: ev.offsetY});
      else {
        const n = hitNode(ev.offsetX, ev.offsetY);
        post('/api/pointer', n ? {event: 'enter', nodeId: n.id} : {event: 'leave', nodeId: ''});
      }
    });
    canvas.addEventListener('pointerup', () => { dragging = false; post('/api/pointer', {event: 'up'}); });
    canvas.addEventListener('wheel', ev => {
      ev.preventDefault();
      post('/api/viewport', {action: 'zoom', factor: ev.deltaY < 0 ? 1.1 : 0.9, x: ev.offsetX, y: ev.offsetY});
    });

    setInterval(() => {
      fetch('/api/scene').then(r => r.json()).then(d => { scene = d; draw(); });
    }, 50);
  </script>
</body>
</html>`
