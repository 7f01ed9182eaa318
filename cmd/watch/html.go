package watch

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>modgraph</title>
<style>
body { font-family: ui-monospace, monospace; margin: 2rem; }
.error { color: #b00020; }
.cycle { color: #b36b00; }
</style>
</head>
<body>
<h1>modgraph</h1>
<p id="status">Waiting for the first build...</p>
<h2>Cycles</h2>
<ul id="cycles"></ul>
<h2>Orphans</h2>
<ul id="orphans"></ul>
<h2>Modules</h2>
<pre id="modules"></pre>
<script>
const list = (id, items, cls) => {
  const el = document.getElementById(id);
  el.replaceChildren(...items.map((text) => {
    const li = document.createElement("li");
    li.textContent = text;
    if (cls) li.className = cls;
    return li;
  }));
};
const events = new EventSource("/events");
events.addEventListener("graph", (event) => {
  const snapshot = JSON.parse(event.data);
  const status = document.getElementById("status");
  if (snapshot.error) {
    status.textContent = "Build #" + snapshot.id + " failed: " + snapshot.error;
    status.className = "error";
    return;
  }
  const graph = snapshot.graph;
  status.textContent = "Build #" + snapshot.id + " at " + new Date(snapshot.timestamp).toLocaleTimeString() +
    ": " + Object.keys(graph.modules).length + " modules";
  status.className = "";
  list("cycles", graph.cycles.map((c) => c.join(" -> ")), "cycle");
  list("orphans", graph.orphans);
  document.getElementById("modules").textContent = Object.entries(graph.modules)
    .map(([m, deps]) => m + (deps.length ? "\n  -> " + deps.join("\n  -> ") : ""))
    .join("\n");
});
</script>
</body>
</html>
`
