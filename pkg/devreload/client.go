package devreload

import "net/http"

// ClientScript connects to the socket path published by the document shell in
// window.__ssrkit_reload__ and reacts to reload messages.
const ClientScript = `(function () {
  var path = window.__ssrkit_reload__ || "/_dev/reload";
  var delay = 1000;

  function reloadCSS() {
    document.querySelectorAll('link[rel="stylesheet"]').forEach(function (link) {
      var url = new URL(link.href);
      url.searchParams.set("_reload", Date.now());
      link.href = url.toString();
    });
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss:" : "ws:";
    var ws = new WebSocket(proto + "//" + location.host + path);

    ws.onopen = function () { delay = 1000; };
    ws.onmessage = function (e) {
      var msg;
      try { msg = JSON.parse(e.data); } catch (_) { return; }
      if (msg.type === "reload") location.reload();
      if (msg.type === "css") reloadCSS();
    };
    ws.onclose = function () {
      setTimeout(function () {
        delay = Math.min(delay * 2, 30000);
        connect();
      }, delay);
    };
    ws.onerror = function () { ws.close(); };
  }

  connect();
})();
`

// ServeClient writes ClientScript.
func ServeClient(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(ClientScript))
}
