package httpapi

import (
	_ "embed"
	"fmt"
	"net/http"
)

const openAPIPath = "/openapi.yaml"

//go:embed openapi.yaml
var openAPISpec []byte

var swaggerPage = []byte(fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Match Analysis API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body style="margin:0">
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({ url: '%s', dom_id: '#swagger-ui', deepLinking: true });
    </script>
  </body>
</html>`, openAPIPath))

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	h.writeStatic(w, r, "httpapi.Handler.OpenAPI", "application/yaml; charset=utf-8", openAPISpec)
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	h.writeStatic(w, r, "httpapi.Handler.SwaggerUI", "text/html; charset=utf-8", swaggerPage)
}

func (h *Handler) writeStatic(w http.ResponseWriter, r *http.Request, spanName, contentType string, body []byte) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(body); err != nil {
		h.logger.WarnContext(ctx, "write static document failed", "path", r.URL.Path, "error", err)
	}
}
